// Package integrity computes and compares digests of local files.
//
// All validators report a plain bool: a missing or unreadable file is simply
// "not valid" and will be downloaded again.
package integrity

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"
	"strings"
)

// Algorithm is a supported digest algorithm
type Algorithm uint8

const (
	SHA1 Algorithm = iota
	MD5
	SHA256
)

func (a Algorithm) String() string {
	switch a {
	case MD5:
		return "md5"
	case SHA256:
		return "sha256"
	default:
		return "sha1"
	}
}

func (a Algorithm) new() hash.Hash {
	switch a {
	case MD5:
		return md5.New()
	case SHA256:
		return sha256.New()
	default:
		return sha1.New()
	}
}

// Calculate returns the hex encoded digest of everything read from r
func Calculate(r io.Reader, algo Algorithm) (string, error) {
	h := algo.new()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// CalculateBytes returns the hex encoded digest of buf
func CalculateBytes(buf []byte, algo Algorithm) string {
	h := algo.new()
	h.Write(buf)
	return hex.EncodeToString(h.Sum(nil))
}

// CalculateFile returns the hex encoded digest of the file at path
func CalculateFile(path string, algo Algorithm) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return Calculate(f, algo)
}

// Exists reports whether something exists at path
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ValidateLocal checks the file at path against the expected hash.
// An empty hash only checks for existence. Hashes are compared case-insensitively.
func ValidateLocal(path string, algo Algorithm, expected string) bool {
	if !Exists(path) {
		return false
	}
	if expected == "" {
		return true
	}
	actual, err := CalculateFile(path, algo)
	if err != nil {
		return false
	}
	return actual == strings.ToLower(expected)
}

// ValidateForgeChecksum checks a forge library against a set of accepted sha1 sums.
// Jars that were repackaged can still pass through their internal checksum list
// (see [ValidateForgeJar]).
func ValidateForgeChecksum(path string, expected []string) bool {
	if !Exists(path) {
		return false
	}
	if len(expected) == 0 {
		return true
	}
	actual, err := CalculateFile(path, SHA1)
	if err != nil {
		return false
	}
	if contains(expected, actual) {
		return true
	}
	if strings.HasSuffix(path, ".jar") {
		return ValidateForgeJar(path, expected)
	}
	return false
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
