package downloadmgr

import (
	"github.com/minepkg/assetguard/internals/integrity"
)

// Asset describes a single file that should exist at Target with the given digest
type Asset struct {
	ID        string
	Hash      string
	Algorithm integrity.Algorithm
	Size      int64
	URL       string
	Target    string
}

// NewAsset creates an Asset using SHA1, the digest used by the vanilla manifests
func NewAsset(id string, hash string, size int64, url string, target string) *Asset {
	return &Asset{ID: id, Hash: hash, Algorithm: integrity.SHA1, Size: size, URL: url, Target: target}
}

// Valid reports whether the local file at Target matches the asset
func (a *Asset) Valid() bool {
	return integrity.ValidateLocal(a.Target, a.Algorithm, a.Hash)
}

// Category groups assets that are downloaded together with one concurrency limit
type Category uint8

const (
	Assets Category = iota
	Libraries
	Files
	Forge
	Java
)

// Categories lists every category in processing order
var Categories = []Category{Assets, Libraries, Files, Forge, Java}

func (c Category) String() string {
	switch c {
	case Assets:
		return "assets"
	case Libraries:
		return "libraries"
	case Files:
		return "files"
	case Forge:
		return "forge"
	case Java:
		return "java"
	}
	return "unknown"
}

// DefaultLimit is the number of parallel downloads for this category
func (c Category) DefaultLimit() int {
	switch c {
	case Assets:
		return 20
	case Java:
		return 1
	default:
		return 5
	}
}
