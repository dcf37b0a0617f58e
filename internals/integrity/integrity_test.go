package integrity

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestCalculateBytes(t *testing.T) {
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", CalculateBytes([]byte("abc"), SHA1))
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", CalculateBytes([]byte("abc"), MD5))
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		CalculateBytes([]byte("abc"), SHA256),
	)
}

func TestValidateLocal(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "abc.txt", "abc")
	sha := "a9993e364706816aba3e25717850c26c9cd0d89d"

	tests := []struct {
		name     string
		path     string
		expected string
		want     bool
	}{
		{"missing file", filepath.Join(dir, "nope"), sha, false},
		{"missing file without hash", filepath.Join(dir, "nope"), "", false},
		{"presence only", p, "", true},
		{"matching hash", p, sha, true},
		{"matching uppercase hash", p, strings.ToUpper(sha), true},
		{"wrong hash", p, "deadbeef", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateLocal(tt.path, SHA1, tt.expected))
		})
	}
}

func TestValidateForgeChecksum(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "lib.txt", "abc")
	sha := "a9993e364706816aba3e25717850c26c9cd0d89d"

	assert.False(t, ValidateForgeChecksum(filepath.Join(dir, "missing"), nil))
	assert.True(t, ValidateForgeChecksum(p, nil))
	assert.True(t, ValidateForgeChecksum(p, []string{"ffff", sha}))
	assert.False(t, ValidateForgeChecksum(p, []string{"ffff"}))
}

func TestParseChecksums(t *testing.T) {
	parsed := ParseChecksums("aaaa a/b.class\n\nbbbb  c.class\nlonely\r\ncccc d.class\r\n")
	assert.Equal(t, map[string]string{
		"a/b.class": "aaaa",
		"c.class":   "bbbb",
		"d.class":   "cccc",
	}, parsed)
}
