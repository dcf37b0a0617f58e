package integrity

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	archiver "github.com/mholt/archiver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildForgeJar writes a jar whose checksum list covers every given entry.
// It returns the path and the sha1 of the checksum list.
func buildForgeJar(t *testing.T, dir string, entries map[string]string, tamper map[string]string) (string, string) {
	t.Helper()
	list := ""
	for name, content := range entries {
		list += fmt.Sprintf("%s %s\n", CalculateBytes([]byte(content), SHA1), name)
	}

	p := filepath.Join(dir, "forge-universal.jar")
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		if v, ok := tamper[name]; ok {
			content = v
		}
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	w, err := zw.Create(ChecksumsEntry)
	require.NoError(t, err)
	_, err = w.Write([]byte(list))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return p, CalculateBytes([]byte(list), SHA1)
}

var jarEntries = map[string]string{
	"net/minecraftforge/Forge.class":  "forge bytes",
	"net/minecraftforge/Loader.class": "loader bytes",
	"META-INF/MANIFEST.MF":            "Manifest-Version: 1.0\n",
}

func TestValidateForgeJar(t *testing.T) {
	p, listSum := buildForgeJar(t, t.TempDir(), jarEntries, nil)

	assert.True(t, ValidateForgeJar(p, []string{listSum}))
	assert.True(t, ValidateForgeJar(p, []string{"0000", listSum}))
	assert.False(t, ValidateForgeJar(p, []string{"0000"}), "checksum list has to be trusted")

	// jar sha1 is not in the set, but the internal list is
	assert.True(t, ValidateForgeChecksum(p, []string{listSum}))
}

func TestValidateForgeJar_Tampered(t *testing.T) {
	for name := range jarEntries {
		t.Run(name, func(t *testing.T) {
			p, listSum := buildForgeJar(t, t.TempDir(), jarEntries, map[string]string{name: "evil"})
			assert.False(t, ValidateForgeJar(p, []string{listSum}))
		})
	}
}

func TestValidateForgeJar_NotAJar(t *testing.T) {
	p := writeFile(t, t.TempDir(), "broken.jar", "definitely not a zip")
	assert.False(t, ValidateForgeJar(p, []string{"x"}))
	assert.False(t, ValidateForgeChecksum(p, []string{"x"}))
}

func TestEntryNameKeepsDirectories(t *testing.T) {
	p, _ := buildForgeJar(t, t.TempDir(), jarEntries, nil)

	var names []string
	err := archiver.NewZip().Walk(p, func(f archiver.File) error {
		names = append(names, EntryName(f))
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"net/minecraftforge/Forge.class",
		"net/minecraftforge/Loader.class",
		"META-INF/MANIFEST.MF",
		ChecksumsEntry,
	}, names)
}
