package assetguard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNatives(t *testing.T) {
	e, _ := newTestEngine(t, nil, nil)
	v := testVersion()

	jar := filepath.Join(e.dirs.Common, "libraries", "org", "lwjgl", "lwjgl-platform-natives-linux.jar")
	require.NoError(t, os.MkdirAll(filepath.Dir(jar), os.ModePerm))
	require.NoError(t, os.WriteFile(jar, buildJar(t, map[string]string{
		"META-INF/MANIFEST.MF": "Manifest-Version: 1.0\n",
		"liblwjgl64.so":        "elf",
	}), 0o644))

	dest := filepath.Join(t.TempDir(), "AGNatives")
	writeFile(t, filepath.Join(dest, "stale.so"), "old")

	written, err := e.ExtractNatives(v, dest)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dest, "liblwjgl64.so")}, written)
	assert.NoFileExists(t, filepath.Join(dest, "stale.so"))
	assert.NoDirExists(t, filepath.Join(dest, "META-INF"))
}
