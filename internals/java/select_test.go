package java

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minepkg/assetguard/internals/platform"
)

func TestRuntimeMajor(t *testing.T) {
	tests := []struct {
		dir  string
		want uint8
		ok   bool
	}{
		{"jdk8u292-b10", 8, true},
		{"jdk-17.0.1+12", 17, true},
		{"jdk-11.0.12+7", 11, true},
		{"amazon-corretto-8.jdk", 8, true},
		{"jdk1.8.0_292", 8, true},
		{"openj9", 0, false},
		{"jdk-999", 0, false},
	}
	for _, tt := range tests {
		got, ok := RuntimeMajor(tt.dir)
		assert.Equal(t, tt.ok, ok, tt.dir)
		assert.Equal(t, tt.want, got, tt.dir)
	}
}

func TestMajorFor(t *testing.T) {
	tests := []struct {
		mc       string
		declared int
		want     uint8
	}{
		{"1.12.2", 0, 8},
		{"1.16.5", 0, 8},
		{"1.17", 0, 16},
		{"1.17.1", 0, 16},
		{"1.18.2", 0, 17},
		{"1.20.1", 0, 17},
		{"1.20.5", 21, 21},
		{"21w37a", 0, DefaultMajor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MajorFor(tt.mc, tt.declared), tt.mc)
	}
}

func TestFindInstalled(t *testing.T) {
	log, _ := test.NewNullLogger()
	p := NewProvider(log)
	p.SetPlatform(platform.New("linux", "amd64"))

	data := t.TempDir()
	for _, name := range []string{"jdk8u292-b10", "jdk-17.0.1+12"} {
		bin := filepath.Join(RuntimeDir(data), name, "bin")
		require.NoError(t, os.MkdirAll(bin, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(bin, "java"), nil, 0o755))
	}
	// directory without an executable
	require.NoError(t, os.MkdirAll(filepath.Join(RuntimeDir(data), "jdk-11.0.12+7"), 0o755))

	assert.Equal(t, filepath.Join(RuntimeDir(data), "jdk-17.0.1+12", "bin", "java"), p.FindInstalled(data, 17))
	assert.Equal(t, filepath.Join(RuntimeDir(data), "jdk8u292-b10", "bin", "java"), p.FindInstalled(data, 8))
	assert.Empty(t, p.FindInstalled(data, 11))
	assert.Empty(t, p.FindInstalled(t.TempDir(), 8))
}
