package platform

import (
	"path/filepath"
	"testing"
)

func TestJavaExecFromRoot(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"windows", filepath.Join("jdk", "bin", "javaw.exe")},
		{"darwin", filepath.Join("jdk", "Contents", "Home", "bin", "java")},
		{"linux", filepath.Join("jdk", "bin", "java")},
		{"freebsd", filepath.Join("jdk", "bin", "java")},
		{"plan9", filepath.Join("jdk", "bin", "java")},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			p := New(tt.goos, "amd64")
			if got := p.JavaExecFromRoot("jdk"); got != tt.want {
				t.Errorf("JavaExecFromRoot() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJavaExecFromRootZeroPlatform(t *testing.T) {
	if got := (Platform{}).JavaExecFromRoot("jdk"); got != filepath.Join("jdk", "bin", "java") {
		t.Errorf("JavaExecFromRoot() = %v", got)
	}
}

func TestExpandArch(t *testing.T) {
	if got := New("windows", "amd64").ExpandArch("natives-windows-${arch}"); got != "natives-windows-64" {
		t.Errorf("ExpandArch() = %v", got)
	}
	if got := New("windows", "386").ExpandArch("natives-windows-${arch}"); got != "natives-windows-32" {
		t.Errorf("ExpandArch() = %v", got)
	}
}

func TestOSString(t *testing.T) {
	if FromGOOS("darwin").String() != "osx" {
		t.Error("darwin should be osx")
	}
	if FromGOOS("freebsd").String() != "unknown_os" {
		t.Error("freebsd should be unknown")
	}
}
