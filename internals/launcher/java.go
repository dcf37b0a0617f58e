package launcher

import (
	"context"
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/pkg/errors"

	"github.com/minepkg/assetguard/internals/distro"
	"github.com/minepkg/assetguard/internals/java"
	"github.com/minepkg/assetguard/internals/merrors"
)

// javaMajor returns the overwritten java version or the one the server's minecraft version needs
func (l *Launcher) javaMajor(server *distro.Server) uint8 {
	if l.JavaMajor != 0 {
		return l.JavaMajor
	}
	return java.MajorFor(server.MinecraftVersion, 0)
}

// prepareJava picks the java executable. A missing runtime is queued and downloaded
// together with everything else. It returns true if a runtime was queued
func (l *Launcher) prepareJava(ctx context.Context, major uint8) (bool, error) {
	e := l.engine
	switch {
	case l.UseSystemJava:
		e.SetJavaExecutable("java")
		return false, nil
	case l.Settings.Java.Executable != "":
		e.SetJavaExecutable(l.Settings.Java.Executable)
		return false, nil
	}

	if exec := e.InstalledJava(major); exec != "" {
		e.SetJavaExecutable(exec)
		return false, nil
	}

	fmt.Printf("│ %s\n", gchalk.Gray(fmt.Sprintf("[i] Java %d will be downloaded", major)))
	queued, err := e.EnqueueJava(ctx, major)
	if err != nil {
		return false, errors.Wrap(err, "could not look up java runtime")
	}
	if !queued {
		return false, errors.Wrapf(merrors.ErrNoRuntime, "no java %d runtime available for this platform", major)
	}
	return true, nil
}

// Java makes sure a runtime of the given major version is installed and returns its executable
func (l *Launcher) Java(ctx context.Context, major uint8) (string, error) {
	if major == 0 {
		major = java.DefaultMajor
	}
	queued, err := l.prepareJava(ctx, major)
	if err != nil {
		return "", err
	}
	if queued {
		spinner := NewMaybeSpinner(l.Interactive())
		spinner.Update(fmt.Sprintf("Downloading Java %d", major))
		spinner.Start()
		err := l.engine.Download(ctx)
		spinner.Stop()
		if err != nil {
			return "", err
		}
	}
	exec := l.engine.JavaExecutable()
	if exec == "" {
		return "", errors.Wrapf(merrors.ErrNoRuntime, "java %d was downloaded but could not be extracted", major)
	}
	return exec, nil
}
