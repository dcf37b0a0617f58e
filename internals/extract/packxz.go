package extract

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const maxLineSize = 1024 * 1024

// PackXZ decompresses all given .pack.xz files with a single run of the helper jar.
// Output of the helper is logged line by line.
func PackXZ(ctx context.Context, javaExec string, helperJar string, paths []string, log logrus.FieldLogger) error {
	if len(paths) == 0 {
		return nil
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("component", "PackXZExtract")
	log.WithField("files", len(paths)).Info("starting")

	cmd := exec.CommandContext(ctx, javaExec, "-jar", helperJar, "-packxz", strings.Join(paths, ","))
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "could not start pack.xz helper")
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go logLines(&wg, stdout, log)
	go logLines(&wg, stderr, log)
	wg.Wait()

	err = cmd.Wait()
	log.WithField("code", cmd.ProcessState.ExitCode()).Info("exited")
	if err != nil {
		return errors.Wrap(err, "pack.xz helper failed")
	}
	return nil
}

// logLines logs r line by line. The rest of r is drained if a line does not fit the
// scanner buffer so the helper never blocks on a full pipe.
func logLines(wg *sync.WaitGroup, r io.Reader, log logrus.FieldLogger) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		log.Info(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		log.WithError(err).Warn("output not logged")
		io.Copy(io.Discard, r)
	}
}
