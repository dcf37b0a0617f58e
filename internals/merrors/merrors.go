package merrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned if an artifact is missing locally. Downloading it fixes this
	ErrNotFound = errors.New("artifact not found")
	// ErrIntegrity is returned if a hash or size does not match the manifest
	ErrIntegrity = errors.New("integrity check failed")
	// ErrTransport is returned for connection problems and non-success responses
	ErrTransport = errors.New("transport error")
	// ErrFormat is returned if an expected archive entry or json field is missing
	ErrFormat = errors.New("unexpected format")
	// ErrNoRuntime is returned if no usable java runtime could be found or downloaded
	ErrNoRuntime = errors.New("no java runtime available")
)

// CliError is a error that might get displayed to the user
type CliError struct {
	Err         string
	Code        string
	Help        string
	Suggestions []string
}

func (e *CliError) Error() string {
	str := fmt.Sprintf("%s\n", e.Err)
	if e.Help != "" {
		str += "\n  Help: " + e.Help
	}
	return str
}
