package errors

import (
	"fmt"
	"os/exec"
	"strings"
)

// TopologyInvalid reports a topology file that could not be parsed.
func TopologyInvalid(path string, err error) *Error {
	return Wrap(err, ErrCodeTopologyInvalid, fmt.Sprintf("failed to parse %s", path)).
		WithDetail("path", path)
}

// FileIO reports a failed read or write of a state file.
func FileIO(op, path string, err error) *Error {
	return Wrap(err, ErrCodeIO, fmt.Sprintf("failed to %s %s", op, path)).
		WithDetail("path", path).
		WithDetail("op", op)
}

// ConfigDir reports a config directory that cannot be resolved or created.
func ConfigDir(path string, err error) *Error {
	return Wrap(err, ErrCodeConfigDir, fmt.Sprintf("unable to prepare config directory %q", path)).
		WithDetail("path", path)
}

// MuxUnavailable reports that tmux could not be reached at all.
func MuxUnavailable(socket string, err error) *Error {
	return Wrap(err, ErrCodeMuxUnavailable, "unable to reach tmux").
		WithDetail("socket", socket)
}

// MuxCommand reports a tmux command that ran and failed.
func MuxCommand(args []string, err error) *Error {
	cmd := strings.Join(args, " ")
	e := Wrap(err, ErrCodeMuxCommand, fmt.Sprintf("tmux %s failed", cmd)).
		WithDetail("command", cmd)
	if exitErr, ok := err.(*exec.ExitError); ok {
		e = e.WithDetail("exitCode", exitErr.ExitCode())
	}
	return e
}

// InvalidInput reports a user-supplied value that cannot be used.
func InvalidInput(reason string) *Error {
	return New(ErrCodeInvalidInput, reason)
}
