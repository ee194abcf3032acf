package tmux

import (
	"strings"

	stmuxerrors "github.com/atomicstack/stmux/internal/errors"
)

func baseArgs(socketPath string) []string {
	if strings.TrimSpace(socketPath) == "" {
		return []string{}
	}
	return []string{"-S", socketPath}
}

// command runs a tmux command over the control-mode connection.
func (c *Client) command(args ...string) (string, error) {
	conn, err := c.connect()
	if err != nil {
		return "", err
	}
	out, err := conn.Command(args...)
	if err != nil {
		return "", stmuxerrors.MuxCommand(args, err)
	}
	return out, nil
}

// exec runs tmux as a child process. It is used for commands that must
// act on the user's client and wait for it, such as popups.
func (c *Client) exec(args ...string) error {
	full := append(baseArgs(c.socket), args...)
	if err := runExecCommand("tmux", full...).Run(); err != nil {
		return stmuxerrors.MuxCommand(args, err)
	}
	return nil
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
