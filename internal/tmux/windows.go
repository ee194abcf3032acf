package tmux

import (
	"fmt"
	"strconv"
	"strings"

	stmuxerrors "github.com/atomicstack/stmux/internal/errors"
	"github.com/atomicstack/stmux/internal/mux"
)

func (c *Client) ListWindows(session string) ([]mux.WindowInfo, error) {
	out, err := c.command("list-windows", "-t", session, "-F", windowFormat)
	if err != nil {
		return nil, err
	}
	lines := splitLines(out)
	windows := make([]mux.WindowInfo, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, "\t", 4)
		if len(parts) < 4 {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		windows = append(windows, mux.WindowInfo{
			Index:  idx,
			Name:   parts[1],
			Layout: parts[2],
			Active: strings.TrimSpace(parts[3]) == "1",
		})
	}
	return windows, nil
}

// NewWindow creates a window and returns its "session:index" target. A
// target naming only a session appends the window at the next free index.
func (c *Client) NewWindow(opts mux.NewWindowOptions) (string, error) {
	target := strings.TrimSpace(opts.Target)
	if target == "" {
		return "", fmt.Errorf("window target required")
	}
	if !strings.Contains(target, ":") {
		target += ":"
	}
	args := []string{"new-window", "-P", "-F", newWindowFormat}
	if opts.Detached {
		args = append(args, "-d")
	}
	args = append(args, "-t", target)
	if opts.Name != "" {
		args = append(args, "-n", opts.Name)
	}
	if opts.Dir != "" {
		args = append(args, "-c", opts.Dir)
	}
	args = append(args, mux.EnvArgs(opts.Env)...)
	if opts.Command != "" {
		args = append(args, opts.Command)
	}
	out, err := c.command(args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *Client) SelectWindow(target string) error {
	conn, err := c.connect()
	if err != nil {
		return err
	}
	if err := conn.SelectWindow(target); err != nil {
		return stmuxerrors.MuxCommand([]string{"select-window", "-t", target}, err)
	}
	return nil
}

func (c *Client) SelectLayout(target, layout string) error {
	if strings.TrimSpace(layout) == "" {
		return fmt.Errorf("layout required")
	}
	_, err := c.command("select-layout", "-t", target, layout)
	return err
}

func (c *Client) RenameWindow(target, name string) error {
	_, err := c.command("rename-window", "-t", target, name)
	return err
}
