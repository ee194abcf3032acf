package tmux

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/stmux/internal/mux"
)

func (c *Client) ListPanes(window string) ([]mux.PaneInfo, error) {
	out, err := c.command("list-panes", "-t", window, "-F", paneFormat)
	if err != nil {
		return nil, err
	}
	lines := splitLines(out)
	panes := make([]mux.PaneInfo, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, "\t", 5)
		if len(parts) < 4 {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		pane := mux.PaneInfo{
			Index:   idx,
			Path:    parts[1],
			Active:  strings.TrimSpace(parts[2]) == "1",
			Command: parts[3],
		}
		if len(parts) == 5 {
			pane.Tag = strings.TrimSpace(parts[4])
		}
		panes = append(panes, pane)
	}
	return panes, nil
}

// SplitWindow splits the target pane and returns the new pane's
// "session:window.pane" target.
func (c *Client) SplitWindow(opts mux.SplitOptions) (string, error) {
	if strings.TrimSpace(opts.Target) == "" {
		return "", fmt.Errorf("split target required")
	}
	args := []string{"split-window", "-P", "-F", newPaneFormat}
	if opts.Horizontal {
		args = append(args, "-h")
	}
	if opts.Before {
		args = append(args, "-b")
	}
	args = append(args, "-t", opts.Target)
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

// SendKeys types keys literally into target and presses Enter.
func (c *Client) SendKeys(target, keys string) error {
	if _, err := c.command("send-keys", "-t", target, "-l", keys); err != nil {
		return err
	}
	_, err := c.command("send-keys", "-t", target, "Enter")
	return err
}

func (c *Client) SwapPane(source, target string) error {
	if strings.TrimSpace(source) == "" || strings.TrimSpace(target) == "" {
		return fmt.Errorf("pane ids required")
	}
	_, err := c.command("swap-pane", "-d", "-s", source, "-t", target)
	return err
}

// JoinPane moves source next to target, side by side.
func (c *Client) JoinPane(source, target string) error {
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("pane source required")
	}
	_, err := c.command("join-pane", "-h", "-s", source, "-t", target)
	return err
}

func (c *Client) SetPaneOption(target, name, value string) error {
	_, err := c.command("set-option", "-p", "-t", target, name, value)
	return err
}
