package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"

	stmuxerrors "github.com/atomicstack/stmux/internal/errors"
	"github.com/atomicstack/stmux/internal/mux"
)

// ListSessions returns the running session names; without a server there
// are none.
func (c *Client) ListSessions() ([]string, error) {
	if c.serverDown() {
		return nil, nil
	}
	conn, err := c.connect()
	if err != nil {
		return nil, err
	}
	lines, err := conn.ListSessionsFormat(sessionFormat)
	if err != nil {
		return nil, stmuxerrors.MuxCommand([]string{"list-sessions", "-F", sessionFormat}, err)
	}
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// HasSession reports whether a session is named exactly name.
func (c *Client) HasSession(name string) (bool, error) {
	names, err := c.ListSessions()
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) NewSession(opts mux.NewSessionOptions) error {
	if strings.TrimSpace(opts.Name) == "" {
		return fmt.Errorf("session name required")
	}
	args := []string{"new-session", "-d", "-s", opts.Name}
	if opts.WindowName != "" {
		args = append(args, "-n", opts.WindowName)
	}
	if opts.Dir != "" {
		args = append(args, "-c", opts.Dir)
	}
	args = append(args, mux.EnvArgs(opts.Env)...)
	if opts.Command != "" {
		args = append(args, opts.Command)
	}
	if c.serverDown() {
		// a control-mode client cannot start the server; tmux does so itself
		return c.exec(args...)
	}
	_, err := c.command(args...)
	return err
}

func (c *Client) SetSessionOption(session, name, value string) error {
	_, err := c.command("set-option", "-t", session, name, value)
	return err
}

func (c *Client) SetGlobalOption(name, value string) error {
	_, err := c.command("set-option", "-g", name, value)
	return err
}

// SwitchClient moves the invoking client to session.
func (c *Client) SwitchClient(session string) error {
	conn, err := c.connect()
	if err != nil {
		return err
	}
	opts := &gotmux.SwitchClientOptions{TargetSession: session}
	if id := c.CurrentClientID(); id != "" {
		opts.TargetClient = id
	}
	if err := conn.SwitchClient(opts); err != nil {
		return stmuxerrors.MuxCommand([]string{"switch-client", "-t", session}, err)
	}
	return nil
}

// ResolveSocketPath picks the tmux socket: the flag, then STMUX_SOCKET, then
// the socket of the enclosing tmux, then tmux's default location.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("STMUX_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}
