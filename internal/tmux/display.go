package tmux

import (
	"github.com/atomicstack/stmux/internal/mux"
)

// DisplayMessage shows message on the invoking client's status line.
func (c *Client) DisplayMessage(message string) error {
	if id := c.CurrentClientID(); id != "" {
		_, err := c.command("display-message", "-c", id, message)
		return err
	}
	return c.exec("display-message", message)
}

func (c *Client) RefreshClient() error {
	if id := c.CurrentClientID(); id != "" {
		_, err := c.command("refresh-client", "-t", id)
		return err
	}
	return c.exec("refresh-client")
}

// DisplayPopup opens a popup running opts.Command and blocks until it
// closes.
func (c *Client) DisplayPopup(opts mux.PopupOptions) error {
	args := []string{"display-popup", "-E"}
	if id := c.CurrentClientID(); id != "" {
		args = append(args, "-c", id)
	}
	if opts.Title != "" {
		args = append(args, "-T", opts.Title)
	}
	if opts.Width != "" {
		args = append(args, "-w", opts.Width)
	}
	if opts.Height != "" {
		args = append(args, "-h", opts.Height)
	}
	args = append(args, opts.Command)
	return c.exec(args...)
}
