package tmux

import (
	"os"
	"strconv"
	"strings"
	"sync"

	stmuxerrors "github.com/atomicstack/stmux/internal/errors"
	"github.com/atomicstack/stmux/internal/mux"
)

// Client implements mux.Multiplexer against a tmux server. The control-mode
// connection is opened on first use.
type Client struct {
	socket string

	mu       sync.Mutex
	conn     tmuxClient
	clientID *string
}

var _ mux.Multiplexer = (*Client)(nil)

func New(socketPath string) *Client {
	return &Client{socket: socketPath}
}

func (c *Client) Socket() string { return c.socket }

func (c *Client) connect() (tmuxClient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return c.conn, nil
	}
	conn, err := newTmux(c.socket)
	if err != nil {
		return nil, stmuxerrors.MuxUnavailable(c.socket, err)
	}
	c.conn = conn
	return conn, nil
}

// serverDown reports that no connection is open and no server listens on
// the socket yet.
func (c *Client) serverDown() bool {
	c.mu.Lock()
	open := c.conn != nil
	c.mu.Unlock()
	return !open && !serverRunning(c.socket)
}

// Close shuts the control-mode connection if one was opened.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// CurrentClientID detects the client that launched stmux so client-facing
// commands target the visible tmux client instead of the control-mode
// connection. It is empty when stmux runs outside tmux.
func (c *Client) CurrentClientID() string {
	c.mu.Lock()
	cached := c.clientID
	c.mu.Unlock()
	if cached != nil {
		return *cached
	}
	id := ""
	if target := strings.TrimSpace(os.Getenv("TMUX_PANE")); target != "" {
		if conn, err := c.connect(); err == nil {
			if name, err := conn.DisplayMessage(target, "#{client_name}"); err == nil {
				id = strings.TrimSpace(name)
			}
		}
	}
	c.mu.Lock()
	c.clientID = &id
	c.mu.Unlock()
	return id
}

// Current reports the session, window and pane of the invoking pane.
func (c *Client) Current() (mux.Location, error) {
	conn, err := c.connect()
	if err != nil {
		return mux.Location{}, err
	}
	target := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	out, err := conn.DisplayMessage(target, currentFormat)
	if err != nil {
		return mux.Location{}, stmuxerrors.MuxCommand([]string{"display-message", "-p", currentFormat}, err)
	}
	return parseLocation(out)
}

func parseLocation(out string) (mux.Location, error) {
	parts := strings.Split(strings.TrimSpace(out), "\t")
	if len(parts) != 4 || parts[0] == "" {
		return mux.Location{}, stmuxerrors.New(stmuxerrors.ErrCodeMuxCommand, "unexpected display-message reply").
			WithDetail("reply", out)
	}
	window, err := strconv.Atoi(parts[1])
	if err != nil {
		return mux.Location{}, stmuxerrors.Wrap(err, stmuxerrors.ErrCodeMuxCommand, "bad window index")
	}
	pane, err := strconv.Atoi(parts[3])
	if err != nil {
		return mux.Location{}, stmuxerrors.Wrap(err, stmuxerrors.ErrCodeMuxCommand, "bad pane index")
	}
	return mux.Location{Session: parts[0], Window: window, WindowName: parts[2], Pane: pane}, nil
}
