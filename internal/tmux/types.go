package tmux

import (
	"net"
	"os/exec"
	"time"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

const (
	sessionFormat = "#{session_name}"
	windowFormat  = "#{window_index}\t#{window_name}\t#{window_layout}\t#{window_active}"
	paneFormat    = "#{pane_index}\t#{pane_current_path}\t#{pane_active}\t#{pane_current_command}\t#{@window-name}"
	currentFormat = "#{session_name}\t#{window_index}\t#{window_name}\t#{pane_index}"

	newWindowFormat = "#{session_name}:#{window_index}"
	newPaneFormat   = "#{session_name}:#{window_index}.#{pane_index}"
)

var (
	newTmux = func(socketPath string) (tmuxClient, error) {
		if socketPath != "" {
			return gotmux.NewTmux(socketPath)
		}
		return gotmux.DefaultTmux()
	}

	runExecCommand = func(name string, args ...string) commander {
		return realCommander{cmd: exec.Command(name, args...)}
	}

	// serverRunning reports whether a tmux server listens on socketPath.
	serverRunning = func(socketPath string) bool {
		if socketPath == "" {
			return true
		}
		conn, err := net.DialTimeout("unix", socketPath, time.Second)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}
)

// tmuxClient is the part of the gotmuxcc control-mode client stmux uses.
type tmuxClient interface {
	Command(parts ...string) (string, error)
	DisplayMessage(target, format string) (string, error)
	ListSessionsFormat(format string) ([]string, error)
	SwitchClient(*gotmux.SwitchClientOptions) error
	SelectWindow(target string) error
	Close() error
}

type commander interface {
	Run() error
	Output() ([]byte, error)
}

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Run() error {
	return r.cmd.Run()
}

func (r realCommander) Output() ([]byte, error) {
	return r.cmd.Output()
}
