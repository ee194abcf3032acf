package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/atomicstack/stmux/internal/bookmarks"
	"github.com/atomicstack/stmux/internal/logging"
	"github.com/atomicstack/stmux/internal/logging/events"
	"github.com/atomicstack/stmux/internal/mux"
	"github.com/atomicstack/stmux/internal/namelist"
	"github.com/atomicstack/stmux/internal/picker"
	"github.com/atomicstack/stmux/internal/recent"
	"github.com/atomicstack/stmux/internal/smartsplit"
	"github.com/atomicstack/stmux/internal/status"
	"github.com/atomicstack/stmux/internal/tmux"
	"github.com/atomicstack/stmux/internal/topology"
	"github.com/atomicstack/stmux/internal/workspace"
)

// Config describes user-provided application options.
type Config struct {
	SocketPath    string
	SessionsFile  string
	RecentFile    string
	BookmarksFile string
	SettleDelay   time.Duration
	LayoutTimeout time.Duration
	Finder        string
	Editor        string
	Verbose       bool
}

// Run connects to tmux and executes the command named by args.
func Run(ctx context.Context, cfg Config, args []string) error {
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	client := tmux.New(socketPath)
	defer func() {
		if err := client.Close(); err != nil {
			logging.Error(err)
		}
	}()
	root := newRootCommand(newDeps(cfg, client))
	root.SetArgs(args)
	err = root.ExecuteContext(ctx)
	events.App.Error(err)
	return err
}

// deps holds the components a command invocation works with.
type deps struct {
	cfg          Config
	mux          mux.Multiplexer
	engine       *workspace.Engine
	recentList   namelist.Store
	recent       *recent.Rotation
	bookmarkList namelist.Store
	bookmarks    *bookmarks.Bookmarks
	splitter     *smartsplit.Splitter
	picker       *picker.Picker
}

func newDeps(cfg Config, m mux.Multiplexer) *deps {
	d := &deps{cfg: cfg, mux: m}
	d.engine = d.engineFor(cfg.SessionsFile)
	d.recentList = namelist.NewFile(cfg.RecentFile)
	d.recent = recent.New(m, d.recentList)
	d.bookmarkList = namelist.NewFile(cfg.BookmarksFile)
	d.bookmarks = bookmarks.New(d.bookmarkList)
	d.splitter = smartsplit.New(m)
	d.picker = picker.New(m, picker.Options{Finder: cfg.Finder})
	return d
}

// engineFor returns an engine over path, or the configured sessions file
// when path is empty.
func (d *deps) engineFor(path string) *workspace.Engine {
	if path == "" {
		if d.engine != nil {
			return d.engine
		}
		path = d.cfg.SessionsFile
	}
	return workspace.New(d.mux, topology.NewStore(path), workspace.Options{
		SettleDelay:   d.cfg.SettleDelay,
		LayoutTimeout: d.cfg.LayoutTimeout,
	})
}

// newRootCommand builds the stmux command tree. Global flags are parsed by
// the config package before the command words reach cobra.
func newRootCommand(d *deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "stmux",
		Short:         "Save, restore and switch tmux sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			events.App.Command(cmd.CommandPath(), args)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(
		newConfigCommand(d),
		newSessionCommand(d),
		newSessionsCommand(d),
		newRecentCommand(d),
		newBookmarkCommand(d),
		newWindowCommand(d),
		newStatusCommand(d),
	)
	return root
}

// selectSession switches to name, restoring it when needed, and reports a
// missing name on stderr.
func (d *deps) selectSession(cmd *cobra.Command, name string) error {
	sel, err := d.engine.Select(name)
	if err != nil {
		return err
	}
	if !sel.Found {
		fmt.Fprintf(cmd.ErrOrStderr(), "Session '%s' not found.\n", name)
		return nil
	}
	if sel.Empty {
		fmt.Fprintf(cmd.ErrOrStderr(), "Session '%s' has no windows to restore.\n", name)
		return nil
	}
	if d.cfg.Verbose {
		switch {
		case sel.Background:
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s in the background\n", name)
		case sel.Live:
			fmt.Fprintf(cmd.OutOrStdout(), "Switched to %s\n", name)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "Restored and switched to %s\n", name)
		}
	}
	return nil
}

// currentSession names the session of the invoking pane.
func (d *deps) currentSession() (string, error) {
	loc, err := d.mux.Current()
	if err != nil {
		return "", err
	}
	return loc.Session, nil
}

// refreshStatus rewrites status-left; failures are logged only.
func (d *deps) refreshStatus() {
	if err := status.Apply(d.mux, d.bookmarkList); err != nil {
		logging.Warnf("status refresh failed: %v", err)
	}
}

// edit opens path in the configured editor inside a popup.
func (d *deps) edit(title, path string) error {
	command := fmt.Sprintf("%s %s", d.cfg.Editor, picker.ShellQuote(path))
	return d.mux.DisplayPopup(mux.PopupOptions{
		Title:   title,
		Command: command,
		Width:   "80%",
		Height:  "80%",
	})
}

func newStatusCommand(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Render bookmarks and windows into status-left",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return status.Apply(d.mux, d.bookmarkList)
		},
	}
}

func newConfigCommand(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	printCmd := &cobra.Command{
		Use:   "print",
		Short: "Print the path of a state file",
	}
	files := []struct {
		name string
		path string
	}{
		{"sessions", d.cfg.SessionsFile},
		{"recent-sessions", d.cfg.RecentFile},
		{"bookmarks", d.cfg.BookmarksFile},
	}
	for _, f := range files {
		path := f.path
		printCmd.AddCommand(&cobra.Command{
			Use:  f.name,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		})
	}
	cmd.AddCommand(printCmd)
	return cmd
}
