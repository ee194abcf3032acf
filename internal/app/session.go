package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atomicstack/stmux/internal/logging"
	"github.com/atomicstack/stmux/internal/topology"
	"github.com/atomicstack/stmux/internal/workspace"
)

const noOtherSessions = "No other sessions found."

func newSessionCommand(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Work with a single session",
	}
	cmd.AddCommand(
		newSessionFindCommand(d),
		newSessionFindAllCommand(d),
		newSessionSelectCommand(d),
		newSessionSaveCommand(d),
		newSessionDeleteCommand(d),
		newSessionUpdateCommand(d),
	)
	return cmd
}

func newSessionFindCommand(d *deps) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Pick one of the other running sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := d.otherLiveSessions()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				return d.findAll(cmd, false, query)
			}
			name, ok, err := d.picker.Pick(cmd.Context(), "Sessions", names, query)
			if err != nil || !ok {
				return err
			}
			return d.selectSession(cmd, name)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "narrow the candidates before showing the picker")
	return cmd
}

func newSessionFindAllCommand(d *deps) *cobra.Command {
	var (
		split bool
		query string
	)
	cmd := &cobra.Command{
		Use:   "find-all",
		Short: "Pick from recent, running and stored sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.findAll(cmd, split, query)
		},
	}
	cmd.Flags().BoolVar(&split, "split", false, "open the chosen session with smart-split instead of switching")
	cmd.Flags().StringVarP(&query, "query", "q", "", "narrow the candidates before showing the picker")
	return cmd
}

func (d *deps) otherLiveSessions() ([]string, error) {
	current, err := d.currentSession()
	if err != nil {
		return nil, err
	}
	live, err := d.mux.ListSessions()
	if err != nil {
		return nil, err
	}
	others := make([]string, 0, len(live))
	for _, name := range live {
		if name != current {
			others = append(others, name)
		}
	}
	return others, nil
}

func (d *deps) findAll(cmd *cobra.Command, split bool, query string) error {
	names, err := d.allSessionNames()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		if err := d.mux.DisplayMessage(noOtherSessions); err != nil {
			logging.Warnf("display-message failed: %v", err)
		}
		return nil
	}
	title := "All Sessions"
	if split {
		title += " (split)"
	}
	name, ok, err := d.picker.Pick(cmd.Context(), title, names, query)
	if err != nil || !ok {
		return err
	}
	if split {
		return d.smartSplit(cmd, name, false)
	}
	return d.selectSession(cmd, name)
}

// allSessionNames lists recent names first, then every other running or
// stored name in case-insensitive order, without the current session.
func (d *deps) allSessionNames() ([]string, error) {
	stored, err := d.engine.List()
	if err != nil {
		return nil, err
	}
	live, err := d.mux.ListSessions()
	if err != nil {
		return nil, err
	}
	recentNames, err := d.recent.List()
	if err != nil {
		return nil, err
	}
	current, err := d.currentSession()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var union []string
	for _, name := range append(live, stored...) {
		if !seen[name] {
			seen[name] = true
			union = append(union, name)
		}
	}
	topology.SortNames(union)

	inRecent := make(map[string]bool, len(recentNames))
	for _, name := range recentNames {
		inRecent[name] = true
	}
	var names []string
	for _, name := range recentNames {
		if name != current {
			names = append(names, name)
		}
	}
	for _, name := range union {
		if !inRecent[name] && name != current {
			names = append(names, name)
		}
	}
	return names, nil
}

func newSessionSelectCommand(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "select NAME",
		Short: "Switch to a session, restoring it when it is not running",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.selectSession(cmd, args[0])
		},
	}
}

func newSessionSaveCommand(d *deps) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Store the topology of the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := d.currentSession()
			if err != nil {
				return err
			}
			saved, err := d.engine.SaveSession(name, force)
			if err != nil {
				return err
			}
			if !saved {
				fmt.Fprintf(cmd.ErrOrStderr(), "Session '%s' is already stored; use --force to replace it.\n", name)
				return nil
			}
			if d.cfg.Verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing stored entry")
	return cmd
}

func newSessionDeleteCommand(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Remove a stored session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			removed, err := d.engine.Delete(name)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.ErrOrStderr(), "Session '%s' not found.\n", name)
				return nil
			}
			if d.cfg.Verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", name)
			}
			return nil
		},
	}
}

func newSessionUpdateCommand(d *deps) *cobra.Command {
	var (
		opts           workspace.UpdateOptions
		startupCommand string
		shellCommand   string
	)
	cmd := &cobra.Command{
		Use:   "update NAME",
		Short: "Change stored settings of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if cmd.Flags().Changed("startup-command") {
				opts.StartupCommand = &startupCommand
			}
			if cmd.Flags().Changed("shell-command") {
				opts.ShellCommand = &shellCommand
			}
			found, err := d.engine.Update(name, opts)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.ErrOrStderr(), "Session '%s' not found.\n", name)
				return nil
			}
			if d.cfg.Verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", name)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&opts.Background, "background", false, "restore without switching to it")
	flags.BoolVar(&opts.NoRecentTracking, "no-recent-tracking", false, "keep the session out of the recent list")
	flags.BoolVar(&opts.WindowActive, "window-active", false, "mark the current window as the active one")
	flags.BoolVar(&opts.PaneActive, "pane-active", false, "mark the current pane as active in its window")
	flags.StringVar(&startupCommand, "startup-command", "", "command the current pane is started with")
	flags.StringVar(&shellCommand, "shell-command", "", "command typed into the current pane after it starts")
	return cmd
}
