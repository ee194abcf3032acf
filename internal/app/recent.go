package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atomicstack/stmux/internal/topology"
)

func newRecentCommand(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recent-session",
		Aliases: []string{"recent"},
		Short:   "Move through recently used sessions",
	}
	rotate := func(use, short string, step func(string) (string, bool, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				current, err := d.currentSession()
				if err != nil {
					return err
				}
				name, ok, err := step(current)
				if err != nil || !ok {
					return err
				}
				return d.selectSession(cmd, name)
			},
		}
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print the recent list, most recent first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				names, err := d.recent.List()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			},
		},
		rotate("next", "Switch to the next older running session", d.recent.Next),
		rotate("previous", "Switch to the next newer running session", d.recent.Previous),
		&cobra.Command{
			Use:   "edit",
			Short: "Edit the recent list in a popup",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return d.edit("Recent sessions", d.cfg.RecentFile)
			},
		},
		&cobra.Command{
			Use:   "add [NAME]",
			Short: "Move a session to the front of the recent list",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := optionalArg(args)
				if name == "" {
					current, err := d.currentSession()
					if err != nil {
						return err
					}
					name = current
				}
				stored, err := d.engine.Store().Load()
				if err != nil {
					return err
				}
				var session *topology.Session
				if s, ok := stored[name]; ok {
					session = &s
				}
				_, err = d.recent.Add(session, name)
				return err
			},
		},
	)
	return cmd
}
