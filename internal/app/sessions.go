package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atomicstack/stmux/internal/format/table"
	"github.com/atomicstack/stmux/internal/logging"
	"github.com/atomicstack/stmux/internal/topology"
)

func newSessionsCommand(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Work with every stored session",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "save [FILE]",
			Short: "Merge every running session into the sessions file",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				engine := d.engineFor(optionalArg(args))
				n, err := engine.SaveAll()
				if err != nil {
					return err
				}
				if d.cfg.Verbose {
					fmt.Fprintf(cmd.OutOrStdout(), "Stored %d sessions in %s\n", n, engine.Store().Path())
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "restore [FILE]",
			Short: "Recreate every stored session that is not running",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				engine := d.engineFor(optionalArg(args))
				restored, err := engine.RestoreAll()
				logging.Infof("restored %d sessions from %s", len(restored), engine.Store().Path())
				if d.cfg.Verbose && len(restored) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", strings.Join(restored, ", "))
				}
				return err
			},
		},
		newSessionsListCommand(d),
		&cobra.Command{
			Use:   "convert FILE",
			Short: "Rewrite an older sessions file into FILE",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := d.engine.Convert(args[0])
				if err != nil {
					return err
				}
				if d.cfg.Verbose {
					fmt.Fprintf(cmd.OutOrStdout(), "Converted %d sessions into %s\n", n, args[0])
				}
				return nil
			},
		},
	)
	return cmd
}

func newSessionsListCommand(d *deps) *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored session names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !long {
				names, err := d.engine.List()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			lines, err := d.sessionTable()
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "show windows, panes, running state and flags")
	return cmd
}

// sessionTable describes every stored session next to its running state.
func (d *deps) sessionTable() ([]string, error) {
	stored, err := d.engine.Store().Load()
	if err != nil {
		return nil, err
	}
	live, err := d.mux.ListSessions()
	if err != nil {
		return nil, err
	}
	running := make(map[string]bool, len(live))
	for _, name := range live {
		running[name] = true
	}
	columns := []table.Column{
		{Title: "NAME"},
		{Title: "WINDOWS", Align: table.AlignRight},
		{Title: "PANES", Align: table.AlignRight},
		{Title: "STATE"},
		{Title: "FLAGS"},
	}
	var rows [][]string
	for _, name := range topology.SortedNames(stored) {
		s := stored[name]
		panes := 0
		for _, w := range s.Windows {
			panes += len(w.Panes)
		}
		state := "stored"
		if running[name] {
			state = "running"
		}
		var flags []string
		if s.Background {
			flags = append(flags, "background")
		}
		if s.NoRecentTracking {
			flags = append(flags, "no-recent")
		}
		rows = append(rows, []string{name, strconv.Itoa(len(s.Windows)), strconv.Itoa(panes), state, strings.Join(flags, ",")})
	}
	return table.Render(columns, rows), nil
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
