package app

import (
	"fmt"

	"github.com/spf13/cobra"

	stmuxerrors "github.com/atomicstack/stmux/internal/errors"
	"github.com/atomicstack/stmux/internal/smartsplit"
)

func newWindowCommand(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Arrange panes in the current window",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "smart-split [right|left] NAME",
		Short: "Open, fold or report the pane standing in for a stored session",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before := false
			if len(args) == 2 {
				switch args[0] {
				case "right":
				case "left":
					before = true
				default:
					return stmuxerrors.InvalidInput(fmt.Sprintf("split side must be right or left, got %q", args[0]))
				}
				args = args[1:]
			}
			return d.smartSplit(cmd, args[0], before)
		},
	})
	return cmd
}

func (d *deps) smartSplit(cmd *cobra.Command, name string, before bool) error {
	stored, err := d.engine.Store().Load()
	if err != nil {
		return err
	}
	session, ok := stored[name]
	if !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "Session '%s' not found.\n", name)
		return nil
	}
	transition, err := d.splitter.Run(name, session, smartsplit.Options{Before: before})
	if err != nil {
		return err
	}
	if d.cfg.Verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, transition)
	}
	return nil
}
