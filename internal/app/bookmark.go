package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	stmuxerrors "github.com/atomicstack/stmux/internal/errors"
	"github.com/atomicstack/stmux/internal/mux"
)

func newBookmarkCommand(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmark",
		Short: "Numbered shortcuts to sessions",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print the numbered bookmarks",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				lines, err := d.bookmarks.Lines()
				if err != nil {
					return err
				}
				for _, line := range lines {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "set",
			Short: "Bookmark the current session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				name, err := d.currentSession()
				if err != nil {
					return err
				}
				added, err := d.bookmarks.Set(name)
				if err != nil {
					return err
				}
				if added {
					d.refreshStatus()
				}
				return nil
			},
		},
		newBookmarkSelectCommand(d),
		&cobra.Command{
			Use:   "edit",
			Short: "Edit the bookmarks in a popup",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := d.edit("Bookmarks", d.cfg.BookmarksFile); err != nil {
					return err
				}
				d.refreshStatus()
				return nil
			},
		},
	)
	return cmd
}

func newBookmarkSelectCommand(d *deps) *cobra.Command {
	var smartFocus int
	cmd := &cobra.Command{
		Use:   "select INDEX",
		Short: "Switch to the bookmarked session at INDEX (1-based)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return stmuxerrors.InvalidInput(fmt.Sprintf("bookmark index %q is not a number", args[0]))
			}
			name, ok, err := d.bookmarks.Select(index)
			if err != nil || !ok {
				return err
			}
			current, err := d.currentSession()
			if err != nil {
				return err
			}
			if name == current {
				if cmd.Flags().Changed("smart-focus") {
					return d.mux.SelectWindow(mux.WindowTarget(name, smartFocus))
				}
				return nil
			}
			return d.selectSession(cmd, name)
		},
	}
	cmd.Flags().IntVar(&smartFocus, "smart-focus", 0, "window to select when the bookmark is the current session")
	return cmd
}
