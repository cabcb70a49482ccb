package main

import (
	"errors"
	"fmt"
	"strings"

	"brainstormer-hq/distill/pkg/cli"
	"brainstormer-hq/distill/pkg/runninglist"

	"github.com/spf13/cobra"
)

const runningListTitle = "Running List"

var listFlags struct {
	format string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Manage the running list of action items",
	Long: `Manage the running list: action items kept across plans.

The list is stored under runninglist.storage_key in the configured backend
(SQLite at runninglist.sqlite_path by default).

Examples:
  distill list show
  distill list add "Call mom"
  distill list toggle 1a2b3c4d5
  distill list remove 1a2b3c4d5
  distill list clear`,
}

var listShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the running list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cli.ParseOutputFormat(listFlags.format)
		if err != nil {
			return err
		}
		return withList(cmd, func(list *runninglist.List) error {
			return cli.NewFormatter(format).FormatItems(cmd.OutOrStdout(), runningListTitle, list.Items())
		})
	},
}

var listAddCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Append an item",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withList(cmd, func(list *runninglist.List) error {
			item, err := list.Add(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %s: %s\n", item.ID, item.Text)
			return nil
		})
	},
}

var listToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip an item between open and completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withList(cmd, func(list *runninglist.List) error {
			item, err := list.Toggle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "open"
			if item.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s marked %s\n", item.ID, state)
			return nil
		})
	},
}

var listRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an item",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withList(cmd, func(list *runninglist.List) error {
			if err := list.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %s\n", args[0])
			return nil
		})
	},
}

var listClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every item",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withList(cmd, func(list *runninglist.List) error {
			n := list.Len()
			if err := list.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared %d items\n", n)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listShowCmd, listAddCmd, listToggleCmd, listRemoveCmd, listClearCmd)

	listShowCmd.Flags().StringVarP(&listFlags.format, "format", "o", "text", "output format (text, json, markdown, html)")
}

// withList opens the configured store, loads the list, runs fn and closes
// the store.
func withList(cmd *cobra.Command, fn func(*runninglist.List) error) error {
	setupClientLogging(cmd.ErrOrStderr())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := runninglist.Open(cfg.RunningList)
	if err != nil {
		return cli.NewCommandError("list", err)
	}
	defer store.Close()

	if err := fn(runninglist.NewList(cmd.Context(), store)); err != nil {
		if errors.Is(err, runninglist.ErrItemNotFound) || errors.Is(err, runninglist.ErrEmptyText) {
			return err
		}
		return cli.NewCommandError("list "+cmd.Name(), err)
	}
	return nil
}
