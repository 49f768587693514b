package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

// -------------- subcommand impls ----------------

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new item (text can be multiple words)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := a.todos.Add(strings.Join(args, " ")); !ok {
				return usagef("add: empty title")
			}
			if err := a.saved(); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "added")
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ui.Panel(cmd.OutOrStdout(), listLines(a.todos.Items(), group))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func (a *app) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle done for the item at a 1-based index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := a.resolve("done", args[0])
			if err != nil {
				return err
			}
			a.todos.ToggleComplete(it.ID)
			if err := a.saved(); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "toggled")
			return nil
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove the item at a 1-based index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := a.resolve("rm", args[0])
			if err != nil {
				return err
			}
			a.todos.Remove(it.ID)
			if err := a.saved(); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
}

func (a *app) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index> <text...>",
		Short: "Replace the text of the item at a 1-based index",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := a.resolve("edit", args[0])
			if err != nil {
				return err
			}
			a.todos.BeginEdit(it.ID)
			a.todos.UpdateEditText(strings.Join(args[1:], " "))
			if !a.todos.CommitEdit() {
				return usagef("edit: empty title")
			}
			if err := a.saved(); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "edited")
			return nil
		},
	}
}

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit the list interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := tui.Run(a.todos); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return a.saved()
		},
	}
}

// resolve maps a 1-based index as printed by ls to an item.
func (a *app) resolve(cmdName, arg string) (model.Item, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return model.Item{}, usagef("%s: not a number: %s", cmdName, arg)
	}
	items := a.todos.Items()
	if n < 1 || n > len(items) {
		ui.Hint(a.opt.Stderr, "Hint: run `todo ls` to see valid indexes")
		return model.Item{}, usagef("index out of range: have %d, got %d", len(items), n)
	}
	return items[n-1], nil
}

// saved reports the last write failure of the store, if any.
func (a *app) saved() error {
	if err := a.todos.Err(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
