package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"daytodo/internal/board"
)

func newAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <day> <text...>",
		Short: "Add a task to a day",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			a, err := openApp(opts, quiet)
			if err != nil {
				return err
			}
			defer a.Close()
			err = a.board.AddTask(day, text)
			if errors.Is(err, board.ErrBlankTask) {
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s day %d #%d %s\n", goodStyle.Render("added"), day, a.board.Count(day), text)
			return nil
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list [day]",
		Short: "List tasks for one day, or every day with tasks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, quiet)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				day, err := parseDay(args[0])
				if err != nil {
					return err
				}
				printDay(out, day, a.board.Tasks(day))
				return nil
			}
			days := a.board.Days()
			if len(days) == 0 {
				fmt.Fprintln(out, mutedStyle.Render("No tasks yet."))
				return nil
			}
			for i, day := range days {
				if i > 0 {
					fmt.Fprintln(out)
				}
				printDay(out, day, a.board.Tasks(day))
			}
			return nil
		},
	}
}

func newToggleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <day> <n>",
		Short: "Flip completion of task n on a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			idx, err := parseOrdinal(args[1])
			if err != nil {
				return err
			}
			a, err := openApp(opts, quiet)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.board.ToggleTask(day, idx); err != nil {
				return err
			}
			t := a.board.Tasks(day)[idx]
			state := "reopened"
			if t.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s day %d #%d %s\n", goodStyle.Render(state), day, idx+1, t.Text)
			return nil
		},
	}
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <day> <n>",
		Aliases: []string{"rm"},
		Short:   "Delete task n from a day",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			idx, err := parseOrdinal(args[1])
			if err != nil {
				return err
			}
			a, err := openApp(opts, quiet)
			if err != nil {
				return err
			}
			defer a.Close()
			tasks := a.board.Tasks(day)
			if err := a.board.DeleteTask(day, idx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s day %d #%d %s\n", goodStyle.Render("deleted"), day, idx+1, tasks[idx].Text)
			return nil
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the stored snapshot as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, quiet)
			if err != nil {
				return err
			}
			defer a.Close()
			data, err := board.Encode(a.board.Snapshot())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func printDay(w io.Writer, day int, tasks []board.Task) {
	fmt.Fprintln(w, dayStyle.Render(fmt.Sprintf("Day %d", day)))
	if len(tasks) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  no tasks"))
		return
	}
	for i, t := range tasks {
		mark, text := "[ ]", t.Text
		if t.Completed {
			mark, text = "[x]", doneStyle.Render(t.Text)
		}
		fmt.Fprintf(w, "  %d. %s %s\n", i+1, mark, text)
	}
}
