package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/depotnotes/internal/cli/formatter"
	"github.com/alexanderramin/depotnotes/internal/repository"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved jobs",
	}
	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryShowCmd(app),
		newHistoryDeleteCmd(app),
	)
	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved jobs, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := app.History.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatJobList(jobs, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum jobs to list (0 uses the configured default)")
	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a saved job and its notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := app.History.Get(cmd.Context(), args[0])
			if err != nil {
				return historyError(args[0], err)
			}
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRaw(j.Notes))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatJobShow(j, app.now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print one unstyled depot string per line")
	return cmd
}

func newHistoryDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a saved job",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.History.Delete(cmd.Context(), args[0]); err != nil {
				return historyError(args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted job "+formatter.Bold(formatter.TruncID(args[0])))
			return nil
		},
	}
}

func historyError(id string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("job %q not found", id)
	case errors.Is(err, repository.ErrAmbiguous):
		return fmt.Errorf("job ID prefix %q is ambiguous", id)
	}
	return err
}
