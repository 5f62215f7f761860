package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/depotnotes/internal/cli/formatter"
	"github.com/alexanderramin/depotnotes/internal/contract"
	"github.com/alexanderramin/depotnotes/internal/dataset"
	"github.com/alexanderramin/depotnotes/internal/rules"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newWatchCmd(app *App) *cobra.Command {
	var sel selectionFlags
	var raw bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reprint the notes for one job whenever the rule data changes",
		Long: `Generates notes for the given selections, then regenerates and prints
them again every time a file in the data directory changes. Useful while
editing rules. Stops on Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := sel.request()
			if err != nil {
				return err
			}
			if app.DataDir == "" {
				return errNoDataDir
			}

			w, err := dataset.NewWatcher(app.DataDir, app.WatchDebounce, app.logger())
			if err != nil {
				return fmt.Errorf("watching %s: %w", app.DataDir, err)
			}

			if err := printWatchRound(cmd, app, req, raw); err != nil {
				return err
			}
			files := dataset.Paths(app.DataDir)
			fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim(fmt.Sprintf("watching %d data file(s) in %s", len(files), app.DataDir)))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error { return w.Run(ctx) })
			g.Go(func() error { return regenerateOnUpdate(ctx, cmd, app, req, raw, w.Updates()) })
			return g.Wait()
		},
	}

	sel.register(cmd.Flags())
	cmd.Flags().BoolVar(&raw, "raw", false, "print one unstyled depot string per line")
	return cmd
}

// regenerateOnUpdate swaps in each reloaded bundle and prints the notes
// again, until the updates channel closes.
func regenerateOnUpdate(ctx context.Context, cmd *cobra.Command, app *App, req contract.NotesRequest, raw bool, updates <-chan *rules.Bundle) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case b, ok := <-updates:
			if !ok {
				return nil
			}
			app.Dataset.Swap(b)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("── reloaded "+app.now().Format("15:04:05")+" ──"))
			if err := printWatchRound(cmd, app, req, raw); err != nil {
				return err
			}
		}
	}
}

func printWatchRound(cmd *cobra.Command, app *App, req contract.NotesRequest, raw bool) error {
	resp, err := app.Notes.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}
	if findings := app.Dataset.Lint(); len(findings) > 0 {
		fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatLint(app.Dataset.Source(), findings))
	}
	return writeNotes(cmd, resp, false, raw)
}
