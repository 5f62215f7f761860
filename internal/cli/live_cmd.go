package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/depotnotes/internal/dataset"
	"github.com/alexanderramin/depotnotes/internal/rules"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var errNoDataDir = errors.New("no data directory: set DEPOTNOTES_DATA or run from a directory with ./data")

func newLiveCmd(app *App) *cobra.Command {
	var sel selectionFlags
	var watch bool

	cmd := &cobra.Command{
		Use:   "live",
		Short: "Toggle selections and watch the notes update",
		Long: `Opens a full-screen view listing the component transitions and site
flags. Every change recomputes all sections. With --watch, edits to the
data directory are picked up while the view is open.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := sel.request()
			if err != nil {
				return err
			}
			if watch && app.DataDir == "" {
				return errNoDataDir
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			g, ctx := errgroup.WithContext(ctx)

			var updates <-chan *rules.Bundle
			if watch {
				w, err := dataset.NewWatcher(app.DataDir, app.WatchDebounce, app.logger())
				if err != nil {
					return fmt.Errorf("watching %s: %w", app.DataDir, err)
				}
				updates = w.Updates()
				g.Go(func() error { return w.Run(ctx) })
			}

			g.Go(func() error {
				defer cancel()
				p := tea.NewProgram(
					newLiveModel(ctx, app, seed, updates),
					tea.WithAltScreen(),
					tea.WithContext(ctx),
					tea.WithInput(cmd.InOrStdin()),
					tea.WithOutput(cmd.OutOrStdout()),
				)
				_, err := p.Run()
				if errors.Is(err, tea.ErrProgramKilled) {
					return nil
				}
				return err
			})
			return g.Wait()
		},
	}

	sel.register(cmd.Flags())
	cmd.Flags().BoolVar(&watch, "watch", false, "reload rule data when the data directory changes")
	return cmd
}
