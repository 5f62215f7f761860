package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/depotnotes/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings CLI commands run against.
type App struct {
	Notes   service.NoteService
	History service.HistoryService
	Dataset service.DatasetService

	// DataDir is the on-disk data directory; empty when running on the
	// embedded dataset.
	DataDir       string
	WatchDebounce time.Duration
	Logger        *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// Now is overridable for tests. Nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// NewRootCmd creates the top-level "depotnotes" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "depotnotes",
		Short: "Depot notes from heating system changes and site conditions",
		Long: `depotnotes turns the boiler, cylinder and flue changes on a job, plus
site flags and ticked checklist codes, into the semicolon-delimited depot
notes written into job paperwork.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(app),
		newLiveCmd(app),
		newWatchCmd(app),
		newSectionsCmd(app),
		newRulesCmd(app),
		newHistoryCmd(app),
	)

	return root
}
