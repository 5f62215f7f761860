package cli

import (
	"fmt"

	"github.com/alexanderramin/depotnotes/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSectionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sections [NAME]",
		Short: "List catalog sections, or the codes offered for one section",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := app.Dataset.Catalog()
			if len(args) == 0 {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(cat))
				return nil
			}

			name := args[0]
			entries := app.Dataset.Checklist(name)
			if len(entries) == 0 {
				// Raw catalog headings that no output section maps to.
				entries = cat.Entries(name)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChecklist(name, entries))
			return nil
		},
	}
}
