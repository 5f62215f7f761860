package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/depotnotes/internal/cli/formatter"
	"github.com/alexanderramin/depotnotes/internal/domain"
	"github.com/spf13/cobra"
)

func newRulesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect the loaded rule data",
	}
	cmd.AddCommand(
		newRulesCheckCmd(app),
		newRulesVocabCmd(app),
	)
	return cmd
}

func newRulesCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Lint the rule data for authoring mistakes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			errs := app.Dataset.Lint()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLint(app.Dataset.Source(), errs))
			if len(errs) > 0 {
				return fmt.Errorf("rule data has %d finding(s)", len(errs))
			}
			return nil
		},
	}
}

func newRulesVocabCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "List the component states and site flags the rules know about",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := [][]string{}
			for _, c := range []domain.Component{domain.ComponentBoiler, domain.ComponentCylinder, domain.ComponentFlue} {
				rows = append(rows, []string{formatter.Bold(string(c)), listOrDash(app.Dataset.States(c))})
			}
			rows = append(rows, []string{formatter.Bold("flags"), listOrDash(app.Dataset.Flags())})
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("Vocabulary", formatter.RenderTable([]string{"KIND", "VALUES"}, rows)))
			return nil
		},
	}
}

func listOrDash(values []string) string {
	if len(values) == 0 {
		return formatter.Dim("--")
	}
	return strings.Join(values, ", ")
}
