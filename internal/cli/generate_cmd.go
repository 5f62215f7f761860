package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/depotnotes/internal/cli/formatter"
	"github.com/alexanderramin/depotnotes/internal/contract"
	"github.com/spf13/cobra"
)

// runWizard runs a form to completion. Replaced in tests.
var runWizard = func(cmd *cobra.Command, a *wizardAnswers, app *App) error {
	return newGenerateWizard(app.Dataset, a).RunWithContext(cmd.Context())
}

func newGenerateCmd(app *App) *cobra.Command {
	var sel selectionFlags
	var save, copyAll, asJSON, raw bool

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate depot notes for one job",
		Example: `  depotnotes generate --boiler system:combi --cylinder unvented:none --flue balanced:fanned_horizontal
  depotnotes generate --boiler combi --flue open:fanned_vertical --flag plume_required --select "Needs=ND01"
  depotnotes generate   # interactive wizard`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := sel.request()
			if err != nil {
				return err
			}
			if !sel.hasComponents() && app.interactive() {
				if req, err = generateFromWizard(cmd, app, req); err != nil {
					return err
				}
			}
			req.Save = save

			resp, err := app.Notes.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			if err := writeNotes(cmd, resp, asJSON, raw); err != nil {
				return err
			}

			if copyAll {
				if err := clipboardWriteAll(resp.CopyAll); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("copied all sections to clipboard"))
			}
			return nil
		},
	}

	sel.register(cmd.Flags())
	cmd.Flags().BoolVar(&save, "save", false, "save the job to history")
	cmd.Flags().BoolVar(&copyAll, "copy", false, "copy all sections to the clipboard")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&raw, "raw", false, "print one unstyled depot string per line")
	cmd.MarkFlagsMutuallyExclusive("json", "raw")

	return cmd
}

// generateFromWizard asks for the job interactively, starting from whatever
// was already given on the command line.
func generateFromWizard(cmd *cobra.Command, app *App, seed contract.NotesRequest) (contract.NotesRequest, error) {
	answers := answersFromRequest(seed)
	if err := runWizard(cmd, answers, app); err != nil {
		return seed, fmt.Errorf("wizard: %w", err)
	}
	req := answers.request()
	if seed.Now != nil {
		req.Now = seed.Now
	}
	return req, nil
}

func writeNotes(cmd *cobra.Command, resp *contract.NotesResponse, asJSON, raw bool) error {
	out := cmd.OutOrStdout()
	switch {
	case asJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case raw:
		fmt.Fprint(out, formatter.FormatRaw(resp.Sections))
	default:
		fmt.Fprintln(out, formatter.FormatNotes(resp))
	}
	return nil
}
