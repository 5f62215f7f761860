package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/depotnotes/internal/cli/formatter"
	"github.com/alexanderramin/depotnotes/internal/contract"
	"github.com/alexanderramin/depotnotes/internal/domain"
	"github.com/alexanderramin/depotnotes/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// depotHuhTheme returns a huh theme in the Gruvbox palette.
func depotHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[x] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardAnswers is what the generate wizard fills in.
type wizardAnswers struct {
	BoilerFrom, BoilerTo     string
	CylinderFrom, CylinderTo string
	FlueFrom, FlueTo         string
	Flags                    []string
	Checklist                []string // "Section=CODE"
	Reference                string
}

func answersFromRequest(req contract.NotesRequest) *wizardAnswers {
	a := &wizardAnswers{
		BoilerFrom: req.Boiler.From, BoilerTo: req.Boiler.To,
		CylinderFrom: req.Cylinder.From, CylinderTo: req.Cylinder.To,
		FlueFrom: req.Flue.From, FlueTo: req.Flue.To,
		Flags:     append([]string(nil), req.Flags...),
		Reference: req.Reference,
	}
	for _, section := range domain.ChecklistSections {
		for _, code := range req.Selected[section] {
			a.Checklist = append(a.Checklist, section+"="+code)
		}
	}
	return a
}

func (a *wizardAnswers) request() contract.NotesRequest {
	req := contract.NewNotesRequest()
	req.Boiler = domain.Transition{From: a.BoilerFrom, To: a.BoilerTo}
	req.Cylinder = domain.Transition{From: a.CylinderFrom, To: a.CylinderTo}
	req.Flue = domain.Transition{From: a.FlueFrom, To: a.FlueTo}
	req.Flags = append(req.Flags, a.Flags...)
	req.Reference = strings.TrimSpace(a.Reference)
	for _, item := range a.Checklist {
		if section, code, ok := strings.Cut(item, "="); ok {
			req.Select(section, code)
		}
	}
	return req
}

func stateOptions(states []string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(states)+1)
	opts = append(opts, huh.NewOption("(not set)", ""))
	for _, s := range states {
		opts = append(opts, huh.NewOption(s, s))
	}
	return opts
}

func transitionGroup(ds service.DatasetService, c domain.Component, from, to *string) *huh.Group {
	opts := stateOptions(ds.States(c))
	title := strings.ToUpper(string(c)[:1]) + string(c)[1:]
	return huh.NewGroup(
		huh.NewSelect[string]().Title(title+": existing").Options(opts...).Value(from),
		huh.NewSelect[string]().Title(title+": new").Options(opts...).Value(to),
	)
}

// checklistOptions offers every catalog code of every checklist section.
func checklistOptions(ds service.DatasetService) []huh.Option[string] {
	var opts []huh.Option[string]
	for _, section := range domain.ChecklistSections {
		for _, e := range ds.Checklist(section) {
			label := fmt.Sprintf("%s · %s %s", section, e.Code, formatter.Truncate(e.Text, 50))
			opts = append(opts, huh.NewOption(label, section+"="+e.Code))
		}
	}
	return opts
}

// newGenerateWizard builds the interactive form for generate.
func newGenerateWizard(ds service.DatasetService, a *wizardAnswers) *huh.Form {
	groups := []*huh.Group{
		transitionGroup(ds, domain.ComponentBoiler, &a.BoilerFrom, &a.BoilerTo),
		transitionGroup(ds, domain.ComponentCylinder, &a.CylinderFrom, &a.CylinderTo),
		transitionGroup(ds, domain.ComponentFlue, &a.FlueFrom, &a.FlueTo),
	}

	if flags := ds.Flags(); len(flags) > 0 {
		opts := make([]huh.Option[string], 0, len(flags))
		for _, f := range flags {
			opts = append(opts, huh.NewOption(f, f))
		}
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().Title("Site flags").Options(opts...).Value(&a.Flags),
		))
	}

	last := []huh.Field{}
	if opts := checklistOptions(ds); len(opts) > 0 {
		last = append(last, huh.NewMultiSelect[string]().
			Title("Checklist").
			Description("Codes to add to their sections").
			Options(opts...).
			Height(12).
			Value(&a.Checklist))
	}
	last = append(last, huh.NewInput().Title("Reference").Placeholder("optional").Value(&a.Reference))
	groups = append(groups, huh.NewGroup(last...))

	return huh.NewForm(groups...).WithTheme(depotHuhTheme()).WithShowHelp(false)
}
