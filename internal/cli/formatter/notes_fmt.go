package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/depotnotes/internal/contract"
	"github.com/alexanderramin/depotnotes/internal/domain"
)

// FormatState renders the selected transitions and active flags.
func FormatState(s domain.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("BOILER  "), TransitionLabel(s.Boiler))
	fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("CYLINDER"), TransitionLabel(s.Cylinder))
	fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("FLUE    "), TransitionLabel(s.Flue))
	flags := s.Flags.Names()
	if len(flags) == 0 {
		fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("FLAGS   "), Dim("none"))
	} else {
		fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("FLAGS   "), StylePurple.Render(strings.Join(flags, ", ")))
	}
	return b.String()
}

// FormatSections renders each section title followed by its note lines
// and the depot string that gets pasted into paperwork.
func FormatSections(notes []domain.SectionNote) string {
	var b strings.Builder
	for i, n := range notes {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(SectionStyle(n.Section).Render(n.Section) + "\n")
		if len(n.Lines) == 0 {
			b.WriteString("  " + Dim("no notes") + "\n")
		}
		for _, l := range n.Lines {
			b.WriteString("  " + StyleDim.Render("•") + " " + StyleFg.Render(l) + "\n")
		}
		b.WriteString("  " + StyleGreen.Render(n.Depot) + "\n")
	}
	return b.String()
}

// FormatNotes renders a full generation result.
func FormatNotes(resp *contract.NotesResponse) string {
	var b strings.Builder
	b.WriteString(FormatState(resp.State))
	b.WriteString("\n")
	b.WriteString(FormatSections(resp.Sections))

	title := "Depot notes"
	if resp.Reference != "" {
		title += " · " + resp.Reference
	}
	out := RenderBox(title, strings.TrimRight(b.String(), "\n"))
	if resp.JobID != "" {
		out += "\n" + Dim("saved as job ") + Bold(TruncID(resp.JobID))
	}
	return out
}

// FormatRaw renders one unstyled depot string per line, for piping.
func FormatRaw(notes []domain.SectionNote) string {
	var b strings.Builder
	for _, n := range notes {
		b.WriteString(n.Depot + "\n")
	}
	return b.String()
}
