package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/depotnotes/internal/domain"
)

// FormatJobList renders saved jobs newest first.
func FormatJobList(jobs []*domain.Job, now time.Time) string {
	if len(jobs) == 0 {
		return Dim("No saved jobs.") + "\n"
	}
	headers := []string{"ID", "REFERENCE", "BOILER", "FLUE", "SAVED"}
	rows := make([][]string, 0, len(jobs))
	for _, j := range jobs {
		ref := j.Reference
		if ref == "" {
			ref = Dim("--")
		}
		rows = append(rows, []string{
			Bold(TruncID(j.ID)),
			ref,
			TransitionLabel(j.State.Boiler),
			TransitionLabel(j.State.Flue),
			Dim(HumanTimestamp(j.CreatedAt, now)),
		})
	}
	return RenderBox("Saved jobs", RenderTable(headers, rows))
}

// FormatJobShow renders a saved job with its stored notes.
func FormatJobShow(j *domain.Job, now time.Time) string {
	var b strings.Builder
	b.WriteString("  " + StyleDim.Render("ID      ") + "  " + Dim(j.ID) + "\n")
	b.WriteString("  " + StyleDim.Render("SAVED   ") + "  " + Dim(HumanTimestamp(j.CreatedAt, now)) + "\n")
	b.WriteString(FormatState(j.State))
	b.WriteString("\n")
	b.WriteString(FormatSections(j.Notes))

	title := "Job"
	if j.Reference != "" {
		title += " · " + j.Reference
	}
	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}
