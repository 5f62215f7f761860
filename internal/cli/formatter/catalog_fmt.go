package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/depotnotes/internal/catalog"
)

// noteWidth caps checklist text in tables.
const noteWidth = 60

// FormatCatalog lists catalog sections with their entry counts.
func FormatCatalog(c *catalog.Catalog) string {
	names := c.Names()
	if len(names) == 0 {
		return Dim("The catalog is empty.") + "\n"
	}
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{Bold(name), fmt.Sprintf("%d", len(c.Entries(name)))})
	}
	return RenderBox("Sections", RenderTable([]string{"SECTION", "CODES"}, rows))
}

// FormatChecklist lists one section's codes.
func FormatChecklist(section string, entries []catalog.Entry) string {
	if len(entries) == 0 {
		return Dim(fmt.Sprintf("No catalog entries for %q.", section)) + "\n"
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		group := e.Group
		if group == "" {
			group = Dim("--")
		}
		rows = append(rows, []string{Bold(e.Code), group, Truncate(e.Text, noteWidth)})
	}
	return RenderBox(section, RenderTable([]string{"CODE", "GROUP", "TEXT"}, rows))
}

// FormatLint renders rule-data findings, or a clean bill of health.
func FormatLint(source string, errs []error) string {
	if len(errs) == 0 {
		return StyleGreen.Render("✔ ") + "rule data in " + Bold(source) + " is clean\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d finding(s) in %s\n", StyleRed.Render("✖"), len(errs), Bold(source))
	for _, err := range errs {
		b.WriteString("  " + StyleYellow.Render("•") + " " + err.Error() + "\n")
	}
	return b.String()
}
