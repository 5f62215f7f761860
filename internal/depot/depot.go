// Package depot renders note lines into the semicolon-delimited depot
// string written into job paperwork.
package depot

import "strings"

const (
	separator  = "; "
	terminator = ";"
)

// Format joins the title and every non-empty line with "; " and appends a
// trailing ";". With no lines the result is just "{title};".
func Format(title string, lines []string) string {
	parts := make([]string, 0, len(lines)+1)
	parts = append(parts, title)
	for _, l := range lines {
		if l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, separator) + terminator
}

// MergeAll joins non-empty depot strings with a single space, the form used
// when every section is copied at once.
func MergeAll(notes []string) string {
	kept := make([]string, 0, len(notes))
	for _, n := range notes {
		if n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, " ")
}
