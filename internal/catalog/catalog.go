// Package catalog parses the flat-file section catalog that backs the
// technician checklists and section-rule code expansion.
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Entry is one checklist line within a section.
type Entry struct {
	Code  string `json:"code"`
	Group string `json:"group,omitempty"`
	Text  string `json:"text"`
}

// Catalog maps section names to their ordered entries.
type Catalog struct {
	sections map[string][]Entry
	order    []string
}

var headerRe = regexp.MustCompile(`^\[(.+?)\]$`)

// New builds a catalog from an already-parsed mapping. Section order
// follows the order of names.
func New(sections map[string][]Entry, names ...string) *Catalog {
	c := &Catalog{sections: make(map[string][]Entry, len(sections))}
	for _, n := range names {
		if entries, ok := sections[n]; ok {
			c.put(n, entries)
		}
	}
	for n, entries := range sections {
		if _, ok := c.sections[n]; !ok {
			c.put(n, entries)
		}
	}
	return c
}

// Parse reads the flat text format:
//
//	[Section name]
//	CODE | text
//	CODE | group | text | more text
//
// Blank lines, lines before the first header, and records with fewer than
// two pipe-delimited fields are skipped.
func Parse(r io.Reader) (*Catalog, error) {
	c := &Catalog{sections: make(map[string][]Entry)}
	current := ""
	open := false

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := headerRe.FindStringSubmatch(line); m != nil {
			current = m[1]
			open = true
			c.put(current, nil)
			continue
		}
		if !open {
			continue
		}
		if e, ok := parseRecord(line); ok {
			c.sections[current] = append(c.sections[current], e)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading section catalog: %w", err)
	}
	return c, nil
}

// MustParseString is Parse over an in-memory source. It panics if the
// source does not parse, which only a line longer than the scanner buffer
// can cause.
func MustParseString(src string) *Catalog {
	c, err := Parse(strings.NewReader(src))
	if err != nil {
		panic("catalog: MustParseString: " + err.Error())
	}
	return c
}

func parseRecord(line string) (Entry, bool) {
	parts := strings.Split(line, "|")
	if len(parts) < 2 {
		return Entry{}, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	e := Entry{Code: parts[0]}
	if len(parts) > 2 {
		e.Group = parts[1]
		e.Text = strings.Join(parts[2:], " | ")
	} else {
		e.Text = parts[1]
	}
	if e.Text == "" {
		e.Text = e.Group
	}
	return e, true
}

// put registers a section, resetting its entries if it already exists.
func (c *Catalog) put(name string, entries []Entry) {
	if _, ok := c.sections[name]; !ok {
		c.order = append(c.order, name)
	}
	c.sections[name] = entries
}

// Names returns section names in first-seen order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Has reports whether a section exists under exactly this name.
func (c *Catalog) Has(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.sections[name]
	return ok
}

// Entries returns the section's entries by exact name.
func (c *Catalog) Entries(name string) []Entry {
	if c == nil {
		return nil
	}
	return c.sections[name]
}

// Lookup resolves a section by exact name first, then through aliases.
func (c *Catalog) Lookup(name string, aliases map[string]string) []Entry {
	if c.Has(name) {
		return c.Entries(name)
	}
	if alias, ok := aliases[name]; ok {
		return c.Entries(alias)
	}
	return nil
}

// CodeText builds a code to text map. The first entry for a code wins.
func CodeText(entries []Entry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		if _, seen := m[e.Code]; !seen {
			m[e.Code] = e.Text
		}
	}
	return m
}

// Sections exports the catalog as a plain mapping.
func (c *Catalog) Sections() map[string][]Entry {
	out := make(map[string][]Entry)
	if c == nil {
		return out
	}
	for k, v := range c.sections {
		out[k] = append([]Entry(nil), v...)
	}
	return out
}
