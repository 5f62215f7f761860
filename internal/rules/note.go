package rules

import "strings"

// Note is a resolved note line together with the key or catalog code it
// came from. The identifier is what essentialiser priorities match on.
type Note struct {
	ID   string
	Text string
}

// Texts projects notes onto their display text.
func Texts(notes []Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Text
	}
	return out
}

// keySet accumulates keys in first-insertion order, ignoring repeats.
type keySet struct {
	keys []string
	seen map[string]bool
}

func (s *keySet) add(keys ...string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	for _, k := range keys {
		if s.seen[k] {
			continue
		}
		s.seen[k] = true
		s.keys = append(s.keys, k)
	}
}

func (s *keySet) list() []string {
	return s.keys
}

// resolve maps keys through a text table, dropping keys with no text.
func resolve(keys []string, table map[string]string) []Note {
	out := make([]Note, 0, len(keys))
	for _, k := range keys {
		text, ok := table[k]
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, Note{ID: k, Text: text})
	}
	return out
}

// dedupeText keeps the first note for each distinct text.
func dedupeText(notes []Note) []Note {
	seen := make(map[string]bool, len(notes))
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if seen[n.Text] {
			continue
		}
		seen[n.Text] = true
		out = append(out, n)
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
