package rules

import "strings"

// anyToVertical is the flue mapping used for every fanned_vertical
// destination that lacks an exact entry.
const (
	anyToVertical  = "any_to_vertical"
	fannedVertical = "fanned_vertical"
)

// MappingKey builds the "{from}_to_{to}" key used by the mapping tables.
func MappingKey(from, to string) string {
	return from + "_to_" + to
}

// ExpandMapping resolves table["{from}_to_{to}"] into note text. The value's
// first token is a label and is discarded; the remaining tokens are keys
// into ns. Unknown entries and unresolvable tokens yield nothing.
func ExpandMapping(table map[string]string, from, to string, ns map[string]string) []string {
	return Texts(expandValue(table[MappingKey(from, to)], ns))
}

// ExpandFlueMapping is ExpandMapping with one fixed fallback: a
// fanned_vertical destination with no exact entry uses any_to_vertical.
func ExpandFlueMapping(table map[string]string, from, to string, ns map[string]string) []string {
	return Texts(expandFlue(table, from, to, ns))
}

func expandFlue(table map[string]string, from, to string, ns map[string]string) []Note {
	value, ok := table[MappingKey(from, to)]
	if !ok && to == fannedVertical {
		value = table[anyToVertical]
	}
	return expandValue(value, ns)
}

func expandValue(value string, ns map[string]string) []Note {
	tokens := strings.Fields(value)
	if len(tokens) < 2 {
		return nil
	}
	return resolve(tokens[1:], ns)
}
