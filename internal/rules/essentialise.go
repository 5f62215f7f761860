package rules

// Essentialise caps a section at the configured maximum. Notes whose ID is
// listed in the section's priority move to the front, keeping their
// relative order; the rest follow in original order; the result is then
// truncated.
func Essentialise(section string, notes []Note, rs *RuleSet) []Note {
	limit := rs.MaxPerSection()
	priority := rs.PriorityFor(section)

	ordered := notes
	if len(priority) > 0 {
		ordered = make([]Note, 0, len(notes))
		var rest []Note
		for _, n := range notes {
			if contains(priority, n.ID) {
				ordered = append(ordered, n)
			} else {
				rest = append(rest, n)
			}
		}
		ordered = append(ordered, rest...)
	}

	if len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}
