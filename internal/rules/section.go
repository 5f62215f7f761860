package rules

import (
	"github.com/alexanderramin/depotnotes/internal/catalog"
	"github.com/alexanderramin/depotnotes/internal/domain"
)

// RuleKey resolves the key under which a section's rules are stored:
// the name itself, then its alias, then the raw name again.
func (rs *RuleSet) RuleKey(section string) string {
	if rs == nil {
		return section
	}
	if _, ok := rs.Sections[section]; ok {
		return section
	}
	if alias, ok := rs.Aliases()[section]; ok {
		if _, ok := rs.Sections[alias]; ok {
			return alias
		}
	}
	return section
}

// SectionRulesFor returns the rules stored for a section, alias-resolved.
func (rs *RuleSet) SectionRulesFor(section string) []SectionRule {
	if rs == nil {
		return nil
	}
	return rs.Sections[rs.RuleKey(section)]
}

// Matches reports whether every present clause of the rule holds.
func (r SectionRule) Matches(state domain.State) bool {
	for _, f := range r.WhenFlags {
		if !state.Flags.Active(f) {
			return false
		}
	}
	if r.WhenToBoiler != nil && !contains(r.WhenToBoiler, state.Boiler.To) {
		return false
	}
	if r.WhenToCylinder != nil && !contains(r.WhenToCylinder, state.Cylinder.To) {
		return false
	}
	return true
}

// EvaluateSection assembles the final note lines for one output section.
//
// Matching section rules contribute catalog codes and note keys. Transition
// notes are prepended only for the system-characteristics-new section
// (systemNew) and the flue section (flue). Codes expand through the
// section's catalog entries, followed by any technician-selected codes;
// note keys expand through lk.Notes. The combined list is deduplicated by
// text and then essentialised.
func EvaluateSection(section string, rs *RuleSet, cat *catalog.Catalog, state domain.State, tn TransitionNotes, lk *Lookup, selected ...string) []string {
	return Texts(evaluateSection(section, rs, cat, state, tn, lk, selected))
}

func evaluateSection(section string, rs *RuleSet, cat *catalog.Catalog, state domain.State, tn TransitionNotes, lk *Lookup, selected []string) []Note {
	var codes, keys keySet
	for _, r := range rs.SectionRulesFor(section) {
		if !r.Matches(state) {
			continue
		}
		codes.add(r.AddCodes...)
		keys.add(r.AddTextKeys...)
	}
	codes.add(selected...)

	var combined []Note
	switch section {
	case domain.SectionSystemNew:
		combined = append(combined, tn.SystemNew...)
	case domain.SectionFlue:
		combined = append(combined, tn.Flue...)
	}

	entries := cat.Lookup(section, rs.Aliases())
	combined = append(combined, resolve(codes.list(), catalog.CodeText(entries))...)

	combined = append(combined, resolve(keys.list(), lk.notes())...)

	return Essentialise(section, dedupeText(combined), rs)
}
