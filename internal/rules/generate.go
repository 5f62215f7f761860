package rules

import (
	"github.com/alexanderramin/depotnotes/internal/catalog"
	"github.com/alexanderramin/depotnotes/internal/depot"
	"github.com/alexanderramin/depotnotes/internal/domain"
)

// Bundle is the read-only data every evaluation runs against.
type Bundle struct {
	Rules    *RuleSet
	Lookup   *Lookup
	Mappings *Mappings
	Catalog  *catalog.Catalog

	// Problems lists data groups the loader dropped instead of failing.
	Problems []error
}

func (b *Bundle) mappings() *Mappings {
	if b == nil || b.Mappings == nil {
		return &Mappings{}
	}
	return b.Mappings
}

func (b *Bundle) lookup() *Lookup {
	if b == nil || b.Lookup == nil {
		return &Lookup{}
	}
	return b.Lookup
}

// Selections maps a section title to the catalog codes a technician ticked.
type Selections map[string][]string

// Generate evaluates every output section for the state.
//
// Transition sections are always emitted: boiler-and-controls carries the
// boiler code mapping ahead of its section notes, and flue carries the flue
// code mapping ahead of its section notes. Checklist sections are emitted
// only when at least one line applies.
func Generate(b *Bundle, state domain.State, sel Selections) []domain.SectionNote {
	if b == nil {
		b = &Bundle{}
	}
	rs, lk, maps := b.Rules, b.lookup(), b.mappings()
	tn := EvaluateTransitions(state, rs, lk)

	out := make([]domain.SectionNote, 0, len(domain.OutputSections()))
	for _, section := range domain.OutputSections() {
		notes := evaluateSection(section, rs, b.Catalog, state, tn, lk, sel[section])

		switch section {
		case domain.SectionBoilerControls:
			mapped := expandValue(maps.Boiler[MappingKey(state.Boiler.From, state.Boiler.To)], lk.BoilerNotes)
			notes = dedupeText(append(mapped, notes...))
		case domain.SectionFlue:
			mapped := expandFlue(maps.Flue, state.Flue.From, state.Flue.To, lk.FlueNotes)
			notes = dedupeText(append(mapped, notes...))
		}

		if len(notes) == 0 && !domain.IsTransitionSection(section) {
			continue
		}
		lines := Texts(notes)
		out = append(out, domain.SectionNote{
			Section: section,
			Lines:   lines,
			Depot:   depot.Format(section, lines),
		})
	}
	return out
}

// MergeNotes joins every section's depot string for a single copy.
func MergeNotes(notes []domain.SectionNote) string {
	depots := make([]string, len(notes))
	for i, n := range notes {
		depots[i] = n.Depot
	}
	return depot.MergeAll(depots)
}
