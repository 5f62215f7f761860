// Package rules turns component transitions and site flags into ordered,
// deduplicated depot-note lines per output section.
//
// Evaluation is a pure function of its inputs: nothing here performs I/O
// or keeps state between calls, and no input, however incomplete, makes
// evaluation fail. Missing rule groups are empty, missing flags are false,
// and note keys without text are dropped.
package rules

import "github.com/alexanderramin/depotnotes/internal/domain"

// RuleSet is the rules data file.
type RuleSet struct {
	BoilerTransitions   []TransitionRule         `json:"boiler_transitions,omitempty" yaml:"boiler_transitions,omitempty"`
	CylinderTransitions []TransitionRule         `json:"cylinder_transitions,omitempty" yaml:"cylinder_transitions,omitempty"`
	FlueTransitions     []TransitionRule         `json:"flue_transitions,omitempty" yaml:"flue_transitions,omitempty"`
	FlueOverrides       []FlagOverrideRule       `json:"flue_overrides,omitempty" yaml:"flue_overrides,omitempty"`
	ContextFlags        []ContextFlagRule        `json:"context_flags,omitempty" yaml:"context_flags,omitempty"`
	Sections            map[string][]SectionRule `json:"sections,omitempty" yaml:"sections,omitempty"`
	Essentialiser       *EssentialiserConfig     `json:"essentialiser,omitempty" yaml:"essentialiser,omitempty"`
	SectionAliases      map[string]string        `json:"section_aliases,omitempty" yaml:"section_aliases,omitempty"`
}

// TransitionRule adds note keys when a component moves from one state to
// another. For flue rules From may be the wildcard "any".
type TransitionRule struct {
	When domain.Transition `json:"when" yaml:"when"`
	Add  []string          `json:"add" yaml:"add"`
}

// FlagOverrideRule adds flue notes when Flag is set and the flue
// destination is one of WhenTo.
type FlagOverrideRule struct {
	Flag   string   `json:"flag" yaml:"flag"`
	WhenTo []string `json:"when_to" yaml:"when_to"`
	Add    []string `json:"add" yaml:"add"`
}

// ContextFlagRule adds system notes when Flag is set and the boiler
// destination is one of OnBoilerTo.
type ContextFlagRule struct {
	Flag       string   `json:"flag" yaml:"flag"`
	OnBoilerTo []string `json:"on_boiler_to" yaml:"on_boiler_to"`
	Add        []string `json:"add" yaml:"add"`
}

// SectionRule is a conjunctive condition on flags and destination states.
// A nil clause is vacuously true; a present but empty destination list
// matches nothing.
type SectionRule struct {
	WhenFlags      []string `json:"when_flags,omitempty" yaml:"when_flags,omitempty"`
	WhenToBoiler   []string `json:"when_to_boiler,omitempty" yaml:"when_to_boiler,omitempty"`
	WhenToCylinder []string `json:"when_to_cylinder,omitempty" yaml:"when_to_cylinder,omitempty"`
	AddCodes       []string `json:"add_codes,omitempty" yaml:"add_codes,omitempty"`
	AddTextKeys    []string `json:"add_text_keys,omitempty" yaml:"add_text_keys,omitempty"`
}

// EssentialiserConfig caps section length and names the notes that must
// survive truncation.
type EssentialiserConfig struct {
	MaxPerSection *int                `json:"max_per_section,omitempty" yaml:"max_per_section,omitempty"`
	Priority      map[string][]string `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Lookup holds the three note-text namespaces.
type Lookup struct {
	Notes       map[string]string `json:"notes" yaml:"notes"`
	BoilerNotes map[string]string `json:"boiler_notes,omitempty" yaml:"boiler_notes,omitempty"`
	FlueNotes   map[string]string `json:"flue_notes,omitempty" yaml:"flue_notes,omitempty"`
}

// Mappings holds the "{from}_to_{to}" code tables. Each value is a
// space-separated string: a label followed by note keys.
type Mappings struct {
	Boiler map[string]string `json:"boiler_mappings,omitempty" yaml:"boiler_mappings,omitempty"`
	Flue   map[string]string `json:"flue_mappings,omitempty" yaml:"flue_mappings,omitempty"`
}

// DefaultMaxPerSection applies when the essentialiser is unset.
const DefaultMaxPerSection = 6

// DefaultSectionAliases maps output section titles to the names used by
// the catalog and rule data.
var DefaultSectionAliases = map[string]string{
	domain.SectionSystemNew:      domain.SectionSystemExisting,
	domain.SectionBoilerControls: "New boiler and controls",
	domain.SectionPipework:       "Pipe work",
	domain.SectionArseCover:      "Arse_cover_notes",
	domain.SectionDisruption:     "Disruption / Cleaning / Filtration",
}

// Aliases returns the default aliases overlaid with any from the rule data.
func (rs *RuleSet) Aliases() map[string]string {
	out := make(map[string]string, len(DefaultSectionAliases))
	for k, v := range DefaultSectionAliases {
		out[k] = v
	}
	if rs == nil {
		return out
	}
	for k, v := range rs.SectionAliases {
		out[k] = v
	}
	return out
}

// MaxPerSection returns the configured cap, or the default when unset or
// not positive.
func (rs *RuleSet) MaxPerSection() int {
	if rs == nil || rs.Essentialiser == nil || rs.Essentialiser.MaxPerSection == nil {
		return DefaultMaxPerSection
	}
	if n := *rs.Essentialiser.MaxPerSection; n > 0 {
		return n
	}
	return DefaultMaxPerSection
}

// PriorityFor returns the preferred note identifiers for a section.
func (rs *RuleSet) PriorityFor(section string) []string {
	if rs == nil || rs.Essentialiser == nil {
		return nil
	}
	return rs.Essentialiser.Priority[section]
}

func (lk *Lookup) notes() map[string]string {
	if lk == nil {
		return nil
	}
	return lk.Notes
}
