package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/depotnotes/internal/domain"
)

// Lint reports authoring mistakes in the rule data. Findings never affect
// evaluation, which silently drops whatever it cannot resolve; Lint exists
// so those silent drops can be caught before the data ships.
func Lint(b *Bundle) []error {
	if b == nil {
		return nil
	}
	errs := append([]error(nil), b.Problems...)
	rs := b.Rules
	if rs == nil {
		rs = &RuleSet{}
	}
	lk := b.lookup()

	errs = append(errs, lintTransitions("boiler_transitions", rs.BoilerTransitions, lk, false)...)
	errs = append(errs, lintTransitions("cylinder_transitions", rs.CylinderTransitions, lk, false)...)
	errs = append(errs, lintTransitions("flue_transitions", rs.FlueTransitions, lk, true)...)

	for i, o := range rs.FlueOverrides {
		prefix := fmt.Sprintf("flue_overrides[%d]", i)
		if o.Flag == "" {
			errs = append(errs, fmt.Errorf("%s.flag is required", prefix))
		}
		if len(o.WhenTo) == 0 {
			errs = append(errs, fmt.Errorf("%s.when_to is empty; the rule can never fire", prefix))
		}
		errs = append(errs, lintKeys(prefix+".add", o.Add, lk.Notes, "notes")...)
	}
	for i, c := range rs.ContextFlags {
		prefix := fmt.Sprintf("context_flags[%d]", i)
		if c.Flag == "" {
			errs = append(errs, fmt.Errorf("%s.flag is required", prefix))
		}
		if len(c.OnBoilerTo) == 0 {
			errs = append(errs, fmt.Errorf("%s.on_boiler_to is empty; the rule can never fire", prefix))
		}
		errs = append(errs, lintKeys(prefix+".add", c.Add, lk.Notes, "notes")...)
	}

	for _, name := range sortedKeys(rs.Sections) {
		entries := b.Catalog.Lookup(name, rs.Aliases())
		codes := make(map[string]bool, len(entries))
		for _, e := range entries {
			codes[e.Code] = true
		}
		for i, r := range rs.Sections[name] {
			prefix := fmt.Sprintf("sections[%q][%d]", name, i)
			for _, c := range r.AddCodes {
				if !codes[c] {
					errs = append(errs, fmt.Errorf("%s.add_codes: code %q not in catalog section", prefix, c))
				}
			}
			errs = append(errs, lintKeys(prefix+".add_text_keys", r.AddTextKeys, lk.Notes, "notes")...)
		}
	}

	maps := b.mappings()
	errs = append(errs, lintMappings("boiler_mappings", maps.Boiler, lk.BoilerNotes, "boiler_notes")...)
	errs = append(errs, lintMappings("flue_mappings", maps.Flue, lk.FlueNotes, "flue_notes")...)

	if e := rs.Essentialiser; e != nil {
		if e.MaxPerSection != nil && *e.MaxPerSection <= 0 {
			errs = append(errs, fmt.Errorf("essentialiser.max_per_section must be positive, got %d (default %d applies)", *e.MaxPerSection, DefaultMaxPerSection))
		}
		for _, name := range sortedKeys(e.Priority) {
			if len(rs.SectionRulesFor(name)) == 0 && len(b.Catalog.Lookup(name, rs.Aliases())) == 0 && !domain.IsTransitionSection(name) {
				errs = append(errs, fmt.Errorf("essentialiser.priority[%q]: section has no rules or catalog entries", name))
			}
		}
	}

	return errs
}

func lintTransitions(group string, list []TransitionRule, lk *Lookup, wildcard bool) []error {
	var errs []error
	for i, r := range list {
		prefix := fmt.Sprintf("%s[%d]", group, i)
		if r.When.From == "" {
			errs = append(errs, fmt.Errorf("%s.when.from is required", prefix))
		} else if r.When.From == domain.Wildcard && !wildcard {
			errs = append(errs, fmt.Errorf("%s.when.from: wildcard %q only applies to flue transitions", prefix, r.When.From))
		}
		if r.When.To == "" {
			errs = append(errs, fmt.Errorf("%s.when.to is required", prefix))
		}
		errs = append(errs, lintKeys(prefix+".add", r.Add, lk.Notes, "notes")...)
	}
	return errs
}

func lintKeys(prefix string, keys []string, table map[string]string, ns string) []error {
	var errs []error
	for _, k := range keys {
		if strings.TrimSpace(table[k]) == "" {
			errs = append(errs, fmt.Errorf("%s: key %q has no text in %s", prefix, k, ns))
		}
	}
	return errs
}

func lintMappings(group string, table map[string]string, ns map[string]string, nsName string) []error {
	var errs []error
	for _, key := range sortedKeys(table) {
		prefix := fmt.Sprintf("%s[%q]", group, key)
		if !strings.Contains(key, "_to_") {
			errs = append(errs, fmt.Errorf("%s: key is not of the form {from}_to_{to}", prefix))
		}
		tokens := strings.Fields(table[key])
		if len(tokens) < 2 {
			errs = append(errs, fmt.Errorf("%s: value has a label but no note keys", prefix))
			continue
		}
		errs = append(errs, lintKeys(prefix, tokens[1:], ns, nsName)...)
	}
	return errs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
