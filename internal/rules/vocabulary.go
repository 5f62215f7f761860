package rules

import "github.com/alexanderramin/depotnotes/internal/domain"

// States lists every state name the rules mention for a component, sorted.
// The flue wildcard is not a selectable state and is left out.
func (rs *RuleSet) States(c domain.Component) []string {
	if rs == nil {
		return nil
	}
	seen := map[string]bool{}
	addAll := func(list ...string) {
		for _, s := range list {
			if s != "" && s != domain.Wildcard {
				seen[s] = true
			}
		}
	}
	switch c {
	case domain.ComponentBoiler:
		for _, r := range rs.BoilerTransitions {
			addAll(r.When.From, r.When.To)
		}
		for _, r := range rs.ContextFlags {
			addAll(r.OnBoilerTo...)
		}
		for _, list := range rs.Sections {
			for _, r := range list {
				addAll(r.WhenToBoiler...)
			}
		}
	case domain.ComponentCylinder:
		for _, r := range rs.CylinderTransitions {
			addAll(r.When.From, r.When.To)
		}
		for _, list := range rs.Sections {
			for _, r := range list {
				addAll(r.WhenToCylinder...)
			}
		}
	case domain.ComponentFlue:
		for _, r := range rs.FlueTransitions {
			addAll(r.When.From, r.When.To)
		}
		for _, r := range rs.FlueOverrides {
			addAll(r.WhenTo...)
		}
	}
	return sortedKeys(seen)
}

// FlagNames lists every flag the rules test, sorted.
func (rs *RuleSet) FlagNames() []string {
	if rs == nil {
		return nil
	}
	seen := map[string]bool{}
	for _, r := range rs.FlueOverrides {
		seen[r.Flag] = true
	}
	for _, r := range rs.ContextFlags {
		seen[r.Flag] = true
	}
	for _, list := range rs.Sections {
		for _, r := range list {
			for _, f := range r.WhenFlags {
				seen[f] = true
			}
		}
	}
	delete(seen, "")
	return sortedKeys(seen)
}
