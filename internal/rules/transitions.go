package rules

import "github.com/alexanderramin/depotnotes/internal/domain"

// TransitionNotes is the per-bucket output of transition evaluation.
// Boiler and Pipe have no rule families yet and stay empty.
type TransitionNotes struct {
	SystemNew []Note
	Flue      []Note
	Boiler    []Note
	Pipe      []Note
}

// Bucket returns the notes accumulated under a bucket name.
func (tn TransitionNotes) Bucket(b domain.Bucket) []Note {
	switch b {
	case domain.BucketSystemNew:
		return tn.SystemNew
	case domain.BucketFlue:
		return tn.Flue
	case domain.BucketBoiler:
		return tn.Boiler
	case domain.BucketPipe:
		return tn.Pipe
	}
	return nil
}

// EvaluateTransitions decides which note keys apply for the given state.
//
// Rule families run in a fixed order: boiler and cylinder transitions feed
// systemNew, flue transitions (with the "any" wildcard on From) then flag
// overrides feed flue, and context-flag rules feed systemNew last. A key
// already accumulated in a bucket is never added twice, so output order is
// first-occurrence order across those passes. Keys are finally resolved
// through lk.Notes; keys without text are dropped.
func EvaluateTransitions(state domain.State, rs *RuleSet, lk *Lookup) TransitionNotes {
	if rs == nil {
		rs = &RuleSet{}
	}
	var systemNew, flue keySet

	for _, r := range rs.BoilerTransitions {
		if r.When.From == state.Boiler.From && r.When.To == state.Boiler.To {
			systemNew.add(r.Add...)
		}
	}
	for _, r := range rs.CylinderTransitions {
		if r.When.From == state.Cylinder.From && r.When.To == state.Cylinder.To {
			systemNew.add(r.Add...)
		}
	}
	for _, r := range rs.FlueTransitions {
		fromOK := r.When.From == domain.Wildcard || r.When.From == state.Flue.From
		if fromOK && r.When.To == state.Flue.To {
			flue.add(r.Add...)
		}
	}
	for _, o := range rs.FlueOverrides {
		if state.Flags.Active(o.Flag) && contains(o.WhenTo, state.Flue.To) {
			flue.add(o.Add...)
		}
	}
	for _, c := range rs.ContextFlags {
		if state.Flags.Active(c.Flag) && contains(c.OnBoilerTo, state.Boiler.To) {
			systemNew.add(c.Add...)
		}
	}

	return TransitionNotes{
		SystemNew: resolve(systemNew.list(), lk.notes()),
		Flue:      resolve(flue.list(), lk.notes()),
	}
}
