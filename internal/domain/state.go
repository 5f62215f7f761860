package domain

import "sort"

// Transition is one component's change from a named state to another.
type Transition struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Unchanged reports whether the component keeps its current state.
func (t Transition) Unchanged() bool {
	return t.From == t.To
}

// Flags holds boolean site conditions keyed by flag name.
// A missing entry reads as false.
type Flags map[string]bool

// Active reports whether the named flag is set.
func (f Flags) Active(name string) bool {
	if f == nil {
		return false
	}
	return f[name]
}

// Names returns the set flags in sorted order.
func (f Flags) Names() []string {
	names := make([]string, 0, len(f))
	for k, v := range f {
		if v {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// State is the per-evaluation selection snapshot. It is rebuilt from the
// current selections for every evaluation and never persisted as-is.
type State struct {
	Boiler   Transition `json:"boiler"`
	Cylinder Transition `json:"cylinder"`
	Flue     Transition `json:"flue"`
	Flags    Flags      `json:"flags,omitempty"`
}
