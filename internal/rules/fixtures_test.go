package rules

import (
	"github.com/alexanderramin/depotnotes/internal/catalog"
	"github.com/alexanderramin/depotnotes/internal/domain"
)

func intPtr(n int) *int { return &n }

func heatingLookup() *Lookup {
	return &Lookup{
		Notes: map[string]string{
			"keep_open_vent":      "Retain existing open vent and cold feed",
			"retain_vented_cyl":   "Retain vented cylinder; check immersion",
			"fanned_horizontal":   "New fanned horizontal flue",
			"terminal_clearances": "Check terminal clearances to openings",
			"plume_kit":           "Fit plume management kit",
			"remove_shower_pumps": "Remove shower pumps; combi supplies mains pressure",
			"cap_cyl_pipes":       "Cap redundant cylinder pipework",
			"remove_tanks":        "Remove cold water storage tanks from loft",
			"vertical_kit":        "New vertical flue kit through roof",
			"low_pressure_check":  "Record mains flow rate before combi conversion",
			"scaffold":            "Scaffold required for flue access",
			"blank":               "   ",
		},
		BoilerNotes: map[string]string{
			"b_like":   "Like-for-like boiler swap",
			"b_combi":  "Convert to combination boiler",
			"b_remove": "Remove existing boiler and controls",
		},
		FlueNotes: map[string]string{
			"f_fan":  "Fanned flue through wall",
			"f_vert": "Vertical termination through roof",
			"f_make": "Make good old flue opening",
		},
	}
}

func heatingRules() *RuleSet {
	return &RuleSet{
		BoilerTransitions: []TransitionRule{
			{When: domain.Transition{From: "regular", To: "regular"}, Add: []string{"keep_open_vent"}},
			{When: domain.Transition{From: "system", To: "combi"}, Add: []string{"cap_cyl_pipes", "remove_tanks"}},
			{When: domain.Transition{From: "regular", To: "combi"}, Add: []string{"remove_tanks", "cap_cyl_pipes"}},
		},
		CylinderTransitions: []TransitionRule{
			{When: domain.Transition{From: "vented", To: "vented"}, Add: []string{"retain_vented_cyl"}},
			{When: domain.Transition{From: "vented", To: "none"}, Add: []string{"cap_cyl_pipes"}},
		},
		FlueTransitions: []TransitionRule{
			{When: domain.Transition{From: "balanced", To: "fanned_horizontal"}, Add: []string{"fanned_horizontal", "terminal_clearances"}},
			{When: domain.Transition{From: "any", To: "fanned_vertical"}, Add: []string{"vertical_kit"}},
		},
		FlueOverrides: []FlagOverrideRule{
			{Flag: "plume_required", WhenTo: []string{"fanned_horizontal"}, Add: []string{"plume_kit", "terminal_clearances"}},
		},
		ContextFlags: []ContextFlagRule{
			{Flag: "shower_pump_present", OnBoilerTo: []string{"combi"}, Add: []string{"remove_shower_pumps"}},
			{Flag: "low_mains_pressure", OnBoilerTo: []string{"combi"}, Add: []string{"low_pressure_check"}},
		},
		Sections: map[string][]SectionRule{
			"Working at heights": {
				{WhenFlags: []string{"needs_scaffold"}, AddCodes: []string{"WAH01"}, AddTextKeys: []string{"scaffold"}},
			},
			"System characteristics": {
				{WhenToBoiler: []string{"combi"}, AddCodes: []string{"SC02"}},
				{WhenToCylinder: []string{"none"}, WhenFlags: []string{"asbestos_suspected"}, AddCodes: []string{"SC03"}},
			},
			"Flue": {
				{WhenFlags: []string{"plume_required"}, AddCodes: []string{"FL01"}},
			},
		},
		Essentialiser: &EssentialiserConfig{
			MaxPerSection: intPtr(6),
			Priority: map[string][]string{
				"Flue": {"plume_kit"},
			},
		},
	}
}

func heatingMappings() *Mappings {
	return &Mappings{
		Boiler: map[string]string{
			"regular_to_regular": "LIKE b_like",
			"system_to_combi":    "COMBI b_remove b_combi missing_key",
		},
		Flue: map[string]string{
			"balanced_to_fanned_horizontal": "FAN f_fan f_make",
			"any_to_vertical":               "VERT f_vert f_make",
		},
	}
}

const heatingSections = `
[Working at heights]
WAH01 | Ladders | Two-person lift to loft
WAH02 | Scaffold to rear elevation

[System characteristics]
SC01 | Open vented system
SC02 | Sealed system after conversion
SC03 | Asbestos | Suspected asbestos near cylinder; do not disturb

[Flue]
FL01 | Plume | Plume kit to clear boundary
FL02 | Make good flue hole

[Needs]
N01 | Customer requires powerflush quote
`

func heatingBundle() *Bundle {
	return &Bundle{
		Rules:    heatingRules(),
		Lookup:   heatingLookup(),
		Mappings: heatingMappings(),
		Catalog:  catalog.MustParseString(heatingSections),
	}
}

func state(boiler, cylinder, flue [2]string, flags ...string) domain.State {
	f := domain.Flags{}
	for _, name := range flags {
		f[name] = true
	}
	return domain.State{
		Boiler:   domain.Transition{From: boiler[0], To: boiler[1]},
		Cylinder: domain.Transition{From: cylinder[0], To: cylinder[1]},
		Flue:     domain.Transition{From: flue[0], To: flue[1]},
		Flags:    f,
	}
}
