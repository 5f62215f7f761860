package testutil

import (
	"time"

	"github.com/alexanderramin/depotnotes/internal/catalog"
	"github.com/alexanderramin/depotnotes/internal/domain"
	"github.com/alexanderramin/depotnotes/internal/rules"
	"github.com/google/uuid"
)

// Job options
type JobOption func(*domain.Job)

func WithReference(ref string) JobOption {
	return func(j *domain.Job) {
		j.Reference = ref
	}
}

func WithState(s domain.State) JobOption {
	return func(j *domain.Job) {
		j.State = s
	}
}

func WithCreatedAt(t time.Time) JobOption {
	return func(j *domain.Job) {
		j.CreatedAt = t
	}
}

func WithNotes(notes ...domain.SectionNote) JobOption {
	return func(j *domain.Job) {
		j.Notes = notes
	}
}

// NewTestJob builds a combi conversion job with two formatted sections.
func NewTestJob(opts ...JobOption) *domain.Job {
	j := &domain.Job{
		ID:        uuid.New().String(),
		Reference: "WO-1001",
		State: domain.State{
			Boiler:   domain.Transition{From: "regular", To: "combi"},
			Cylinder: domain.Transition{From: "vented", To: "none"},
			Flue:     domain.Transition{From: "open", To: "fanned_horizontal"},
			Flags:    domain.Flags{"plume_required": true},
		},
		Notes: []domain.SectionNote{
			{Section: domain.SectionFlue, Lines: []string{"New fanned flue", "Fit plume kit"}, Depot: "Flue; New fanned flue; Fit plume kit;"},
			{Section: domain.SectionSystemNew, Lines: []string{"Remove tanks"}, Depot: "System characteristics (new); Remove tanks;"},
		},
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// NewTestBundle returns a small, lint-clean dataset: a regular-to-combi
// conversion, a vertical flue with its any_to_vertical mapping, one flue
// override, one context flag, and a Needs checklist.
func NewTestBundle() *rules.Bundle {
	limit := 6
	return &rules.Bundle{
		Rules: &rules.RuleSet{
			BoilerTransitions: []rules.TransitionRule{
				{When: domain.Transition{From: "regular", To: "combi"}, Add: []string{"remove_tanks", "cap_pipes"}},
			},
			CylinderTransitions: []rules.TransitionRule{
				{When: domain.Transition{From: "vented", To: "none"}, Add: []string{"remove_cylinder", "cap_pipes"}},
			},
			FlueTransitions: []rules.TransitionRule{
				{When: domain.Transition{From: "open", To: "fanned_horizontal"}, Add: []string{"fanned_flue"}},
				{When: domain.Transition{From: domain.Wildcard, To: "fanned_vertical"}, Add: []string{"vertical_flue"}},
			},
			FlueOverrides: []rules.FlagOverrideRule{
				{Flag: "plume_required", WhenTo: []string{"fanned_horizontal"}, Add: []string{"plume_kit"}},
			},
			ContextFlags: []rules.ContextFlagRule{
				{Flag: "shower_pump_present", OnBoilerTo: []string{"combi"}, Add: []string{"remove_shower_pump"}},
			},
			Sections: map[string][]rules.SectionRule{
				domain.SectionNeeds: {
					{WhenFlags: []string{"pets"}, AddCodes: []string{"ND02"}},
				},
			},
			Essentialiser: &rules.EssentialiserConfig{
				MaxPerSection: &limit,
				Priority: map[string][]string{
					domain.SectionFlue: {"plume_kit"},
				},
			},
		},
		Lookup: &rules.Lookup{
			Notes: map[string]string{
				"remove_tanks":       "Remove tanks from loft",
				"cap_pipes":          "Cap redundant pipework",
				"remove_cylinder":    "Remove cylinder",
				"fanned_flue":        "New fanned flue",
				"vertical_flue":      "New vertical flue",
				"plume_kit":          "Fit plume kit",
				"remove_shower_pump": "Remove shower pump",
			},
			BoilerNotes: map[string]string{
				"conv_combi": "Convert to combi",
			},
			FlueNotes: map[string]string{
				"vert": "Vertical termination",
			},
		},
		Mappings: &rules.Mappings{
			Boiler: map[string]string{"regular_to_combi": "COMBI conv_combi"},
			Flue:   map[string]string{"any_to_vertical": "VERT vert"},
		},
		Catalog: catalog.MustParseString("[Needs]\nND01 | Vulnerable customer\nND02 | Pets on site\n"),
	}
}
