package domain

// Component identifies one of the three transition families.
type Component string

const (
	ComponentBoiler   Component = "boiler"
	ComponentCylinder Component = "cylinder"
	ComponentFlue     Component = "flue"
)

// Bucket names a note accumulator produced by transition evaluation.
type Bucket string

const (
	BucketBoiler    Bucket = "boiler"
	BucketFlue      Bucket = "flue"
	BucketSystemNew Bucket = "systemNew"
	BucketPipe      Bucket = "pipe"
)

// Wildcard matches any source state in a flue transition rule.
const Wildcard = "any"

// Output section titles.
const (
	SectionBoilerControls   = "Boiler and controls"
	SectionFlue             = "Flue"
	SectionSystemNew        = "System characteristics (new)"
	SectionNeeds            = "Needs"
	SectionWorkingAtHeights = "Working at heights"
	SectionSystemExisting   = "System characteristics"
	SectionArseCover        = "Arse cover notes"
	SectionAssistance       = "Components that require assistance"
	SectionRestrictions     = "Restrictions to work"
	SectionHazards          = "External hazards"
	SectionDelivery         = "Delivery notes"
	SectionOffice           = "Office notes"
	SectionPipework         = "Pipework"
	SectionDisruption       = "Disruption"
	SectionRadiators        = "Radiators"
	SectionCustomer         = "Customer actions"
)

// TransitionSections are always emitted, even when they carry no notes.
var TransitionSections = []string{
	SectionBoilerControls,
	SectionFlue,
	SectionSystemNew,
}

// ChecklistSections are emitted only when at least one note applies.
var ChecklistSections = []string{
	SectionNeeds,
	SectionWorkingAtHeights,
	SectionSystemExisting,
	SectionArseCover,
	SectionAssistance,
	SectionRestrictions,
	SectionHazards,
	SectionDelivery,
	SectionOffice,
	SectionPipework,
	SectionDisruption,
	SectionRadiators,
	SectionCustomer,
}

// OutputSections lists every section title in display order.
func OutputSections() []string {
	out := make([]string, 0, len(TransitionSections)+len(ChecklistSections))
	out = append(out, TransitionSections...)
	out = append(out, ChecklistSections...)
	return out
}

// IsTransitionSection reports whether the section is always emitted.
func IsTransitionSection(name string) bool {
	for _, s := range TransitionSections {
		if s == name {
			return true
		}
	}
	return false
}
