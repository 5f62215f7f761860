package rules

import (
	"testing"

	"github.com/alexanderramin/depotnotes/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStates(t *testing.T) {
	rs := heatingRules()

	assert.Equal(t, []string{"combi", "regular", "system"}, rs.States(domain.ComponentBoiler))
	assert.Equal(t, []string{"none", "vented"}, rs.States(domain.ComponentCylinder))
	assert.Equal(t, []string{"balanced", "fanned_horizontal", "fanned_vertical"}, rs.States(domain.ComponentFlue))

	var nilRules *RuleSet
	assert.Empty(t, nilRules.States(domain.ComponentFlue))
}

func TestFlagNames(t *testing.T) {
	assert.Equal(t, []string{
		"asbestos_suspected",
		"low_mains_pressure",
		"needs_scaffold",
		"plume_required",
		"shower_pump_present",
	}, heatingRules().FlagNames())
}
