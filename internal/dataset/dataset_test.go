package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/alexanderramin/depotnotes/internal/domain"
	"github.com/alexanderramin/depotnotes/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rulesJSON = `{
  "flue_transitions": [
    {"when": {"from": "any", "to": "fanned_vertical"}, "add": ["vertical_flue"]}
  ],
  "essentialiser": {"max_per_section": 4}
}`

const rulesYAML = `
flue_transitions:
  - when: {from: any, to: fanned_vertical}
    add: [vertical_flue]
sections:
  Needs:
    - when_flags: [pets]
      add_codes: [ND02]
    - when_to_boiler: []
      add_codes: [ND01]
essentialiser:
  max_per_section: 4
`

const lookupJSON = `{"notes": {"vertical_flue": "New vertical flue through roof"}, "flue_notes": {"vert": "Vertical termination"}}`

const mappingsJSON = `{"flue_mappings": {"any_to_vertical": "VERT vert"}}`

const sectionsTxt = "[Needs]\nND01 | Vulnerable customer\nND02 | Pets on site\n"

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoad_JSON(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"rules.json":          rulesJSON,
		"notes_lookup.json":   lookupJSON,
		"mappings.json":       mappingsJSON,
		"sections_source.txt": sectionsTxt,
	})

	b, err := Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Len(t, b.Rules.FlueTransitions, 1)
	assert.Equal(t, 4, b.Rules.MaxPerSection())
	assert.Equal(t, "New vertical flue through roof", b.Lookup.Notes["vertical_flue"])
	assert.Equal(t, "VERT vert", b.Mappings.Flue["any_to_vertical"])
	assert.Len(t, b.Catalog.Entries("Needs"), 2)

	s := domain.State{Flue: domain.Transition{From: "open", To: "fanned_vertical"}}
	notes := rules.Generate(b, s, nil)
	assert.Equal(t, "Flue; Vertical termination; New vertical flue through roof;", notes[1].Depot)
}

func TestLoad_YAMLKeepsEmptyClauseDistinct(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"rules.yaml":          rulesYAML,
		"notes_lookup.json":   lookupJSON,
		"sections_source.txt": sectionsTxt,
	})

	b, err := Load(context.Background(), dir)
	require.NoError(t, err)

	needs := b.Rules.Sections["Needs"]
	require.Len(t, needs, 2)
	assert.Nil(t, needs[0].WhenToBoiler)
	assert.NotNil(t, needs[1].WhenToBoiler, "an explicit empty list stays non-nil")

	s := domain.State{Flags: domain.Flags{"pets": true}}
	got := rules.EvaluateSection("Needs", b.Rules, b.Catalog, s, rules.TransitionNotes{}, b.Lookup)
	assert.Equal(t, []string{"Pets on site"}, got)
}

func TestLoad_OptionalFilesDefaultEmpty(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"rules.json":        rulesJSON,
		"notes_lookup.json": lookupJSON,
	})

	b, err := Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, b.Mappings.Flue)
	assert.Empty(t, b.Catalog.Names())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
		missing bool
	}{
		{"missing rules", map[string]string{"notes_lookup.json": lookupJSON}, "rules.{json,yaml,yml}", true},
		{"missing lookup", map[string]string{"rules.json": rulesJSON}, "notes_lookup.{json,yaml,yml}", true},
		{"malformed json", map[string]string{"rules.json": `{"flue_transitions": [`, "notes_lookup.json": lookupJSON}, "parsing rules.json", false},
		{"malformed yaml", map[string]string{"rules.yml": "flue_transitions: [\n", "notes_lookup.json": lookupJSON}, "parsing rules.yml", false},
		{"not an object", map[string]string{"rules.json": `["flue_transitions"]`, "notes_lookup.json": lookupJSON}, "parsing rules.json", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, tt.files)
			_, err := Load(context.Background(), dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.missing {
				assert.ErrorIs(t, err, ErrMissing)
			}
		})
	}
}

func TestLoadFS_DropsMalformedGroups(t *testing.T) {
	tests := []struct {
		name  string
		rules string
		file  string
	}{
		{
			name: "json",
			file: "rules.json",
			rules: `{
  "flue_overrides": {"oops": true},
  "flue_transitions": [
    {"when": {"from": "any", "to": "fanned_vertical"}, "add": ["vertical_flue"]}
  ],
  "sections": {
    "Needs": [{"when_flags": ["pets"], "add_codes": ["ND02"]}],
    "Flue": "not a list"
  }
}`,
		},
		{
			name: "yaml",
			file: "rules.yaml",
			rules: `
flue_overrides:
  oops: true
flue_transitions:
  - when: {from: any, to: fanned_vertical}
    add: [vertical_flue]
sections:
  Needs:
    - when_flags: [pets]
      add_codes: [ND02]
  Flue: not a list
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				tt.file:               {Data: []byte(tt.rules)},
				"notes_lookup.json":   {Data: []byte(`{"notes": {"vertical_flue": "New vertical flue through roof"}, "flue_notes": 7}`)},
				"sections_source.txt": {Data: []byte(sectionsTxt)},
			}

			b, err := LoadFS(context.Background(), fsys)
			require.NoError(t, err)

			assert.Empty(t, b.Rules.FlueOverrides)
			assert.Len(t, b.Rules.FlueTransitions, 1)
			assert.Len(t, b.Rules.Sections["Needs"], 1)
			assert.NotContains(t, b.Rules.Sections, "Flue")
			assert.Equal(t, "New vertical flue through roof", b.Lookup.Notes["vertical_flue"])
			assert.Empty(t, b.Lookup.FlueNotes)

			require.Len(t, b.Problems, 3)
			assert.Contains(t, b.Problems[0].Error(), tt.file+": flue_overrides ignored")
			assert.Contains(t, b.Problems[1].Error(), tt.file+": sections.Flue ignored")
			assert.Contains(t, b.Problems[2].Error(), "notes_lookup.json: flue_notes ignored")

			lint := rules.Lint(b)
			require.GreaterOrEqual(t, len(lint), 3)
			assert.Equal(t, b.Problems, lint[:3])

			s := domain.State{
				Flue:  domain.Transition{From: "open", To: "fanned_vertical"},
				Flags: domain.Flags{"pets": true},
			}
			notes := rules.Generate(b, s, nil)
			assert.Equal(t, "Flue; New vertical flue through roof;", notes[1].Depot)
		})
	}
}

func TestLoad_NotADirectory(t *testing.T) {
	dir := writeFiles(t, map[string]string{"rules.json": rulesJSON})
	_, err := Load(context.Background(), filepath.Join(dir, "rules.json"))
	require.Error(t, err)

	_, err = Load(context.Background(), filepath.Join(dir, "nope"))
	require.Error(t, err)
}

func TestLoad_CancelledContext(t *testing.T) {
	dir := writeFiles(t, map[string]string{"rules.json": rulesJSON, "notes_lookup.json": lookupJSON})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDefault_LintsCleanAndCoversScenarios(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)
	assert.Empty(t, rules.Lint(b))

	s := domain.State{
		Boiler:   domain.Transition{From: "system", To: "combi"},
		Cylinder: domain.Transition{From: "unvented", To: "none"},
		Flue:     domain.Transition{From: "balanced", To: "fanned_horizontal"},
		Flags:    domain.Flags{"shower_pump_present": true, "plume_required": true},
	}
	notes := rules.Generate(b, s, nil)
	require.GreaterOrEqual(t, len(notes), 3)

	assert.Equal(t, "Boiler and controls; Remove existing boiler and controls; Convert to combination boiler; Fit new programmable room thermostat;", notes[0].Depot)
	assert.Equal(t, "Fanned flue through external wall", notes[1].Lines[0])
	assert.Contains(t, notes[1].Lines, "Fit plume management kit")
	assert.Equal(t, "Remove shower pumps; combi supplies mains pressure", notes[2].Lines[0], "priority moves the pump note first")
}

func TestIsDataFile(t *testing.T) {
	for _, name := range []string{"rules.json", "rules.yaml", "notes_lookup.yml", "mappings.json", "sections_source.txt"} {
		assert.True(t, IsDataFile(name), name)
	}
	for _, name := range []string{"rules.txt", "other.json", "sections_source.json", ".rules.json.swp"} {
		assert.False(t, IsDataFile(name), name)
	}
}

func TestPaths(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"rules.yaml":          rulesYAML,
		"notes_lookup.json":   lookupJSON,
		"sections_source.txt": sectionsTxt,
		"README.md":           "ignored",
	})

	assert.Equal(t, []string{
		filepath.Join(dir, "rules.yaml"),
		filepath.Join(dir, "notes_lookup.json"),
		filepath.Join(dir, "sections_source.txt"),
	}, Paths(dir))
}
