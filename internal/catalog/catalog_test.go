package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = `
orphan | ignored before any header

[Needs]
N01 | Customer needs a quote for powerflush
N02 | Access | Loft ladder required | fixed type

[Flue]
F01 | Terminal within 300mm of opening
not-a-record
F02 | Plume |
F03 |  |

[Needs]
N09 | Reopened section replaces the earlier one
`

func TestParse_SectionsAndRecords(t *testing.T) {
	c := MustParseString(sampleSource)

	assert.Equal(t, []string{"Needs", "Flue"}, c.Names())

	needs := c.Entries("Needs")
	require.Len(t, needs, 1, "reopening a section resets it")
	assert.Equal(t, Entry{Code: "N09", Text: "Reopened section replaces the earlier one"}, needs[0])

	flue := c.Entries("Flue")
	require.Len(t, flue, 3)
	assert.Equal(t, Entry{Code: "F01", Text: "Terminal within 300mm of opening"}, flue[0])
	assert.Equal(t, Entry{Code: "F02", Group: "Plume", Text: "Plume"}, flue[1], "empty text falls back to group")
	assert.Equal(t, Entry{Code: "F03", Text: ""}, flue[2])
}

func TestParse_ThreeFieldRejoinsTrailingText(t *testing.T) {
	c := MustParseString("[Needs]\nN02 | Access | Loft ladder required | fixed type\n")
	entries := c.Entries("Needs")
	require.Len(t, entries, 1)
	assert.Equal(t, "Access", entries[0].Group)
	assert.Equal(t, "Loft ladder required | fixed type", entries[0].Text)
}

func TestParse_CRLF(t *testing.T) {
	c := MustParseString("[Radiators]\r\nR01 | Replace TRVs\r\n\r\n")
	require.True(t, c.Has("Radiators"))
	assert.Equal(t, "Replace TRVs", c.Entries("Radiators")[0].Text)
}

func TestLookup_ExactThenAlias(t *testing.T) {
	c := MustParseString("[System characteristics]\nS01 | Open vented\n[Pipe work]\nP01 | Re-pipe\n")
	aliases := map[string]string{
		"System characteristics (new)": "System characteristics",
		"Pipework":                     "Pipe work",
	}

	assert.Len(t, c.Lookup("System characteristics", aliases), 1)
	assert.Len(t, c.Lookup("System characteristics (new)", aliases), 1)
	assert.Len(t, c.Lookup("Pipework", aliases), 1)
	assert.Empty(t, c.Lookup("Unknown", aliases))

	var nilCat *Catalog
	assert.Empty(t, nilCat.Lookup("Pipework", aliases))
	assert.Empty(t, nilCat.Names())
}

func TestCodeText_FirstWins(t *testing.T) {
	m := CodeText([]Entry{{Code: "A", Text: "first"}, {Code: "A", Text: "second"}, {Code: "B", Text: "b"}})
	assert.Equal(t, map[string]string{"A": "first", "B": "b"}, m)
}

func TestNew_PreservesGivenOrder(t *testing.T) {
	c := New(map[string][]Entry{
		"Flue":  {{Code: "F01", Text: "x"}},
		"Needs": {{Code: "N01", Text: "y"}},
	}, "Needs", "Flue")
	assert.Equal(t, []string{"Needs", "Flue"}, c.Names())
}

func TestParse_OversizedLine(t *testing.T) {
	src := "[Needs]\nN01 | " + strings.Repeat("x", 2*1024*1024) + "\n"

	_, err := Parse(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading section catalog")

	assert.PanicsWithValue(t, "catalog: MustParseString: "+err.Error(), func() {
		MustParseString(src)
	})
}
