package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/depotnotes/internal/contract"
	"github.com/alexanderramin/depotnotes/internal/repository"
	"github.com/alexanderramin/depotnotes/internal/rules"
	"github.com/alexanderramin/depotnotes/internal/service"
	"github.com/alexanderramin/depotnotes/internal/teatest"
	"github.com/alexanderramin/depotnotes/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func testApp(t *testing.T) *App {
	t.Helper()
	conn := testutil.NewTestDB(t)
	ds := service.NewDatasetService(testutil.NewTestBundle(), "fixture")

	return &App{
		Notes:   service.NewNoteService(ds, testutil.NewTestUoW(conn)),
		History: service.NewHistoryService(repository.NewSQLiteJobRepo(conn), 20),
		Dataset: ds,
		Now:     func() time.Time { return fixedNow },
		// DataDir left empty: the fixture bundle is in memory.
	}
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// stubClipboard captures clipboard writes for the duration of the test.
func stubClipboard(t *testing.T, err error) *[]string {
	t.Helper()
	var written []string
	orig := clipboardWriteAll
	clipboardWriteAll = func(s string) error {
		written = append(written, s)
		return err
	}
	t.Cleanup(func() { clipboardWriteAll = orig })
	return &written
}

var combiArgs = []string{
	"--boiler", "regular:combi",
	"--cylinder", "vented:none",
	"--flue", "open:fanned_horizontal",
	"--flag", "plume_required",
}

const (
	wantBoiler = "Boiler and controls; Convert to combi;"
	wantFlue   = "Flue; Fit plume kit; New fanned flue;"
	wantSystem = "System characteristics (new); Remove tanks from loft; Cap redundant pipework; Remove cylinder;"
)

// --- generate ---

func TestGenerate_Raw(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, append([]string{"generate", "--raw"}, combiArgs...)...)
	require.NoError(t, err)
	assert.Equal(t, wantBoiler+"\n"+wantFlue+"\n"+wantSystem+"\n", out)
}

func TestGenerate_SelectAddsChecklistSection(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, append([]string{"gen", "--raw", "--select", "Needs=ND01"}, combiArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Needs; Vulnerable customer;\n")
}

func TestGenerate_FlagEnablesSectionRule(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "generate", "--raw", "--boiler", "combi", "--flag", "pets")
	require.NoError(t, err)
	assert.Contains(t, out, "Needs; Pets on site;\n")
	assert.Contains(t, out, "Boiler and controls;\n")
}

func TestGenerate_NoSelectionsStillEmitsTransitionSections(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "generate", "--raw")
	require.NoError(t, err)
	assert.Equal(t, "Boiler and controls;\nFlue;\nSystem characteristics (new);\n", out)
}

func TestGenerate_Styled(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, append([]string{"generate", "--ref", "WO-4411"}, combiArgs...)...)
	require.NoError(t, err)
	plain := teatest.StripANSI(out)
	assert.Contains(t, plain, "DEPOT NOTES · WO-4411")
	assert.Contains(t, plain, "regular → combi")
	assert.Contains(t, plain, wantFlue)
	assert.NotContains(t, plain, "saved as job")
}

func TestGenerate_JSON(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, append([]string{"generate", "--json"}, combiArgs...)...)
	require.NoError(t, err)

	var resp contract.NotesResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Sections, 3)
	assert.Equal(t, wantFlue, resp.Sections[1].Depot)
	assert.Equal(t, strings.Join([]string{wantBoiler, wantFlue, wantSystem}, " "), resp.CopyAll)
	assert.True(t, resp.State.Flags.Active("plume_required"))
	assert.Empty(t, resp.JobID)
}

func TestGenerate_JSONAndRawAreExclusive(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "generate", "--json", "--raw")
	assert.Error(t, err)
}

func TestGenerate_InvalidTransition(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "generate", "--boiler", "regular:")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want FROM:TO")
}

func TestGenerate_InvalidSelect(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "generate", "--select", "ND01")
	var ne *contract.NotesError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, contract.ErrInvalidSelection, ne.Code)
}

func TestGenerate_Copy(t *testing.T) {
	app := testApp(t)
	written := stubClipboard(t, nil)

	out, err := executeCmd(t, app, append([]string{"generate", "--copy"}, combiArgs...)...)
	require.NoError(t, err)
	require.Len(t, *written, 1)
	assert.Equal(t, wantBoiler+" "+wantFlue+" "+wantSystem, (*written)[0])
	assert.Contains(t, out, "copied all sections")
}

func TestGenerate_CopyFailure(t *testing.T) {
	app := testApp(t)
	stubClipboard(t, errors.New("no clipboard utility"))

	_, err := executeCmd(t, app, append([]string{"generate", "--copy"}, combiArgs...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "copying to clipboard")
}

func TestGenerate_WizardRunsWhenInteractive(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }

	orig := runWizard
	t.Cleanup(func() { runWizard = orig })
	var seeded wizardAnswers
	runWizard = func(_ *cobra.Command, a *wizardAnswers, _ *App) error {
		seeded = *a
		a.BoilerFrom, a.BoilerTo = "regular", "combi"
		a.Checklist = append(a.Checklist, "Needs=ND01")
		return nil
	}

	out, err := executeCmd(t, app, "generate", "--raw", "--flag", "shower_pump_present")
	require.NoError(t, err)
	assert.Equal(t, []string{"shower_pump_present"}, seeded.Flags)
	assert.Contains(t, out, "Needs; Vulnerable customer;")
	assert.Contains(t, out, "Remove shower pump")
}

func TestGenerate_WizardSkippedWhenComponentsGiven(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }

	orig := runWizard
	t.Cleanup(func() { runWizard = orig })
	runWizard = func(*cobra.Command, *wizardAnswers, *App) error {
		t.Fatal("wizard should not run")
		return nil
	}

	_, err := executeCmd(t, app, append([]string{"generate", "--raw"}, combiArgs...)...)
	require.NoError(t, err)
}

func TestGenerate_WizardAborted(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }

	orig := runWizard
	t.Cleanup(func() { runWizard = orig })
	runWizard = func(*cobra.Command, *wizardAnswers, *App) error {
		return errors.New("user aborted")
	}

	_, err := executeCmd(t, app, "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard: user aborted")
}

// --- history ---

func TestHistory_SaveListShowDelete(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, append([]string{"generate", "--save", "--ref", "WO-77"}, combiArgs...)...)
	require.NoError(t, err)
	require.Contains(t, out, "saved as job")

	jobs, err := app.History.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	short := jobs[0].ID[:8]

	out, err = executeCmd(t, app, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, teatest.StripANSI(out), "WO-77")
	assert.Contains(t, out, short)

	out, err = executeCmd(t, app, "history", "show", "--raw", short)
	require.NoError(t, err)
	assert.Equal(t, wantBoiler+"\n"+wantFlue+"\n"+wantSystem+"\n", out)

	out, err = executeCmd(t, app, "history", "show", short)
	require.NoError(t, err)
	assert.Contains(t, teatest.StripANSI(out), "WO-77")

	out, err = executeCmd(t, app, "history", "rm", short)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted job")

	out, err = executeCmd(t, app, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved jobs.")
}

func TestHistory_ShowUnknown(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "history", "show", "deadbeef")
	require.Error(t, err)
	assert.Equal(t, `job "deadbeef" not found`, err.Error())
}

func TestHistory_DeleteUnknown(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "history", "delete", "deadbeef")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestHistory_ListLimit(t *testing.T) {
	app := testApp(t)
	for i := 0; i < 3; i++ {
		_, err := executeCmd(t, app, append([]string{"generate", "--save", "--raw"}, combiArgs...)...)
		require.NoError(t, err)
	}

	jobs, err := app.History.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)

	out, err := executeCmd(t, app, "history", "list", "--limit", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "regular → combi"))
}

// --- sections ---

func TestSections_List(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "sections")
	require.NoError(t, err)
	plain := teatest.StripANSI(out)
	assert.Contains(t, plain, "Needs")
	assert.Contains(t, plain, "2")
}

func TestSections_Codes(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "sections", "Needs")
	require.NoError(t, err)
	plain := teatest.StripANSI(out)
	assert.Contains(t, plain, "ND01")
	assert.Contains(t, plain, "Pets on site")
}

func TestSections_Unknown(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "sections", "Loft")
	require.NoError(t, err)
	assert.Contains(t, out, `No catalog entries for "Loft".`)
}

// --- rules ---

func TestRulesCheck_Clean(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "rules", "check")
	require.NoError(t, err)
	assert.Contains(t, teatest.StripANSI(out), "rule data in fixture is clean")
}

func TestRulesCheck_Findings(t *testing.T) {
	app := testApp(t)
	b := testutil.NewTestBundle()
	b.Rules.BoilerTransitions = append(b.Rules.BoilerTransitions, rules.TransitionRule{
		When: b.Rules.BoilerTransitions[0].When,
		Add:  []string{"no_such_note"},
	})
	app.Dataset.Swap(b)

	out, err := executeCmd(t, app, "rules", "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "finding(s)")
	assert.Contains(t, out, "no_such_note")
}

func TestRulesVocab(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "rules", "vocab")
	require.NoError(t, err)
	plain := teatest.StripANSI(out)
	assert.Contains(t, plain, "combi, regular")
	assert.Contains(t, plain, "none, vented")
	assert.Contains(t, plain, "fanned_horizontal, fanned_vertical, open")
	assert.Contains(t, plain, "pets, plume_required, shower_pump_present")
}

// --- watch / live ---

func TestWatch_RequiresDataDir(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "watch", "--boiler", "combi")
	assert.ErrorIs(t, err, errNoDataDir)
}

func TestLive_WatchRequiresDataDir(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "live", "--watch")
	assert.ErrorIs(t, err, errNoDataDir)
}

func TestRegenerateOnUpdate(t *testing.T) {
	app := testApp(t)
	req, err := (&selectionFlags{boiler: "regular:combi"}).request()
	require.NoError(t, err)

	b := testutil.NewTestBundle()
	b.Lookup.BoilerNotes["conv_combi"] = "Convert to combination boiler"
	updates := make(chan *rules.Bundle, 1)
	updates <- b
	close(updates)

	cmd := &cobra.Command{}
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetContext(context.Background())

	require.NoError(t, regenerateOnUpdate(context.Background(), cmd, app, req, true, updates))
	assert.Contains(t, buf.String(), "reloaded 09:30:00")
	assert.Contains(t, buf.String(), "Boiler and controls; Convert to combination boiler;\n")
	assert.Same(t, b, app.Dataset.Bundle())
}
