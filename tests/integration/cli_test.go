// Package integration exercises the daybook CLI end to end: commands
// run in-process against temporary config and data directories, and
// assertions inspect both command output and the files left on disk.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietgrove/daybook/internal/cli"
	"github.com/quietgrove/daybook/pkg/types"
)

// env holds the directories for one simulated installation.
type env struct {
	configDir string
	dataDir   string
}

func newEnv(t *testing.T) env {
	t.Helper()
	base := t.TempDir()
	return env{
		configDir: filepath.Join(base, "config"),
		dataDir:   filepath.Join(base, "data"),
	}
}

// run executes one daybook invocation and returns stdout and stderr.
func (e env) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := cli.NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func (e env) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, _, err := e.run(t, args...)
	require.NoError(t, err, "daybook %v", args)
	return out
}

func TestInitCreatesConfigAndSeedsHabits(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun(t, "init")
	assert.Contains(t, out, "initialized successfully")

	_, err := os.Stat(filepath.Join(e.configDir, "config.yaml"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(e.dataDir, "habits.json"))
	assert.NoError(t, err)

	listOut := e.mustRun(t, "--json", "habit", "list")
	var habits []types.Habit
	require.NoError(t, json.Unmarshal([]byte(listOut), &habits))
	assert.Len(t, habits, 9, "fresh store is seeded with the default habit set")
}

func TestInitIdempotent(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "init")
	e.mustRun(t, "init")

	listOut := e.mustRun(t, "--json", "habit", "list")
	var habits []types.Habit
	require.NoError(t, json.Unmarshal([]byte(listOut), &habits))
	assert.Len(t, habits, 9, "re-running init must not duplicate the seeds")
}

func TestHabitLifecycle(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "init")

	addOut := e.mustRun(t, "--json", "habit", "add", "MEDITATION", "--kind", "goal", "--abbr", "MD", "--flames", "4")
	var added types.Habit
	require.NoError(t, json.Unmarshal([]byte(addOut), &added))
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, 4, added.FlameCount)

	e.mustRun(t, "habit", "update", "MEDITATION", "--name", "MORNING MEDITATION")
	e.mustRun(t, "habit", "remove", "MORNING MEDITATION")

	listOut := e.mustRun(t, "--json", "habit", "list")
	var habits []types.Habit
	require.NoError(t, json.Unmarshal([]byte(listOut), &habits))
	assert.Len(t, habits, 9)
}

func TestCheckAndStats(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "init")
	e.mustRun(t, "habit", "add", "MEDITATION", "--abbr", "MD")

	e.mustRun(t, "--date", "2024-03-01", "check", "MEDITATION")
	e.mustRun(t, "--date", "2024-03-03", "check", "MEDITATION", "--undo")

	statsOut := e.mustRun(t, "--json", "--date", "2024-03-31", "stats", "MEDITATION")
	var stats []struct {
		Name           string `json:"name"`
		CompletionRate int    `json:"completionRate"`
	}
	require.NoError(t, json.Unmarshal([]byte(statsOut), &stats))
	require.Len(t, stats, 1)
	// One completion out of two recorded days; the absent days between
	// do not count against the rate.
	assert.Equal(t, 50, stats[0].CompletionRate)
}

func TestMomentSleepMoodAndMonth(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "init")

	e.mustRun(t, "--date", "2024-03-15", "moment", "saw", "the", "northern", "lights")
	e.mustRun(t, "--date", "2024-03-15", "sleep", "4", "7.5")
	e.mustRun(t, "--date", "2024-03-15", "mood", "5")

	monthOut := e.mustRun(t, "--date", "2024-03-01", "month")
	assert.Contains(t, monthOut, "saw the northern lights")
	assert.Contains(t, monthOut, "sleep=4")
	assert.Contains(t, monthOut, "mood=5")
}

func TestGoals(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "init")

	e.mustRun(t, "--date", "2024-03-01", "goals", "set", "ship the release", "run 50km", "read two books")
	e.mustRun(t, "--date", "2024-03-10", "goals", "done", "2")

	showOut := e.mustRun(t, "--date", "2024-03-20", "goals", "show")
	assert.Contains(t, showOut, "run 50km")
	assert.Contains(t, showOut, "1/3 goals completed")
}

func TestExportImportRoundTrip(t *testing.T) {
	source := newEnv(t)
	source.mustRun(t, "init")
	source.mustRun(t, "--date", "2024-03-01", "moment", "hello")
	snapshot := filepath.Join(t.TempDir(), "snapshot.json")
	source.mustRun(t, "export", snapshot)

	dest := newEnv(t)
	dest.mustRun(t, "init")
	dest.mustRun(t, "import", snapshot)

	srcHabits := source.mustRun(t, "--json", "habit", "list")
	dstHabits := dest.mustRun(t, "--json", "habit", "list")
	assert.JSONEq(t, srcHabits, dstHabits)

	monthOut := dest.mustRun(t, "--date", "2024-03-01", "month")
	assert.Contains(t, monthOut, "hello")
}

func TestLegacyJournalMigratesOnLoad(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.MkdirAll(e.dataDir, 0o755))

	// Registry with known ids, journal keyed by position with no
	// version field (the legacy schema).
	habits := `[
	  {"id":"a1","name":"ALPHA","type":"goal"},
	  {"id":"b1","name":"BRAVO","type":"goal"},
	  {"id":"c1","name":"CHARLIE","type":"number"}
	]`
	journal := `{"months":{"2024-2":{"days":{"5":{"habits":{"0":true,"2":5,"zzz":true}}}}}}`
	require.NoError(t, os.WriteFile(filepath.Join(e.dataDir, "habits.json"), []byte(habits), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(e.dataDir, "journal.json"), []byte(journal), 0o644))

	_, errOut, err := e.run(t, "--date", "2024-03-05", "month")
	require.NoError(t, err)
	assert.Contains(t, errOut, "2 entries remapped, 1 dropped")

	// The repaired journal was written back: a second command sees a
	// current-schema store and reports no migration.
	_, errOut, err = e.run(t, "--date", "2024-03-05", "month")
	require.NoError(t, err)
	assert.NotContains(t, errOut, "remapped")

	data, err := os.ReadFile(filepath.Join(e.dataDir, "journal.json"))
	require.NoError(t, err)
	var repaired types.Journal
	require.NoError(t, json.Unmarshal(data, &repaired))
	assert.Equal(t, types.JournalVersion, repaired.Version)
	day := repaired.Months["2024-2"].Days[5]
	assert.Equal(t, types.BoolValue(true), day.Habits["a1"])
	assert.Equal(t, types.NumberValue(5), day.Habits["c1"])
	_, ok := day.Habits["zzz"]
	assert.False(t, ok, "orphan key dropped")
}

func TestCorruptJournalFallsBackToEmpty(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "init")
	require.NoError(t, os.WriteFile(filepath.Join(e.dataDir, "journal.json"), []byte("{broken"), 0o644))

	out, errOut, err := e.run(t, "--date", "2024-03-01", "month")
	require.NoError(t, err)
	assert.Contains(t, errOut, "starting from empty data")
	assert.Contains(t, out, "No records this month.")
}

func TestSQLiteBackend(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "init", "--backend", "sqlite")

	_, err := os.Stat(filepath.Join(e.dataDir, "daybook.db"))
	require.NoError(t, err)

	e.mustRun(t, "--date", "2024-03-01", "moment", "stored in sqlite")
	monthOut := e.mustRun(t, "--date", "2024-03-01", "month")
	assert.Contains(t, monthOut, "stored in sqlite")
}
