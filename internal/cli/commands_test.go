package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/baus/internal/config"
	"github.com/roach88/baus/internal/lines"
	"github.com/roach88/baus/internal/score"
	"github.com/roach88/baus/internal/store"
	"github.com/roach88/baus/internal/testutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSaveThenSort(t *testing.T) {
	dir := t.TempDir()

	for _, line := range []string{"b\n", "b\n", "a\n"} {
		stdout, _, err := runBaus(t, line, "--cache-dir", dir, "-n", "picks", "save")
		require.NoError(t, err)
		assert.Equal(t, line, stdout)
	}

	scores := testutil.ReadScores(t, filepath.Join(dir, "picks"))
	assert.Equal(t, score.Scores{"a": 1, "b": 2}, scores)

	stdout, _, err := runBaus(t, "a\nb\nc\n", "--cache-dir", dir, "-n", "picks", "sort")
	require.NoError(t, err)
	assert.Equal(t, "c\na\nb\n", stdout)

	stdout, _, err = runBaus(t, "a\nb\nc\n", "--cache-dir", dir, "-n", "picks", "sort", "--desc")
	require.NoError(t, err)
	assert.Equal(t, "b\na\nc\n", stdout)

	// Sorting does not change scores.
	assert.Equal(t, scores, testutil.ReadScores(t, filepath.Join(dir, "picks")))
}

func TestSortCreatesMissingCache(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := runBaus(t, "x\ny\n", "--cache-dir", dir, "sort")
	require.NoError(t, err)
	assert.Equal(t, "x\ny\n", stdout)

	data, err := os.ReadFile(filepath.Join(dir, config.DefaultName))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestSortCleanup(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteScores(t, dir, "picks", score.Scores{"a": 3, "gone": 5})

	stdout, _, err := runBaus(t, "a\nnew\n", "--cache-dir", dir, "-n", "picks", "sort", "--cleanup")
	require.NoError(t, err)
	assert.Equal(t, "new\na\n", stdout)

	assert.Equal(t, score.Scores{"a": 3, "new": 0}, testutil.ReadScores(t, path))
}

func TestSaveEmptyInput(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := runBaus(t, "", "--cache-dir", dir, "save")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	assert.Equal(t, score.Scores{}, testutil.ReadScores(t, filepath.Join(dir, config.DefaultName)))
}

func TestSaveOnlyFirstLine(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := runBaus(t, "first\nsecond\n", "--cache-dir", dir, "save")
	require.NoError(t, err)
	assert.Equal(t, "first\n", stdout)
	assert.Equal(t, score.Scores{"first": 1}, testutil.ReadScores(t, filepath.Join(dir, config.DefaultName)))
}

func TestSaveTimestamp(t *testing.T) {
	dir := t.TempDir()

	before := time.Now().Unix()
	_, _, err := runBaus(t, "ssh prod\n", "--cache-dir", dir, "save", "--value", "timestamp")
	require.NoError(t, err)
	after := time.Now().Unix()

	got := testutil.ReadScores(t, filepath.Join(dir, config.DefaultName)).Get("ssh prod")
	assert.GreaterOrEqual(t, got, before)
	assert.LessOrEqual(t, got, after)
}

func TestInvalidUTF8InputRejected(t *testing.T) {
	dir := t.TempDir()

	for _, args := range [][]string{{"save"}, {"sort", "--cleanup"}} {
		t.Run(args[0], func(t *testing.T) {
			stdout, _, err := runBaus(t, "ok\ncaf\xe9\n", append([]string{"--cache-dir", dir, "-n", "picks"}, args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.ErrorIs(t, err, lines.ErrInvalidUTF8)
			assert.Equal(t, "read input: line 2: invalid UTF-8", err.Error())
			assert.Empty(t, stdout)
		})
	}

	assert.NoFileExists(t, filepath.Join(dir, "picks"))
}

func TestSaveCountsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	line := "caf\u00e9 \u2028 <tag> & \"quoted\""

	for i := 0; i < 3; i++ {
		_, _, err := runBaus(t, line+"\n", "--cache-dir", dir, "save")
		require.NoError(t, err)
	}

	assert.Equal(t, score.Scores{line: 3}, testutil.ReadScores(t, filepath.Join(dir, config.DefaultName)))
}

func TestSaveInvalidValue(t *testing.T) {
	stdout, _, err := runBaus(t, "x\n", "--cache-dir", t.TempDir(), "save", "--value", "weekly")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Empty(t, stdout)
}

func TestMalformedCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": "one"}`), 0o644))

	for _, args := range [][]string{{"sort"}, {"save"}, {"show"}} {
		t.Run(args[0], func(t *testing.T) {
			stdout, _, err := runBaus(t, "a\n", append([]string{"--cache-dir", dir, "-n", "broken"}, args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.True(t, store.IsFormatError(err))
			assert.Empty(t, stdout)
		})
	}

	// The broken file is left as it was.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a": "one"}`, string(data))
}

func TestSQLiteBackend(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runBaus(t, "b\n", "--cache-dir", dir, "--backend", "sqlite", "-n", "picks", "save")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "picks.db"))
	assert.NoFileExists(t, filepath.Join(dir, "picks"))

	stdout, _, err := runBaus(t, "a\nb\n", "--cache-dir", dir, "--backend", "sqlite", "-n", "picks", "sort", "--desc")
	require.NoError(t, err)
	assert.Equal(t, "b\na\n", stdout)
}

func TestNormalizeFlag(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runBaus(t, "cafe\u0301\n", "--cache-dir", dir, "--normalize", "save")
	require.NoError(t, err)

	scores := testutil.ReadScores(t, filepath.Join(dir, config.DefaultName))
	assert.Equal(t, score.Scores{"caf\u00e9": 1}, scores)
}

func TestProfileFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteScores(t, dir, "picks", score.Scores{"a": 1, "b": 2})

	cfgPath := writeConfig(t, "cache_dir: "+dir+"\nprofiles:\n  picks:\n    desc: true\n")

	stdout, _, err := runBaus(t, "a\nb\nc\n", "--config", cfgPath, "-n", "picks", "sort")
	require.NoError(t, err)
	assert.Equal(t, "b\na\nc\n", stdout)

	// An explicit flag beats the profile.
	stdout, _, err = runBaus(t, "a\nb\nc\n", "--config", cfgPath, "-n", "picks", "sort", "--desc=false")
	require.NoError(t, err)
	assert.Equal(t, "c\na\nb\n", stdout)
}

func TestProfileValueOverriddenByFlag(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, "profiles:\n  picks:\n    value: timestamp\n")

	_, _, err := runBaus(t, "x\n", "--config", cfgPath, "--cache-dir", dir, "-n", "picks", "save", "--value", "count")
	require.NoError(t, err)

	assert.Equal(t, score.Scores{"x": 1}, testutil.ReadScores(t, filepath.Join(dir, "picks")))
}

func TestInvalidConfigFile(t *testing.T) {
	cfgPath := writeConfig(t, "bogus: 1\n")

	stdout, _, err := runBaus(t, "x\n", "--config", cfgPath, "--cache-dir", t.TempDir(), "sort")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Empty(t, stdout)
}

func TestMissingExplicitConfigFile(t *testing.T) {
	_, _, err := runBaus(t, "x\n", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "--cache-dir", t.TempDir(), "sort")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestShowText(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteScores(t, dir, "picks", score.Scores{"low": 1, "high": 9, "mid": 4})

	stdout, _, err := runBaus(t, "", "--cache-dir", dir, "-n", "picks", "show")
	require.NoError(t, err)
	assert.Equal(t, "9\thigh\n4\tmid\n1\tlow\n", stdout)
}

func TestShowJSON(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteScores(t, dir, "picks", score.Scores{"b": 2, "a": 2, "c": 7})

	stdout, _, err := runBaus(t, "", "--cache-dir", dir, "-n", "picks", "show", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   ShowResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "picks", resp.Data.Name)
	assert.Equal(t, []ShowEntry{
		{Line: "c", Score: 7},
		{Line: "a", Score: 2},
		{Line: "b", Score: 2},
	}, resp.Data.Entries)
}

func TestShowMissingCache(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := runBaus(t, "", "--cache-dir", dir, "-n", "never", "show")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.NoFileExists(t, filepath.Join(dir, "never"))
}

func TestShowMalformedJSONOutput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken"), []byte("[1,2]"), 0o644))

	stdout, _, err := runBaus(t, "", "--cache-dir", dir, "-n", "broken", "show", "--format", "json")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeFormat, resp.Error.Code)
}

func TestShowInvalidFormat(t *testing.T) {
	_, _, err := runBaus(t, "", "--cache-dir", t.TempDir(), "show", "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestVerboseLogsToStderr(t *testing.T) {
	dir := t.TempDir()

	stdout, stderr, err := runBaus(t, "x\n", "--cache-dir", dir, "-v", "save")
	require.NoError(t, err)
	assert.Equal(t, "x\n", stdout)
	assert.Contains(t, stderr, "run_id=")
	assert.Contains(t, stderr, "action=save")
}
