package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)
			assert.Equal(t, name, scenario.Name, "scenario name should match file name")

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "picker-session.yaml"))
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_ReportsOutputMismatch(t *testing.T) {
	want := []string{"horse", "hamster"}
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "wrong order on purpose",
		Store:       map[string]int64{"horse": 2, "hamster": 1},
		Steps: []Step{
			{Action: "sort", Input: []string{"horse", "hamster"}, Expect: &Expect{Output: &want}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected output")
}

func TestRun_ReportsFinalStoreMismatch(t *testing.T) {
	final := map[string]int64{"horse": 99}
	scenario := &Scenario{
		Name:        "final-mismatch",
		Description: "wrong final store on purpose",
		Steps:       []Step{{Action: "save", Input: []string{"horse"}}},
		FinalStore:  &final,
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "final_store")
	assert.Equal(t, map[string]int64{"horse": 1}, result.FinalStore)
}

func TestRun_ReportsUnexpectedError(t *testing.T) {
	scenario := &Scenario{
		Name:        "unexpected-error",
		Description: "clock before epoch without an expected error",
		Now:         -1,
		Steps:       []Step{{Action: "save", Value: "timestamp", Input: []string{"horse"}}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "unexpected error")
	assert.NotEmpty(t, result.Trace[0].Error)
}

func TestRun_ReportsMissingError(t *testing.T) {
	scenario := &Scenario{
		Name:        "missing-error",
		Description: "expects an error that never happens",
		Steps:       []Step{{Action: "sort", Input: []string{"a"}, Expect: &Expect{Error: "boom"}}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "got success")
}

func TestTraceSnapshotMarshal(t *testing.T) {
	snap := TraceSnapshot{
		ScenarioName: "x",
		Trace:        []StepTrace{{Action: "sort", Input: []string{"b", "a"}, Output: []string{"a", "b"}}},
		FinalStore:   map[string]int64{"b": 1, "a": 0},
	}

	data, err := snap.Marshal()
	require.NoError(t, err)
	assert.Equal(t, `{
  "scenario_name": "x",
  "trace": [
    {
      "action": "sort",
      "input": [
        "b",
        "a"
      ],
      "output": [
        "a",
        "b"
      ]
    }
  ],
  "final_store": {
    "a": 0,
    "b": 1
  }
}`, string(data))
}
