package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/baus/internal/config"
	"github.com/roach88/baus/internal/store"
)

// Scenario defines an end-to-end test of one cache file.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Backend selects the cache format. Defaults to json.
	Backend string `yaml:"backend,omitempty"`

	// Now is the fixed Unix time used for timestamp saves.
	Now int64 `yaml:"now,omitempty"`

	// Store seeds the cache file. If nil, the file does not exist at start.
	Store map[string]int64 `yaml:"store,omitempty"`

	// Steps run in order against the same cache file.
	Steps []Step `yaml:"steps"`

	// FinalStore is the expected mapping after the last step. Nil skips the check.
	FinalStore *map[string]int64 `yaml:"final_store,omitempty"`
}

// Step is one baus invocation.
type Step struct {
	Action  string   `yaml:"action"`
	Desc    bool     `yaml:"desc,omitempty"`
	Cleanup bool     `yaml:"cleanup,omitempty"`
	Value   string   `yaml:"value,omitempty"`
	Input   []string `yaml:"input"`

	// Expect validates the step. If nil, the step only needs to succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies the expected step result.
type Expect struct {
	// Output is compared exactly. Nil skips the check.
	Output *[]string `yaml:"output,omitempty"`

	// Error is a substring the run error must contain. Empty means the step
	// must succeed.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "step:" vs "steps:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Backend != "" {
		if _, err := store.ParseKind(s.Backend); err != nil {
			return err
		}
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i := range s.Steps {
		if _, err := s.Steps[i].config(); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}

// config converts a step into the run configuration it describes.
func (st Step) config() (config.Config, error) {
	c := config.Default(config.Action(st.Action))
	c.Desc = st.Desc
	c.Cleanup = st.Cleanup
	if st.Value != "" {
		v, err := config.ParseValueKind(st.Value)
		if err != nil {
			return c, err
		}
		c.Value = v
	}
	return c, c.Validate()
}
