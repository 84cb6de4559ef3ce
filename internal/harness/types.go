package harness

// StepTrace records what one step did.
type StepTrace struct {
	Action string   `json:"action"`
	Input  []string `json:"input"`
	Output []string `json:"output"`
	Error  string   `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation matched.
	Pass bool `json:"pass"`

	// Trace holds one entry per step, in order.
	Trace []StepTrace `json:"trace"`

	// Errors contains expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// FinalStore is the stored mapping after the last step.
	FinalStore map[string]int64 `json:"final_store"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Trace:      []StepTrace{},
		Errors:     []string{},
		FinalStore: map[string]int64{},
	}
}

// AddError adds a mismatch and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
