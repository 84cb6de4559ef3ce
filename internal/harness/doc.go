// Package harness runs baus scenarios end to end.
//
// A scenario seeds a cache file, runs a sequence of sort/save steps through
// the real engine.Runner with a fixed clock, and checks each step's output
// and the final stored scores. Traces can be compared against golden files.
//
// # Scenario Format
//
//	name: save-count
//	description: "Save increments the first line's count"
//	backend: json          # optional: json (default) or sqlite
//	now: 1700000000        # optional: fixed Unix time for timestamp saves
//	store:                 # optional: initial scores; omit for no cache file
//	  horse: 2
//	  hamster: 1
//	steps:
//	  - action: save
//	    value: count
//	    input: [horse, hamster]
//	    expect:
//	      output: [horse]
//	final_store:
//	  horse: 3
//	  hamster: 1
//
// Steps accept desc and cleanup (sort) or value (save). An expect clause may
// give output (exact match) and/or error (substring of the run error).
//
// # Golden Files
//
// RunWithGolden stores traces in testdata/golden/{name}.golden. Regenerate
// with:
//
//	go test ./internal/harness -update
package harness
