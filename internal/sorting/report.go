package sorting

import (
	"time"

	"sortdir/internal/category"
	"sortdir/internal/services"
)

// Outcome records what happened to one file.
type Outcome struct {
	Source   string            `json:"source"`
	Target   string            `json:"target,omitempty"`
	Category category.Category `json:"category"`
	Action   services.Action   `json:"action"`
	Depth    int               `json:"depth"`
	Format   string            `json:"format,omitempty"`
	Files    int               `json:"files,omitempty"`
	Bytes    int64             `json:"bytes,omitempty"`
	Err      error             `json:"-"`
	Error    string            `json:"error,omitempty"`
}

// Report aggregates the outcomes of a run.
type Report struct {
	RunID     string                  `json:"run_id"`
	Root      string                  `json:"root"`
	StartedAt time.Time               `json:"started_at"`
	Duration  time.Duration           `json:"duration_ns"`
	Passes    int                     `json:"passes"`
	Outcomes  []Outcome               `json:"outcomes"`
	Counts    map[services.Action]int `json:"counts"`
	Pruned    []string                `json:"pruned,omitempty"`
}

func newReport(runID, root string, started time.Time) *Report {
	counts := make(map[services.Action]int, len(services.Actions()))
	for _, action := range services.Actions() {
		counts[action] = 0
	}
	return &Report{
		RunID:     runID,
		Root:      root,
		StartedAt: started,
		Outcomes:  []Outcome{},
		Counts:    counts,
	}
}

func (r *Report) add(outcome Outcome) {
	if outcome.Err != nil && outcome.Error == "" {
		outcome.Error = outcome.Err.Error()
	}
	r.Outcomes = append(r.Outcomes, outcome)
	r.Counts[outcome.Action]++
}

// Count returns how many outcomes carry action.
func (r *Report) Count(action services.Action) int {
	if r == nil {
		return 0
	}
	return r.Counts[action]
}

// Changed reports whether the run moved or unpacked anything.
func (r *Report) Changed() bool {
	return r.Count(services.ActionMoved) > 0 || r.Count(services.ActionExtracted) > 0
}

// Problems returns the outcomes that left a file unsorted for a reason other
// than an unknown extension.
func (r *Report) Problems() []Outcome {
	if r == nil {
		return nil
	}
	var out []Outcome
	for _, o := range r.Outcomes {
		switch o.Action {
		case services.ActionMoved, services.ActionExtracted, services.ActionLeftUnknown:
			continue
		}
		out = append(out, o)
	}
	return out
}
