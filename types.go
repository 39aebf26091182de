package main

// RowStatus represents the outcome of processing a single table row
type RowStatus string

const (
	StatusSkipped   RowStatus = "skipped"
	StatusPreviewed RowStatus = "previewed"
	StatusSucceeded RowStatus = "succeeded"
	StatusFailed    RowStatus = "failed"
)

// RowResult tracks the outcome of processing one row
type RowResult struct {
	ID      string
	Status  RowStatus
	Preview string
	Err     error
}

// RunSummary aggregates results from a batch run
type RunSummary struct {
	Total     int
	Skipped   int
	Previewed int
	Succeeded int
	Failed    int
	Results   []RowResult
}

func (s *RunSummary) add(r RowResult) {
	s.Total++
	switch r.Status {
	case StatusSkipped:
		s.Skipped++
	case StatusPreviewed:
		s.Previewed++
	case StatusSucceeded:
		s.Succeeded++
	case StatusFailed:
		s.Failed++
	}
	s.Results = append(s.Results, r)
}

// FailedResults returns only the failed results
func (s *RunSummary) FailedResults() []RowResult {
	var failed []RowResult
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			failed = append(failed, r)
		}
	}
	return failed
}
