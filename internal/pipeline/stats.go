package pipeline

import "go.uber.org/multierr"

// RunStats tracks aggregate counters and byte totals across a run.
type RunStats struct {
	Total            int
	Current          int
	Converted        int
	Skipped          int
	Failed           int
	Wiped            int
	Interrupted      bool
	TotalInputBytes  int64
	TotalOutputBytes int64

	errs error
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}

// Err returns every per-file failure of the run combined, or nil.
func (s *RunStats) Err() error { return s.errs }

// Errors returns the per-file failures individually.
func (s *RunStats) Errors() []error { return multierr.Errors(s.errs) }

// OK reports whether the run finished without failures or interruption.
func (s *RunStats) OK() bool { return s.Failed == 0 && !s.Interrupted }

func (s *RunStats) recordFailure(err error) {
	s.Failed++
	s.errs = multierr.Append(s.errs, err)
}
