package transfer

// Outcome is the result of one candidate. A nil Err means the file was copied.
type Outcome struct {
	Name string
	Err  error
}

// Copied reports whether the candidate reached the destination.
func (o Outcome) Copied() bool {
	return o.Err == nil
}

// Result is the ordered record of a run. Outcomes is empty when the run
// aborted before copying.
type Result struct {
	Paths    Paths
	Outcomes []Outcome
}

// Copied returns the number of successful copies.
func (r *Result) Copied() int {
	if r == nil {
		return 0
	}
	count := 0
	for _, outcome := range r.Outcomes {
		if outcome.Copied() {
			count++
		}
	}
	return count
}

// Failures returns the outcomes that did not copy, in processing order.
func (r *Result) Failures() []Outcome {
	if r == nil {
		return nil
	}
	var failed []Outcome
	for _, outcome := range r.Outcomes {
		if !outcome.Copied() {
			failed = append(failed, outcome)
		}
	}
	return failed
}
