package process

import "fmt"

type Outcome string

const (
	// OutcomeCreated means the record was persisted against a newly created Candidate product.
	OutcomeCreated Outcome = "created"
	// OutcomeLinked means the record was persisted against a product seen before at the location.
	OutcomeLinked  Outcome = "linked"
	OutcomeSkipped Outcome = "skipped"
)

type RecordResult struct {
	Key     string
	Step    string
	Outcome Outcome
	Reason  string
}

// Report accumulates one result per record in provider order.
type Report struct {
	Results []RecordResult
}

func (r *Report) add(key, step string, outcome Outcome) {
	r.Results = append(r.Results, RecordResult{Key: key, Step: step, Outcome: outcome})
}

func (r *Report) skip(key, step string, err error) {
	r.Results = append(r.Results, RecordResult{Key: key, Step: step, Outcome: OutcomeSkipped, Reason: err.Error()})
}

func (r *Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

func (r *Report) Skipped() []RecordResult {
	var out []RecordResult
	for _, res := range r.Results {
		if res.Outcome == OutcomeSkipped {
			out = append(out, res)
		}
	}
	return out
}

func (r *Report) Summary() string {
	return fmt.Sprintf("processed %d records: %d created, %d linked, %d skipped",
		len(r.Results), r.Count(OutcomeCreated), r.Count(OutcomeLinked), r.Count(OutcomeSkipped))
}
