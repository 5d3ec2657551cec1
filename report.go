package scaffold

import (
	"encoding/json"

	"github.com/Rican7/conjson"
	"github.com/hashicorp/go-multierror"
)

type (
	// Outcome is the materialization result of one artifact.
	Outcome struct {
		ID   string
		Path string
		Err  error
	}

	// Report states, for every artifact of a plan, whether it was
	// written.  Outcomes follow plan order.
	Report struct {
		outcomes []Outcome
	}

	reportEntry struct {
		Id    string
		Path  string
		Error string `json:",omitempty"`
	}

	reportManifest struct {
		Succeeded []reportEntry
		Failed    []reportEntry
	}
)

// NewReport pairs each artifact of plan with its error, if any.
// errs must follow plan order.
func NewReport(plan *ArtifactPlan, errs []error) *Report {
	if len(errs) != plan.Len() {
		panic("errs must have one entry per artifact")
	}
	outcomes := make([]Outcome, plan.Len())
	for i, a := range plan.artifacts {
		outcomes[i] = Outcome{ID: a.ID, Path: a.Path, Err: errs[i]}
	}
	return &Report{outcomes}
}

func (r *Report) Outcomes() []Outcome {
	return append([]Outcome(nil), r.outcomes...)
}

// Succeeded returns the paths written.
func (r *Report) Succeeded() []string {
	var paths []string
	for _, o := range r.outcomes {
		if o.Err == nil {
			paths = append(paths, o.Path)
		}
	}
	return paths
}

// Failed returns the outcomes that could not be written.
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

func (r *Report) Ok() bool {
	return len(r.Failed()) == 0
}

// Err aggregates every failure or returns nil.
func (r *Report) Err() error {
	var errs *multierror.Error
	for _, o := range r.outcomes {
		if o.Err != nil {
			errs = multierror.Append(errs, o.Err)
		}
	}
	return errs.ErrorOrNil()
}

func (r *Report) MarshalJSON() ([]byte, error) {
	manifest := reportManifest{
		Succeeded: []reportEntry{},
		Failed:    []reportEntry{},
	}
	for _, o := range r.outcomes {
		if o.Err == nil {
			manifest.Succeeded = append(manifest.Succeeded, reportEntry{Id: o.ID, Path: o.Path})
		} else {
			manifest.Failed = append(manifest.Failed, reportEntry{Id: o.ID, Path: o.Path, Error: o.Err.Error()})
		}
	}
	return json.Marshal(conjson.NewMarshaler(manifest, camelCase...))
}
