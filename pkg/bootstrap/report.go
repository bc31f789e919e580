package bootstrap

import (
	"time"

	"github.com/arthur-debert/plugboot/pkg/download"
)

// Report summarizes one run of the recipe
type Report struct {
	DryRun          bool
	Steps           []StepResult
	Created         []string
	Installed       []string
	Downloaded      []download.Result
	FailedDownloads []download.Result
	Duration        time.Duration
}

func (r *Report) record(step Step, status Status, detail string) {
	r.Steps = append(r.Steps, StepResult{Step: step, Status: status, Detail: detail})
}

// Status returns the status of the named step, or "" when it never ran
func (r *Report) Status(name string) Status {
	for _, s := range r.Steps {
		if s.Name == name {
			return s.Status
		}
	}
	return ""
}

// SoftErrors returns one DOWNLOAD_FAILED error per failed download
func (r *Report) SoftErrors() []error {
	var errs []error
	for _, res := range r.FailedDownloads {
		errs = append(errs, res.Err())
	}
	return errs
}

// OK reports whether nothing failed, soft failures included
func (r *Report) OK() bool {
	return len(r.FailedDownloads) == 0
}
