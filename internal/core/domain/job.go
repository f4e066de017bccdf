package domain

// JobStatus is the lifecycle stage of a provider-side analysis job.
type JobStatus string

const (
	JobStatusQueued  JobStatus = "queued"
	JobStatusStarted JobStatus = "started"
	JobStatusDone    JobStatus = "done"
	JobStatusError   JobStatus = "error"
)

// AnalysisJob tracks an in-flight submission to the metadata provider for a
// track the provider had not indexed yet.
type AnalysisJob struct {
	ID              string
	Status          JobStatus
	PercentComplete float64
	ETASeconds      float64 // zero when the provider gave no estimate
	ErrorMessage    string
}

// Terminal reports whether the job will make no further progress.
func (j AnalysisJob) Terminal() bool {
	return j.Status == JobStatusDone || j.Status == JobStatusError
}
