package models

import "time"

type SubmissionKind string

const (
	SubmissionCreate  SubmissionKind = "create"
	SubmissionUpdate  SubmissionKind = "update"
	SubmissionClosure SubmissionKind = "closure"
)

type SubmissionOutcome string

const (
	OutcomeSuccess  SubmissionOutcome = "success"
	OutcomeRejected SubmissionOutcome = "rejected" // blocked before reaching the server
	OutcomeFailed   SubmissionOutcome = "failed"
)

// Submission is one entry of the local history of form submissions.
type Submission struct {
	ID           string            `json:"id"`
	Kind         SubmissionKind    `json:"kind"`
	RecordID     string            `json:"record_id,omitempty"`
	EmployeeID   string            `json:"employee_id"`
	ProjectTitle string            `json:"project_title"`
	Outcome      SubmissionOutcome `json:"outcome"`
	Message      string            `json:"message"`
	CreatedAt    time.Time         `json:"created_at"`
}
