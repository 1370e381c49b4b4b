package storage

import "github.com/julianstephens/hae/internal/models"

// Journal is the local history of form submissions.
type Journal interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	SaveSubmission(models.Submission) error
	// ListSubmissions returns the newest entries first. A limit of 0 means no limit.
	// An empty employeeID lists every employee's entries.
	ListSubmissions(employeeID string, limit int) ([]models.Submission, error)

	GetPath() string
}
