package sqlite

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/hae/internal/models"
)

var errNotOpen = errors.New("journal is not open")

// timestampLayout has a fixed width so created_at sorts correctly as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (s *Store) SaveSubmission(sub models.Submission) error {
	if s.db == nil {
		return errNotOpen
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO submissions (
			id, kind, record_id, employee_id, project_title, outcome, message, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sub.ID, string(sub.Kind), sub.RecordID, sub.EmployeeID, sub.ProjectTitle,
		string(sub.Outcome), sub.Message, sub.CreatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

func (s *Store) ListSubmissions(employeeID string, limit int) ([]models.Submission, error) {
	if s.db == nil {
		return nil, errNotOpen
	}

	query := `
		SELECT id, kind, record_id, employee_id, project_title, outcome, message, created_at
		FROM submissions
		WHERE (? = '' OR employee_id = ?)
		ORDER BY created_at DESC, rowid DESC`
	args := []interface{}{employeeID, employeeID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var out []models.Submission
	for rows.Next() {
		var (
			sub       models.Submission
			kind      string
			outcome   string
			createdAt string
		)
		if err := rows.Scan(&sub.ID, &kind, &sub.RecordID, &sub.EmployeeID, &sub.ProjectTitle, &outcome, &sub.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		sub.Kind = models.SubmissionKind(kind)
		sub.Outcome = models.SubmissionOutcome(outcome)
		if sub.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
			return nil, fmt.Errorf("invalid created_at for submission %s: %w", sub.ID, err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}
