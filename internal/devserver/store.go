package devserver

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrCompleted is returned when updating a COMPLETO request.
	ErrCompleted = errors.New("request is completed")
)

type entry struct {
	detail  models.HaeDetail
	created time.Time
	seq     int
}

// Store keeps requests and professors in memory. It is safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	now        func() time.Time
	seq        int
	haes       map[string]*entry
	professors map[string]models.Employee
}

func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:        now,
		haes:       map[string]*entry{},
		professors: map[string]models.Employee{},
	}
}

// AddProfessor registers e under its email. An empty ID gets a new uuid.
func (s *Store) AddProfessor(e models.Employee) models.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.professors[strings.ToLower(strings.TrimSpace(e.Email))] = e
	return e
}

func (s *Store) ProfessorByEmail(email string) (models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.professors[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return models.Employee{}, ErrNotFound
	}
	return e, nil
}

// Create stores a new PENDENTE request built from p.
func (s *Store) Create(p models.HaePayload) models.HaeDetail {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	d := detailFromPayload(models.HaeDetail{}, p)
	d.ID = uuid.NewString()
	d.Status = constants.StatusPendente
	d.UpdatedAt = now.UTC().Format(time.RFC3339)
	d.ProfessorName = s.professorName(p.EmployeeID)

	s.seq++
	s.haes[d.ID] = &entry{detail: d, created: now, seq: s.seq}
	return d
}

// Update replaces the request's fields and sends it back to PENDENTE.
// Closure fields and ownership are kept.
func (s *Store) Update(id string, p models.HaePayload) (models.HaeDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.haes[id]
	if !ok {
		return models.HaeDetail{}, ErrNotFound
	}
	if e.detail.Status == constants.StatusCompleto {
		return models.HaeDetail{}, ErrCompleted
	}

	d := detailFromPayload(e.detail, p)
	d.EmployeeID = e.detail.EmployeeID
	d.Status = constants.StatusPendente
	d.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	e.detail = d
	return d, nil
}

func (s *Store) Get(id string) (models.HaeDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.haes[id]
	if !ok {
		return models.HaeDetail{}, ErrNotFound
	}
	return e.detail, nil
}

// ListByEmployee returns the employee's requests, oldest first.
func (s *Store) ListByEmployee(employeeID string) []models.HaeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []*entry
	for _, e := range s.haes {
		if e.detail.EmployeeID == employeeID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]models.HaeRecord, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.detail.Record())
	}
	return out
}

// SetStatus moves a request to status, as a coordinator would.
func (s *Store) SetStatus(id string, status constants.Status) (models.HaeDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.haes[id]
	if !ok {
		return models.HaeDetail{}, ErrNotFound
	}
	e.detail.Status = status
	e.detail.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	return e.detail, nil
}

// RequestClosure stores the report and marks the request FECHAMENTO_SOLICITADO.
// Callers check eligibility first.
func (s *Store) RequestClosure(id string, closure models.ClosureDraft) (models.HaeDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.haes[id]
	if !ok {
		return models.HaeDetail{}, ErrNotFound
	}
	e.detail.ClosureDraft = closure
	e.detail.Status = constants.StatusFechamentoSolicitado
	e.detail.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	return e.detail, nil
}

func (s *Store) professorName(employeeID string) string {
	for _, p := range s.professors {
		if p.ID == employeeID {
			return p.Name
		}
	}
	return ""
}

func detailFromPayload(base models.HaeDetail, p models.HaePayload) models.HaeDetail {
	d := base
	d.EmployeeID = p.EmployeeID
	d.ProjectTitle = p.ProjectTitle
	d.ProjectType = p.ProjectType
	d.Course = p.Course
	d.ProjectDescription = p.ProjectDescription
	d.Modality = p.Modality
	d.Dimensao = p.Dimensao
	d.DayOfWeek = models.SortWeekdays(p.DayOfWeek)
	d.WeeklySchedule = make(map[string]string, len(p.WeeklySchedule))
	for day, r := range p.WeeklySchedule {
		d.WeeklySchedule[day] = r
	}
	d.WeeklyHours = p.WeeklyHours
	d.StartDate = p.StartDate
	d.EndDate = p.EndDate
	d.Students = append([]string(nil), p.StudentRAs...)
	d.Observations = p.Observations
	return d
}
