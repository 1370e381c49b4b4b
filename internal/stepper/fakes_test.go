package stepper

import (
	"context"
	"sync"
	"time"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/models"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

var testSession = models.Session{
	Employee: models.Employee{
		ID:          "emp-1",
		Name:        "Ana Souza",
		Email:       "ana@fatec.example",
		Institution: models.Institution{ID: "inst-1", Name: "Fatec", InstitutionCode: 101},
	},
	Token: "tok",
}

// fakeService is a hand-written HaeService and ClosureService that records calls.
// When gate is set, CreateHae, UpdateHae and RequestClosure signal entered and
// then wait for gate to close.
type fakeService struct {
	mu sync.Mutex

	records    []models.HaeRecord
	detail     models.HaeDetail
	listErr    error
	getErr     error
	createErr  error
	updateErr  error
	closureErr error

	calls    []string
	created  []models.HaePayload
	updated  map[string][]models.HaePayload
	closures []models.ClosureDraft

	gate    chan struct{}
	entered chan struct{}
}

func newFakeService() *fakeService {
	return &fakeService{updated: map[string][]models.HaePayload{}}
}

func (f *fakeService) hold() {
	f.gate = make(chan struct{})
	f.entered = make(chan struct{}, 1)
}

func (f *fakeService) wait() {
	if f.gate == nil {
		return
	}
	f.entered <- struct{}{}
	<-f.gate
}

func (f *fakeService) call(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeService) CreateHae(ctx context.Context, p models.HaePayload) error {
	f.call("CreateHae")
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, p)
	return nil
}

func (f *fakeService) UpdateHae(ctx context.Context, id string, p models.HaePayload) error {
	f.call("UpdateHae")
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated[id] = append(f.updated[id], p)
	return nil
}

func (f *fakeService) GetHaesByProfessorID(ctx context.Context, employeeID string) ([]models.HaeRecord, error) {
	f.call("GetHaesByProfessorID")
	return f.records, f.listErr
}

func (f *fakeService) GetHaeByID(ctx context.Context, id string) (models.HaeDetail, error) {
	f.call("GetHaeByID")
	return f.detail, f.getErr
}

func (f *fakeService) RequestClosure(ctx context.Context, id string, closure models.ClosureDraft) error {
	f.call("RequestClosure")
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closureErr != nil {
		return f.closureErr
	}
	f.closures = append(f.closures, closure)
	return nil
}

type fakeJournal struct {
	mu      sync.Mutex
	entries []models.Submission
}

func (j *fakeJournal) SaveSubmission(s models.Submission) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, s)
	return nil
}

func testOptions(j *fakeJournal) Options {
	opts := Options{
		Now:           func() time.Time { return testNow },
		NavigateDelay: 2 * time.Second,
	}
	if j != nil {
		opts.Journal = j
	}
	return opts
}

// approvedDetail is an APROVADO TCC request that started before testNow.
func approvedDetail() models.HaeDetail {
	return models.HaeDetail{
		ID:                 "hae-7",
		ProjectTitle:       "Orientação de TCC",
		EmployeeID:         "someone-else",
		Status:             constants.StatusAprovado,
		Course:             "Análise e Desenvolvimento de Sistemas",
		ProjectType:        constants.ProjectTypeTCC,
		Modality:           constants.ModalityPresencial,
		Dimensao:           constants.Dimensao1DidaticoPedagogico,
		WeeklyHours:        4,
		StartDate:          "2025-02-03T00:00:00.000Z",
		EndDate:            "2025-06-30",
		DayOfWeek:          []constants.Weekday{constants.Wednesday, constants.Monday},
		WeeklySchedule:     map[string]string{"Segunda Feira": "08:00 - 10:00", "Quarta Feira": "14:00 - 16:00"},
		ProjectDescription: "Acompanhamento",
		Students:           []string{"1234567890123"},
	}
}
