package stepper

import (
	"context"
	"time"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/models"
	"github.com/julianstephens/hae/internal/scheduler"
	"github.com/julianstephens/hae/internal/validation"
)

// HaeService is the backend the request form talks to.
type HaeService interface {
	CreateHae(ctx context.Context, p models.HaePayload) error
	UpdateHae(ctx context.Context, id string, p models.HaePayload) error
	GetHaesByProfessorID(ctx context.Context, employeeID string) ([]models.HaeRecord, error)
	GetHaeByID(ctx context.Context, id string) (models.HaeDetail, error)
}

// ClosureService is the backend the closure form talks to.
type ClosureService interface {
	GetHaeByID(ctx context.Context, id string) (models.HaeDetail, error)
	RequestClosure(ctx context.Context, id string, closure models.ClosureDraft) error
}

// Journal records submission outcomes locally.
type Journal interface {
	SaveSubmission(models.Submission) error
}

type Options struct {
	// Now is the clock used for date rules. Defaults to time.Now.
	Now func() time.Time
	// NavigateDelay is copied into success notices. Zero means the default delay.
	NavigateDelay time.Duration
	Journal       Journal
	Validator     *validation.Validator
	Scheduler     *scheduler.Scheduler
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NavigateDelay == 0 {
		o.NavigateDelay = constants.DefaultNavigateDelay
	}
	if o.Validator == nil {
		o.Validator = validation.New()
	}
	if o.Scheduler == nil {
		o.Scheduler = scheduler.New()
	}
	return o
}
