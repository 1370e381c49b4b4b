package forms

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/julianstephens/hae/internal/cli"
	"github.com/julianstephens/hae/internal/scheduler"
	"github.com/julianstephens/hae/internal/stepper"
	"github.com/julianstephens/hae/internal/validation"
)

// ValidateCmd checks a draft file offline with the same rules as the form.
type ValidateCmd struct {
	File string `arg:"" type:"existingfile" help:"Draft file (request JSON)."`
	Edit bool   `help:"Check as an edit of an existing request (past dates allowed)."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	p, err := cli.ReadPayload(c.File)
	if err != nil {
		return err
	}

	draft := p.Draft()
	sched := ctx.Scheduler
	if sched == nil {
		sched = scheduler.New()
	}
	sched.Apply(&draft, sched.Sync(draft.DayOfWeek, draft.WeeklySchedule.Times()))

	v := ctx.Validator
	if v == nil {
		v = validation.New()
	}
	vctx := validation.Context{EditMode: c.Edit, Scope: validation.ScopeFull}
	if ctx.Now != nil {
		vctx.Today = ctx.Now()
	}

	if errs := v.ValidateDraft(draft, vctx); len(errs) > 0 {
		fmt.Printf("❌ %s has %d problem(s):\n", c.File, len(errs))
		cli.PrintErrors(errs)
		return errors.New("draft is not valid")
	}

	fmt.Printf("✓ %s is valid (%s h/week, %s)\n", c.File, strconv.FormatFloat(draft.WeeklyHours, 'f', -1, 64), draft.TimeRange)
	return nil
}

// SubmitCmd sends a draft file without the interactive form.
type SubmitCmd struct {
	File string `arg:"" type:"existingfile" help:"Draft file (request JSON)."`
	ID   string `help:"Update this request instead of creating a new one."`
	Yes  bool   `short:"y" help:"Accept that an updated request goes back to PENDENTE."`
}

func (c *SubmitCmd) Run(ctx *cli.Context) error {
	p, err := cli.ReadPayload(c.File)
	if err != nil {
		return err
	}
	if c.ID != "" && !c.Yes {
		return errors.New("updating a request sends it back to PENDENTE; rerun with --yes to confirm")
	}

	session, err := ctx.Session()
	if err != nil {
		return err
	}

	target := "new"
	if c.ID != "" {
		target = c.ID
	}
	lock, err := ctx.Lock(target)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	goctx := ctx.Background()
	var ctrl *stepper.Controller
	if c.ID == "" {
		ctrl = stepper.New(ctx.Backend, session, ctx.StepperOptions())
	} else {
		ctrl = stepper.NewForEdit(ctx.Backend, session, c.ID, ctx.StepperOptions())
		if err := ctrl.Load(goctx); err != nil {
			return fmt.Errorf("%s: %w", ctrl.Notice().Message, err)
		}
	}

	if err := ctrl.Replace(p.Draft()); err != nil {
		return notice(ctrl, err)
	}
	for ctrl.State() != stepper.StateStep3 {
		if err := ctrl.Next(); err != nil {
			return invalid(ctrl, err)
		}
	}

	if err := ctrl.Submit(goctx); err != nil {
		return invalid(ctrl, err)
	}
	if ctrl.State() == stepper.StateConfirmPending {
		if err := ctrl.Confirm(goctx); err != nil {
			return notice(ctrl, err)
		}
	}

	fmt.Println("✓ " + ctrl.Notice().Message)
	return nil
}

func invalid(ctrl *stepper.Controller, err error) error {
	var errs validation.Errors
	if errors.As(err, &errs) {
		fmt.Println("❌ " + ctrl.Notice().Message)
		cli.PrintErrors(errs)
		return errors.New("draft is not valid")
	}
	return notice(ctrl, err)
}

func notice(ctrl *stepper.Controller, err error) error {
	if n := ctrl.Notice(); !n.IsZero() {
		return fmt.Errorf("%s: %w", n.Message, err)
	}
	return err
}
