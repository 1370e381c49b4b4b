package forms

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hae/internal/cli"
	"github.com/julianstephens/hae/internal/logger"
	"github.com/julianstephens/hae/internal/stepper"
	"github.com/julianstephens/hae/internal/tui"
)

type NewCmd struct{}

func (c *NewCmd) Run(ctx *cli.Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	ctrl := stepper.New(ctx.Backend, session, ctx.StepperOptions())
	return runForm(ctx, "new", tui.NewModel(ctx.Background(), ctrl))
}

type EditCmd struct {
	ID string `arg:"" help:"ID of the request to edit."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	ctrl := stepper.NewForEdit(ctx.Backend, session, c.ID, ctx.StepperOptions())
	return runForm(ctx, c.ID, tui.NewModel(ctx.Background(), ctrl))
}

type ClosureCmd struct {
	ID string `arg:"" help:"ID of the approved request to close."`
}

func (c *ClosureCmd) Run(ctx *cli.Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}
	ctrl := stepper.NewClosure(ctx.Backend, session, c.ID, ctx.StepperOptions())
	return runForm(ctx, "closure "+c.ID, tui.NewClosureModel(ctx.Background(), ctrl))
}

func runForm(ctx *cli.Context, target string, model tea.Model) error {
	lock, err := ctx.Lock(target)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release form lock", "error", err)
		}
	}()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx.Background()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("form exited with an error: %w", err)
	}
	return nil
}
