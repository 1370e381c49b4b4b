package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/stepper"
)

type loadedMsg struct{ err error }

type submittedMsg struct{ err error }

// navigateMsg fires once a success notice has been shown long enough.
type navigateMsg struct{}

// Model hosts the request form. All form rules live in the controller; the model
// only maps huh forms onto controller calls.
type Model struct {
	ctx     context.Context
	ctrl    *stepper.Controller
	state   constants.SessionState
	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	form      *huh.Form
	stepOne   *StepOneFormModel
	stepTwo   *StepTwoFormModel
	stepThree *StepThreeFormModel
	confirm   *ConfirmFormModel
	pending   *constants.ConfirmationMsg

	quitting bool
	width    int
	height   int
}

// NewModel wraps ctrl. A controller opened for editing is loaded by Init.
func NewModel(ctx context.Context, ctrl *stepper.Controller) Model {
	m := Model{
		ctx:     ctx,
		ctrl:    ctrl,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}

	switch ctrl.State() {
	case stepper.StateLoadingExisting:
		m.state = constants.StateLoading
	case stepper.StateFailed:
		m.state = constants.StateFailed
	default:
		m.state = constants.StateForm
		m.buildForm()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	switch m.state {
	case constants.StateLoading:
		return tea.Batch(m.spinner.Tick, m.loadCmd())
	case constants.StateForm:
		return m.form.Init()
	}
	return nil
}

// Done reports whether the request was sent successfully.
func (m Model) Done() bool {
	return m.ctrl.State() == stepper.StateDone
}

func (m Model) State() constants.SessionState {
	return m.state
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateForm, constants.StateConfirm:
		return []key.Binding{m.keys.Back, m.keys.Quit}
	case constants.StateDone, constants.StateFailed, constants.StateReadOnly:
		return []key.Binding{m.keys.Leave}
	}
	return []key.Binding{m.keys.Quit}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}

func (m Model) busy() bool {
	return m.state == constants.StateLoading || m.state == constants.StateSubmitting
}

// buildForm creates the huh form for the controller's current step from the
// current draft, so values survive a failed Next or a Back.
func (m *Model) buildForm() {
	d := m.ctrl.Draft()

	switch m.ctrl.State() {
	case stepper.StateStep1:
		m.stepOne = newStepOne(d)
		m.form = NewStepOneForm(m.stepOne)
	case stepper.StateStep2:
		m.stepTwo = newStepTwo(d, m.ctrl.Times())
		m.form = NewStepTwoForm(m.stepTwo)
	case stepper.StateStep3:
		m.stepThree = &StepThreeFormModel{Observations: d.Observations, Send: true}
		m.form = NewStepThreeForm(m.stepThree, d)
	default:
		m.form = nil
		return
	}
	if m.width > 0 {
		m.form = m.form.WithWidth(min(m.width, maxFormWidth))
	}
}

func (m Model) loadCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return loadedMsg{err: ctrl.Load(ctx)}
	}
}

func (m Model) submitCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return submittedMsg{err: ctrl.Submit(ctx)}
	}
}

func (m Model) confirmCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return submittedMsg{err: ctrl.Confirm(ctx)}
	}
}
