package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/logger"
	"github.com/julianstephens/hae/internal/stepper"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.form != nil {
			m.form = m.form.WithWidth(min(msg.Width, maxFormWidth))
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		return m.afterLoad()

	case submittedMsg:
		return m.afterSubmit()

	case constants.ConfirmationMsg:
		m.pending = &msg
		m.confirm = &ConfirmFormModel{}
		m.form = NewConfirmForm(msg.Title, msg.Message, m.confirm)
		m.state = constants.StateConfirm
		return m, m.form.Init()

	case navigateMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		if m.busy() {
			// Nothing may reach the controller while it is loading or sending.
			return m, nil
		}
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.state {
		case constants.StateDone, constants.StateFailed, constants.StateReadOnly:
			if key.Matches(msg, m.keys.Leave) {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
		if key.Matches(msg, m.keys.Back) {
			return m.back()
		}
	}

	return m.updateForm(msg)
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.completeForm()
	case huh.StateAborted:
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// back leaves the confirmation, or moves one step back. Esc on the first step
// closes the form.
func (m Model) back() (tea.Model, tea.Cmd) {
	if m.state == constants.StateConfirm {
		return m.cancelConfirm()
	}
	if m.ctrl.State() == stepper.StateStep1 {
		m.quitting = true
		return m, tea.Quit
	}
	if err := m.ctrl.Back(); err != nil {
		logger.Debug("Back ignored", "state", m.ctrl.State(), "error", err)
		return m, nil
	}
	m.buildForm()
	return m, m.form.Init()
}

func (m Model) completeForm() (tea.Model, tea.Cmd) {
	if m.state == constants.StateConfirm {
		if m.confirm == nil || !m.confirm.Confirmed {
			return m.cancelConfirm()
		}
		m.state = constants.StateSubmitting
		m.form = nil
		action := m.pending.Action
		m.pending = nil
		return m, tea.Batch(m.spinner.Tick, action())
	}

	var err error
	switch m.ctrl.State() {
	case stepper.StateStep1:
		if err = applyStepOne(m.ctrl, m.stepOne); err == nil {
			err = m.ctrl.Next()
		}
	case stepper.StateStep2:
		if err = applyStepTwo(m.ctrl, m.stepTwo); err == nil {
			err = m.ctrl.Next()
		}
	case stepper.StateStep3:
		if err = m.ctrl.SetObservations(m.stepThree.Observations); err != nil {
			break
		}
		if !m.stepThree.Send {
			err = m.ctrl.Back()
			break
		}
		m.state = constants.StateSubmitting
		m.form = nil
		return m, tea.Batch(m.spinner.Tick, m.submitCmd())
	}
	if err != nil {
		logger.Debug("Step not completed", "state", m.ctrl.State(), "error", err)
	}

	m.buildForm()
	if m.form == nil {
		return m, nil
	}
	return m, m.form.Init()
}

func (m Model) cancelConfirm() (tea.Model, tea.Cmd) {
	if err := m.ctrl.Cancel(); err != nil {
		logger.Debug("Cancel ignored", "error", err)
	}
	m.pending = nil
	m.state = constants.StateForm
	m.buildForm()
	return m, m.form.Init()
}

func (m Model) afterLoad() (tea.Model, tea.Cmd) {
	switch {
	case m.ctrl.State() == stepper.StateFailed:
		m.state = constants.StateFailed
		return m, nil
	case m.ctrl.ReadOnly():
		m.state = constants.StateReadOnly
		return m, nil
	}
	m.state = constants.StateForm
	m.buildForm()
	return m, m.form.Init()
}

func (m Model) afterSubmit() (tea.Model, tea.Cmd) {
	switch m.ctrl.State() {
	case stepper.StateConfirmPending:
		confirm := constants.ConfirmationMsg{
			Title:   constants.MsgConfirmUpdateTitle,
			Message: m.ctrl.Notice().Message,
			Action:  m.confirmCmd,
		}
		m.state = constants.StateConfirm
		return m, func() tea.Msg { return confirm }
	case stepper.StateDone:
		m.state = constants.StateDone
		return m, navigateAfter(m.ctrl.Notice())
	}

	m.state = constants.StateForm
	m.buildForm()
	if m.form == nil {
		return m, nil
	}
	return m, m.form.Init()
}

func navigateAfter(n stepper.Notice) tea.Cmd {
	if n.NavigateAfter <= 0 {
		return nil
	}
	return tea.Tick(n.NavigateAfter, func(time.Time) tea.Msg {
		return navigateMsg{}
	})
}
