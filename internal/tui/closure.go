package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/logger"
	"github.com/julianstephens/hae/internal/models"
	"github.com/julianstephens/hae/internal/stepper"
)

type ClosureFormModel struct {
	TccRole                  constants.TccRole
	TccStudentCount          string
	TccStudentNames          string
	TccApprovedStudents      string
	TccProjectInfo           string
	EstagioStudentInfo       string
	EstagioApprovedStudents  string
	ApoioType                constants.ApoioType
	ApoioGeralDescription    string
	ApoioApprovedStudents    string
	ApoioCertificateStudents string
	Send                     bool
}

func newClosureFormModel(c models.ClosureDraft) *ClosureFormModel {
	count := ""
	if c.TccStudentCount > 0 {
		count = strconv.Itoa(c.TccStudentCount)
	}
	return &ClosureFormModel{
		TccRole:                  c.TccRole,
		TccStudentCount:          count,
		TccStudentNames:          c.TccStudentNames,
		TccApprovedStudents:      c.TccApprovedStudents,
		TccProjectInfo:           c.TccProjectInfo,
		EstagioStudentInfo:       c.EstagioStudentInfo,
		EstagioApprovedStudents:  c.EstagioApprovedStudents,
		ApoioType:                c.ApoioType,
		ApoioGeralDescription:    c.ApoioGeralDescription,
		ApoioApprovedStudents:    c.ApoioApprovedStudents,
		ApoioCertificateStudents: c.ApoioCertificateStudents,
		Send:                     true,
	}
}

// NewClosureForm builds the report fields of one project type.
func NewClosureForm(pt constants.ProjectType, fm *ClosureFormModel) *huh.Form {
	var groups []*huh.Group

	switch pt {
	case constants.ProjectTypeTCC:
		groups = append(groups,
			huh.NewGroup(
				huh.NewSelect[constants.TccRole]().
					Title("Você orientou ou apenas ajudou?").
					Options(options(constants.TccRoleOptions)...).
					Value(&fm.TccRole),
				huh.NewInput().
					Title("Quantidade de alunos").
					Value(&fm.TccStudentCount).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return nil
						}
						if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
							return errors.New("informe um número")
						}
						return nil
					}),
				huh.NewText().
					Title("Nomes dos alunos").
					Value(&fm.TccStudentNames),
				huh.NewText().
					Title("Alunos aprovados").
					Value(&fm.TccApprovedStudents),
			),
			huh.NewGroup(
				huh.NewText().
					Title("Projetos orientados").
					Value(&fm.TccProjectInfo),
			).WithHideFunc(func() bool { return fm.TccRole != constants.TccRoleOrientou }),
		)
	case constants.ProjectTypeEstagio:
		groups = append(groups, huh.NewGroup(
			huh.NewText().
				Title("Alunos atendidos").
				Value(&fm.EstagioStudentInfo),
			huh.NewText().
				Title("Os alunos foram aprovados?").
				Value(&fm.EstagioApprovedStudents),
		))
	case constants.ProjectTypeApoioDirecao:
		groups = append(groups,
			huh.NewGroup(
				huh.NewSelect[constants.ApoioType]().
					Title("Tipo de apoio").
					Options(options(constants.ApoioTypeOptions)...).
					Value(&fm.ApoioType),
			),
			huh.NewGroup(
				huh.NewText().
					Title("Descrição do que foi feito").
					DescriptionFunc(func() string {
						return fmt.Sprintf("%d de %d caracteres", utf8.RuneCountInString(fm.ApoioGeralDescription), constants.MinApoioGeralDescriptionLength)
					}, &fm.ApoioGeralDescription).
					CharLimit(0).
					Lines(10).
					Value(&fm.ApoioGeralDescription),
			).WithHideFunc(func() bool { return fm.ApoioType != constants.ApoioTypeGeral }),
			huh.NewGroup(
				huh.NewText().
					Title("Alunos aprovados").
					Value(&fm.ApoioApprovedStudents),
				huh.NewText().
					Title("Alunos que receberão certificado").
					Value(&fm.ApoioCertificateStudents),
			).WithHideFunc(func() bool { return fm.ApoioType != constants.ApoioTypeCurso }),
		)
	}

	groups = append(groups, huh.NewGroup(
		huh.NewConfirm().
			Title("Enviar solicitação de fechamento?").
			Affirmative("Enviar").
			Negative("Cancelar").
			Value(&fm.Send),
	))
	return huh.NewForm(groups...)
}

func applyClosure(c *stepper.ClosureController, fm *ClosureFormModel) error {
	count := 0
	if s := strings.TrimSpace(fm.TccStudentCount); s != "" {
		count, _ = strconv.Atoi(s)
	}
	return errors.Join(
		c.SetTccRole(fm.TccRole),
		c.SetTccStudentCount(count),
		c.SetTccStudentNames(fm.TccStudentNames),
		c.SetTccApprovedStudents(fm.TccApprovedStudents),
		c.SetTccProjectInfo(fm.TccProjectInfo),
		c.SetEstagioStudentInfo(fm.EstagioStudentInfo),
		c.SetEstagioApprovedStudents(fm.EstagioApprovedStudents),
		c.SetApoioType(fm.ApoioType),
		c.SetApoioGeralDescription(fm.ApoioGeralDescription),
		c.SetApoioApprovedStudents(fm.ApoioApprovedStudents),
		c.SetApoioCertificateStudents(fm.ApoioCertificateStudents),
	)
}

// ClosureModel hosts the closure report of one approved request.
type ClosureModel struct {
	ctx     context.Context
	ctrl    *stepper.ClosureController
	state   constants.SessionState
	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	form     *huh.Form
	values   *ClosureFormModel
	quitting bool
	width    int
}

func NewClosureModel(ctx context.Context, ctrl *stepper.ClosureController) ClosureModel {
	m := ClosureModel{
		ctx:     ctx,
		ctrl:    ctrl,
		state:   constants.StateLoading,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if ctrl.State() == stepper.StateFailed {
		m.state = constants.StateFailed
	}
	return m
}

func (m ClosureModel) Init() tea.Cmd {
	if m.state != constants.StateLoading {
		return nil
	}
	ctx, ctrl := m.ctx, m.ctrl
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return loadedMsg{err: ctrl.Load(ctx)}
	})
}

func (m ClosureModel) Done() bool {
	return m.ctrl.State() == stepper.StateDone
}

func (m ClosureModel) State() constants.SessionState {
	return m.state
}

func (m ClosureModel) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateForm:
		return []key.Binding{m.keys.Back, m.keys.Quit}
	case constants.StateDone, constants.StateFailed:
		return []key.Binding{m.keys.Leave}
	}
	return []key.Binding{m.keys.Quit}
}

func (m ClosureModel) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}

func (m *ClosureModel) buildForm() {
	m.values = newClosureFormModel(m.ctrl.Closure())
	m.form = NewClosureForm(m.ctrl.ProjectType(), m.values)
	if m.width > 0 {
		m.form = m.form.WithWidth(min(m.width, maxFormWidth))
	}
}

func (m ClosureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	busy := m.state == constants.StateLoading || m.state == constants.StateSubmitting

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		if m.form != nil {
			m.form = m.form.WithWidth(min(msg.Width, maxFormWidth))
		}
		return m, nil

	case spinner.TickMsg:
		if !busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		if m.ctrl.State() != stepper.StateStep1 {
			m.state = constants.StateFailed
			return m, nil
		}
		m.state = constants.StateForm
		m.buildForm()
		return m, m.form.Init()

	case submittedMsg:
		if m.ctrl.State() == stepper.StateDone {
			m.state = constants.StateDone
			return m, navigateAfter(m.ctrl.Notice())
		}
		m.state = constants.StateForm
		m.buildForm()
		return m, m.form.Init()

	case navigateMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		if busy {
			return m, nil
		}
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.state {
		case constants.StateDone, constants.StateFailed:
			if key.Matches(msg, m.keys.Leave) {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
		if key.Matches(msg, m.keys.Back) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.form == nil {
		return m, nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if !m.values.Send {
			m.quitting = true
			return m, tea.Quit
		}
		if err := applyClosure(m.ctrl, m.values); err != nil {
			logger.Debug("Closure answers not applied", "error", err)
			m.buildForm()
			return m, m.form.Init()
		}
		m.state = constants.StateSubmitting
		m.form = nil
		ctx, ctrl := m.ctx, m.ctrl
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return submittedMsg{err: ctrl.Submit(ctx)}
		})
	case huh.StateAborted:
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m ClosureModel) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.state {
	case constants.StateLoading:
		body = m.spinner.View() + " Carregando HAE..."
	case constants.StateSubmitting:
		body = m.spinner.View() + " Enviando..."
	case constants.StateForm:
		if m.form != nil {
			body = m.form.View()
		}
		body = lipgloss.JoinVertical(lipgloss.Left, body, viewErrors(m.ctrl.Errors()))
	}

	header := titleStyle.Render("Solicitar fechamento")
	if title := m.ctrl.ProjectTitle(); title != "" {
		header += "\n" + mutedStyle.Render(title+" · "+m.ctrl.ProjectType().Label()) + "\n"
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		viewNotice(m.ctrl.Notice()),
		body,
		m.help.View(m),
	))
}
