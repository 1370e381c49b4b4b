package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/stepper"
	"github.com/julianstephens/hae/internal/validation"
)

var stepTitles = []string{"Projeto", "Horários", "Revisão"}

var fieldLabels = map[string]string{
	"projectTitle":             "Título",
	"projectType":              "Tipo",
	"course":                   "Curso",
	"projectDescription":       "Descrição",
	"modality":                 "Modalidade",
	"dimensao":                 "Dimensão",
	"studentRAs":               "RAs",
	"dayOfWeek":                "Dias",
	"weeklySchedule":           "Horário",
	"startDate":                "Início",
	"endDate":                  "Término",
	"weeklyHours":              "Horas semanais",
	"tccRole":                  "Participação",
	"tccStudentCount":          "Quantidade de alunos",
	"tccStudentNames":          "Alunos",
	"tccApprovedStudents":      "Aprovados",
	"tccProjectInfo":           "Projetos",
	"estagioStudentInfo":       "Alunos atendidos",
	"estagioApprovedStudents":  "Aprovados",
	"apoioType":                "Tipo de apoio",
	"apoioGeralDescription":    "Descrição",
	"apoioApprovedStudents":    "Aprovados",
	"apoioCertificateStudents": "Certificados",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.state {
	case constants.StateLoading:
		body = m.spinner.View() + " Carregando HAE..."
	case constants.StateSubmitting:
		body = m.spinner.View() + " Enviando..."
	case constants.StateReadOnly:
		body = summary(m.ctrl.Draft())
	case constants.StateDone, constants.StateFailed:
	default:
		if m.form != nil {
			body = m.form.View()
		}
		body = lipgloss.JoinVertical(lipgloss.Left, body, viewErrors(m.ctrl.Errors()))
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		viewNotice(m.ctrl.Notice()),
		body,
		m.help.View(m),
	))
}

func (m Model) viewHeader() string {
	title := "Nova HAE"
	if m.ctrl.EditMode() {
		title = "Editar HAE"
	}

	current := m.ctrl.State().Step()
	var steps []string
	for i, name := range stepTitles {
		label := fmt.Sprintf("%d. %s", i+1, name)
		if i+1 == current {
			steps = append(steps, activeStepStyle.Render(label))
		} else {
			steps = append(steps, inactiveStepStyle.Render(label))
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(title),
		lipgloss.JoinHorizontal(lipgloss.Top, steps...),
		"",
	)
}

func viewNotice(n stepper.Notice) string {
	if n.IsZero() {
		return ""
	}
	switch n.Severity {
	case stepper.SeverityError:
		return dangerStyle.Render(n.Message) + "\n"
	case stepper.SeverityWarning:
		return warningStyle.Render(n.Message) + "\n"
	case stepper.SeveritySuccess:
		return successStyle.Render(n.Message) + "\n"
	default:
		return infoStyle.Render(n.Message) + "\n"
	}
}

func viewErrors(errs validation.Errors) string {
	if len(errs) == 0 {
		return ""
	}
	var lines []string
	for _, f := range errs.Fields() {
		label, ok := fieldLabels[f]
		if !ok {
			label = f
		}
		lines = append(lines, dangerStyle.Render("• "+label+": ")+mutedStyle.Render(errs[f]))
	}
	return strings.Join(lines, "\n")
}
