package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/models"
	"github.com/julianstephens/hae/internal/stepper"
	"github.com/julianstephens/hae/internal/utils"
)

type StepOneFormModel struct {
	Title       string
	Type        constants.ProjectType
	Course      string
	Description string
	Modality    constants.Modality
	Dimensao    constants.Dimensao
	RAs         string
}

type DayFormModel struct {
	Start string
	End   string
}

type StepTwoFormModel struct {
	Days      []constants.Weekday
	Times     map[constants.Weekday]*DayFormModel
	StartDate string
	EndDate   string
}

type StepThreeFormModel struct {
	Observations string
	Send         bool
}

type ConfirmFormModel struct {
	Confirmed bool
}

func options[T ~string](opts []constants.Option[T]) []huh.Option[T] {
	out := make([]huh.Option[T], 0, len(opts))
	for _, o := range opts {
		out = append(out, huh.NewOption(o.Label, o.Value))
	}
	return out
}

func validClock(s string) error {
	if strings.TrimSpace(s) == "" || utils.ValidateTimeFormat(strings.TrimSpace(s)) {
		return nil
	}
	return errors.New("use o formato HH:MM")
}

func newStepOne(d models.HaeDraft) *StepOneFormModel {
	return &StepOneFormModel{
		Title:       d.ProjectTitle,
		Type:        d.ProjectType,
		Course:      d.Course,
		Description: d.ProjectDescription,
		Modality:    d.Modality,
		Dimensao:    d.Dimensao,
		RAs:         strings.Join(d.StudentRAs, "\n"),
	}
}

func NewStepOneForm(fm *StepOneFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Título do projeto").
				Value(&fm.Title),
			huh.NewSelect[constants.ProjectType]().
				Title("Tipo de projeto").
				Options(options(constants.ProjectTypeOptions)...).
				Value(&fm.Type),
			huh.NewSelect[string]().
				Title("Curso").
				Options(huh.NewOptions(constants.Courses...)...).
				Height(8).
				Value(&fm.Course),
			huh.NewSelect[constants.Modality]().
				Title("Modalidade").
				Options(options(constants.ModalityOptions)...).
				Value(&fm.Modality),
			huh.NewSelect[constants.Dimensao]().
				Title("Dimensão").
				Options(options(constants.DimensaoOptions)...).
				Height(6).
				Value(&fm.Dimensao),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Descrição do projeto").
				Value(&fm.Description),
		),
		huh.NewGroup(
			huh.NewText().
				Title("RAs dos alunos").
				Description("Um RA de 13 dígitos por linha").
				Value(&fm.RAs),
		).WithHideFunc(func() bool { return !fm.Type.RequiresRoster() }),
	)
}

// applyStepOne copies the step one answers onto the controller.
func applyStepOne(c *stepper.Controller, fm *StepOneFormModel) error {
	errs := []error{
		c.SetProjectTitle(fm.Title),
		c.SetProjectType(fm.Type),
		c.SetCourse(fm.Course),
		c.SetProjectDescription(fm.Description),
		c.SetModality(fm.Modality),
		c.SetDimensao(fm.Dimensao),
	}
	if fm.Type.RequiresRoster() {
		errs = append(errs, c.SetStudentRAs(utils.SplitLines(fm.RAs)))
	}
	return errors.Join(errs...)
}

func newStepTwo(d models.HaeDraft, times models.DailyTimes) *StepTwoFormModel {
	fm := &StepTwoFormModel{
		Days:      append([]constants.Weekday(nil), d.DayOfWeek...),
		Times:     make(map[constants.Weekday]*DayFormModel, len(constants.Weekdays)),
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
	}
	for _, day := range constants.Weekdays {
		t := times[day]
		fm.Times[day] = &DayFormModel{Start: t.Start, End: t.End}
	}
	return fm
}

func (fm *StepTwoFormModel) selected(day constants.Weekday) bool {
	for _, d := range fm.Days {
		if d == day {
			return true
		}
	}
	return false
}

func NewStepTwoForm(fm *StepTwoFormModel) *huh.Form {
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewMultiSelect[constants.Weekday]().
				Title("Dias da semana").
				Options(huh.NewOptions(constants.Weekdays...)...).
				Value(&fm.Days),
		),
	}

	for _, day := range constants.Weekdays {
		t := fm.Times[day]
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Início").
				Placeholder("HH:MM").
				Value(&t.Start).
				Validate(validClock),
			huh.NewInput().
				Title("Fim").
				Placeholder("HH:MM").
				Value(&t.End).
				Validate(validClock),
		).Title(string(day)).WithHideFunc(func() bool { return !fm.selected(day) }))
	}

	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Data de início").
			Placeholder("AAAA-MM-DD").
			Value(&fm.StartDate),
		huh.NewInput().
			Title("Data de término").
			Placeholder("AAAA-MM-DD").
			Value(&fm.EndDate),
	))

	return huh.NewForm(groups...)
}

func applyStepTwo(c *stepper.Controller, fm *StepTwoFormModel) error {
	errs := []error{c.SetDays(fm.Days)}
	for _, day := range models.SortWeekdays(fm.Days) {
		t := fm.Times[day]
		if t == nil {
			continue
		}
		errs = append(errs, c.SetDayTimes(day, t.Start, t.End))
	}
	errs = append(errs, c.SetStartDate(fm.StartDate), c.SetEndDate(fm.EndDate))
	return errors.Join(errs...)
}

func NewStepThreeForm(fm *StepThreeFormModel, d models.HaeDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Resumo").
				Description(summary(d)),
			huh.NewText().
				Title("Observações").
				Value(&fm.Observations),
			huh.NewConfirm().
				Title("Enviar solicitação?").
				Affirmative("Enviar").
				Negative("Voltar").
				Value(&fm.Send),
		),
	)
}

func NewConfirmForm(title, message string, fm *ConfirmFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(message).
				Affirmative("Salvar").
				Negative("Cancelar").
				Value(&fm.Confirmed),
		),
	)
}

// summary renders the draft as plain lines for review.
func summary(d models.HaeDraft) string {
	var b strings.Builder
	line := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}

	line("Título", d.ProjectTitle)
	line("Tipo", d.ProjectType.Label())
	line("Curso", d.Course)
	line("Modalidade", d.Modality.Label())
	line("Dimensão", d.Dimensao.Label())
	if d.ProjectType.RequiresRoster() {
		line("RAs", strings.Join(d.StudentRAs, ", "))
	}
	for _, day := range models.SortWeekdays(d.DayOfWeek) {
		line(string(day), d.WeeklySchedule[day].TimeRange)
	}
	line("Horas semanais", strconv.FormatFloat(d.WeeklyHours, 'f', -1, 64))
	line("Período", d.StartDate+" a "+d.EndDate)
	return strings.TrimRight(b.String(), "\n")
}
