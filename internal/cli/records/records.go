package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/hae/internal/cli"
	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/models"
	"github.com/julianstephens/hae/internal/utils"
)

type ListCmd struct {
	Status string `help:"Show only requests with this status (e.g. PENDENTE)."`
	JSON   bool   `help:"Print the records as JSON." name:"json"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	status := constants.Status(strings.ToUpper(strings.TrimSpace(c.Status)))
	if status != "" && !status.Valid() {
		return fmt.Errorf("invalid status: %s", c.Status)
	}

	session, err := ctx.Session()
	if err != nil {
		return err
	}
	records, err := ctx.Backend.GetHaesByProfessorID(ctx.Background(), session.Employee.ID)
	if err != nil {
		return fmt.Errorf("failed to list requests: %w", err)
	}

	var shown []models.HaeRecord
	for _, r := range records {
		if status != "" && r.Status != status {
			continue
		}
		shown = append(shown, r)
	}

	if c.JSON {
		out, err := json.MarshalIndent(shown, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal records: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if len(shown) == 0 {
		fmt.Println("No requests found")
		return nil
	}

	fmt.Println("Requests:")
	for _, r := range shown {
		semester, err := utils.SemesterOf(r.StartDate)
		if err != nil {
			semester = "?"
		}
		fmt.Printf("  [%s] %s (ID: %s)\n", r.Status.Label(), r.ProjectTitle, r.ID)
		fmt.Printf("      %s · %s · %gh/semana · %s a %s (%s)\n",
			r.ProjectType.Label(), r.Course, r.WeeklyHours,
			utils.NormalizeDate(r.StartDate), utils.NormalizeDate(r.EndDate), semester)
	}
	return nil
}

// HistoryCmd prints the local journal of submission outcomes.
type HistoryCmd struct {
	Limit int  `help:"Maximum number of entries." default:"20"`
	All   bool `help:"Include entries of every professor on this machine."`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	if ctx.Journal == nil {
		return errors.New("local journal is not available")
	}

	employeeID := ""
	if !c.All {
		session, err := ctx.Session()
		if err != nil {
			return err
		}
		employeeID = session.Employee.ID
	}

	subs, err := ctx.Journal.ListSubmissions(employeeID, c.Limit)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}
	if len(subs) == 0 {
		fmt.Println("No submissions recorded")
		return nil
	}

	for _, s := range subs {
		mark := "✓"
		if s.Outcome != models.OutcomeSuccess {
			mark = "❌"
		}
		title := s.ProjectTitle
		if title == "" {
			title = s.RecordID
		}
		fmt.Printf("%s %s  %-7s  %s\n", mark, s.CreatedAt.Local().Format("2006-01-02 15:04"), s.Kind, title)
		if s.Message != "" {
			fmt.Printf("      %s\n", s.Message)
		}
	}
	return nil
}
