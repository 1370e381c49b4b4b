package stepper

import (
	"time"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/logger"
	"github.com/julianstephens/hae/internal/models"
	"github.com/julianstephens/hae/internal/utils"
)

// FindIncompletePrior returns the first record from a semester before startDate's
// that is not COMPLETO. Semesters are compared as "YYYY/N" strings.
func FindIncompletePrior(records []models.HaeRecord, startDate string) (models.HaeRecord, bool) {
	target, err := utils.SemesterOf(startDate)
	if err != nil {
		return models.HaeRecord{}, false
	}

	for _, r := range records {
		if r.Status == constants.StatusCompleto {
			continue
		}
		sem, err := utils.SemesterOf(r.StartDate)
		if err != nil {
			logger.Warn("Skipping request with unreadable start date", "id", r.ID, "start_date", r.StartDate)
			continue
		}
		if sem < target {
			return r, true
		}
	}
	return models.HaeRecord{}, false
}

// CanRequestClosure reports whether a closure may be requested for a record:
// it must be APROVADO and today must be within a week of its end date, or later.
func CanRequestClosure(status constants.Status, endDate string, today time.Time) bool {
	if status != constants.StatusAprovado {
		return false
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return false
	}
	opens := end.AddDate(0, 0, -constants.ClosureWindowDays)
	return !utils.CivilDate(today).Before(opens)
}
