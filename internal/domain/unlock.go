package domain

import (
	"time"

	"github.com/yigit/uniportal/internal/app/models"
)

// UnlockDateLayout is the display format of the unlock date
const UnlockDateLayout = "02/01/2006 15:04"

// Gate is the evaluated solution-unlock gate at a given instant
type Gate struct {
	SolutionsUnlocked bool       `json:"solutionsUnlocked"`
	Enabled           bool       `json:"enabled"`
	UnlockDate        string     `json:"unlockDate"`
	TargetDate        *time.Time `json:"targetDate,omitempty"`
	AcademicYear      string     `json:"academicYear,omitempty"`
}

// EvaluateGate decides whether series solutions are visible at now.
//
// Solutions are unlocked when the settings are absent, when the gate is
// disabled, or once now reaches the target date. A non-nil readErr means the
// settings could not be loaded and the gate fails open.
func EvaluateGate(settings *models.ExamSettings, readErr error, now time.Time) Gate {
	if readErr != nil || settings == nil {
		return Gate{SolutionsUnlocked: true}
	}

	gate := Gate{
		Enabled:      settings.Enabled,
		AcademicYear: settings.AcademicYear,
	}
	if !settings.TargetDate.IsZero() {
		target := settings.TargetDate
		gate.TargetDate = &target
		gate.UnlockDate = target.Format(UnlockDateLayout)
	}

	gate.SolutionsUnlocked = !settings.Enabled || !now.Before(settings.TargetDate)
	return gate
}
