package leave

import (
	"time"

	"github.com/skylift/workforce/internal/calendar"
	leaveerrors "github.com/skylift/workforce/internal/leave/errors"
	"github.com/skylift/workforce/internal/shared/apperror"
)

// LeaveType is a closed enum. Each variant carries its own advance-notice
// rule; ruleFor is the single place a new type gets one.
type LeaveType string

const (
	TypeVacation     LeaveType = "VACATION"
	TypeSick         LeaveType = "SICK"
	TypePersonal     LeaveType = "PERSONAL"
	TypeParental     LeaveType = "PARENTAL"
	TypeCompensatory LeaveType = "COMPENSATORY"
	TypeEmergency    LeaveType = "EMERGENCY"
)

// CanBeHalfDay reports whether the type accepts half-day requests. Sick,
// parental and emergency leave always count whole days.
func (t LeaveType) CanBeHalfDay() bool {
	switch t {
	case TypeVacation, TypePersonal, TypeCompensatory:
		return true
	default:
		return false
	}
}

func ParseLeaveType(s string) (LeaveType, bool) {
	switch t := LeaveType(s); t {
	case TypeVacation, TypeSick, TypePersonal, TypeParental, TypeCompensatory, TypeEmergency:
		return t, true
	default:
		return "", false
	}
}

// windowRule validates a request's start date against the type's
// advance-notice policy. now is the submission instant; the calendar-day
// rules compare against its UTC midnight.
type windowRule interface {
	Validate(start, now time.Time, emergency bool) *apperror.AppError
}

func ruleFor(t LeaveType) windowRule {
	switch t {
	case TypeVacation:
		return vacationWindow{advanceDays: 14}
	case TypeSick:
		return sickWindow{pastDays: 3, futureDays: 3}
	case TypePersonal:
		return personalWindow{advance: 24 * time.Hour}
	case TypeParental, TypeCompensatory, TypeEmergency:
		return noWindow{}
	default:
		return noWindow{}
	}
}

// vacationWindow requires the start to be at least advanceDays calendar days
// after today.
type vacationWindow struct {
	advanceDays int
}

func (w vacationWindow) Validate(start, now time.Time, _ bool) *apperror.AppError {
	today := calendar.Midnight(now)
	earliest := today.AddDate(0, 0, w.advanceDays)
	if calendar.Midnight(start).Before(earliest) {
		return leaveerrors.ErrVacationAdvanceNotice.WithDetails(map[string]any{
			"rule":           "vacation_advance_notice",
			"earliest_start": earliest.Format("2006-01-02"),
		})
	}
	return nil
}

// sickWindow allows starts within [today-pastDays, today+futureDays];
// emergency sick leave is restricted to today or earlier.
type sickWindow struct {
	pastDays   int
	futureDays int
}

func (w sickWindow) Validate(start, now time.Time, emergency bool) *apperror.AppError {
	today := calendar.Midnight(now)
	startDay := calendar.Midnight(start)

	earliest := today.AddDate(0, 0, -w.pastDays)
	if startDay.Before(earliest) {
		return leaveerrors.ErrSickLeaveTooFarPast.WithDetails(map[string]any{
			"rule":           "sick_leave_window",
			"earliest_start": earliest.Format("2006-01-02"),
		})
	}

	if emergency {
		if startDay.After(today) {
			return leaveerrors.ErrEmergencySickFuture.WithDetails(map[string]any{
				"rule":         "emergency_sick_leave",
				"latest_start": today.Format("2006-01-02"),
			})
		}
		return nil
	}

	latest := today.AddDate(0, 0, w.futureDays)
	if startDay.After(latest) {
		return leaveerrors.ErrSickLeaveTooFarAhead.WithDetails(map[string]any{
			"rule":         "sick_leave_window",
			"latest_start": latest.Format("2006-01-02"),
		})
	}
	return nil
}

// personalWindow requires 24 hours of notice unless the request is flagged
// as an emergency.
type personalWindow struct {
	advance time.Duration
}

func (w personalWindow) Validate(start, now time.Time, emergency bool) *apperror.AppError {
	if emergency {
		return nil
	}
	earliest := now.UTC().Add(w.advance)
	if calendar.Midnight(start).Before(calendar.Midnight(earliest)) {
		return leaveerrors.ErrPersonalAdvanceNotice.WithDetails(map[string]any{
			"rule":           "personal_advance_notice",
			"earliest_start": calendar.Midnight(earliest).Format("2006-01-02"),
		})
	}
	return nil
}

type noWindow struct{}

func (noWindow) Validate(_, _ time.Time, _ bool) *apperror.AppError { return nil }
