package balance

import "time"

type BalanceResponse struct {
	EmployeeID            string  `json:"employee_id"`
	Year                  int     `json:"year"`
	VacationDaysTotal     int     `json:"vacation_days_total"`
	VacationDaysUsed      string  `json:"vacation_days_used"`
	VacationDaysRemaining string  `json:"vacation_days_remaining"`
	SickDaysUsed          string  `json:"sick_days_used"`
	PersonalDaysTotal     int     `json:"personal_days_total"`
	PersonalDaysUsed      string  `json:"personal_days_used"`
	PersonalDaysRemaining string  `json:"personal_days_remaining"`
	CarryOverDays         int     `json:"carry_over_days"`
	CarryOverExpires      *string `json:"carry_over_expires,omitempty"`
	CarryOverExpiringSoon bool    `json:"carry_over_expiring_soon"`
}

func mapToResponse(b LeaveBalance, now time.Time) BalanceResponse {
	resp := BalanceResponse{
		EmployeeID:            b.EmployeeID.String(),
		Year:                  b.Year,
		VacationDaysTotal:     b.VacationDaysTotal,
		VacationDaysUsed:      b.VacationDaysUsed.String(),
		VacationDaysRemaining: b.RemainingVacation().String(),
		SickDaysUsed:          b.SickDaysUsed.String(),
		PersonalDaysTotal:     b.PersonalDaysTotal,
		PersonalDaysUsed:      b.PersonalDaysUsed.String(),
		PersonalDaysRemaining: b.RemainingPersonal().String(),
		CarryOverDays:         b.CarryOverDays,
	}
	if b.CarryOverExpires != nil {
		v := b.CarryOverExpires.UTC().Format("2006-01-02")
		resp.CarryOverExpires = &v
		resp.CarryOverExpiringSoon = b.CarryOverExpires.Before(now.AddDate(0, 0, 30))
	}
	return resp
}
