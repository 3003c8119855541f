package domain

import "time"

// DailyStatusEntry is one row per (employee, date, usecase) combination in the
// daily time-status tracker.
type DailyStatusEntry struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	UsecaseID   string
	UsecaseName string
	LeadIDs     []string
	StatusText  string
	Hours       int
	Minutes     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WorkedMinutes returns the total working time of the entry in minutes.
func (d *DailyStatusEntry) WorkedMinutes() int {
	return d.Hours*60 + d.Minutes
}
