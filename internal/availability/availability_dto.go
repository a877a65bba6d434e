package availability

import "time"

const (
	StatusAvailable     = "AVAILABLE"
	StatusPartiallyBusy = "PARTIALLY_BUSY"
	StatusAssigned      = "ASSIGNED"
	StatusOverloaded    = "OVERLOADED"
	StatusOnLeave       = "ON_LEAVE"
	StatusSick          = "SICK"
)

// MatrixQuery narrows the matrix to a worker set and skill.
type MatrixQuery struct {
	StartDate time.Time
	EndDate   time.Time
	WorkerIDs []string
	Skill     string
}

// LeaveInfo describes the approved leave that blocks a day.
type LeaveInfo struct {
	RequestID string `json:"request_id"`
	Type      string `json:"type"`
	HalfDay   bool   `json:"half_day"`
}

// DayTask is one assignment contributing hours to a day.
type DayTask struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title,omitempty"`
	Hours  string `json:"hours"`
}

// DayRecord is derived per worker per date and never persisted.
type DayRecord struct {
	Date          string     `json:"date"`
	Status        string     `json:"status"`
	AssignedHours string     `json:"assigned_hours"`
	MaxCapacity   int        `json:"max_capacity"`
	IsWorkday     bool       `json:"is_workday"`
	LeaveInfo     *LeaveInfo `json:"leave_info,omitempty"`
	Tasks         []DayTask  `json:"tasks"`
}

type WeeklyStats struct {
	TotalHours   string  `json:"total_hours"`
	Utilization  float64 `json:"utilization"`
	AverageDaily string  `json:"average_daily"`
}

type WorkerRow struct {
	EmployeeID string      `json:"employee_id"`
	Name       string      `json:"name"`
	Role       string      `json:"role"`
	Skills     []string    `json:"skills"`
	Days       []DayRecord `json:"days"`
	Stats      WeeklyStats `json:"stats"`
}

// MatrixSummary aggregates today's statuses across all workers.
type MatrixSummary struct {
	TotalWorkers    int            `json:"total_workers"`
	StatusCounts    map[string]int `json:"status_counts_today"`
	MeanUtilization float64        `json:"mean_utilization"`
}

type MatrixResponse struct {
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
	Workers     []WorkerRow   `json:"workers"`
	Summary     MatrixSummary `json:"summary"`
	LastUpdated time.Time     `json:"last_updated"`
}
