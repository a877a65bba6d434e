package availability

import (
	"context"
	"time"

	"github.com/skylift/workforce/internal/assignment"
	availabilityerrors "github.com/skylift/workforce/internal/availability/errors"
	"github.com/skylift/workforce/internal/calendar"
	"github.com/skylift/workforce/internal/employee"
	"github.com/skylift/workforce/internal/leave"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// builderConcurrency bounds the per-worker goroutine fan-out.
const builderConcurrency = 8

//go:generate mockgen -source=availability_service.go -destination=mock/availability_service_mock.go -package=mock
type Service interface {
	BuildMatrix(ctx context.Context, q MatrixQuery) (MatrixResponse, error)
}

type service struct {
	employees   employee.Repository
	leaves      leave.Repository
	assignments assignment.Repository
	holidays    calendar.Repository
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	employees employee.Repository,
	leaves leave.Repository,
	assignments assignment.Repository,
	holidays calendar.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("availability.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("availability.service")
	}
	return &service{
		employees:   employees,
		leaves:      leaves,
		assignments: assignments,
		holidays:    holidays,
		now:         time.Now,
		logger:      l,
	}
}

// BuildMatrix aggregates approved leave, task assignments and the holiday
// calendar into a per-worker, per-day availability grid. It performs no
// writes; identical inputs produce identical output.
func (s *service) BuildMatrix(ctx context.Context, q MatrixQuery) (MatrixResponse, error) {
	start := calendar.Midnight(q.StartDate)
	end := calendar.Midnight(q.EndDate)
	if end.Before(start) {
		return MatrixResponse{}, availabilityerrors.ErrInvalidDateRange
	}
	numDays := int(end.Sub(start).Hours()/24) + 1

	workers, err := s.employees.FindEligibleWorkers(ctx, q.WorkerIDs, q.Skill)
	if err != nil {
		s.logger.Error("fetch eligible workers failed", zap.Error(err))
		return MatrixResponse{}, err
	}

	today := calendar.Midnight(s.now())
	resp := MatrixResponse{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Workers:   make([]WorkerRow, len(workers)),
		Summary: MatrixSummary{
			TotalWorkers: len(workers),
			StatusCounts: map[string]int{},
		},
		LastUpdated: s.now().UTC(),
	}
	if len(workers) == 0 {
		return resp, nil
	}

	ids := make([]string, len(workers))
	for i, w := range workers {
		ids[i] = w.ID.String()
	}

	approvedLeave, err := s.leaves.FindApprovedInRange(ctx, ids, start, end)
	if err != nil {
		s.logger.Error("fetch approved leave failed", zap.Error(err))
		return MatrixResponse{}, err
	}
	tasks, err := s.assignments.FindOverlappingRange(ctx, ids, start, end)
	if err != nil {
		s.logger.Error("fetch assignments failed", zap.Error(err))
		return MatrixResponse{}, err
	}
	holidays, err := s.holidays.FindInRange(ctx, start, end)
	if err != nil {
		s.logger.Error("fetch holidays failed", zap.Error(err))
		return MatrixResponse{}, err
	}

	leaveByWorker := make(map[string][]leave.LeaveRequest)
	for _, l := range approvedLeave {
		id := l.EmployeeID.String()
		leaveByWorker[id] = append(leaveByWorker[id], l)
	}
	tasksByWorker := make(map[string][]assignment.TaskAssignment)
	for _, t := range tasks {
		id := t.EmployeeID.String()
		tasksByWorker[id] = append(tasksByWorker[id], t)
	}

	// Rows are independent of each other, so fan out across workers with
	// a bounded semaphore and write each result to its own index.
	sem := make(chan struct{}, builderConcurrency)
	done := make(chan struct{})
	for i, w := range workers {
		sem <- struct{}{}
		go func(i int, w employee.Employee) {
			defer func() {
				<-sem
				done <- struct{}{}
			}()
			id := w.ID.String()
			resp.Workers[i] = s.buildWorkerRow(w, start, numDays, leaveByWorker[id], tasksByWorker[id], holidays)
		}(i, w)
	}
	for range workers {
		<-done
	}

	utilizationSum := 0.0
	for _, row := range resp.Workers {
		utilizationSum += row.Stats.Utilization
		for _, day := range row.Days {
			if day.Date == today.Format("2006-01-02") {
				resp.Summary.StatusCounts[day.Status]++
			}
		}
	}
	resp.Summary.MeanUtilization = utilizationSum / float64(len(workers))

	return resp, nil
}

func (s *service) buildWorkerRow(
	w employee.Employee,
	start time.Time,
	numDays int,
	leaves []leave.LeaveRequest,
	tasks []assignment.TaskAssignment,
	holidays []calendar.PublicHoliday,
) WorkerRow {
	row := WorkerRow{
		EmployeeID: w.ID.String(),
		Name:       w.Name,
		Role:       w.Role,
		Skills:     w.SkillList(),
		Days:       make([]DayRecord, 0, numDays),
	}

	totalHours := decimal.Zero
	daysWithAssignment := 0

	for i := 0; i < numDays; i++ {
		d := start.AddDate(0, 0, i)

		var leaveForDay *leave.LeaveRequest
		for j := range leaves {
			if leaves[j].Covers(d) {
				leaveForDay = &leaves[j]
				break
			}
		}

		assignedHours := decimal.Zero
		var dayTasks []DayTask
		for _, t := range tasks {
			if !t.Covers(d) {
				continue
			}
			dayTasks = append(dayTasks, DayTask{
				TaskID: t.TaskID.String(),
				Title:  t.TaskTitle,
				Hours:  t.HoursPerDay().String(),
			})
			assignedHours = assignedHours.Add(t.HoursPerDay())
		}

		record := DayRecord{
			Date:        d.Format("2006-01-02"),
			MaxCapacity: 8,
			IsWorkday:   calendar.IsWorkday(d, holidays),
			Tasks:       dayTasks,
		}

		switch {
		case leaveForDay != nil:
			// Leave zeroes the day regardless of assignments.
			record.AssignedHours = decimal.Zero.String()
			record.MaxCapacity = 0
			record.LeaveInfo = &LeaveInfo{
				RequestID: leaveForDay.ID.String(),
				Type:      leaveForDay.Type,
				HalfDay:   leaveForDay.HalfDay,
			}
			if leaveForDay.Type == string(leave.TypeSick) {
				record.Status = StatusSick
			} else {
				record.Status = StatusOnLeave
			}
		case assignedHours.GreaterThan(assignment.DefaultDailyHours):
			record.AssignedHours = assignedHours.String()
			record.Status = StatusOverloaded
		case assignedHours.GreaterThanOrEqual(decimal.NewFromInt(6)):
			record.AssignedHours = assignedHours.String()
			record.Status = StatusAssigned
		case assignedHours.GreaterThan(decimal.Zero):
			record.AssignedHours = assignedHours.String()
			record.Status = StatusPartiallyBusy
		default:
			record.AssignedHours = decimal.Zero.String()
			record.Status = StatusAvailable
		}

		if leaveForDay == nil && assignedHours.GreaterThan(decimal.Zero) {
			totalHours = totalHours.Add(assignedHours)
			daysWithAssignment++
		}

		row.Days = append(row.Days, record)
	}

	capacity := decimal.NewFromInt(int64(numDays)).Mul(assignment.DefaultDailyHours)
	utilization, _ := totalHours.Div(capacity).Float64()
	if utilization > 1 {
		utilization = 1
	}
	averageDaily := decimal.Zero
	if daysWithAssignment > 0 {
		averageDaily = totalHours.Div(decimal.NewFromInt(int64(daysWithAssignment))).Round(2)
	}
	row.Stats = WeeklyStats{
		TotalHours:   totalHours.String(),
		Utilization:  utilization,
		AverageDaily: averageDaily.String(),
	}

	return row
}
