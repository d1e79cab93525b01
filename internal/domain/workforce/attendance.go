package workforce

import (
	"fmt"
	"time"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BreakAllowance is deducted from every closed working day
const BreakAllowance = 45 * time.Minute

// Error codes specific to attendance
const (
	CodeNoAttendanceRecord = "NO_ATTENDANCE_RECORD"
	CodeAlreadyStarted     = "ALREADY_STARTED"
)

var (
	ErrNoAttendanceRecord = shared.NewDomainError(CodeNoAttendanceRecord, "No attendance record for today; clock in first")
	ErrAlreadyStarted     = shared.NewDomainError(CodeAlreadyStarted, "Working day already started")
)

// Action is a clock event at the attendance kiosk
type Action string

const (
	ActionStart      Action = "START"
	ActionBreakStart Action = "BREAK_START"
	ActionBreakEnd   Action = "BREAK_END"
	ActionEnd        Action = "END"
)

// IsValid checks if the action is known
func (a Action) IsValid() bool {
	switch a {
	case ActionStart, ActionBreakStart, ActionBreakEnd, ActionEnd:
		return true
	}
	return false
}

// AttendanceRecord is one employee's working day
type AttendanceRecord struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	EmployeeID uuid.UUID
	Day        time.Time
	Start      *time.Time
	BreakStart *time.Time
	BreakEnd   *time.Time
	End        *time.Time
	TotalHours decimal.Decimal
}

// DayOf truncates t to its calendar day in t's location
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartDay opens the working day for an employee
func StartDay(tenantID, employeeID uuid.UUID, at time.Time) *AttendanceRecord {
	return &AttendanceRecord{
		ID:         uuid.New(),
		TenantID:   tenantID,
		EmployeeID: employeeID,
		Day:        DayOf(at),
		Start:      &at,
		TotalHours: decimal.Zero,
	}
}

// Apply records a clock action on an existing day.
// Closing the day computes hours as end − start − BreakAllowance, floored at zero.
func (r *AttendanceRecord) Apply(action Action, at time.Time) error {
	switch action {
	case ActionStart:
		return ErrAlreadyStarted
	case ActionBreakStart:
		r.BreakStart = &at
	case ActionBreakEnd:
		r.BreakEnd = &at
	case ActionEnd:
		if r.Start == nil {
			return ErrNoAttendanceRecord
		}
		r.End = &at
		r.TotalHours = workedHours(*r.Start, at)
	default:
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown attendance action %q", action))
	}
	return nil
}

func workedHours(start, end time.Time) decimal.Decimal {
	worked := end.Sub(start) - BreakAllowance
	if worked <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(worked / time.Minute)).Div(decimal.NewFromInt(60)).Round(2)
}

// TotalHours sums closed hours over a set of records
func TotalHours(records []AttendanceRecord) decimal.Decimal {
	total := decimal.Zero
	for i := range records {
		total = total.Add(records[i].TotalHours)
	}
	return total
}

// Salary is total hours times the hourly rate
func Salary(e *Employee, records []AttendanceRecord) valueobject.Money {
	return e.HourlyRate.Multiply(TotalHours(records)).Round(2)
}
