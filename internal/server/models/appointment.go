package models

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	// StatusCancelled is excluded from conflict checks. Nothing in the
	// protocol produces it yet.
	StatusCancelled Status = "CANCELLED"
)

func (s Status) String() string { return string(s) }

// TimeOfDay is a wall-clock time in minutes after midnight.
type TimeOfDay int

// Clock builds a TimeOfDay from hours and minutes.
func Clock(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

func (t TimeOfDay) Hour() int { return int(t) / 60 }

func (t TimeOfDay) Minute() int { return int(t) % 60 }

// String renders HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// DateLayout is the calendar format used on the wire.
const DateLayout = time.DateOnly

// Appointment books a staff member for [StartTime, EndTime) on Date.
// Date is a calendar day at midnight UTC.
type Appointment struct {
	ID         int64
	CustomerID int64
	StaffID    int64
	Date       time.Time
	StartTime  TimeOfDay
	EndTime    TimeOfDay
	Status     Status
	CreatedAt  time.Time
}
