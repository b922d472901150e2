// Package booking holds the slot rules applied to every BOOK request:
// payload parsing, working hours, the lunch window and the overlap predicate.
// Conflict lookup against stored appointments lives in the services package.
package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/apptbook/internal/common"
	"github.com/dmitrijs2005/apptbook/internal/server/models"
)

// Opening hours and the lunch window, all half-open.
var (
	OpenAt     = models.Clock(9, 0)
	CloseAt    = models.Clock(18, 0)
	LunchStart = models.Clock(12, 0)
	LunchEnd   = models.Clock(13, 0)
)

// Slot is a requested staff member, day and [Start, End) interval.
type Slot struct {
	StaffID int64
	Date    time.Time
	Start   models.TimeOfDay
	End     models.TimeOfDay
}

// ParseSlot reads staffId, date, start and end fields. Any malformed field,
// or an interval that does not move forward in time, is ErrInvalidData.
func ParseSlot(fields []string) (Slot, error) {
	if len(fields) < 4 {
		return Slot{}, common.ErrInvalidData
	}

	staffID, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil || staffID <= 0 {
		return Slot{}, fmt.Errorf("%w: staff id %q", common.ErrInvalidData, fields[0])
	}
	date, err := ParseDate(fields[1])
	if err != nil {
		return Slot{}, err
	}
	start, err := ParseTime(fields[2])
	if err != nil {
		return Slot{}, err
	}
	end, err := ParseTime(fields[3])
	if err != nil {
		return Slot{}, err
	}
	if start >= end {
		return Slot{}, fmt.Errorf("%w: start %s not before end %s", common.ErrInvalidData, start, end)
	}

	return Slot{StaffID: staffID, Date: date, Start: start, End: end}, nil
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(models.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", common.ErrInvalidData, s)
	}
	return d, nil
}

// ParseTime parses HH:MM or HH:MM:SS. Slots have minute precision, so
// seconds must be zero.
func ParseTime(s string) (models.TimeOfDay, error) {
	s = strings.TrimSpace(s)
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = time.TimeOnly
	}
	t, err := time.Parse(layout, s)
	if err != nil || t.Second() != 0 {
		return 0, fmt.Errorf("%w: time %q", common.ErrInvalidData, s)
	}
	return models.Clock(t.Hour(), t.Minute()), nil
}

// Check applies the working-hours rule and then the lunch rule.
func (s Slot) Check() error {
	if s.Start < OpenAt || s.End > CloseAt {
		return common.ErrOutsideWorkingHours
	}
	if Overlaps(s.Start, s.End, LunchStart, LunchEnd) {
		return common.ErrLunchBreak
	}
	return nil
}

// Overlaps reports whether [s1, e1) and [s2, e2) intersect. Intervals that
// only touch at an endpoint do not overlap.
func Overlaps(s1, e1, s2, e2 models.TimeOfDay) bool {
	return s1 < e2 && s2 < e1
}
