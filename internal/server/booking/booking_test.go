package booking

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/apptbook/internal/common"
	"github.com/dmitrijs2005/apptbook/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(t *testing.T, start, end string) Slot {
	t.Helper()
	s, err := ParseSlot([]string{"2", "2025-03-10", start, end})
	require.NoError(t, err)
	return s
}

func TestParseSlot_OK(t *testing.T) {
	s, err := ParseSlot([]string{"2", "2025-03-10", "09:00", "10:30:00"})
	require.NoError(t, err)

	assert.Equal(t, int64(2), s.StaffID)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), s.Date)
	assert.Equal(t, models.Clock(9, 0), s.Start)
	assert.Equal(t, models.Clock(10, 30), s.End)
}

func TestParseSlot_InvalidData(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
	}{
		{"too few", []string{"2", "2025-03-10", "09:00"}},
		{"staff not a number", []string{"x", "2025-03-10", "09:00", "10:00"}},
		{"staff zero", []string{"0", "2025-03-10", "09:00", "10:00"}},
		{"bad date", []string{"2", "10/03/2025", "09:00", "10:00"}},
		{"impossible date", []string{"2", "2025-02-30", "09:00", "10:00"}},
		{"bad start", []string{"2", "2025-03-10", "nine", "10:00"}},
		{"bad end", []string{"2", "2025-03-10", "09:00", "25:00"}},
		{"seconds", []string{"2", "2025-03-10", "09:00:30", "10:00"}},
		{"end before start", []string{"2", "2025-03-10", "10:00", "09:00"}},
		{"empty interval", []string{"2", "2025-03-10", "10:00", "10:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSlot(tt.fields)
			assert.ErrorIs(t, err, common.ErrInvalidData)
		})
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		start, end string
		want       error
	}{
		{"08:30", "09:30", common.ErrOutsideWorkingHours},
		{"17:00", "18:30", common.ErrOutsideWorkingHours},
		{"09:00", "10:00", nil},
		{"17:00", "18:00", nil},
		{"11:30", "12:30", common.ErrLunchBreak},
		{"12:30", "13:30", common.ErrLunchBreak},
		{"11:00", "14:00", common.ErrLunchBreak},
		{"11:00", "12:00", nil},
		{"13:00", "14:00", nil},
	}

	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			err := slot(t, tt.start, tt.end).Check()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOverlaps(t *testing.T) {
	c := models.Clock

	assert.True(t, Overlaps(c(9, 0), c(10, 0), c(9, 30), c(10, 30)))
	assert.True(t, Overlaps(c(9, 30), c(10, 30), c(9, 0), c(10, 0)), "must be symmetric")
	assert.True(t, Overlaps(c(9, 0), c(11, 0), c(9, 30), c(10, 0)), "containment")
	assert.False(t, Overlaps(c(9, 0), c(10, 0), c(10, 0), c(11, 0)), "touching is not overlapping")
	assert.False(t, Overlaps(c(10, 0), c(11, 0), c(9, 0), c(10, 0)))
}
