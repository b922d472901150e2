package appointments

import (
	"context"
	"time"

	"github.com/dmitrijs2005/apptbook/internal/server/models"
)

// Repository is the scheduling store. Listings are ordered by date, start
// time and id.
type Repository interface {
	Create(ctx context.Context, appt *models.Appointment) (*models.Appointment, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*models.Appointment, error)
	ListByStaff(ctx context.Context, staffID int64) ([]*models.Appointment, error)
	// FindOverlap returns a non-cancelled appointment of staffID on date that
	// intersects [start, end), or common.ErrorNotFound.
	FindOverlap(ctx context.Context, staffID int64, date time.Time, start, end models.TimeOfDay) (*models.Appointment, error)
	// UpdateStatus changes the status of appointment id owned by staffID.
	// A missing appointment, or one of another staff member, is common.ErrorNotFound.
	UpdateStatus(ctx context.Context, id, staffID int64, status models.Status) error
}
