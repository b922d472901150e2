package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/apptbook/internal/common"
	"github.com/dmitrijs2005/apptbook/internal/server/booking"
	"github.com/dmitrijs2005/apptbook/internal/server/models"
	"github.com/dmitrijs2005/apptbook/internal/server/repositories/repomanager"
)

// unknownUser is shown for a counterpart whose account no longer resolves.
const unknownUser = "unknown"

// AppointmentView is an appointment as seen by one of its parties.
type AppointmentView struct {
	*models.Appointment
	OtherParty string
}

// AppointmentService books and confirms appointments.
type AppointmentService struct {
	repomanager repomanager.RepositoryManager
	locks       *keyedMutex
}

// NewAppointmentService constructs an AppointmentService.
func NewAppointmentService(m repomanager.RepositoryManager) *AppointmentService {
	return &AppointmentService{repomanager: m, locks: newKeyedMutex()}
}

func slotKey(slot booking.Slot) string {
	return fmt.Sprintf("%d/%s", slot.StaffID, slot.Date.Format(models.DateLayout))
}

// Book checks slot against the working-hours and lunch rules, then inserts
// a PENDING appointment unless it overlaps a live one of the same staff
// member on the same day. The overlap lookup and the insert hold a per
// (staff, day) lock and share one transaction.
func (s *AppointmentService) Book(ctx context.Context, customerID int64, slot booking.Slot) (*models.Appointment, error) {
	if err := slot.Check(); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(slotKey(slot))
	defer unlock()

	var appt *models.Appointment
	err := s.repomanager.InTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if _, err := r.Users().GetByID(ctx, customerID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("%w: no customer %d", common.ErrInvalidData, customerID)
			}
			return err
		}

		staff, err := r.Users().GetByID(ctx, slot.StaffID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("%w: no staff member %d", common.ErrInvalidData, slot.StaffID)
			}
			return err
		}
		if staff.Role != models.RoleEmployee {
			return fmt.Errorf("%w: user %d is not an employee", common.ErrInvalidData, slot.StaffID)
		}

		_, err = r.Appointments().FindOverlap(ctx, slot.StaffID, slot.Date, slot.Start, slot.End)
		switch {
		case err == nil:
			return common.ErrSlotTaken
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		appt, err = r.Appointments().Create(ctx, &models.Appointment{
			CustomerID: customerID,
			StaffID:    slot.StaffID,
			Date:       slot.Date,
			StartTime:  slot.Start,
			EndTime:    slot.End,
			Status:     models.StatusPending,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// ListFor returns the appointments of userID. Employees see the bookings made
// with them and the customer's name; everyone else sees their own bookings
// and the staff member's name.
func (s *AppointmentService) ListFor(ctx context.Context, userID int64, role models.Role) ([]AppointmentView, error) {
	repo := s.repomanager.Appointments()

	var (
		list []*models.Appointment
		err  error
	)
	if role == models.RoleEmployee {
		list, err = repo.ListByStaff(ctx, userID)
	} else {
		list, err = repo.ListByCustomer(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string)
	views := make([]AppointmentView, 0, len(list))
	for _, a := range list {
		other := a.StaffID
		if role == models.RoleEmployee {
			other = a.CustomerID
		}
		name, ok := names[other]
		if !ok {
			name, err = s.repomanager.Users().UsernameByID(ctx, other)
			if err != nil {
				if !errors.Is(err, common.ErrorNotFound) {
					return nil, err
				}
				name = unknownUser
			}
			names[other] = name
		}
		views = append(views, AppointmentView{Appointment: a, OtherParty: name})
	}
	return views, nil
}

// Confirm marks appointment id CONFIRMED. Only the staff member it was booked
// with may confirm it; anything else is ErrorNotFound. Confirming twice is a
// no-op.
func (s *AppointmentService) Confirm(ctx context.Context, staffID, id int64) error {
	return s.repomanager.Appointments().UpdateStatus(ctx, id, staffID, models.StatusConfirmed)
}
