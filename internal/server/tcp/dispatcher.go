package tcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/apptbook/internal/common"
	"github.com/dmitrijs2005/apptbook/internal/logging"
	"github.com/dmitrijs2005/apptbook/internal/protocol"
	"github.com/dmitrijs2005/apptbook/internal/server/booking"
	"github.com/dmitrijs2005/apptbook/internal/server/models"
	"github.com/dmitrijs2005/apptbook/internal/server/services"
	"github.com/dmitrijs2005/apptbook/internal/server/session"
)

// handler holds the per-connection state used by command handlers. It is
// owned by one goroutine.
type handler struct {
	sess         *session.Session
	out          *protocol.Writer
	log          logging.Logger
	users        *services.UserService
	appointments *services.AppointmentService
}

// route binds a command to its handler and to the kind reported if the
// handler panics.
type route struct {
	run  func(h *handler, ctx context.Context, payload string) error
	fail protocol.Kind
}

var routes = map[protocol.Command]route{
	protocol.CmdRegister:        {(*handler).register, protocol.KindRegisterFailed},
	protocol.CmdLogin:           {(*handler).login, protocol.KindAuthError},
	protocol.CmdListEmployees:   {(*handler).listEmployees, protocol.KindListEmps},
	protocol.CmdBook:            {(*handler).book, protocol.KindInvalidData},
	protocol.CmdMyAppointments:  {(*handler).myAppointments, protocol.KindApptsFailed},
	protocol.CmdConfirm:         {(*handler).confirm, protocol.KindConfirmFailed},
	protocol.CmdMyInfo:          {(*handler).myInfo, protocol.KindGetInfoFailed},
	protocol.CmdAdminListUsers:  {(*handler).adminListUsers, protocol.KindListFailed},
	protocol.CmdAdminAddUser:    {(*handler).adminAddUser, protocol.KindRegisterFailed},
	protocol.CmdAdminUpdateUser: {(*handler).adminUpdateUser, protocol.KindUpdateFailed},
	protocol.CmdAdminDeleteUser: {(*handler).adminDeleteUser, protocol.KindDeleteFailed},
}

// handleLine processes one inbound line. It reports whether the connection
// should close; a non-nil error means the reply could not be written.
func (h *handler) handleLine(ctx context.Context, line string) (quit bool, err error) {
	cmd, payload := protocol.ParseLine(line)

	switch cmd {
	case "", protocol.CmdPing:
		return false, nil
	case protocol.CmdQuit:
		return true, h.out.OK(protocol.Bye)
	}

	r, ok := routes[cmd]
	if !ok {
		h.log.Debug(ctx, "unknown command", "command", string(cmd))
		return false, h.out.Error(protocol.KindUnknownCommand)
	}
	return false, h.dispatch(ctx, cmd, r, payload)
}

func (h *handler) dispatch(ctx context.Context, cmd protocol.Command, r route, payload string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			h.log.Error(ctx, "command handler panic", "command", string(cmd), "error", fmt.Errorf("%w: %v", common.ErrorInternal, p))
			err = h.out.Error(r.fail)
		}
	}()
	return r.run(h, ctx, payload)
}

// parseID reads a positive numeric id.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return id, err == nil && id > 0
}

// parseOptionalRole reads the role field at index i; a missing or empty field
// is the empty role.
func parseOptionalRole(fields []string, i int) (models.Role, bool) {
	if len(fields) <= i || strings.TrimSpace(fields[i]) == "" {
		return "", true
	}
	return models.ParseRole(fields[i])
}

func (h *handler) register(ctx context.Context, payload string) error {
	return h.createUser(ctx, payload)
}

func (h *handler) createUser(ctx context.Context, payload string) error {
	fields := protocol.SplitPayload(payload)
	if len(fields) < 2 {
		return h.out.Error(protocol.KindBadPayload)
	}
	role, ok := parseOptionalRole(fields, 2)
	if !ok {
		return h.out.Error(protocol.KindBadPayload)
	}

	u, err := h.users.Register(ctx, fields[0], fields[1], role)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return h.out.Error(protocol.KindBadPayload)
		case errors.Is(err, common.ErrorAlreadyExists):
			return h.out.Error(protocol.KindExists)
		default:
			h.log.Error(ctx, "registration failed", "error", err)
			return h.out.Error(protocol.KindRegisterFailed)
		}
	}

	h.log.Info(ctx, "registered", "username", u.UserName, "role", u.Role.String())
	return h.out.OK("Registered")
}

func (h *handler) login(ctx context.Context, payload string) error {
	fields := protocol.SplitPayload(payload)
	if len(fields) < 2 {
		return h.out.Error(protocol.KindBadPayload)
	}

	u, err := h.users.Login(ctx, fields[0], fields[1])
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			h.log.Info(ctx, "login failed", "username", fields[0])
			return h.out.Error(protocol.KindAuthFailed)
		}
		h.log.Error(ctx, "login error", "error", err)
		return h.out.Error(protocol.KindAuthError)
	}

	h.sess.Login(u.ID, u.Role)
	h.log.Info(ctx, "logged in", "username", u.UserName, "user_id", u.ID)
	return h.out.OK(protocol.JoinFields(strconv.FormatInt(u.ID, 10), u.UserName, u.Role.String()))
}

func (h *handler) listEmployees(ctx context.Context, _ string) error {
	emps, err := h.users.ListEmployees(ctx)
	if err != nil {
		h.log.Error(ctx, "list employees failed", "error", err)
		return h.out.Error(protocol.KindListEmps)
	}

	items := make([]string, 0, len(emps))
	for _, e := range emps {
		items = append(items, fmt.Sprintf("%d:%s", e.ID, e.UserName))
	}
	return h.out.List(protocol.TagEmployee, items)
}

func (h *handler) book(ctx context.Context, payload string) error {
	who, err := h.sess.Authenticated()
	if err != nil {
		return h.out.Error(protocol.KindNotLoggedIn)
	}

	fields := protocol.SplitPayload(payload)
	if len(fields) < 4 {
		return h.out.Error(protocol.KindBadPayload)
	}

	slot, err := booking.ParseSlot(fields)
	if err != nil {
		return h.out.Error(protocol.KindInvalidData)
	}

	appt, err := h.appointments.Book(ctx, who.UserID, slot)
	if err != nil {
		kind := bookingKind(err)
		if kind == protocol.KindInvalidData && !errors.Is(err, common.ErrInvalidData) {
			h.log.Error(ctx, "booking failed", "error", err)
		} else {
			h.log.Info(ctx, "booking rejected", "kind", string(kind))
		}
		return h.out.Error(kind)
	}

	h.log.Info(ctx, "booked", "appointment_id", appt.ID, "staff_id", appt.StaffID)
	return h.out.OK("Booked (Pending Confirmation)")
}

func bookingKind(err error) protocol.Kind {
	switch {
	case errors.Is(err, common.ErrOutsideWorkingHours):
		return protocol.KindOutsideWorkingHours
	case errors.Is(err, common.ErrLunchBreak):
		return protocol.KindLunchBreak
	case errors.Is(err, common.ErrSlotTaken):
		return protocol.KindSlotTaken
	default:
		return protocol.KindInvalidData
	}
}

func (h *handler) myAppointments(ctx context.Context, _ string) error {
	who, err := h.sess.Authenticated()
	if err != nil {
		return h.out.Error(protocol.KindNotLoggedIn)
	}

	views, err := h.appointments.ListFor(ctx, who.UserID, who.Role)
	if err != nil {
		h.log.Error(ctx, "list appointments failed", "error", err)
		return h.out.Error(protocol.KindApptsFailed)
	}

	items := make([]string, 0, len(views))
	for _, v := range views {
		items = append(items, protocol.JoinFields(
			strconv.FormatInt(v.ID, 10),
			v.OtherParty,
			v.Date.Format(models.DateLayout),
			v.StartTime.String(),
			v.Status.String(),
		))
	}
	return h.out.List(protocol.TagAppointment, items)
}

func (h *handler) confirm(ctx context.Context, payload string) error {
	who, err := h.sess.RequireRole(models.RoleEmployee)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return h.out.Error(protocol.KindNotLoggedIn)
		}
		return h.out.Error(protocol.KindPermissionDenied)
	}

	id, ok := parseID(payload)
	if !ok {
		return h.out.Error(protocol.KindConfirmFailed)
	}

	if err := h.appointments.Confirm(ctx, who.UserID, id); err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			h.log.Error(ctx, "confirm failed", "error", err)
		}
		return h.out.Error(protocol.KindConfirmFailed)
	}

	h.log.Info(ctx, "confirmed", "appointment_id", id)
	return h.out.OK("Confirmed")
}

func (h *handler) myInfo(ctx context.Context, _ string) error {
	who, err := h.sess.Authenticated()
	if err != nil {
		return h.out.Error(protocol.KindNotLoggedIn)
	}

	u, err := h.users.Info(ctx, who.UserID)
	if err != nil {
		h.log.Error(ctx, "get info failed", "error", err)
		return h.out.Error(protocol.KindGetInfoFailed)
	}
	return h.out.Block(u.UserName + " " + u.Role.String())
}

// requireAdmin answers Denied for every non-admin session, anonymous included.
func (h *handler) requireAdmin() bool {
	_, err := h.sess.RequireRole(models.RoleAdmin)
	return err == nil
}

func (h *handler) adminListUsers(ctx context.Context, _ string) error {
	if !h.requireAdmin() {
		return h.out.Error(protocol.KindDenied)
	}

	list, err := h.users.ListUsers(ctx)
	if err != nil {
		h.log.Error(ctx, "list users failed", "error", err)
		return h.out.Error(protocol.KindListFailed)
	}

	items := make([]string, 0, len(list))
	for _, u := range list {
		items = append(items, protocol.JoinFields(strconv.FormatInt(u.ID, 10), u.UserName, u.Role.String()))
	}
	return h.out.List(protocol.TagUser, items)
}

func (h *handler) adminAddUser(ctx context.Context, payload string) error {
	if !h.requireAdmin() {
		return h.out.Error(protocol.KindDenied)
	}
	return h.createUser(ctx, payload)
}

func (h *handler) adminUpdateUser(ctx context.Context, payload string) error {
	if !h.requireAdmin() {
		return h.out.Error(protocol.KindDenied)
	}

	fields := protocol.SplitPayload(payload)
	if len(fields) < 4 {
		return h.out.Error(protocol.KindBadPayload)
	}
	id, ok := parseID(fields[0])
	if !ok {
		return h.out.Error(protocol.KindBadPayload)
	}
	role, ok := models.ParseRole(fields[3])
	if !ok {
		return h.out.Error(protocol.KindBadPayload)
	}

	if err := h.users.UpdateUser(ctx, id, fields[1], fields[2], role); err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return h.out.Error(protocol.KindBadPayload)
		case errors.Is(err, common.ErrorNotFound):
			return h.out.Error(protocol.KindNotFound)
		default:
			h.log.Error(ctx, "update user failed", "error", err)
			return h.out.Error(protocol.KindUpdateFailed)
		}
	}

	h.log.Info(ctx, "user updated", "user_id", id)
	return h.out.OK("Updated")
}

func (h *handler) adminDeleteUser(ctx context.Context, payload string) error {
	if !h.requireAdmin() {
		return h.out.Error(protocol.KindDenied)
	}

	id, ok := parseID(payload)
	if !ok {
		return h.out.Error(protocol.KindDeleteFailed)
	}

	if err := h.users.DeleteUser(ctx, id); err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			h.log.Error(ctx, "delete user failed", "error", err)
		}
		return h.out.Error(protocol.KindDeleteFailed)
	}

	h.log.Info(ctx, "user deleted", "user_id", id)
	return h.out.OK("Deleted")
}
