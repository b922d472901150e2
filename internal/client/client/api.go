package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/apptbook/internal/protocol"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func malformed(body string) error {
	return fmt.Errorf("%w: %q", protocol.ErrMalformedResponse, body)
}

// parseIdentity reads "id|username|role".
func parseIdentity(body string) (Identity, error) {
	f := strings.Split(body, protocol.Separator)
	if len(f) != 3 {
		return Identity{}, malformed(body)
	}
	id, err := strconv.ParseInt(f[0], 10, 64)
	if err != nil {
		return Identity{}, malformed(body)
	}
	return Identity{ID: id, UserName: f[1], Role: f[2]}, nil
}

func (c *Conn) Register(ctx context.Context, userName, password, role string) error {
	_, err := c.Do(ctx, protocol.CmdRegister, protocol.JoinFields(userName, password, role))
	return err
}

func (c *Conn) Login(ctx context.Context, userName, password string) (*Identity, error) {
	body, err := c.Do(ctx, protocol.CmdLogin, protocol.JoinFields(userName, password))
	if err != nil {
		return nil, err
	}
	id, err := parseIdentity(body)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *Conn) Employees(ctx context.Context) ([]Employee, error) {
	items, err := c.List(ctx, protocol.CmdListEmployees, "", protocol.TagEmployee)
	if err != nil {
		return nil, err
	}

	out := make([]Employee, 0, len(items))
	for _, item := range items {
		idStr, name, ok := strings.Cut(item, ":")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if !ok || err != nil {
			return nil, malformed(item)
		}
		out = append(out, Employee{ID: id, UserName: name})
	}
	return out, nil
}

func (c *Conn) Book(ctx context.Context, staffID int64, date, start, end string) error {
	_, err := c.Do(ctx, protocol.CmdBook, protocol.JoinFields(formatID(staffID), date, start, end))
	return err
}

func (c *Conn) MyAppointments(ctx context.Context) ([]AppointmentRow, error) {
	items, err := c.List(ctx, protocol.CmdMyAppointments, "", protocol.TagAppointment)
	if err != nil {
		return nil, err
	}

	out := make([]AppointmentRow, 0, len(items))
	for _, item := range items {
		f := strings.Split(item, protocol.Separator)
		if len(f) != 5 {
			return nil, malformed(item)
		}
		id, err := strconv.ParseInt(f[0], 10, 64)
		if err != nil {
			return nil, malformed(item)
		}
		out = append(out, AppointmentRow{ID: id, OtherParty: f[1], Date: f[2], Start: f[3], Status: f[4]})
	}
	return out, nil
}

func (c *Conn) Confirm(ctx context.Context, appointmentID int64) error {
	_, err := c.Do(ctx, protocol.CmdConfirm, formatID(appointmentID))
	return err
}

func (c *Conn) MyInfo(ctx context.Context) (*Identity, error) {
	body, err := c.Block(ctx, protocol.CmdMyInfo, "")
	if err != nil {
		return nil, err
	}
	name, role, ok := strings.Cut(body, " ")
	if !ok {
		return nil, malformed(body)
	}
	return &Identity{UserName: name, Role: role}, nil
}

func (c *Conn) AdminListUsers(ctx context.Context) ([]Identity, error) {
	items, err := c.List(ctx, protocol.CmdAdminListUsers, "", protocol.TagUser)
	if err != nil {
		return nil, err
	}

	out := make([]Identity, 0, len(items))
	for _, item := range items {
		id, err := parseIdentity(item)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func (c *Conn) AdminAddUser(ctx context.Context, userName, password, role string) error {
	_, err := c.Do(ctx, protocol.CmdAdminAddUser, protocol.JoinFields(userName, password, role))
	return err
}

// AdminUpdateUser rewrites a user; an empty password keeps the current one.
func (c *Conn) AdminUpdateUser(ctx context.Context, id int64, userName, password, role string) error {
	_, err := c.Do(ctx, protocol.CmdAdminUpdateUser, protocol.JoinFields(formatID(id), userName, password, role))
	return err
}

func (c *Conn) AdminDeleteUser(ctx context.Context, id int64) error {
	_, err := c.Do(ctx, protocol.CmdAdminDeleteUser, formatID(id))
	return err
}
