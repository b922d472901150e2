package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/apptbook/internal/common"
)

// credentials prompts for a username and a password. The caller wipes the
// returned password.
func (a *App) credentials() (string, []byte, error) {
	userName, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := readSecret(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

func (a *App) promptID(prompt string) (int64, error) {
	s, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	if err := a.client.Register(ctx, userName, string(password), ""); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Registered, you can log in now")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	me, err := a.client.Login(ctx, userName, string(password))
	if err != nil {
		return a.report(err)
	}
	a.me = me
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", me.UserName, me.Role)
	return nil
}

func (a *App) Employees(ctx context.Context) error {
	emps, err := a.client.Employees(ctx)
	if err != nil {
		return a.report(err)
	}
	for _, e := range emps {
		fmt.Fprintf(a.out, "%d\t%s\n", e.ID, e.UserName)
	}
	return nil
}

func (a *App) Book(ctx context.Context) error {
	staffID, err := a.promptID("Staff member id")
	if err != nil {
		return a.report(err)
	}

	var fields [3]string
	for i, prompt := range []string{"Date (YYYY-MM-DD)", "Start (HH:MM)", "End (HH:MM)"} {
		if fields[i], err = GetSimpleText(a.reader, prompt, a.out); err != nil {
			return a.report(err)
		}
	}

	if err := a.client.Book(ctx, staffID, fields[0], fields[1], fields[2]); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Booked")
	return nil
}

func (a *App) Appointments(ctx context.Context) error {
	rows, err := a.client.MyAppointments(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No appointments")
		return nil
	}
	for _, r := range rows {
		fmt.Fprintf(a.out, "%d\t%s\t%s %s\t%s\n", r.ID, r.OtherParty, r.Date, r.Start, r.Status)
	}
	return nil
}

func (a *App) Confirm(ctx context.Context) error {
	id, err := a.promptID("Appointment id")
	if err != nil {
		return a.report(err)
	}
	if err := a.client.Confirm(ctx, id); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Confirmed")
	return nil
}

func (a *App) Info(ctx context.Context) error {
	me, err := a.client.MyInfo(ctx)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "%s (%s)\n", me.UserName, me.Role)
	return nil
}

func (a *App) Users(ctx context.Context) error {
	users, err := a.client.AdminListUsers(ctx)
	if err != nil {
		return a.report(err)
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "%d\t%s\t%s\n", u.ID, u.UserName, u.Role)
	}
	return nil
}

func (a *App) promptRole(blankHint string) (string, error) {
	role, err := GetSimpleText(a.reader, "Role (USER, EMPLOYEE, ADMIN; "+blankHint+")", a.out)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(role), nil
}

func (a *App) AddUser(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	role, err := a.promptRole("empty for USER")
	if err != nil {
		return a.report(err)
	}

	if err := a.client.AdminAddUser(ctx, userName, string(password), role); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "User added")
	return nil
}

func (a *App) UpdateUser(ctx context.Context) error {
	id, err := a.promptID("User id")
	if err != nil {
		return a.report(err)
	}
	userName, err := GetSimpleText(a.reader, "New username", a.out)
	if err != nil {
		return a.report(err)
	}
	password, err := GetSimpleText(a.reader, "New password (empty keeps the current one)", a.out)
	if err != nil {
		return a.report(err)
	}
	role, err := a.promptRole("required")
	if err != nil {
		return a.report(err)
	}

	if err := a.client.AdminUpdateUser(ctx, id, userName, password, role); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "User updated")
	return nil
}

func (a *App) DeleteUser(ctx context.Context) error {
	id, err := a.promptID("User id")
	if err != nil {
		return a.report(err)
	}
	if err := a.client.AdminDeleteUser(ctx, id); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "User deleted")
	return nil
}
