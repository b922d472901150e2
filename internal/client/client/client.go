package client

import "context"

// Client is the full command surface of the booking server.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Register(ctx context.Context, userName, password, role string) error
	Login(ctx context.Context, userName, password string) (*Identity, error)
	Employees(ctx context.Context) ([]Employee, error)
	Book(ctx context.Context, staffID int64, date, start, end string) error
	MyAppointments(ctx context.Context) ([]AppointmentRow, error)
	Confirm(ctx context.Context, appointmentID int64) error
	MyInfo(ctx context.Context) (*Identity, error)

	AdminListUsers(ctx context.Context) ([]Identity, error)
	AdminAddUser(ctx context.Context, userName, password, role string) error
	AdminUpdateUser(ctx context.Context, id int64, userName, password, role string) error
	AdminDeleteUser(ctx context.Context, id int64) error
}

// Identity is a user as reported by LOGIN, MY_INFO and ADMIN_LIST_USERS.
// MY_INFO does not carry the id.
type Identity struct {
	ID       int64
	UserName string
	Role     string
}

// Employee is one LIST_EMPLOYEES row.
type Employee struct {
	ID       int64
	UserName string
}

// AppointmentRow is one MY_APPTS row; OtherParty is the staff member for
// customers and the customer for employees.
type AppointmentRow struct {
	ID         int64
	OtherParty string
	Date       string
	Start      string
	Status     string
}
