package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Employees(ctx context.Context) error
	Book(ctx context.Context) error
	Appointments(ctx context.Context) error
	Confirm(ctx context.Context) error
	Info(ctx context.Context) error
	Users(ctx context.Context) error
	AddUser(ctx context.Context) error
	UpdateUser(ctx context.Context) error
	DeleteUser(ctx context.Context) error
}

// runREPL reads commands from in until EOF, "exit" or "quit", and dispatches
// them to a. Command prompts read from the same reader.
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account
//	  - login          authenticate
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - employees      list staff members
//	  - book           book a slot with a staff member
//	  - appts          list own appointments
//	  - confirm        confirm an appointment (employees)
//	  - info           show the current account
//	  - users, adduser, updateuser, deleteuser   account administration
//
// Handler errors are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("appt %s> ", statusFn()))

		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "help":
			switch {
			case a.isAdmin():
				printlnFn("Available commands: employees, book, appts, info, users, adduser, updateuser, deleteuser, exit")
			case a.isLoggedIn():
				printlnFn("Available commands: employees, book, appts, confirm, info, exit")
			default:
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "employees", "emps":
			_ = a.Employees(ctx)

		case "book":
			_ = a.Book(ctx)

		case "appts":
			_ = a.Appointments(ctx)

		case "confirm":
			_ = a.Confirm(ctx)

		case "info":
			_ = a.Info(ctx)

		case "users":
			_ = a.Users(ctx)

		case "adduser":
			_ = a.AddUser(ctx)

		case "updateuser":
			_ = a.UpdateUser(ctx)

		case "deleteuser":
			_ = a.DeleteUser(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
