// Package protocol defines the newline-delimited text protocol spoken between
// the booking server and its clients.
//
// Every client line is "COMMAND[ payload]". The command token is matched
// case-insensitively and the payload is the rest of the line, with fields
// separated by '|'. Every reply is one of:
//
//	OK <body>
//	ERROR <Kind>
//	OK COUNT <n>, then n tagged lines (EMP, APPT, USER), then END
//
// The server greets each connection with "WELCOME AppointmentSystem".
// PING is a heartbeat and is never answered.
package protocol
