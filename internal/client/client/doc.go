// Package client talks to the booking server over its line protocol.
//
// # Overview
//
// The package provides:
//  1. A transport contract (see the Client interface) covering every server
//     command: Register, Login, Employees, Book, MyAppointments, Confirm,
//     MyInfo and the admin account operations.
//  2. A TCP implementation (see Conn) that checks the welcome banner, writes
//     one command line at a time and decodes single-line, block and framed
//     list replies.
//
// # Error Handling
//
// "ERROR <Kind>" replies are returned as *ServerError; match the kind with
// IsKind. Transport failures wrap ErrUnavailable.
//
// # Concurrency
//
// A Conn serializes whole request/response cycles under one mutex, so a
// heartbeat (Ping) is never interleaved with a reply that is still being
// read. It is safe for concurrent use.
package client
