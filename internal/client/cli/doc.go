// Package cli provides the interactive command-line client of the booking
// server.
//
// It dials the server, starts a heartbeat watcher that tracks whether the
// server is reachable, and runs a REPL over the client package:
//   - register / login
//   - employees, book, appts, confirm, info
//   - users, adduser, updateuser, deleteuser (administrators)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
