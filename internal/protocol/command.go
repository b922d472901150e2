package protocol

import "strings"

// Command is an upper-cased command token.
type Command string

const (
	CmdRegister        Command = "REGISTER"
	CmdLogin           Command = "LOGIN"
	CmdListEmployees   Command = "LIST_EMPLOYEES"
	CmdBook            Command = "BOOK"
	CmdMyAppointments  Command = "MY_APPTS"
	CmdConfirm         Command = "CONFIRM"
	CmdMyInfo          Command = "MY_INFO"
	CmdAdminListUsers  Command = "ADMIN_LIST_USERS"
	CmdAdminAddUser    Command = "ADMIN_ADD_USER"
	CmdAdminUpdateUser Command = "ADMIN_UPDATE_USER"
	CmdAdminDeleteUser Command = "ADMIN_DELETE_USER"
	CmdQuit            Command = "QUIT"
	CmdPing            Command = "PING"
)

// Separator splits payload and response fields.
const Separator = "|"

// Fixed lines.
const (
	Welcome = "WELCOME AppointmentSystem"
	Bye     = "BYE"
	End     = "END"
)

// Response prefixes and list tags.
const (
	PrefixOK    = "OK"
	PrefixError = "ERROR"
	countWord   = "COUNT"

	TagEmployee    = "EMP"
	TagAppointment = "APPT"
	TagUser        = "USER"
)

// ParseLine splits a raw line into its command and payload. The line is
// trimmed, the first space-delimited token is upper-cased, and everything
// after the first space is returned verbatim. A blank line yields "".
func ParseLine(line string) (Command, string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}
	cmd, payload, _ := strings.Cut(line, " ")
	return Command(strings.ToUpper(cmd)), payload
}

// SplitPayload splits a payload on '|'. Trailing empty fields are dropped, so
// "a|b||" has two fields while "a||b" has three.
func SplitPayload(payload string) []string {
	fields := strings.Split(payload, Separator)
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

// JoinFields joins fields with '|'.
func JoinFields(fields ...string) string {
	return strings.Join(fields, Separator)
}
