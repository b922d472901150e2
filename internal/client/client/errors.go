package client

import (
	"errors"

	"github.com/dmitrijs2005/apptbook/internal/protocol"
)

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrBadWelcome  = errors.New("unexpected welcome line")
)

// ServerError is an "ERROR <Kind>" reply.
type ServerError = protocol.ErrorReply

// IsKind reports whether err is a ServerError of the given kind.
func IsKind(err error, kind protocol.Kind) bool {
	var se *ServerError
	return errors.As(err, &se) && se.Kind == kind
}
