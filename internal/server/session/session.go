// Package session tracks the authentication state of one connection.
//
// A Session is owned by a single connection goroutine and is never shared,
// so it carries no locking.
package session

import (
	"github.com/dmitrijs2005/apptbook/internal/common"
	"github.com/dmitrijs2005/apptbook/internal/server/models"
)

// State is either Anonymous or Authenticated.
type State interface {
	isState()
}

// Anonymous is the initial state of every connection.
type Anonymous struct{}

// Authenticated records who logged in on this connection.
type Authenticated struct {
	UserID int64
	Role   models.Role
}

func (Anonymous) isState()     {}
func (Authenticated) isState() {}

// Session holds the current State. The zero value is Anonymous.
type Session struct {
	state State
}

func New() *Session {
	return &Session{state: Anonymous{}}
}

// State returns the current state.
func (s *Session) State() State {
	if s.state == nil {
		return Anonymous{}
	}
	return s.state
}

// Login moves the session to Authenticated. A later successful LOGIN on the
// same connection replaces the identity; there is no way back to Anonymous.
func (s *Session) Login(userID int64, role models.Role) {
	s.state = Authenticated{UserID: userID, Role: role}
}

// Authenticated returns the identity, or ErrorUnauthorized while anonymous.
func (s *Session) Authenticated() (Authenticated, error) {
	a, ok := s.State().(Authenticated)
	if !ok {
		return Authenticated{}, common.ErrorUnauthorized
	}
	return a, nil
}

// RequireRole returns the identity if it has role. An anonymous session gets
// ErrorUnauthorized; a session with another role gets ErrPermissionDenied.
func (s *Session) RequireRole(role models.Role) (Authenticated, error) {
	a, err := s.Authenticated()
	if err != nil {
		return Authenticated{}, err
	}
	if a.Role != role {
		return Authenticated{}, common.ErrPermissionDenied
	}
	return a, nil
}
