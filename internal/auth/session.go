// Package auth owns the signed-in identity. A Session is created once by the
// caller and handed to every component that needs the current user; nothing
// in this package is global.
package auth

import (
	"fmt"

	"github.com/sadopc/studytrackr/internal/store"
)

type State int

const (
	StateInit State = iota
	StateSignedIn
	StateSignedOut
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateSignedIn:
		return "signed-in"
	case StateSignedOut:
		return "signed-out"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session is the current identity. Its zero value is in StateInit.
type Session struct {
	state State
	user  *store.User
	token string
}

func NewSession() *Session { return &Session{} }

func (s *Session) State() State      { return s.state }
func (s *Session) SignedIn() bool    { return s.state == StateSignedIn }
func (s *Session) Token() string     { return s.token }
func (s *Session) User() *store.User { return s.user }

// UserID returns the signed-in user's id or ErrNotSignedIn.
func (s *Session) UserID() (int64, error) {
	if !s.SignedIn() || s.user == nil {
		return 0, ErrNotSignedIn
	}
	return s.user.ID, nil
}

func (s *Session) signIn(u *store.User, token string) {
	s.state = StateSignedIn
	s.user = u
	s.token = token
}

func (s *Session) signOut() {
	s.state = StateSignedOut
	s.user = nil
	s.token = ""
}
