// Package session tracks the signed-in customer of a visitor.
package session

import (
	"errors"
	"strings"
	"time"
)

const AggregateType = "Session"

const (
	EventUserLoggedIn   = "UserLoggedIn"
	EventUserRegistered = "UserRegistered"
	EventUserLoggedOut  = "UserLoggedOut"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrMissingField     = errors.New("required field is empty")
)

type UserLoggedIn struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

type UserRegistered struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

type UserLoggedOut struct {
	UserID      string    `json:"user_id"`
	LoggedOutAt time.Time `json:"logged_out_at"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return ErrMissingField
	}
	return nil
}

// Registration is the sign-up form. ConfirmPassword never leaves the process.
type Registration struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
	Phone           string `json:"phone"`
}

// Validate runs the checks made before any request is sent.
func (r Registration) Validate() error {
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	for _, v := range []string{r.Name, r.Email, r.Password, r.Phone} {
		if strings.TrimSpace(v) == "" {
			return ErrMissingField
		}
	}
	return nil
}

type Session struct {
	User *User
}

func (s *Session) SignedIn() bool {
	return s.User != nil
}

func (s *Session) SignIn(u User) UserLoggedIn {
	s.User = &u
	return UserLoggedIn{UserID: u.ID, Email: u.Email, LoggedInAt: time.Now()}
}

// SignOut forgets the user locally. The backend is not told.
func (s *Session) SignOut() UserLoggedOut {
	event := UserLoggedOut{LoggedOutAt: time.Now()}
	if s.User != nil {
		event.UserID = s.User.ID
	}
	s.User = nil
	return event
}
