package storefront

import (
	"errors"
	"strings"
)

var ErrMissingField = errors.New("required field is empty")

// ContactMessage is the contact form. It is acknowledged locally and never sent.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func (m ContactMessage) Validate() error {
	for _, v := range []string{m.Name, m.Email, m.Subject, m.Message} {
		if strings.TrimSpace(v) == "" {
			return ErrMissingField
		}
	}
	return nil
}
