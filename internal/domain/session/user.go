package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// User is whatever the backend answered on login or registration. The well
// known fields are lifted out; everything else is kept in Attributes.
type User struct {
	ID         string
	Name       string
	Email      string
	Attributes map[string]any
}

// UnmarshalJSON accepts a bare user object as well as a {"user": {...}} envelope.
func (u *User) UnmarshalJSON(data []byte) error {
	attrs, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("decode user: %w", err)
	}
	if inner, ok := attrs["user"].(map[string]any); ok {
		attrs = inner
	}

	*u = User{Attributes: attrs}
	u.ID = stringAttr(attrs["id"])
	u.Name = stringAttr(attrs["name"])
	u.Email = stringAttr(attrs["email"])
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Attributes)+3)
	maps.Copy(out, u.Attributes)
	out["id"] = u.ID
	out["name"] = u.Name
	out["email"] = u.Email
	return json.Marshal(out)
}

// DisplayName is used by the header greeting.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var attrs map[string]any
	if err := dec.Decode(&attrs); err != nil {
		return nil, err
	}
	if attrs == nil {
		return nil, fmt.Errorf("expected a JSON object")
	}
	return attrs, nil
}

func stringAttr(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
