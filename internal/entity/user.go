package entity

import (
	"errors"
)

// User is a portal account. Password holds a bcrypt hash, never the
// plaintext value, but the field is persisted with the rest of the record.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

func NewUser(name, email, hashedPassword string) (*User, error) {
	user := &User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *User) Validate() error {
	if u.Name == "" {
		return errors.New("name is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// Sanitized returns a copy safe to serialize in API responses.
func (u *User) Sanitized() User {
	return User{Name: u.Name, Email: u.Email}
}
