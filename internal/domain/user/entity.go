package user

import "errors"

var (
	ErrInvalidID    = errors.New("user id must be positive")
	ErrEmptyEmail   = errors.New("email must not be empty")
	ErrInvalidRole  = errors.New("unknown role")
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleAdmin:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

func (r Role) String() string { return string(r) }

type User struct {
	id           int64
	email        string
	passwordHash string
	role         Role
}

func Reconstruct(id int64, email, passwordHash string, role Role) (*User, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	if email == "" {
		return nil, ErrEmptyEmail
	}
	return &User{id: id, email: email, passwordHash: passwordHash, role: role}, nil
}

func (u *User) ID() int64            { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
