package adminusers

import "errors"

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidRole      = errors.New("role must be admin or receiver")
	ErrUsernameExists   = errors.New("username already exists")
)

type UserView struct {
	ID        int64  `bun:"id"`
	Username  string `bun:"username"`
	Role      string `bun:"role"`
	CreatedAt string `bun:"created_at"`
}

type PageData struct {
	Users        []UserView
	Roles        []string
	Status       string
	ErrorMessage string
}
