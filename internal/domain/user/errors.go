package user

import "errors"

// User domain errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email is already registered")
	ErrRoleNotAllowed     = errors.New("your role cannot create an account with that role")
	ErrNoCampusAssigned   = errors.New("no campus assigned to this account")
	ErrInvalidPicture     = errors.New("profile picture must be a jpg, jpeg or png file")
)
