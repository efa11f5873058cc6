package models

import (
	"errors"
)

var (
	ErrGeneral           = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound  = errors.New("there is no")
	ErrUsernameNotUnique = errors.New("a user with that username already exists")
	ErrInvalidPassword   = errors.New("the password does not match")
)
