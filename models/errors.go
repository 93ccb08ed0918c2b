package models

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInviteAccepted = errors.New("invitation has already been accepted")
	ErrEmailTaken     = errors.New("email is already registered")
	ErrWeakPassword   = errors.New("password must be at least 8 characters")
	ErrLoginFailed    = errors.New("wrong email or password")
)
