package entity

import "errors"

var (
	ErrForbidden          = errors.New("forbidden: access denied")
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidTaskData    = errors.New("invalid task data")
	ErrInvalidUserData    = errors.New("invalid user data")
	ErrInvalidCommentData = errors.New("invalid comment data")
)
