package service

import (
	"errors"
	"fmt"
)

// Expected, user-facing outcomes. Handlers map these to status codes; anything else is a 500.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidPhone       = fmt.Errorf("%w: phone must match 07[3-9]XXXXXXXX", ErrInvalidInput)
	ErrDuplicatePhone     = errors.New("phone number already registered")
	ErrPhoneNotRegistered = errors.New("phone number not registered")
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrOTPUnavailable     = errors.New("verification service unavailable")
	ErrEmailTaken         = errors.New("email already in use")

	ErrForbidden     = errors.New("forbidden")
	ErrAccountBanned = fmt.Errorf("%w: account banned", ErrForbidden)
	ErrSelfReference = errors.New("cannot target yourself")

	ErrUserNotFound         = errors.New("user not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrParentNotFound       = errors.New("parent comment not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrReportNotFound       = errors.New("report not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrTargetNotFound       = errors.New("report target not found")

	ErrInvalidTarget   = fmt.Errorf("%w: unknown target type", ErrInvalidInput)
	ErrInvalidStatus   = fmt.Errorf("%w: unknown status", ErrInvalidInput)
	ErrInvalidType     = fmt.Errorf("%w: unknown post type", ErrInvalidInput)
	ErrAlreadyPublic   = errors.New("post is already public")
	ErrAlreadyArchived = errors.New("post is already archived")
)
