package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

// Admission errors raised by the transactional capacity checks.
var (
	ErrMaxAttemptsExceeded = errors.New("maximum attempts exceeded")
	ErrGroupFull           = errors.New("group is full")
	ErrDuplicateMember     = errors.New("student is already a member")
)
