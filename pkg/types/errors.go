package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
)

// Record operation errors. ErrRecordNotFound covers both a missing id and a
// record owned by a different user; callers cannot tell the two apart.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUsernameTaken  = errors.New("username already exists")
	ErrEmailTaken     = errors.New("email already exists")
)

// Entity method errors.
var (
	ErrInvalidStatus   = errors.New("invalid status value")
	ErrInvalidPriority = errors.New("invalid priority value")
)
