package auditlock

import "errors"

var (
	// ErrLocked is returned when an audit for the same lead is already running
	ErrLocked = errors.New("audit already in progress")
)
