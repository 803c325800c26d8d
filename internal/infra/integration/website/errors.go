package website

import "errors"

var (
	ErrInvalidURL  = errors.New("invalid website url")
	ErrUnreachable = errors.New("website unreachable")
	ErrBadStatus   = errors.New("website returned an error status")
)
