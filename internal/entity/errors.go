package entity

import (
	"errors"
	"fmt"
)

var (
	ErrLeadNotFound  = errors.New("lead not found")
	ErrAuditNotFound = errors.New("audit not found")

	// ErrDuplicateLead is returned by storage when a unique identity key is already taken
	ErrDuplicateLead = errors.New("lead already exists")
	// ErrDuplicateURL is ErrDuplicateLead on the website URL key
	ErrDuplicateURL = fmt.Errorf("%w: website url", ErrDuplicateLead)
	// ErrDuplicatePhone is ErrDuplicateLead on the phone key
	ErrDuplicatePhone = fmt.Errorf("%w: phone", ErrDuplicateLead)
)
