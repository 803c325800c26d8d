package usecase

import (
	"errors"
	"fmt"

	"github.com/xavierca1/leadpilot/internal/auditlock"
	"github.com/xavierca1/leadpilot/internal/identity"
)

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

var (
	ErrAuditInProgress        = &DomainError{Code: "AUDIT_IN_PROGRESS", Message: "an audit for this lead is already running", Err: auditlock.ErrLocked}
	ErrMailNotConfigured      = &DomainError{Code: "MAIL_NOT_CONFIGURED", Message: "outgoing mail is not configured"}
	ErrDiscoveryNotConfigured = &DomainError{Code: "DISCOVERY_NOT_CONFIGURED", Message: "lead discovery is not configured"}
	ErrQueueNotConfigured     = &DomainError{Code: "QUEUE_NOT_CONFIGURED", Message: "background audits are not configured"}
)

// DuplicateError rejects a lead whose identity is already taken. Outcome
// says which key matched and which existing lead owns it.
type DuplicateError struct {
	Outcome identity.Outcome
}

func (e *DuplicateError) Error() string {
	if e.Outcome.ConflictingID != "" {
		return fmt.Sprintf("%s: %s already used by lead %s", e.Outcome.Reason, e.Outcome.Field, e.Outcome.ConflictingID)
	}
	return fmt.Sprintf("%s: %s %q already used", e.Outcome.Reason, e.Outcome.Field, e.Outcome.ConflictingValue)
}

func IsDuplicateError(err error) bool {
	var de *DuplicateError
	return errors.As(err, &de)
}
