package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/leadpilot/internal/csvimport"
	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/identity"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

type errorResponse struct {
	Error   string                   `json:"error"`
	Message string                   `json:"message"`
	Fields  usecase.ValidationErrors `json:"fields,omitempty"`
}

type duplicateResponse struct {
	Error   string           `json:"error"`
	Message string           `json:"message"`
	Outcome identity.Outcome `json:"outcome"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeError maps use case errors to status codes. Unknown errors are
// logged and hidden behind a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation usecase.ValidationErrors
		duplicate  *usecase.DuplicateError
		domain     *usecase.DomainError
		technical  *usecase.TechnicalError
	)

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "VALIDATION_ERROR",
			Message: "invalid request",
			Fields:  validation,
		})

	case errors.As(err, &duplicate):
		writeJSON(w, http.StatusConflict, duplicateResponse{
			Error:   "DUPLICATE_LEAD",
			Message: duplicate.Error(),
			Outcome: duplicate.Outcome,
		})

	case errors.Is(err, entity.ErrLeadNotFound):
		writeErrorResponse(w, http.StatusNotFound, "LEAD_NOT_FOUND", err.Error())

	case errors.Is(err, entity.ErrAuditNotFound):
		writeErrorResponse(w, http.StatusNotFound, "AUDIT_NOT_FOUND", err.Error())

	case errors.Is(err, csvimport.ErrEmptyCSV),
		errors.Is(err, csvimport.ErrInvalidCSV),
		errors.Is(err, csvimport.ErrMissingColumns):
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_CSV", err.Error())

	case errors.As(err, &domain):
		writeErrorResponse(w, domainStatus(domain), domain.Code, domain.Message)

	case errors.As(err, &technical):
		log.Error().Err(err).Str("code", technical.Code).Str("path", r.URL.Path).Msg("request failed")
		writeErrorResponse(w, technicalStatus(technical), technical.Code, technical.Message)

	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected error")
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func domainStatus(err *usecase.DomainError) int {
	switch err {
	case usecase.ErrAuditInProgress:
		return http.StatusConflict
	case usecase.ErrMailNotConfigured, usecase.ErrDiscoveryNotConfigured, usecase.ErrQueueNotConfigured:
		return http.StatusServiceUnavailable
	}

	if err.Code == "SITE_UNREACHABLE" {
		return http.StatusUnprocessableEntity
	}

	return http.StatusBadRequest
}

// technicalStatus answers 502 when an upstream service failed
func technicalStatus(err *usecase.TechnicalError) int {
	switch err.Code {
	case "DISCOVERY_FAILED", "MAIL_ERROR", "QUEUE_ERROR":
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
