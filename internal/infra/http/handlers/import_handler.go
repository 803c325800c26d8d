package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/xavierca1/leadpilot/internal/infra/http/middleware"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

// DefaultMaxUploadSize caps an import body when none is configured
const DefaultMaxUploadSize = 5 << 20

type LeadImporter interface {
	Execute(ctx context.Context, r io.Reader) (*usecase.ImportReport, error)
	ExecuteRows(ctx context.Context, rows []map[string]string) (*usecase.ImportReport, error)
}

type ImportHandler struct {
	Importer      LeadImporter
	MaxUploadSize int64
}

func NewImportHandler(importer LeadImporter, maxUploadSize int64) *ImportHandler {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}

	return &ImportHandler{Importer: importer, MaxUploadSize: maxUploadSize}
}

type importRowsRequest struct {
	Rows []map[string]string `json:"rows"`
}

// Handle handles POST /leads/import. It takes a multipart form with a "file"
// field, a raw text/csv body, or JSON {"rows": [...]}.
func (h *ImportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadSize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		report *usecase.ImportReport
		err    error
	)

	switch mediaType {
	case "multipart/form-data":
		report, err = h.importMultipart(r)
	case "application/json":
		var req importRowsRequest
		if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
			h.writeBodyError(w, decodeErr, "INVALID_JSON", "invalid JSON body")
			return
		}
		if len(req.Rows) == 0 {
			writeErrorResponse(w, http.StatusBadRequest, "EMPTY_IMPORT", "rows must not be empty")
			return
		}
		report, err = h.Importer.ExecuteRows(r.Context(), req.Rows)
	case "text/csv", "application/csv", "text/plain", "":
		report, err = h.Importer.Execute(r.Context(), r.Body)
	default:
		writeErrorResponse(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "send multipart/form-data, text/csv or application/json")
		return
	}

	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorResponse(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "import exceeds the upload size limit")
			return
		}

		writeError(w, r, err)
		return
	}

	recordImportOutcomes(report)
	writeJSON(w, http.StatusOK, report)
}

func (h *ImportHandler) importMultipart(r *http.Request) (*usecase.ImportReport, error) {
	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}

		return nil, &usecase.DomainError{Code: "MISSING_FILE", Message: "multipart field \"file\" is required"}
	}
	defer file.Close()

	return h.Importer.Execute(r.Context(), file)
}

func (h *ImportHandler) writeBodyError(w http.ResponseWriter, err error, code, message string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeErrorResponse(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "import exceeds the upload size limit")
		return
	}

	writeErrorResponse(w, http.StatusBadRequest, code, message)
}

func recordImportOutcomes(report *usecase.ImportReport) {
	for range report.Imported {
		middleware.RecordDedupeOutcome("")
	}

	for _, d := range report.Duplicates {
		middleware.RecordDedupeOutcome(string(d.Reason))
	}
}
