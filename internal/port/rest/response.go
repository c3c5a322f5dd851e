package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
)

const maxJSONBodyBytes = 1 << 20

var errMalformedBody = errors.New("malformed request body")

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []entity.FieldError `json:"fields,omitempty"`
}

// writeJSON encodes v before touching the response, so an unencodable value
// becomes a logged 500 instead of a success status with an empty body.
func writeJSON(w http.ResponseWriter, log logger.Logger, code int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Errorf("Failed to encode %T response: %v", v, err)
		code = http.StatusInternalServerError
		body = []byte(`{"error":"internal server error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Debugf("Failed to write response: %v", err)
	}
}

// writeError maps service errors to status codes. Store failures and anything
// unrecognized become an opaque 500.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, log, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, errMalformedBody):
		writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrMalformedIdentifier):
		writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: "invalid id"})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, log, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, service.ErrConflict):
		writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: "already exists"})
	case errors.Is(err, service.ErrUnauthorized):
		writeJSON(w, log, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, log, http.StatusForbidden, errorResponse{Error: "forbidden"})
	case errors.Is(err, service.ErrUploadsDisabled):
		writeJSON(w, log, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		log.Errorf("Request failed: %v", err)
		writeJSON(w, log, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// decodeJSON reads a single JSON document. strict rejects unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, strict bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errMalformedBody)
		}
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON document", errMalformedBody)
	}
	return nil
}
