// Package httputil centralises JSON encoding and the error envelope so every
// endpoint reports failures the same way.
package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"zaakregister/pkg/domainerrors"
)

// maxBodyBytes caps request bodies. Definition payloads are small.
const maxBodyBytes = 1 << 20

// ErrorEnvelope is the body served on any failed request.
type ErrorEnvelope struct {
	Title         string             `json:"title"`
	Status        int                `json:"status"`
	InvalidParams []*domainerrors.Error `json:"invalidParams,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err to its HTTP status and serves the error envelope.
// Internal error details never reach the client.
func WriteError(w http.ResponseWriter, err error) {
	status := domainerrors.HTTPStatus(err)
	params := domainerrors.Flatten(err)
	if status == http.StatusInternalServerError {
		params = domainerrors.List{domainerrors.New(domainerrors.CodeInternal, "internal server error")}
	}
	WriteJSON(w, status, ErrorEnvelope{
		Title:         http.StatusText(status),
		Status:        status,
		InvalidParams: params,
	})
}

// Validatable lets request types normalise and validate themselves after
// decoding.
type Validatable interface {
	Validate() error
}

// Decode reads and validates a JSON request body into T.
func Decode[T Validatable](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (T, bool) {
	var req T
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "request body too large"))
		case errors.Is(err, io.EOF):
			WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "request body is required"))
		default:
			logger.Debug("malformed request body", "error", err)
			WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "malformed JSON request body"))
		}
		return req, false
	}

	if err := req.Validate(); err != nil {
		WriteError(w, err)
		return req, false
	}
	return req, true
}
