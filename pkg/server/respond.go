package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/matzehuels/cygraph/pkg/errors"
	"github.com/matzehuels/cygraph/pkg/store"
)

// errorBody is the JSON shape of all error responses.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to a status code via its error code and writes
// the standard error body.
func writeError(w http.ResponseWriter, err error) {
	if stderrors.Is(err, store.ErrNotFound) {
		err = errors.Wrap(errors.ErrCodeGraphNotFound, err, "graph not found")
	}

	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), errorBody{Error: errorDetail{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeMalformedHeader,
		errors.ErrCodeMalformedRow,
		errors.ErrCodeTypeMismatch,
		errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupportedType:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeGraphNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// badRequest wraps a decode failure as INVALID_INPUT.
func badRequest(w http.ResponseWriter, cause error, msg string) {
	writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, cause, "%s", msg))
}

// graphID extracts and validates the {id} route parameter.
func graphID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "missing graph ID")
	}
	return id, nil
}
