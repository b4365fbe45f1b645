// Package httputil provides shared HTTP utilities for consistent response handling.
package httputil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/getmockd/mockhttp/pkg/mock"
)

// Error codes used in JSON error bodies.
const (
	ErrCodeNotMocked      = "not_mocked"
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeValidation     = "validation_error"
	ErrCodeNotFound       = "not_found"
)

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes a JSON error response with the given status code.
// The error response includes an error code and a human-readable message.
func WriteError(w http.ResponseWriter, status int, errCode, message string) {
	WriteJSON(w, status, map[string]string{
		"error":   errCode,
		"message": message,
	})
}

// WriteErrorWithDetails writes a JSON error response with additional details.
func WriteErrorWithDetails(w http.ResponseWriter, status int, errCode, message string, details any) {
	WriteJSON(w, status, map[string]any{
		"error":   errCode,
		"message": message,
		"details": details,
	})
}

// WriteNoContent writes a 204 No Content response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteCreated writes a 201 Created response with the created resource.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, data)
}

// WriteOK writes a 200 OK response with data.
func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteBadRequest writes a 400 Bad Request error response.
func WriteBadRequest(w http.ResponseWriter, errCode, message string) {
	WriteError(w, http.StatusBadRequest, errCode, message)
}

// WriteNotFound writes a 404 Not Found error response.
func WriteNotFound(w http.ResponseWriter, errCode, message string) {
	WriteError(w, http.StatusNotFound, errCode, message)
}

// WriteNotMocked writes the 501 response for a request no expectation
// accepted. Near misses, when present, go in "details".
func WriteNotMocked(w http.ResponseWriter, err *mock.NoMatchError) {
	if len(err.NearMisses) == 0 {
		WriteError(w, http.StatusNotImplemented, ErrCodeNotMocked, err.Error())
		return
	}
	WriteErrorWithDetails(w, http.StatusNotImplemented, ErrCodeNotMocked, err.Error(), err.NearMisses)
}

// EncodeBody returns the wire form of a rendered body. Strings and byte
// slices are sent verbatim; anything else is JSON-encoded. The second
// result reports whether the body was JSON-encoded.
func EncodeBody(body any) ([]byte, bool, error) {
	switch v := body.(type) {
	case string:
		return []byte(v), false, nil
	case []byte:
		return v, false, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, false, err
		}
		return data, true, nil
	}
}

// WriteMockResponse writes a rendered mock response. Template headers are
// applied first; Content-Type defaults to application/json for encoded
// bodies. Status codes outside 100-999 are sent as 200 because net/http
// cannot write them.
func WriteMockResponse(w http.ResponseWriter, resp *mock.Response) error {
	data, isJSON, err := EncodeBody(resp.Body)
	if err != nil {
		return err
	}

	h := w.Header()
	for name, value := range resp.Headers {
		h.Set(name, value)
	}
	if isJSON && h.Get("Content-Type") == "" {
		h.Set("Content-Type", "application/json")
	}
	h.Set("Content-Length", strconv.Itoa(len(data)))

	status := resp.StatusCode
	if status < 100 || status > 999 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, err = w.Write(data)
	return err
}
