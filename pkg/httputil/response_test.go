package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockhttp/pkg/mock"
)

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON with correct content type", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		data := map[string]string{"foo": "bar"}

		WriteJSON(rec, http.StatusOK, data)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var result map[string]string
		err := json.Unmarshal(rec.Body.Bytes(), &result)
		require.NoError(t, err)
		assert.Equal(t, "bar", result["foo"])
	})

	t.Run("handles nil data", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteJSON(rec, http.StatusNoContent, nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("sets custom status codes", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteJSON(rec, http.StatusCreated, map[string]string{"id": "123"})

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	t.Run("writes error response with correct format", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteError(rec, http.StatusBadRequest, "invalid_input", "Name is required")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var result map[string]string
		err := json.Unmarshal(rec.Body.Bytes(), &result)
		require.NoError(t, err)
		assert.Equal(t, "invalid_input", result["error"])
		assert.Equal(t, "Name is required", result["message"])
	})
}

func TestWriteErrorWithDetails(t *testing.T) {
	t.Parallel()

	t.Run("includes details in response", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		details := map[string]string{"field": "email", "reason": "invalid format"}

		WriteErrorWithDetails(rec, http.StatusBadRequest, "validation_error", "Validation failed", details)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var result map[string]any
		err := json.Unmarshal(rec.Body.Bytes(), &result)
		require.NoError(t, err)
		assert.Equal(t, "validation_error", result["error"])
		assert.Equal(t, "Validation failed", result["message"])
		assert.NotNil(t, result["details"])
	})
}

func TestWriteNoContent(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteNoContent(rec)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestWriteCreated(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteCreated(rec, map[string]string{"id": "new-123"})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var result map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.Equal(t, "new-123", result["id"])
}

func TestWriteOK(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteOK(rec, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWriteBadRequest(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteBadRequest(rec, "bad_request", "Invalid input")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWriteNotFound(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteNotFound(rec, "not_found", "Resource not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}





func TestWriteNotMocked(t *testing.T) {
	t.Parallel()

	t.Run("without near misses", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		WriteNotMocked(rec, &mock.NoMatchError{URL: "/users"})

		assert.Equal(t, http.StatusNotImplemented, rec.Code)
		var result map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "not_mocked", result["error"])
		assert.Equal(t, "Please mock endpoint: /users", result["message"])
		assert.NotContains(t, result, "details")
	})

	t.Run("with near misses", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		WriteNotMocked(rec, &mock.NoMatchError{
			URL:        "/users",
			NearMisses: []mock.NearMiss{{ExpectationID: "e1", Label: "POST /users", Failed: []string{"method"}}},
		})

		var result map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		details, ok := result["details"].([]any)
		require.True(t, ok)
		assert.Len(t, details, 1)
	})
}

func TestEncodeBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     any
		want     string
		wantJSON bool
	}{
		{"string verbatim", "plain text", "plain text", false},
		{"empty string", "", "", false},
		{"bytes verbatim", []byte("raw"), "raw", false},
		{"object", map[string]any{"k": "v"}, `{"k":"v"}`, true},
		{"null", nil, "null", true},
		{"number", 3, "3", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, isJSON, err := EncodeBody(tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}

	_, _, err := EncodeBody(make(chan int))
	assert.Error(t, err)
}

func TestWriteMockResponse(t *testing.T) {
	t.Parallel()

	t.Run("json body", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		err := WriteMockResponse(rec, &mock.Response{
			StatusCode: http.StatusCreated,
			Headers:    map[string]string{"X-Request-Id": "abc"},
			Body:       map[string]any{"id": 1},
		})
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, "abc", rec.Header().Get("X-Request-Id"))
		assert.JSONEq(t, `{"id":1}`, rec.Body.String())
	})

	t.Run("template content type wins", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		err := WriteMockResponse(rec, &mock.Response{
			StatusCode: http.StatusOK,
			Headers:    map[string]string{"Content-Type": "text/csv"},
			Body:       "a,b\n1,2\n",
		})
		require.NoError(t, err)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Equal(t, "a,b\n1,2\n", rec.Body.String())
	})

	t.Run("unwritable status becomes 200", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, WriteMockResponse(rec, &mock.Response{StatusCode: 42, Body: ""}))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}
