package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/books", nil)

	JSON(w, r, http.StatusCreated, map[string]string{"title": "Dune"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"title":"Dune"}`, w.Body.String())
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()

	NoContent(w)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestJSONError(t *testing.T) {
	t.Run("with fields and request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/books", nil)
		r = r.WithContext(ContextWithRequestID(r.Context(), "req-1"))

		JSONError(w, r, http.StatusUnprocessableEntity, CodeValidationFailed, "Validation failed",
			map[string]string{"isbn": "isbn is required"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, CodeValidationFailed, resp.Error.Code)
		assert.Equal(t, "Validation failed", resp.Error.Message)
		assert.Equal(t, map[string]string{"isbn": "isbn is required"}, resp.Error.Fields)
		assert.Equal(t, "req-1", resp.Meta["request_id"])
	})

	t.Run("omits empty fields and meta", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/books/9", nil)

		JSONError(w, r, http.StatusNotFound, CodeNotFound, "Book not found", nil)

		assert.JSONEq(t, `{"error":{"code":"NOT_FOUND","message":"Book not found"}}`, w.Body.String())
	})
}

func TestInternalError_HidesCause(t *testing.T) {
	var logs bytes.Buffer
	log := zerolog.New(&logs)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/books", nil)
	r = r.WithContext(log.WithContext(r.Context()))

	InternalError(w, r, errors.New("pq: relation \"books\" does not exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "relation")
	assert.Contains(t, w.Body.String(), CodeInternal)
	assert.Contains(t, logs.String(), "relation")
	assert.Contains(t, logs.String(), `"path":"/books"`)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), CodeNotFound)

	w = httptest.NewRecorder()
	MethodNotAllowed(w, httptest.NewRequest(http.MethodDelete, "/books", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), CodeMethodNotAllowed)
}
