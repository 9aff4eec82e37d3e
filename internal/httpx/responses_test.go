package httpx

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusCreated, map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
}

func TestNotFound(t *testing.T) {
	t.Run("with detail", func(t *testing.T) {
		w := httptest.NewRecorder()

		NotFound(w, "book 42 not found")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"404 Not Found: book 42 not found","message":"Resource not found."}`, w.Body.String())
	})

	t.Run("unmatched url", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/nowhere", nil)

		NotFoundHandler().ServeHTTP(w, r)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.True(t, strings.HasPrefix(body.Error, "404 Not Found: "))
		assert.Equal(t, "Resource not found.", body.Message)
	})
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusBadRequest, "Please provide a search term")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Please provide a search term"}`, w.Body.String())
}

func TestMessage(t *testing.T) {
	w := httptest.NewRecorder()

	Message(w, http.StatusOK, "Book deleted successfully")

	assert.JSONEq(t, `{"message":"Book deleted successfully"}`, w.Body.String())
}

func TestInternalError(t *testing.T) {
	w := httptest.NewRecorder()

	InternalError(w)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}

func TestValidationFailed(t *testing.T) {
	w := httptest.NewRecorder()
	details := []ErrorDetail{
		{Field: "title", Message: "title is required"},
		{Field: "author", Message: "author is required"},
	}

	ValidationFailed(w, details)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "title is required", body.Error)
	assert.Len(t, body.Details, 2)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Title string `json:"title"`
	}

	require.NoError(t, DecodeJSON(strings.NewReader(`{"title":"Dune","extra":true}`), &dst))
	assert.Equal(t, "Dune", dst.Title)

	assert.Error(t, DecodeJSON(strings.NewReader(`{"title":`), &dst))

	limited := http.MaxBytesReader(httptest.NewRecorder(), io.NopCloser(strings.NewReader(`{"title":"Dune"}`)), 4)
	var tooLarge *http.MaxBytesError
	assert.ErrorAs(t, DecodeJSON(limited, &dst), &tooLarge)
}

func TestMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPatch, "/books", nil)

	MethodNotAllowed(http.MethodGet, http.MethodPost).ServeHTTP(w, r)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET, POST", w.Header().Get("Allow"))
	assert.JSONEq(t, `{"error":"Method Not Allowed"}`, w.Body.String())
}
