package httpx

import (
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	notFoundMessage    = "Resource not found."
	notFoundURLDetail  = "The requested URL was not found on the server."
	internalErrorText  = "Internal Server Error"
	invalidBodyMessage = "Invalid request body"
)

// MessageResponse is the body of plain confirmations and of empty search results.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of 4xx/5xx answers.
type ErrorResponse struct {
	Error   string        `json:"error"`
	Message string        `json:"message,omitempty"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, statusCode int, msg string) {
	JSON(w, statusCode, MessageResponse{Message: msg})
}

// Error writes {"error": msg}.
func Error(w http.ResponseWriter, statusCode int, msg string) {
	JSON(w, statusCode, ErrorResponse{Error: msg})
}

// NotFound writes the uniform 404 body. An empty detail means the URL itself matched nothing.
func NotFound(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = notFoundURLDetail
	}
	JSON(w, http.StatusNotFound, ErrorResponse{
		Error:   "404 Not Found: " + detail,
		Message: notFoundMessage,
	})
}

// NotFoundHandler is mounted on "/" so unmatched routes get the JSON 404 body.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		NotFound(w, "")
	})
}

// InternalError writes a generic 500 without leaking the cause.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, internalErrorText)
}

// ValidationFailed writes a 400 whose error is the first detail's message.
func ValidationFailed(w http.ResponseWriter, details []ErrorDetail) {
	msg := invalidBodyMessage
	if len(details) > 0 {
		msg = details[0].Message
	}
	JSON(w, http.StatusBadRequest, ErrorResponse{Error: msg, Details: details})
}

// DecodeJSON decodes a request body into dst. Unknown fields are ignored.
// Read errors, such as *http.MaxBytesError, are returned unwrapped.
func DecodeJSON(body io.Reader, dst any) error {
	raw, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// InvalidBody writes the 400 answer for bodies that are not valid JSON.
func InvalidBody(w http.ResponseWriter) {
	Error(w, http.StatusBadRequest, invalidBodyMessage)
}
