package httpx

import (
	"net/http"
	"strings"
)

// MethodNotAllowed answers every request with a JSON 405 listing the allowed methods.
// It is registered on method-less patterns so that the method-specific routes win.
func MethodNotAllowed(allow ...string) http.Handler {
	allowHeader := strings.Join(allow, ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allowHeader)
		Error(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
}
