package httputil

import (
	"log/slog"
	"net/http"
)

// Text writes a plain-text body with the given status code.
func Text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Warn("failed to write response", "status", status, "error", err)
	}
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	slog.Warn("not found", "method", r.Method, "path", r.URL.Path)
	http.Error(w, "Not Found", http.StatusNotFound)
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	slog.Warn("method not allowed", "method", r.Method, "path", r.URL.Path)
	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}
