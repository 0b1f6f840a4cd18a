package web

import (
	"io"
	"log/slog"
	"net/http"
)

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, body); err != nil {
		slog.Error("response write failed", slog.String("error", err.Error()))
	}
}
