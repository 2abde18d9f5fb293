package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/kylemclaren/speed-reader/internal/fetch"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// decodeJSON reads a JSON body of at most limit bytes into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// fetchError maps article fetch failures to HTTP responses.
func fetchError(w http.ResponseWriter, err error) {
	var se *fetch.StatusError
	switch {
	case errors.Is(err, fetch.ErrInvalidURL):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, fetch.ErrInsufficientContent):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &se):
		jsonError(w, se.Error(), http.StatusBadGateway)
	default:
		jsonError(w, "failed to fetch article: "+err.Error(), http.StatusBadGateway)
	}
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
