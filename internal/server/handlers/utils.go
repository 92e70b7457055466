// Package handlers provides the site index HTTP handlers.
package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/logfields"
)

const jsonContentType = "application/json; charset=utf-8"

// writeJSON encodes v into a buffer before touching the response, so a failed
// encode leaves headers unsent for the caller's error adapter.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	return encodeJSON(w, status, v, false)
}

// writeJSONPretty indents the payload when the request carries ?pretty=1 or ?pretty=true.
func writeJSONPretty(w http.ResponseWriter, r *http.Request, status int, v any) error {
	return encodeJSON(w, status, v, wantsPretty(r))
}

func wantsPretty(r *http.Request) bool {
	if r == nil {
		return false
	}
	switch r.URL.Query().Get("pretty") {
	case "1", "true":
		return true
	}
	return false
}

func encodeJSON(w http.ResponseWriter, status int, v any, pretty bool) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return err
	}
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Debug("client went away before JSON body was written", logfields.Error(err))
		return err
	}
	return nil
}
