package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/api-sage/ledger/src/internal/commons"
	"github.com/api-sage/ledger/src/internal/domain"
)

const jsonContentType = "application/json; charset=utf-8"

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(payload)
}

// respond writes payload and logs the response.
func respond(w http.ResponseWriter, r *http.Request, status int, payload any, start time.Time) {
	writeJSON(w, status, payload)
	logResponse(r, status, payload, start)
}

// fail writes the error body shared by every endpoint.
func fail(w http.ResponseWriter, r *http.Request, status int, message string, start time.Time) {
	respond(w, r, status, commons.NewErrorResponse(message, status, r.URL.Path), start)
}

// Path ids are 32-bit; amounts use the full 64-bit range.
const (
	idBits     = 32
	amountBits = 64
)

func pathInt(r *http.Request, name string, bitSize int) (int64, error) {
	raw := r.PathValue(name)
	value, err := strconv.ParseInt(raw, 10, bitSize)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", name, raw, domain.ErrInvalidIdentifier)
	}

	return value, nil
}

// decodeJSON decodes exactly one JSON value from body. Anything after it is
// malformed input.
func decodeJSON(body io.Reader, v any) error {
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(v); err != nil {
		return err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("unexpected data after JSON value: %w", domain.ErrMalformedInput)
	}

	return nil
}
