package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/api-sage/ledger/src/internal/commons"
	"github.com/api-sage/ledger/src/internal/logger"
)

// Recover turns a handler panic into a 500 error body.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}

			logger.Error("recover middleware caught panic", fmt.Errorf("panic: %v", recovered), logger.Fields{
				"method":    r.Method,
				"path":      r.URL.Path,
				"requestId": RequestIDFromContext(r.Context()),
			})

			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(commons.NewErrorResponse("Internal server error", http.StatusInternalServerError, r.URL.Path))
		}()

		next.ServeHTTP(w, r)
	})
}
