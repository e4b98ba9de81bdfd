package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/ledger/src/internal/adapter/http/middleware"
	"github.com/api-sage/ledger/src/internal/logger"
)

func requestFields(r *http.Request) logger.Fields {
	return logger.Fields{
		"method":    r.Method,
		"path":      r.URL.Path,
		"query":     r.URL.RawQuery,
		"requestId": middleware.RequestIDFromContext(r.Context()),
	}
}

func logRequest(r *http.Request, payload any) {
	fields := requestFields(r)
	fields["payload"] = logger.SanitizePayload(payload)
	logger.Info("http request", fields)
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	fields := requestFields(r)
	delete(fields, "query")
	fields["status"] = status
	fields["durationMs"] = time.Since(start).Milliseconds()
	fields["response"] = logger.SanitizePayload(payload)
	logger.Info("http response", fields)
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := requestFields(r)
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}
