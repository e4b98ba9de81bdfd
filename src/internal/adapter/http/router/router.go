package router

import (
	"net/http"

	"github.com/api-sage/ledger/src/internal/adapter/http/middleware"
)

type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, wrap func(http.Handler) http.Handler)
}

// New builds the ledger handler. wrap is applied to every registered route;
// the returned handler adds request ids and panic recovery around the mux.
func New(
	accountController RouteRegistrar,
	transactionController RouteRegistrar,
	wrap func(http.Handler) http.Handler,
) http.Handler {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)
	registerHealthRoute(mux)

	if accountController != nil {
		accountController.RegisterRoutes(mux, wrap)
	}
	if transactionController != nil {
		transactionController.RegisterRoutes(mux, wrap)
	}

	return middleware.RequestID(middleware.Recover(mux))
}

func registerHealthRoute(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
