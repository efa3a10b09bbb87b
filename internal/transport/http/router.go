package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"preflight/internal/platform/middleware"
	"preflight/pkg/platform/httputil"
)

// NewRouter wires all endpoints. Read and validation routes are open;
// anything that mutates error rows sits behind operator authentication so
// every resolution names who triggered it.
func NewRouter(h *Handler, operatorSecret string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestMeta)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/validate/{entity}/{id}", h.HandleValidateRecord)
	r.Post("/validate/{entity}", h.HandleValidateBatch)

	r.Get("/errors", h.HandleListErrorsByStatus)
	r.Get("/errors/{id}", h.HandleGetError)
	r.Get("/runs/{runID}/errors", h.HandleListRunErrors)
	r.Get("/records/{entity}/{id}/errors", h.HandleListRecordErrors)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireOperator(operatorSecret, logger))
		r.Post("/errors/{id}/fix", h.HandleFix)
		r.Post("/errors/fix-bulk", h.HandleBulkFix)
		r.Patch("/errors/{id}/resolution", h.HandleResolveError)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
