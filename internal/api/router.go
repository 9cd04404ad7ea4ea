package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/harborview/hotel-booking-bot/internal/http/middleware"
)

// Router exposes the same route table as the Lambda front over a chi mux,
// for running the API locally. metricsHandler is mounted at /metrics when
// non-nil.
func (h *Handler) Router(metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(httpmiddleware.RequestLogger(h.logger))
	r.Use(httpmiddleware.CORS([]string{"*"}))

	r.Get("/", h.serve)
	r.Get("/health", h.serve)
	r.Post("/api/data", h.serve)
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}
	r.NotFound(h.serve)
	r.MethodNotAllowed(h.serve)

	return r
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	query := map[string]string{}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			query[key] = values[0]
		}
	}

	status, payload := h.Route(r.Method, r.URL.Path, query, body)

	for k, v := range corsHeaders {
		w.Header().Set(k, v)
	}
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
