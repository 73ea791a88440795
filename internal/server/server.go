// Package server exposes lookups over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/hyperifyio/numlookup/internal/lookup"
	"github.com/hyperifyio/numlookup/internal/normalize"
)

// Lookuper is the lookup operation the handlers depend on.
type Lookuper interface {
	Lookup(ctx context.Context, raw string) (lookup.Outcome, error)
}

// Options configures the router.
type Options struct {
	Logger zerolog.Logger
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	Version  string
}

type handler struct {
	svc     Lookuper
	version string
}

// NewRouter builds the HTTP handler tree.
func NewRouter(svc Lookuper, opts Options) http.Handler {
	h := &handler{svc: svc, version: opts.Version}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(requestLogger(opts.Logger))
	r.Use(recoverer)

	r.Get("/healthz", h.health)
	r.Get("/search", h.search)
	r.Get("/inspect", h.inspect)
	r.Route("/api", func(r chi.Router) {
		r.Get("/search", h.search)
		r.Get("/inspect", h.inspect)
	})
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found", Message: "The requested endpoint does not exist"})
	})
	return r
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: h.version})
}

func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Lookup(r.Context(), r.URL.Query().Get("number"))
	log := zerolog.Ctx(r.Context())

	var se *lookup.StatusError
	var te *lookup.TransportError
	switch {
	case err == nil && out.Found:
		writeJSON(w, http.StatusOK, searchResponse{
			Success: true,
			Data:    newSearchData(out),
			Message: "Number information found via external API",
		})
	case err == nil:
		writeJSON(w, http.StatusNotFound, searchResponse{
			Success:        false,
			Message:        "No information found for this number from external source",
			SearchedNumber: out.Number,
		})
	case errors.Is(err, lookup.ErrEmptyInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Phone number is required",
			Message: "Please provide a phone number to search",
		})
	case errors.Is(err, lookup.ErrInvalidFormat):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid number format",
			Message: "Please enter a valid Pakistani mobile number or 13-digit CNIC",
		})
	case errors.As(err, &se):
		writeJSON(w, se.Code, searchResponse{
			Success:        false,
			Message:        fmt.Sprintf("External API returned status code: %d", se.Code),
			SearchedNumber: out.Number,
		})
	case errors.As(err, &te):
		log.Error().Err(err).Str("number", out.Number).Msg("external API request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "External API connection error",
			Message: "Could not connect to external search service. Please try again later.",
		})
	default:
		log.Error().Err(err).Msg("search failed")
		writeInternalError(w)
	}
}

func (h *handler) inspect(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("number")
	if isBlank(raw) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Phone number is required",
			Message: "Please provide a phone number to inspect",
		})
		return
	}
	canonical := normalize.Normalize(raw)
	writeJSON(w, http.StatusOK, inspectResponse{
		Input:      raw,
		Normalized: canonical,
		Kind:       normalize.Classify(raw),
		Valid:      normalize.Valid(raw),
		Info:       normalize.Describe(canonical),
	})
}
