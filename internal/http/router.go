package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ApexSites26/route-care-app-78-sub000/internal/http/handlers"
)

type Router struct {
	handler http.Handler
}

func NewRouter(logger zerolog.Logger, exceptionHandler *handlers.ExceptionHandler, rotaHandler *handlers.RotaHandler) *Router {
	mux := http.NewServeMux()
	exceptionHandler.Register(mux)
	rotaHandler.Register(mux)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return &Router{handler: instrument(logger, mux)}
}

func (r *Router) Handler() http.Handler {
	return r.handler
}
