// Package service exposes the layout store and schema compiler over a REST
// API. Handlers follow a factory pattern: each route gets a method returning
// its http.HandlerFunc, with the server's dependencies captured in the
// closure.
package service

import (
	"context"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rahilansari261/ai-slides-sub000/generate"
	"github.com/rahilansari261/ai-slides-sub000/layoutstore"
)

// Generator produces structured slide content constrained by a compiled
// layout schema. *generate.Client implements it; tests substitute stubs.
type Generator interface {
	Generate(ctx context.Context, prompt string, schema *openapi3.Schema) (*generate.Reply, error)
}

// Server is the HTTP API over the layout store. A nil Generator disables the
// generation endpoint but leaves the rest of the API working.
type Server struct {
	router *mux.Router
	store  *layoutstore.Store
	gen    Generator
}

func NewServer(store *layoutstore.Store, gen Generator) *Server {
	s := &Server{
		router: mux.NewRouter(),
		store:  store,
		gen:    gen,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/layouts", s.handleCreateLayout()).Methods(http.MethodPost)
	api.HandleFunc("/layouts", s.handleListLayouts()).Methods(http.MethodGet)
	api.HandleFunc("/layouts/{id}", s.handleGetLayout()).Methods(http.MethodGet)
	api.HandleFunc("/layouts/{id}", s.handleUpdateLayout()).Methods(http.MethodPut)
	api.HandleFunc("/layouts/{id}", s.handleDeleteLayout()).Methods(http.MethodDelete)
	api.HandleFunc("/layouts/{id}/schema", s.handleGetSchema()).Methods(http.MethodGet)
	api.HandleFunc("/layouts/{id}/generate", s.handleGenerate()).Methods(http.MethodPost)

	s.router.HandleFunc("/healthz", s.handleHealth()).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	s.router.Use(observeMiddleware)
}
