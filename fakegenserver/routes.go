package main

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"
	"github.com/urfave/negroni"
	"github.com/valyala/fastjson"
)

func (s *server) setupRoutes() {
	s.router.HandleFunc("/", s.handleRoot())
	s.router.HandleFunc("/api/v1/content/generate", s.handleGenerate()).Methods("POST")
	s.router.Use(logMiddleware)
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := negroni.NewResponseWriter(w)
		next.ServeHTTP(ww, r)
		log.Println(r.Method, r.RequestURI, r.Proto, "->", ww.Status(), http.StatusText(ww.Status()))
	})
}

func (*server) handleRoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "fake generation backend")
	}
}

type generateRequest struct {
	Model          string          `json:"model"`
	Prompt         string          `json:"prompt"`
	ResponseSchema json.RawMessage `json:"responseSchema"`
}

func (s *server) handleGenerate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqBody, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "unreadable request body", http.StatusBadRequest)
			return
		}

		var req generateRequest
		if err := json.Unmarshal(reqBody, &req); err != nil {
			http.Error(w, "request body is not valid JSON", http.StatusBadRequest)
			return
		}

		schema := &openapi3.Schema{}
		if len(req.ResponseSchema) > 0 {
			if err := schema.UnmarshalJSON(req.ResponseSchema); err != nil {
				http.Error(w, "responseSchema is not a valid schema", http.StatusBadRequest)
				return
			}
		}

		arena := &fastjson.Arena{}
		reply := arena.NewObject()
		reply.Set("content", sampleValue(arena, schema, 0))

		w.Header().Set("Content-Type", "application/json")
		w.Write(reply.MarshalTo(nil))
	}
}
