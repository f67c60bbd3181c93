package service

import (
	"errors"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rahilansari261/ai-slides-sub000/layoutschema"
	"github.com/rahilansari261/ai-slides-sub000/layoutstore"
)

// layoutRequest is the body of create and update calls. Name and description
// override whatever the source text declares about itself.
type layoutRequest struct {
	Source      string `json:"source"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Content     json.RawMessage `json:"content"`
	SpeakerNote string          `json:"speakerNote,omitempty"`
}

func (s *Server) handleCreateLayout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeLayoutRequest(w, r)
		if !ok {
			return
		}
		rec := buildRecord("", req)
		if err := s.store.Put(rec); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		stored, err := s.store.Get(rec.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, stored)
	}
}

func (s *Server) handleListLayouts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := s.store.List()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if recs == nil {
			recs = []layoutstore.Record{}
		}
		writeJSON(w, http.StatusOK, recs)
	}
}

func (s *Server) handleGetLayout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := s.lookup(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func (s *Server) handleUpdateLayout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prev, ok := s.lookup(w, r)
		if !ok {
			return
		}
		req, ok := decodeLayoutRequest(w, r)
		if !ok {
			return
		}
		rec := buildRecord(prev.ID, req)
		if rec.Name == "" {
			rec.Name = prev.Name
		}
		if rec.Description == "" {
			rec.Description = prev.Description
		}
		if err := s.store.Put(rec); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		stored, err := s.store.Get(rec.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, stored)
	}
}

func (s *Server) handleDeleteLayout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		err := s.store.Delete(id)
		if errors.Is(err, layoutstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "layout not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleGetSchema() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := s.lookup(w, r)
		if !ok {
			return
		}
		doc := rec.Schema
		if doc == nil {
			res := layoutschema.CompileSource(rec.Source)
			observeCompile(res)
			doc = res.Doc
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

func (s *Server) handleGenerate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.gen == nil {
			writeError(w, http.StatusServiceUnavailable, "generation backend not configured")
			return
		}
		rec, ok := s.lookup(w, r)
		if !ok {
			return
		}
		body, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		var req generateRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		doc := rec.Schema
		if doc == nil {
			res := layoutschema.CompileSource(rec.Source)
			observeCompile(res)
			doc = res.Doc
		}
		reply, err := s.gen.Generate(r.Context(), req.Prompt, doc)
		if err != nil {
			slog.Warn("generation call failed", "layout", rec.ID, "err", err)
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, generateResponse{
			Content:     json.RawMessage(reply.Content),
			SpeakerNote: reply.SpeakerNote,
		})
	}
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// lookup loads the record named by the route's id var, writing the 404 on
// the caller's behalf when it is missing.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (layoutstore.Record, bool) {
	id := mux.Vars(r)["id"]
	rec, err := s.store.Get(id)
	if errors.Is(err, layoutstore.ErrNotFound) {
		writeError(w, http.StatusNotFound, "layout not found")
		return layoutstore.Record{}, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return layoutstore.Record{}, false
	}
	return rec, true
}

// decodeLayoutRequest reads and validates a create/update body, answering the
// request itself when the body is unusable.
func decodeLayoutRequest(w http.ResponseWriter, r *http.Request) (layoutRequest, bool) {
	var req layoutRequest
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, false
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return req, false
	}
	if req.Source == "" {
		writeError(w, http.StatusBadRequest, "source is required")
		return req, false
	}
	return req, true
}

// buildRecord compiles the submitted source and assembles the record to
// store. The layout's own metadata fills any identity field the request left
// blank; a brand new layout with no declared id gets a random one.
func buildRecord(id string, req layoutRequest) layoutstore.Record {
	res := layoutschema.CompileSource(req.Source)
	observeCompile(res)

	meta := layoutschema.ExtractMeta(req.Source)
	if id == "" {
		id = meta.ID
	}
	if id == "" {
		id = uuid.NewString()
	}
	name := req.Name
	if name == "" {
		name = meta.Name
	}
	desc := req.Description
	if desc == "" {
		desc = meta.Description
	}
	return layoutstore.Record{
		ID:          id,
		Name:        name,
		Description: desc,
		Source:      req.Source,
		Schema:      res.Doc,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("could not encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
