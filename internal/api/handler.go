package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Anish-Chanda/substring-search/internal/rabin"
	"github.com/Anish-Chanda/substring-search/internal/search"
)

const maxBody = 10 << 20

// SearchRequest is the body of POST /search. Engine selects one engine; when
// empty all of them run. Base and Modulus override the Rabin-Karp parameters
// when non-zero.
type SearchRequest struct {
	Haystack string `json:"haystack"`
	Pattern  string `json:"pattern"`
	Engine   string `json:"engine,omitempty"`
	Base     int64  `json:"base,omitempty"`
	Modulus  int64  `json:"modulus,omitempty"`
}

// EngineResult is one engine's answer. Index counts characters, not bytes.
type EngineResult struct {
	Engine string `json:"engine"`
	Index  int    `json:"index"`
	Found  bool   `json:"found"`
}

type SearchResponse struct {
	Results []EngineResult `json:"results"`
	Agree   bool           `json:"agree"`
}

type Handler struct {
	params rabin.Params
	log    *zap.Logger
}

// HealthHandler checks if the server is alive
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Engines handles GET /engines
func (h *Handler) Engines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"engines": search.Names(),
		"base":    h.params.Base,
		"modulus": h.params.Modulus,
	})
}

// Search handles POST /search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	params := h.params
	if req.Base != 0 {
		params.Base = req.Base
	}
	if req.Modulus != 0 {
		params.Modulus = req.Modulus
	}
	if err := params.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	engines := search.Engines(params)
	if req.Engine != "" {
		e, err := search.Lookup(req.Engine, params)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		engines = []search.Engine{e}
	}

	haystack, pattern := search.Runes(req.Haystack), search.Runes(req.Pattern)
	resp := SearchResponse{Agree: true}
	for _, e := range engines {
		idx, err := e.Index(haystack, pattern)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp.Results = append(resp.Results, EngineResult{Engine: e.Name, Index: idx, Found: idx != search.NotFound})
		if idx != resp.Results[0].Index {
			resp.Agree = false
		}
	}
	if !resp.Agree {
		h.log.Error("engines disagree", zap.Any("results", resp.Results))
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
