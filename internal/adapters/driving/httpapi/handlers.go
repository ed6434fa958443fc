package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
	"github.com/revenue-labs/taxsearch/internal/logger"
)

// searchRequest is the POST /search body.
type searchRequest struct {
	Query string   `json:"query" validate:"required,min=1"`
	TopK  int      `json:"top_k" validate:"omitempty,min=1,max=20"`
	Alpha *float64 `json:"alpha" validate:"omitempty,min=0,max=1"`
}

// searchResult is one retrieved passage in a search response.
type searchResult struct {
	ChunkID string  `json:"chunk_id"`
	Text    string  `json:"text"`
	Section string  `json:"section"`
	Page    int     `json:"page"`
	Score   float64 `json:"score"`
}

// searchResponse is the body of a successful search.
type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
	Context string         `json:"context"`
	Total   int            `json:"total"`
	Alpha   float64        `json:"alpha"`
}

// errorBody is the error envelope returned on failure.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]any{"status": "ok"}

	if s.countChunks != nil {
		count, err := s.countChunks(r.Context())
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable", "vector store unavailable")
			return
		}
		health["chunks"] = count
	}

	writeJSON(w, http.StatusOK, health)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	s.search(w, r, req)
}

func (s *Server) handleSearchPath(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "query")
	query, err := url.PathUnescape(raw)
	if err != nil {
		query = raw
	}

	req := searchRequest{Query: query}
	if v := r.URL.Query().Get("top_k"); v != "" {
		k, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "top_k must be an integer")
			return
		}
		req.TopK = k
	}
	if v := r.URL.Query().Get("alpha"); v != "" {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "alpha must be a number")
			return
		}
		req.Alpha = &a
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	s.search(w, r, req)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request, req searchRequest) {
	opts := domain.RetrievalOptions{
		TopK:  domain.ClampTopK(req.TopK),
		Alpha: -1, // auto
	}
	if req.Alpha != nil {
		opts.Alpha = *req.Alpha
	}

	result, err := s.retrieval.Search(r.Context(), req.Query, opts)
	if err != nil {
		logger.Warn("search failed: %v", err)
		status, kind, msg := mapError(err)
		writeError(w, status, kind, msg)
		return
	}

	resp := searchResponse{
		Query:   result.Query,
		Results: make([]searchResult, len(result.Chunks)),
		Context: result.Context,
		Total:   len(result.Chunks),
		Alpha:   result.Alpha,
	}
	for i, c := range result.Chunks {
		resp.Results[i] = searchResult{
			ChunkID: c.ChunkID,
			Text:    c.Content,
			Section: c.Section,
			Page:    c.Page,
			Score:   c.Score,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// mapError translates pipeline sentinels to HTTP status and a stable,
// client-safe envelope. Raw adapter error text never reaches clients.
func mapError(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		return http.StatusBadRequest, "invalid_query", "query must be non-empty"
	case errors.Is(err, domain.ErrEmbeddingUnavailable):
		return http.StatusServiceUnavailable, "embedding_unavailable", "embedding provider unavailable"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "store_unavailable", "vector store unavailable"
	default:
		return http.StatusInternalServerError, "internal", "search failed"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Kind: kind, Message: message}})
}
