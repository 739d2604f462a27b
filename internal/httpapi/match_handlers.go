package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"example.com/scoreboard/internal/live"
)

type MatchHandler struct {
	Board *live.Board
}

type StartMatchRequest struct {
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
}

// UpdateScoreRequest carries absolute scores, not increments.
type UpdateScoreRequest struct {
	HomeScore *int `json:"homeScore"`
	AwayScore *int `json:"awayScore"`
}

func (h *MatchHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartMatchRequest
	if !decode(w, r, &req) {
		return
	}

	m, err := h.Board.StartMatch(r.Context(), req.HomeTeam, req.AwayTeam)
	if err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, live.NewMatchView(m))
}

func (h *MatchHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, live.NewSummaryPayload(h.Board.Summary()))
}

func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.Board.Match(chi.URLParam(r, "id"))
	if err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, live.NewMatchView(m))
}

func (h *MatchHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	var req UpdateScoreRequest
	if !decode(w, r, &req) {
		return
	}
	if req.HomeScore == nil || req.AwayScore == nil {
		writeError(w, http.StatusBadRequest, "bad_request", "homeScore and awayScore are required")
		return
	}

	m, err := h.Board.UpdateScore(r.Context(), chi.URLParam(r, "id"), *req.HomeScore, *req.AwayScore)
	if err != nil {
		writeBoardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, live.NewMatchView(m))
}

func (h *MatchHandler) Finish(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Board.FinishMatch(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeBoardError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body into v. Values of the wrong JSON type (a string
// or fractional number where an integer score belongs) are reported as
// invalid_argument; anything else unparseable is bad_request.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		writeError(w, http.StatusBadRequest, "invalid_argument", typeErr.Field+" has the wrong type")
		return false
	}
	writeError(w, http.StatusBadRequest, "bad_request", "invalid json")
	return false
}
