package httpapi

import (
	"encoding/json"
	"net/http"

	"example.com/scoreboard/internal/scoreboard"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, errCode, msg string) {
	writeJSON(w, code, ErrorResponse{Code: errCode, Message: msg})
}

// writeBoardError maps scoreboard errors onto HTTP statuses.
func writeBoardError(w http.ResponseWriter, err error) {
	code := scoreboard.Code(err)
	switch code {
	case "invalid_argument":
		writeError(w, http.StatusBadRequest, code, err.Error())
	case "conflict":
		writeError(w, http.StatusConflict, code, err.Error())
	case "not_found":
		writeError(w, http.StatusNotFound, code, err.Error())
	case "invalid_state":
		writeError(w, http.StatusUnprocessableEntity, code, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
