package live

import (
	"encoding/json"

	"example.com/scoreboard/internal/scoreboard"
)

// Envelope WS envelope: {"type":"...","payload":{...}}
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MatchView is a match as shown to API and stream clients.
type MatchView struct {
	scoreboard.Match
	Display string `json:"display"` // "Mexico 0 - Canada 5"
}

type SummaryPayload struct {
	Matches []MatchView `json:"matches"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewMatchView(m scoreboard.Match) MatchView {
	return MatchView{Match: m, Display: m.String()}
}

func NewSummaryPayload(ms []scoreboard.Match) SummaryPayload {
	views := make([]MatchView, 0, len(ms))
	for _, m := range ms {
		views = append(views, NewMatchView(m))
	}
	return SummaryPayload{Matches: views}
}

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}
