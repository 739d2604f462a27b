package scoreboard

import (
	"fmt"
	"time"
)

// Match is a snapshot of one active match. Values handed out by Registry are
// copies; changing them has no effect on the registry.
type Match struct {
	ID        string    `json:"id"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	HomeScore int       `json:"homeScore"`
	AwayScore int       `json:"awayScore"`
	Sequence  uint64    `json:"sequence"`
	StartedAt time.Time `json:"startedAt"`
}

// Total is the combined score. Each side is a non-negative int, so the sum
// always fits in a uint64.
func (m Match) Total() uint64 {
	return uint64(m.HomeScore) + uint64(m.AwayScore)
}

// String renders "<home> <home score> - <away> <away score>".
func (m Match) String() string {
	return fmt.Sprintf("%s %d - %s %d", m.HomeTeam, m.HomeScore, m.AwayTeam, m.AwayScore)
}

// pairKey identifies an unordered pairing of two teams.
type pairKey struct {
	lo, hi string
}

func pairOf(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}
