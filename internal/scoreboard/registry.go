package scoreboard

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// IDFunc returns a fresh match identifier. The registry skips empty ids and
// any id it has handed out before, so a source that repeats only costs
// retries.
type IDFunc func() string

// DefaultIDFunc returns random (v4) UUIDs.
func DefaultIDFunc() string {
	return uuid.NewString()
}

type Option func(*Registry)

func WithIDFunc(fn IDFunc) Option {
	return func(r *Registry) {
		if fn != nil {
			r.newID = fn
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// Registry owns the set of active matches.
//
// It is not safe for concurrent use: StartMatch checks the pairing and then
// inserts, so callers sharing a registry between goroutines must serialize
// every call (see live.Board).
type Registry struct {
	matches map[string]*Match
	pairs   map[pairKey]string
	retired map[string]struct{} // ids of finished matches
	seq     uint64

	newID IDFunc
	now   func() time.Time
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		matches: make(map[string]*Match),
		pairs:   make(map[pairKey]string),
		retired: make(map[string]struct{}),
		newID:   DefaultIDFunc,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// maxIDAttempts bounds retries when the id source hands back an id that is
// active or retired.
const maxIDAttempts = 8

// StartMatch registers a new 0-0 match and returns its id.
func (r *Registry) StartMatch(homeTeam, awayTeam string) (string, error) {
	if homeTeam == "" || awayTeam == "" {
		return "", fmt.Errorf("%w: team names must not be empty", ErrInvalidArgument)
	}
	if homeTeam == awayTeam {
		return "", fmt.Errorf("%w: home and away team are both %q", ErrInvalidArgument, homeTeam)
	}

	key := pairOf(homeTeam, awayTeam)
	if existing, ok := r.pairs[key]; ok {
		return "", fmt.Errorf("%w: %s and %s already play in match %s", ErrConflict, homeTeam, awayTeam, existing)
	}

	id, err := r.allocateID()
	if err != nil {
		return "", err
	}

	r.seq++
	r.matches[id] = &Match{
		ID:        id,
		HomeTeam:  homeTeam,
		AwayTeam:  awayTeam,
		Sequence:  r.seq,
		StartedAt: r.now(),
	}
	r.pairs[key] = id
	return id, nil
}

func (r *Registry) allocateID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := r.newID()
		if id == "" {
			continue
		}
		if _, taken := r.matches[id]; taken {
			continue
		}
		if _, used := r.retired[id]; used {
			continue
		}
		return id, nil
	}
	return "", fmt.Errorf("scoreboard: id source produced no unused id after %d attempts", maxIDAttempts)
}

// FinishMatch removes an active match. Finishing an unknown or already
// finished match fails with ErrNotFound.
func (r *Registry) FinishMatch(id string) error {
	m, ok := r.matches[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(r.matches, id)
	r.retired[id] = struct{}{}
	delete(r.pairs, pairOf(m.HomeTeam, m.AwayTeam))
	return nil
}

// UpdateScore sets the absolute score of a match. Scores may only go up; on
// any error the stored match is untouched.
func (r *Registry) UpdateScore(id string, homeScore, awayScore int) error {
	m, ok := r.matches[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if homeScore < 0 || awayScore < 0 {
		return fmt.Errorf("%w: scores must not be negative (got %d-%d)", ErrInvalidArgument, homeScore, awayScore)
	}
	if homeScore < m.HomeScore || awayScore < m.AwayScore {
		return fmt.Errorf("%w: score %d-%d is lower than current %d-%d",
			ErrInvalidState, homeScore, awayScore, m.HomeScore, m.AwayScore)
	}

	m.HomeScore = homeScore
	m.AwayScore = awayScore
	return nil
}

// Match returns a copy of one active match.
func (r *Registry) Match(id string) (Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return Match{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return *m, nil
}

func (r *Registry) Len() int {
	return len(r.matches)
}

// Summary returns every active match, highest total score first. Equal totals
// are ordered by recency: the match started last comes first.
func (r *Registry) Summary() []Match {
	out := make([]Match, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, *m)
	}
	slices.SortFunc(out, compareSummary)
	return out
}

func compareSummary(a, b Match) int {
	if c := cmp.Compare(b.Total(), a.Total()); c != 0 {
		return c
	}
	return cmp.Compare(b.Sequence, a.Sequence)
}
