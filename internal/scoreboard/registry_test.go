package scoreboard

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("m%d", n)
	}
}

func TestStartMatch(t *testing.T) {
	r := NewRegistry()

	id, err := r.StartMatch("Mexico", "Canada")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	m, err := r.Match(id)
	require.NoError(t, err)
	assert.Equal(t, "Mexico", m.HomeTeam)
	assert.Equal(t, "Canada", m.AwayTeam)
	assert.Equal(t, 0, m.HomeScore)
	assert.Equal(t, 0, m.AwayScore)
	assert.Equal(t, 1, r.Len())
}

func TestStartMatch_InvalidNames(t *testing.T) {
	cases := []struct {
		name       string
		home, away string
	}{
		{name: "empty_home", home: "", away: "Canada"},
		{name: "empty_away", home: "Mexico", away: ""},
		{name: "both_empty", home: "", away: ""},
		{name: "same_team", home: "Mexico", away: "Mexico"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry()
			id, err := r.StartMatch(tc.home, tc.away)
			require.ErrorIs(t, err, ErrInvalidArgument)
			assert.Empty(t, id)
			assert.Zero(t, r.Len())
		})
	}
}

func TestStartMatch_WhitespaceIsNotEmpty(t *testing.T) {
	r := NewRegistry()
	_, err := r.StartMatch(" ", "Canada")
	require.NoError(t, err)
}

func TestStartMatch_ConflictEitherOrientation(t *testing.T) {
	r := NewRegistry()
	id, err := r.StartMatch("Mexico", "Canada")
	require.NoError(t, err)

	_, err = r.StartMatch("Mexico", "Canada")
	require.ErrorIs(t, err, ErrConflict)

	_, err = r.StartMatch("Canada", "Mexico")
	require.ErrorIs(t, err, ErrConflict)

	// a different pairing with one shared team is fine
	_, err = r.StartMatch("Mexico", "Brazil")
	require.NoError(t, err)

	require.NoError(t, r.FinishMatch(id))

	again, err := r.StartMatch("Canada", "Mexico")
	require.NoError(t, err)
	assert.NotEqual(t, id, again)
}

func TestStartMatch_AssignsIncreasingSequence(t *testing.T) {
	r := NewRegistry(WithIDFunc(sequentialIDs()))

	var last uint64
	for _, pair := range [][2]string{{"A", "B"}, {"C", "D"}, {"E", "F"}} {
		id, err := r.StartMatch(pair[0], pair[1])
		require.NoError(t, err)
		m, err := r.Match(id)
		require.NoError(t, err)
		assert.Greater(t, m.Sequence, last)
		last = m.Sequence
	}
}

func TestStartMatch_UsesClock(t *testing.T) {
	at := time.Date(2026, 6, 11, 20, 0, 0, 0, time.UTC)
	r := NewRegistry(WithClock(func() time.Time { return at }))

	id, err := r.StartMatch("Mexico", "Canada")
	require.NoError(t, err)
	m, err := r.Match(id)
	require.NoError(t, err)
	assert.Equal(t, at, m.StartedAt)
}

func TestStartMatch_SkipsActiveIDs(t *testing.T) {
	ids := []string{"dup", "dup", "", "fresh"}
	r := NewRegistry(WithIDFunc(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))

	first, err := r.StartMatch("A", "B")
	require.NoError(t, err)
	second, err := r.StartMatch("C", "D")
	require.NoError(t, err)

	assert.Equal(t, "dup", first)
	assert.Equal(t, "fresh", second)
}

func TestStartMatch_IDSourceExhausted(t *testing.T) {
	r := NewRegistry(WithIDFunc(func() string { return "same" }))

	_, err := r.StartMatch("A", "B")
	require.NoError(t, err)

	_, err = r.StartMatch("C", "D")
	require.Error(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestStartMatch_NeverReusesFinishedIDs(t *testing.T) {
	ids := []string{"m1", "m1", "m2"}
	r := NewRegistry(WithIDFunc(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))

	first, err := r.StartMatch("A", "B")
	require.NoError(t, err)
	require.NoError(t, r.FinishMatch(first))

	second, err := r.StartMatch("A", "B")
	require.NoError(t, err)

	assert.Equal(t, "m1", first)
	assert.Equal(t, "m2", second)
	_, err = r.Match(first)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFinishMatch(t *testing.T) {
	r := NewRegistry()
	id, err := r.StartMatch("Mexico", "Canada")
	require.NoError(t, err)

	require.NoError(t, r.FinishMatch(id))
	assert.Zero(t, r.Len())

	_, err = r.Match(id)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, r.FinishMatch(id), ErrNotFound)
	require.ErrorIs(t, r.UpdateScore(id, 1, 0), ErrNotFound)
}

func TestFinishMatch_Unknown(t *testing.T) {
	r := NewRegistry()
	require.ErrorIs(t, r.FinishMatch("nonexistent_id"), ErrNotFound)
}

func TestUpdateScore(t *testing.T) {
	r := NewRegistry()
	id, err := r.StartMatch("Mexico", "Canada")
	require.NoError(t, err)

	require.NoError(t, r.UpdateScore(id, 0, 5))

	m, err := r.Match(id)
	require.NoError(t, err)
	assert.Equal(t, 0, m.HomeScore)
	assert.Equal(t, 5, m.AwayScore)

	// same values again are accepted
	require.NoError(t, r.UpdateScore(id, 0, 5))
}

func TestUpdateScore_Unknown(t *testing.T) {
	r := NewRegistry()
	require.ErrorIs(t, r.UpdateScore("nonexistent_id", 0, 5), ErrNotFound)
}

func TestUpdateScore_Rejected(t *testing.T) {
	cases := []struct {
		name       string
		home, away int
		want       error
	}{
		{name: "negative_home", home: -1, away: 3, want: ErrInvalidArgument},
		{name: "negative_away", home: 3, away: -1, want: ErrInvalidArgument},
		{name: "lower_home", home: 1, away: 3, want: ErrInvalidState},
		{name: "lower_away", home: 2, away: 2, want: ErrInvalidState},
		{name: "both_lower", home: 0, away: 0, want: ErrInvalidState},
		{name: "one_up_one_down", home: 5, away: 1, want: ErrInvalidState},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry()
			id, err := r.StartMatch("Mexico", "Canada")
			require.NoError(t, err)
			require.NoError(t, r.UpdateScore(id, 2, 3))

			err = r.UpdateScore(id, tc.home, tc.away)
			require.ErrorIs(t, err, tc.want)

			m, err := r.Match(id)
			require.NoError(t, err)
			assert.Equal(t, 2, m.HomeScore)
			assert.Equal(t, 3, m.AwayScore)
		})
	}
}

func TestSummary_Empty(t *testing.T) {
	r := NewRegistry()
	s := r.Summary()
	require.NotNil(t, s)
	assert.Empty(t, s)
}

func TestSummary_OrderByTotalThenRecency(t *testing.T) {
	r := NewRegistry()

	games := []struct {
		home, away string
		hs, as     int
	}{
		{"Mexico", "Canada", 0, 5},
		{"Spain", "Brazil", 10, 2},
		{"Germany", "France", 2, 2},
		{"Uruguay", "Italy", 6, 6},
		{"Argentina", "Australia", 3, 1},
	}
	for _, g := range games {
		id, err := r.StartMatch(g.home, g.away)
		require.NoError(t, err)
		require.NoError(t, r.UpdateScore(id, g.hs, g.as))
	}

	var got []string
	for _, m := range r.Summary() {
		got = append(got, m.String())
	}

	assert.Equal(t, []string{
		"Uruguay 6 - Italy 6",
		"Spain 10 - Brazil 2",
		"Mexico 0 - Canada 5",
		"Argentina 3 - Australia 1",
		"Germany 2 - France 2",
	}, got)
}

func TestSummary_HugeScoresDoNotWrap(t *testing.T) {
	r := NewRegistry()
	big, err := r.StartMatch("A", "B")
	require.NoError(t, err)
	small, err := r.StartMatch("C", "D")
	require.NoError(t, err)

	require.NoError(t, r.UpdateScore(big, math.MaxInt, 1))
	require.NoError(t, r.UpdateScore(small, 1, 0))

	s := r.Summary()
	require.Len(t, s, 2)
	assert.Equal(t, big, s[0].ID)
	assert.Equal(t, uint64(math.MaxInt)+1, s[0].Total())
	assert.Equal(t, small, s[1].ID)
}

func TestSummary_TieBreakWithoutScores(t *testing.T) {
	r := NewRegistry()
	a, err := r.StartMatch("A", "B")
	require.NoError(t, err)
	b, err := r.StartMatch("C", "D")
	require.NoError(t, err)
	c, err := r.StartMatch("E", "F")
	require.NoError(t, err)

	s := r.Summary()
	require.Len(t, s, 3)
	assert.Equal(t, []string{c, b, a}, []string{s[0].ID, s[1].ID, s[2].ID})
}

func TestSummary_ExcludesFinished(t *testing.T) {
	r := NewRegistry()
	m1, err := r.StartMatch("Mexico", "Canada")
	require.NoError(t, err)
	m2, err := r.StartMatch("Spain", "Brazil")
	require.NoError(t, err)

	require.NoError(t, r.UpdateScore(m1, 0, 5))
	require.NoError(t, r.UpdateScore(m2, 10, 2))
	require.NoError(t, r.FinishMatch(m1))

	s := r.Summary()
	require.Len(t, s, 1)
	assert.Equal(t, "Spain", s[0].HomeTeam)
}

func TestSummary_Idempotent(t *testing.T) {
	r := NewRegistry()
	for _, pair := range [][2]string{{"A", "B"}, {"C", "D"}, {"E", "F"}} {
		id, err := r.StartMatch(pair[0], pair[1])
		require.NoError(t, err)
		require.NoError(t, r.UpdateScore(id, 1, 1))
	}

	assert.Equal(t, r.Summary(), r.Summary())
}

func TestSummary_ReturnsCopies(t *testing.T) {
	r := NewRegistry()
	id, err := r.StartMatch("Mexico", "Canada")
	require.NoError(t, err)
	require.NoError(t, r.UpdateScore(id, 1, 2))

	s := r.Summary()
	s[0].HomeScore = 99
	s[0].HomeTeam = "Brazil"

	m, err := r.Match(id)
	require.NoError(t, err)
	m.AwayScore = 42

	again, err := r.Match(id)
	require.NoError(t, err)
	assert.Equal(t, "Mexico 1 - Canada 2", again.String())
}

func TestRegistriesAreIndependent(t *testing.T) {
	r1 := NewRegistry()
	r2 := NewRegistry()

	_, err := r1.StartMatch("Mexico", "Canada")
	require.NoError(t, err)
	_, err = r2.StartMatch("Mexico", "Canada")
	require.NoError(t, err)

	assert.Equal(t, 1, r1.Len())
	assert.Equal(t, 1, r2.Len())
}
