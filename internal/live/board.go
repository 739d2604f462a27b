package live

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"example.com/scoreboard/internal/scoreboard"
)

const (
	opStart  = "start_match"
	opUpdate = "update_score"
	opFinish = "finish_match"
)

// publishTimeout bounds one event delivery to the sink.
const publishTimeout = 5 * time.Second

type Options struct {
	Publisher Publisher // nil => events are dropped
	Hub       *Hub      // nil => no live stream
	Metrics   *Metrics  // nil => no metrics
	Logger    *slog.Logger
	Now       func() time.Time
}

// Board is the single owner of a scoreboard.Registry. One mutex covers every
// registry call, which makes the board safe for concurrent front ends.
//
// After a successful change the board:
//   - pushes the new summary to stream subscribers (under the lock, so
//     subscribers see summaries in mutation order)
//   - publishes an Event (after the lock; failures are only logged)
type Board struct {
	mu  sync.Mutex
	reg *scoreboard.Registry

	pub     Publisher
	hub     *Hub
	metrics *Metrics
	log     *slog.Logger
	tracer  trace.Tracer
	now     func() time.Time
}

func NewBoard(reg *scoreboard.Registry, opts Options) *Board {
	if reg == nil {
		reg = scoreboard.NewRegistry()
	}
	b := &Board{
		reg:     reg,
		pub:     opts.Publisher,
		hub:     opts.Hub,
		metrics: opts.Metrics,
		log:     opts.Logger,
		tracer:  otel.Tracer("example.com/scoreboard/internal/live"),
		now:     opts.Now,
	}
	if b.pub == nil {
		b.pub = NopPublisher{}
	}
	if b.log == nil {
		b.log = slog.Default()
	}
	if b.now == nil {
		b.now = time.Now
	}
	b.metrics.setActive(reg.Len())
	return b
}

func (b *Board) StartMatch(ctx context.Context, homeTeam, awayTeam string) (scoreboard.Match, error) {
	return b.apply(ctx, opStart, EventMatchStarted, func(r *scoreboard.Registry) (scoreboard.Match, error) {
		id, err := r.StartMatch(homeTeam, awayTeam)
		if err != nil {
			return scoreboard.Match{}, err
		}
		return r.Match(id)
	})
}

func (b *Board) UpdateScore(ctx context.Context, id string, homeScore, awayScore int) (scoreboard.Match, error) {
	return b.apply(ctx, opUpdate, EventScoreUpdated, func(r *scoreboard.Registry) (scoreboard.Match, error) {
		if err := r.UpdateScore(id, homeScore, awayScore); err != nil {
			return scoreboard.Match{}, err
		}
		return r.Match(id)
	})
}

// FinishMatch removes the match and returns its final state.
func (b *Board) FinishMatch(ctx context.Context, id string) (scoreboard.Match, error) {
	return b.apply(ctx, opFinish, EventMatchFinished, func(r *scoreboard.Registry) (scoreboard.Match, error) {
		m, err := r.Match(id)
		if err != nil {
			return scoreboard.Match{}, err
		}
		if err := r.FinishMatch(id); err != nil {
			return scoreboard.Match{}, err
		}
		return m, nil
	})
}

func (b *Board) Match(id string) (scoreboard.Match, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reg.Match(id)
}

func (b *Board) Summary() []scoreboard.Match {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reg.Summary()
}

func (b *Board) apply(
	ctx context.Context,
	op string,
	evtType EventType,
	fn func(r *scoreboard.Registry) (scoreboard.Match, error),
) (scoreboard.Match, error) {
	ctx, span := b.tracer.Start(ctx, "scoreboard."+op)
	defer span.End()

	b.mu.Lock()
	m, err := fn(b.reg)
	if err == nil && b.hub != nil {
		b.hub.Broadcast(b.reg.Summary())
	}
	b.metrics.setActive(b.reg.Len())
	b.mu.Unlock()

	b.metrics.observe(op, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, scoreboard.Code(err))
		b.log.Debug("board operation rejected", "op", op, "err", err)
		return scoreboard.Match{}, err
	}

	span.SetAttributes(
		attribute.String("match.id", m.ID),
		attribute.Int("match.home_score", m.HomeScore),
		attribute.Int("match.away_score", m.AwayScore),
	)
	b.log.Info("board updated", "op", op, "match_id", m.ID, "match", m.String())

	evt := Event{Type: evtType, Match: m, At: b.now()}
	// The change is committed; a caller that goes away must not cancel delivery.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	perr := b.pub.Publish(pubCtx, evt)
	cancel()
	b.metrics.publishResult(evtType, perr)
	if perr != nil {
		b.log.Warn("publish event failed", "type", evtType, "match_id", m.ID, "err", perr)
	}
	return m, nil
}

// attachSubscriber registers cc with the hub, seeding it with the current
// summary. Holding the board lock guarantees no mutation slips in between.
func (b *Board) attachSubscriber(cc *ClientConn) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hub.attach(cc, b.reg.Summary())
}
