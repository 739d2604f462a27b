package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"example.com/scoreboard/internal/config"
	"example.com/scoreboard/internal/httpapi"
	"example.com/scoreboard/internal/live"
	"example.com/scoreboard/internal/scoreboard"
)

type App struct {
	cfg config.Config
	log *slog.Logger

	rdb   *redis.Client
	kafka *live.KafkaPublisher

	board *live.Board
	hub   *live.Hub
	srv   *http.Server
}

func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	a := &App{cfg: cfg, log: log}

	// --- Metrics ---
	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := live.NewMetrics(promReg)

	// --- Event sink ---
	pub, err := a.openPublisher(ctx)
	if err != nil {
		return nil, err
	}

	// --- Board ---
	a.hub = live.NewHub(live.HubConfig{
		PingInterval: cfg.Stream.PingInterval,
		SendBuffer:   cfg.Stream.SendBuffer,
	}, metrics, log)
	a.board = live.NewBoard(scoreboard.NewRegistry(), live.Options{
		Publisher: pub,
		Hub:       a.hub,
		Metrics:   metrics,
		Logger:    log,
	})

	handler := httpapi.NewRouter(a.board, httpapi.RouterOptions{
		Metrics: promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}),
		Logger:  log,
	})

	a.srv = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}
	return a, nil
}

func (a *App) openPublisher(ctx context.Context) (live.Publisher, error) {
	switch a.cfg.Events.Sink {
	case config.SinkRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr: a.cfg.Redis.Addr,
			DB:   a.cfg.Redis.DB,
		})

		// fail fast
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping (%s db=%d): %w", a.cfg.Redis.Addr, a.cfg.Redis.DB, err)
		}

		a.rdb = rdb
		a.log.Info("publishing events to redis", "addr", a.cfg.Redis.Addr, "channel", a.cfg.Redis.Channel)
		return live.NewRedisPublisher(rdb, a.cfg.Redis.Channel), nil

	case config.SinkKafka:
		a.kafka = live.NewKafkaPublisher(a.cfg.Kafka.Brokers, a.cfg.Kafka.Topic)
		a.log.Info("publishing events to kafka", "brokers", a.cfg.Kafka.Brokers, "topic", a.cfg.Kafka.Topic)
		return a.kafka, nil

	default:
		return live.NopPublisher{}, nil
	}
}

// Handler exposes the HTTP surface without starting a listener.
func (a *App) Handler() http.Handler {
	return a.srv.Handler
}

func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	a.log.Info("http server starting", "addr", a.cfg.HTTP.Addr)

	g.Go(func() error {
		err := a.srv.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		a.log.Info("http server shutting down")
		// hijacked websocket conns are not covered by Shutdown
		a.hub.Close()
		_ = a.srv.Shutdown(shutdownCtx)
		return nil
	})

	err := g.Wait()
	_ = a.Close(context.Background())
	return err
}

func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.kafka != nil {
		errs = append(errs, a.kafka.Close())
	}
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
	}
	return errors.Join(errs...)
}
