package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config describes all runtime settings for the server.
// Load it once in main, validate, and pass it down; nothing reads the
// environment after that.
type Config struct {
	Env string `env:"APP_ENV" envDefault:"dev"` // dev|stage|prod

	Log struct {
		Format string `env:"LOG_FORMAT" envDefault:"text"` // text|json
		Level  string `env:"LOG_LEVEL" envDefault:"info"`  // debug|info|warn|error
	}

	HTTP struct {
		Addr              string        `env:"HTTP_ADDR" envDefault:":8080"`
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
		ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"0s"`
		WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"0s"`
		IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
		ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	}

	Events struct {
		Sink string `env:"EVENTS_SINK" envDefault:"none"` // none|redis|kafka
	}

	Redis struct {
		Addr    string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		DB      int    `env:"REDIS_DB" envDefault:"0"`
		Channel string `env:"REDIS_CHANNEL" envDefault:"scoreboard:events"`
	}

	Kafka struct {
		Brokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
		Topic   string   `env:"KAFKA_TOPIC" envDefault:"scoreboard-events"`
	}

	Stream struct {
		PingInterval time.Duration `env:"WS_PING_INTERVAL" envDefault:"25s"`
		SendBuffer   int           `env:"WS_SEND_BUFFER" envDefault:"64"`
	}
}

const (
	SinkNone  = "none"
	SinkRedis = "redis"
	SinkKafka = "kafka"
)

func LoadFromEnv() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("HTTP_ADDR is empty")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unsupported LOG_FORMAT=%q (want text|json)", c.Log.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported LOG_LEVEL=%q (want debug|info|warn|error)", c.Log.Level)
	}

	switch c.Events.Sink {
	case SinkNone:
	case SinkRedis:
		if c.Redis.Addr == "" {
			return errors.New("REDIS_ADDR is empty")
		}
		if c.Redis.Channel == "" {
			return errors.New("REDIS_CHANNEL is empty")
		}
	case SinkKafka:
		if len(c.Kafka.Brokers) == 0 {
			return errors.New("KAFKA_BROKERS is empty")
		}
		if c.Kafka.Topic == "" {
			return errors.New("KAFKA_TOPIC is empty")
		}
	default:
		return fmt.Errorf("unsupported EVENTS_SINK=%q (want none|redis|kafka)", c.Events.Sink)
	}

	if c.Stream.PingInterval <= 0 {
		return fmt.Errorf("WS_PING_INTERVAL must be positive, got %s", c.Stream.PingInterval)
	}
	if c.Stream.SendBuffer <= 0 {
		return fmt.Errorf("WS_SEND_BUFFER must be positive, got %d", c.Stream.SendBuffer)
	}
	return nil
}
