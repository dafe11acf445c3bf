package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevJWTSigningKey is used when JWT_SIGNING_KEY is unset. FromEnv refuses it
// outside development.
const DevJWTSigningKey = "dev-secret-key-change-in-production"

// Config is the full process configuration.
type Config struct {
	Server    Server
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Auth      AuthConfig
	Biometric BiometricConfig
	Log       LogConfig
	Ledger    LedgerConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	Environment string
}

// DatabaseConfig selects PostgreSQL. An empty URL runs every store in memory.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig selects Redis for the biometric lockout. Empty URL keeps the
// lockout in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig enables audit streaming when Brokers is non-empty.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

type AuthConfig struct {
	JWTSigningKey string
	Issuer        string
	Audience      string
	TokenTTL      time.Duration
	// EnrollmentTTL bounds the window between registration and fingerprint
	// enrollment.
	EnrollmentTTL time.Duration
}

type BiometricConfig struct {
	// AgentURL is the device agent for native fingerprint capture. Empty
	// selects the web (WebAuthn) variant.
	AgentURL      string
	Timeout       time.Duration
	MaxFailures   int
	LockoutWindow time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type LedgerConfig struct {
	TxTimeout time.Duration
}

// IsDevelopment reports whether dev-only defaults are allowed.
func (c Config) IsDevelopment() bool {
	return c.Server.Environment == "" || c.Server.Environment == "development"
}

// FromEnv loads an optional .env file, then builds the config from
// environment variables so main stays lean.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	e := env{lookup: lookup}
	cfg := Config{
		Server: Server{
			Addr:        e.str("CAMPUSVOTE_ADDR", ":8080"),
			Environment: e.str("CAMPUSVOTE_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:             e.str("DATABASE_URL", ""),
			MaxOpenConns:    e.int("DATABASE_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    e.int("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: e.duration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          e.str("REDIS_URL", ""),
			PoolSize:     e.int("REDIS_POOL_SIZE", 10),
			MinIdleConns: e.int("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  e.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  e.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: e.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:    e.list("KAFKA_BROKERS"),
			AuditTopic: e.str("AUDIT_TOPIC", "campusvote.audit"),
		},
		Auth: AuthConfig{
			JWTSigningKey: e.str("JWT_SIGNING_KEY", DevJWTSigningKey),
			Issuer:        e.str("JWT_ISSUER", "campusvote"),
			Audience:      e.str("JWT_AUDIENCE", "campusvote-api"),
			TokenTTL:      e.duration("JWT_TTL", 30*time.Minute),
			EnrollmentTTL: e.duration("ENROLLMENT_TTL", 10*time.Minute),
		},
		Biometric: BiometricConfig{
			AgentURL:      e.str("BIOMETRIC_AGENT_URL", ""),
			Timeout:       e.duration("BIOMETRIC_TIMEOUT", 30*time.Second),
			MaxFailures:   e.int("BIOMETRIC_MAX_FAILURES", 5),
			LockoutWindow: e.duration("BIOMETRIC_LOCKOUT", 15*time.Minute),
		},
		Log: LogConfig{
			Level:  e.str("LOG_LEVEL", "info"),
			Format: e.str("LOG_FORMAT", "json"),
		},
		Ledger: LedgerConfig{
			TxTimeout: e.duration("LEDGER_TX_TIMEOUT", 5*time.Second),
		},
	}
	if e.err != nil {
		return Config{}, e.err
	}
	if !cfg.IsDevelopment() && cfg.Auth.JWTSigningKey == DevJWTSigningKey {
		return Config{}, errors.New("JWT_SIGNING_KEY must be set outside development")
	}
	if cfg.Biometric.MaxFailures < 1 {
		return Config{}, errors.New("BIOMETRIC_MAX_FAILURES must be at least 1")
	}
	return cfg, nil
}

// env reads typed values and keeps the first parse error.
type env struct {
	lookup func(string) (string, bool)
	err    error
}

func (e *env) str(key, def string) string {
	if v, ok := e.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (e *env) int(key string, def int) int {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("%s: %w", key, err)
	}
	if err != nil {
		return def
	}
	return v
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		if e.err == nil {
			e.err = fmt.Errorf("%s: %w", key, err)
		}
		return def
	}
	return v
}

func (e *env) list(key string) []string {
	raw := e.str(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
