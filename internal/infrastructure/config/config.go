package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Sessions
	JWTSecret  string        `env:"JWT_SECRET"  envDefault:"goatm-dev-secret"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"15m"`

	// Lockout policy
	MaxPINAttempts int           `env:"MAX_PIN_ATTEMPTS" envDefault:"3"`
	LockoutWindow  time.Duration `env:"LOCKOUT_WINDOW"   envDefault:"5m"`

	// Teller policy. Amounts are decimal strings in currency minor units.
	WithdrawalUnit       string `env:"WITHDRAWAL_UNIT"        envDefault:"50000"`
	DailyWithdrawalLimit string `env:"DAILY_WITHDRAWAL_LIMIT" envDefault:"5000000"`
	InterestRate         string `env:"INTEREST_RATE"          envDefault:"0.01"`

	// Audit sink
	AuditLogPath   string `env:"AUDIT_LOG_PATH"    envDefault:"atm_audit.log"`
	AuditMaxBytes  int64  `env:"AUDIT_MAX_BYTES"   envDefault:"5242880"`
	AuditBackups   int    `env:"AUDIT_BACKUPS"     envDefault:"3"`
	AuditQueueSize int    `env:"AUDIT_QUEUE_SIZE"  envDefault:"1024"`

	// Idempotency
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Seed accounts, JSON array of {id, pin, balance}.
	SeedAccountsJSON string `env:"SEED_ACCOUNTS" envDefault:""`
}

// SeedAccount provisions one account at startup.
type SeedAccount struct {
	ID      string `json:"id"`
	PIN     string `json:"pin"`
	Balance string `json:"balance"`
}

// defaultSeedAccounts matches the branch's stock demo data.
var defaultSeedAccounts = []SeedAccount{
	{ID: "ATA", PIN: "8830", Balance: "100000"},
	{ID: "AISYAH", PIN: "8790", Balance: "50000"},
	{ID: "EZRA DEBY", PIN: "9086", Balance: "200000"},
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// SeedAccounts parses SEED_ACCOUNTS, falling back to the defaults when unset.
func (c *Config) SeedAccounts() ([]SeedAccount, error) {
	if c.SeedAccountsJSON == "" {
		return defaultSeedAccounts, nil
	}

	var seeds []SeedAccount
	if err := json.Unmarshal([]byte(c.SeedAccountsJSON), &seeds); err != nil {
		return nil, fmt.Errorf("parse SEED_ACCOUNTS: %w", err)
	}

	return seeds, nil
}
