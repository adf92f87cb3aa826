package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/iho/goatm/internal/adapter/http"
	"github.com/iho/goatm/internal/adapter/http/handler"
	"github.com/iho/goatm/internal/adapter/repository/memory"
	"github.com/iho/goatm/internal/domain"
	"github.com/iho/goatm/internal/infrastructure/audit"
	"github.com/iho/goatm/internal/infrastructure/auth"
	"github.com/iho/goatm/internal/infrastructure/config"
	"github.com/iho/goatm/internal/infrastructure/logger"
	"github.com/iho/goatm/internal/infrastructure/metrics"
	"github.com/iho/goatm/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// Audit sink: rotating file behind a fire-and-forget publisher
	sink, err := audit.NewFileSink(cfg.AuditLogPath, cfg.AuditMaxBytes, cfg.AuditBackups)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open audit log")
	}
	defer sink.Close()

	publisher := audit.NewPublisher(audit.Config{
		Sink:      sink,
		Logger:    appLogger,
		QueueSize: cfg.AuditQueueSize,
	})

	auditCtx, stopAudit := context.WithCancel(context.Background())
	go publisher.Start(auditCtx)

	// In-memory repositories
	accountRepo := memory.NewAccountRepository()
	ledgerRepo := memory.NewLedgerRepository()
	limitRepo := memory.NewLimitRepository()
	idempotencyStore := memory.NewIdempotencyStore()
	idGen := memory.NewULIDGenerator()

	if err := seedAccounts(cfg, accountRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to seed accounts")
	}

	// Policy constants
	withdrawalUnit, err := decimal.NewFromString(cfg.WithdrawalUnit)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid WITHDRAWAL_UNIT")
	}
	dailyLimit, err := decimal.NewFromString(cfg.DailyWithdrawalLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid DAILY_WITHDRAWAL_LIMIT")
	}
	interestRate, err := decimal.NewFromString(cfg.InterestRate)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid INTEREST_RATE")
	}

	// Sessions, authenticator, engine
	tokenManager := auth.NewTokenManager(cfg.JWTSecret)
	sessions := usecase.NewSessionManager(tokenManager, usecase.SessionConfig{TTL: cfg.SessionTTL})

	authenticator := usecase.NewAuthenticator(usecase.AuthenticatorConfig{
		MaxAttempts:   cfg.MaxPINAttempts,
		LockoutWindow: cfg.LockoutWindow,
	}, accountRepo, sessions, publisher)

	engine := usecase.NewEngine(usecase.EngineConfig{
		WithdrawalUnit:       withdrawalUnit,
		DailyWithdrawalLimit: dailyLimit,
		DefaultInterestRate:  interestRate,
	}, accountRepo, ledgerRepo, limitRepo, sessions, idGen, publisher)

	// Keep the active-sessions gauge current
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-auditCtx.Done():
				return
			case <-ticker.C:
				metrics.SetActiveSessions(sessions.ActiveCount())
			}
		}
	}()

	// HTTP
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:      handler.NewAuthHandler(authenticator, appLogger),
		TellerHandler:    handler.NewTellerHandler(engine, appLogger),
		HealthHandler:    handler.NewHealthHandler(),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Logger:           appLogger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	// Flush remaining audit events
	stopAudit()
	publisher.Wait()

	log.Info().Msg("server stopped")
}

// seedAccounts provisions the configured accounts with hashed PINs.
func seedAccounts(cfg *config.Config, repo *memory.AccountRepository) error {
	seeds, err := cfg.SeedAccounts()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, seed := range seeds {
		balance, err := decimal.NewFromString(seed.Balance)
		if err != nil {
			return fmt.Errorf("seed account %s: invalid balance %q", seed.ID, seed.Balance)
		}

		pinHash, err := usecase.HashPIN(seed.PIN)
		if err != nil {
			return err
		}

		account := &domain.Account{
			ID:        seed.ID,
			PINHash:   pinHash,
			Balance:   balance,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := repo.Create(context.Background(), account); err != nil {
			return fmt.Errorf("seed account %s: %w", seed.ID, err)
		}

		log.Info().Str("account_id", domain.NormalizeAccountID(seed.ID)).Msg("seeded account")
	}

	return nil
}
