package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xavierca1/leadpilot/internal/auditlock"
	"github.com/xavierca1/leadpilot/internal/config"
	"github.com/xavierca1/leadpilot/internal/infra/database"
	"github.com/xavierca1/leadpilot/internal/infra/http/handlers"
	"github.com/xavierca1/leadpilot/internal/infra/http/middleware"
	"github.com/xavierca1/leadpilot/internal/infra/integration/llm"
	"github.com/xavierca1/leadpilot/internal/infra/integration/places"
	"github.com/xavierca1/leadpilot/internal/infra/integration/website"
	"github.com/xavierca1/leadpilot/internal/infra/mail"
	"github.com/xavierca1/leadpilot/internal/infra/queue"
	"github.com/xavierca1/leadpilot/internal/infra/worker"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}

	cfg := config.New()
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("leadpilot stopped")
	}
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	// 1. Storage
	db, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	leadRepo := database.NewLeadRepository(db)
	auditRepo := database.NewAuditRepository(db)

	// 2. Gateways and adapters
	guard := auditlock.New(auditlock.WithTTL(cfg.AuditLockTTL))
	fetcher := setupFetcher(ctx, cfg)

	go worker.NewLockMonitor(guard, 15*time.Second, 20).Start(ctx)

	var scorer usecase.SiteScorer
	if cfg.AnthropicAPIKey != "" {
		scorer = llm.NewScorer(cfg.AnthropicAPIKey, cfg.LLMModel)
	} else {
		log.Warn().Msg("ANTHROPIC_API_KEY not set, audits use the heuristic scorer")
	}

	var searcher usecase.PlaceSearcher
	if cfg.PlacesAPIKey != "" {
		searcher = places.NewClient(cfg.PlacesAPIKey)
	}

	var mailer usecase.EmailService
	if cfg.MailEnabled() {
		mailer = mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPassword, cfg.MailFrom)
	}

	// 3. Use cases
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo)
	importLeadsUC := usecase.NewImportLeadsUseCase(leadRepo, cfg.ImportMaxRows)
	discoverLeadsUC := usecase.NewDiscoverLeadsUseCase(leadRepo, searcher)
	auditLeadUC := usecase.NewAuditLeadUseCase(leadRepo, auditRepo, fetcher, scorer, guard)
	outreachUC := usecase.NewGenerateOutreachUseCase(leadRepo, auditRepo, mailer, cfg.MailFrom)

	// 4. Queue and worker (optional)
	var (
		publisher   usecase.AuditPublisher
		brokerState handlers.ConnectionState
	)

	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()

		publisher = queue.NewProducer(rabbitMQ.Ch)
		brokerState = rabbitMQ.Conn

		auditWorker := queue.NewWorker(rabbitMQ.Ch, auditLeadUC)
		go func() {
			if err := auditWorker.Start(ctx, queue.QueueName); err != nil {
				log.Error().Err(err).Msg("audit worker stopped")
			}
		}()
	} else {
		log.Warn().Msg("RABBITMQ_URL not set, async audits are disabled")
	}

	requestAuditUC := usecase.NewRequestAuditUseCase(leadRepo, publisher, guard)

	// 5. HTTP
	limiter := middleware.NewRateLimiter(cfg.LeadRateLimit, cfg.LeadRateBurst, 30*time.Minute)
	go limiter.Cleanup(10*time.Minute, ctx.Done())

	router := handlers.NewRouter(handlers.RouterConfig{
		Health: handlers.NewHealthHandler(db, brokerState, version, map[string]bool{
			"anthropic": scorer != nil,
			"places":    searcher != nil,
			"smtp":      mailer != nil,
		}),
		Leads:          handlers.NewLeadHandler(createLeadUC, leadRepo),
		Import:         handlers.NewImportHandler(importLeadsUC, cfg.MaxUploadSize),
		Discovery:      handlers.NewDiscoveryHandler(discoverLeadsUC),
		Audits:         handlers.NewAuditHandler(auditLeadUC, requestAuditUC),
		Outreach:       handlers.NewOutreachHandler(outreachUC),
		Limiter:        limiter,
		AllowedOrigins: cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
		TrustProxy:     cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("version", version).Msg("leadpilot api listening")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func setupFetcher(ctx context.Context, cfg *config.Config) usecase.SiteFetcher {
	limiter := website.NewHostLimiter(cfg.FetchRatePerSec, 1)
	go limiter.Cleanup(5*time.Minute, ctx.Done())

	if cfg.ChromeEnabled {
		log.Info().Msg("auditing with headless chrome")
		return website.NewChromeFetcher(cfg.FetchTimeout, cfg.ChromePath, limiter)
	}

	return website.NewHTTPFetcher(cfg.FetchTimeout, website.WithLimiter(limiter))
}
