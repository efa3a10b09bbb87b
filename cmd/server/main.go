package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"preflight/internal/errorlog"
	"preflight/internal/platform/config"
	"preflight/internal/platform/httpserver"
	"preflight/internal/platform/logger"
	platformredis "preflight/internal/platform/redis"
	"preflight/internal/records"
	"preflight/internal/remediation"
	remediationmetrics "preflight/internal/remediation/metrics"
	"preflight/internal/rules"
	httptransport "preflight/internal/transport/http"
	"preflight/internal/validation"
	validationmetrics "preflight/internal/validation/metrics"
	"preflight/pkg/platform/audit"
)

// main wires the engine together: stores, the rule library, the validation
// runner, the remediation service, and the HTTP transport. Business logic
// lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	var (
		recordStore records.Store
		errorStore  errorlog.Store
		ruleStore   rules.Store
		db          *sql.DB
	)

	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Error("database unreachable", "error", err)
			os.Exit(1)
		}
		recordStore = records.NewPostgres(db)
		errorStore = errorlog.NewPostgres(db)
		ruleStore = rules.NewPostgresStore(db)
	} else {
		log.Info("no database configured, using in-memory stores")
		recordStore = records.NewInMemory()
		errorStore = errorlog.NewInMemory()
		ruleStore = rules.NewStaticStore(rules.BuiltinDefinitions())
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	libraryOpts := []rules.LibraryOption{
		rules.WithLogger(log),
		rules.WithTTL(cfg.RuleCacheTTL),
	}
	if redisClient != nil {
		libraryOpts = append(libraryOpts, rules.WithRedis(redisClient.Client))
	}
	library := rules.NewLibrary(ruleStore, libraryOpts...)

	// Fail fast when a rule promises a fix routine the catalog doesn't
	// carry; a dangling reference would otherwise surface mid-remediation.
	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defs, err := ruleStore.ListAll(bootCtx)
	bootCancel()
	if err != nil {
		log.Error("load rule definitions", "error", err)
		os.Exit(1)
	}
	catalog := remediation.NewCatalog()
	if err := catalog.Verify(defs); err != nil {
		log.Error("fix catalog incomplete", "error", err)
		os.Exit(1)
	}
	log.Info("rule library ready", "definitions", len(defs), "fix_routines", len(catalog.Names()))

	var auditSink audit.Store
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			log.Error("kafka audit sink", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		auditSink = kafkaSink
	} else {
		auditSink = audit.NewInMemory()
	}

	runner := validation.NewRunner(recordStore, errorStore, library,
		validation.WithLogger(log),
		validation.WithMetrics(validationmetrics.New()),
	)

	remediationOpts := []remediation.Option{
		remediation.WithLogger(log),
		remediation.WithMetrics(remediationmetrics.New()),
		remediation.WithAuditPublisher(audit.NewPublisher(auditSink)),
	}
	if db != nil {
		remediationOpts = append(remediationOpts, remediation.WithTxRunner(newRemediationPostgresTx(db)))
	}
	fixer := remediation.NewService(errorStore, recordStore, library, catalog, remediationOpts...)

	handler := httptransport.NewHandler(runner, errorStore, fixer, log, cfg.ReportingPeriod)
	router := httptransport.NewRouter(handler, cfg.OperatorJWTSecret, log)
	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting preflight", "addr", cfg.Addr, "provider", cfg.ProviderCode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("preflight stopped")
}
