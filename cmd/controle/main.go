package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/amqp"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/cache"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/cli"
	apphttp "github.com/FelipeFreitasGit/Controle-Financeiro/internal/http"
	applog "github.com/FelipeFreitasGit/Controle-Financeiro/internal/log"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/rules"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	persister := cli.InitPersister(logger, cfg)

	ruleSet, err := rules.Load(cfg.RulesPath)
	if err != nil {
		logger.Error("Failed to load classification rules", "error", err, "path", cfg.RulesPath)
		os.Exit(1)
	}

	// AMQP is optional: without a URL the ledger simply skips event publishing.
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		publisher = client
		logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	service, err := services.NewLedgerService(context.Background(), persister, ruleSet, publisher)
	if err != nil {
		logger.Error("Failed to initialize ledger service", "error", err)
		os.Exit(1)
	}
	defer service.Close()

	cacheManager := cache.NewManager()
	cacheManager.Register(service.Projector())
	cacheManager.StartCleanup(10 * time.Minute)
	defer cacheManager.Stop()

	srv := apphttp.NewServer(":"+cfg.Port, service, logger)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting controle server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"rules", cfg.RulesPath)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
