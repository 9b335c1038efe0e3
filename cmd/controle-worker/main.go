package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/amqp"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/cli"
	applog "github.com/FelipeFreitasGit/Controle-Financeiro/internal/log"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/sheets"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.GoogleSpreadsheetID == "" {
		logger.Info("Sheets mirror disabled - no GOOGLE_SPREADSHEET_ID provided, nothing to do")
		return
	}
	if cfg.AMQPURL == "" {
		logger.Error("Worker requires AMQP_URL to consume ledger events")
		os.Exit(1)
	}

	persister := cli.InitPersister(logger, cfg)
	defer persister.Close()

	mirror, err := sheets.NewMirror(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, cfg.GoogleCredentialsFile)
	if err != nil {
		logger.Error("Failed to initialize sheets mirror", "error", err)
		os.Exit(1)
	}
	logger.Info("Sheets mirror initialized",
		"spreadsheet_id", cfg.GoogleSpreadsheetID,
		"sheet", cfg.GoogleSheetName)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirrorWorker := worker.NewMirrorWorker(persister, mirror, cfg.MirrorInterval)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeLedgerEvents(gctx, mirrorWorker.HandleLedgerEvent)
	})
	g.Go(func() error {
		return mirrorWorker.Run(gctx)
	})

	logger.Info("Starting controle-worker",
		"queue", cfg.AMQPQueue,
		"mirror_interval", cfg.MirrorInterval.String())
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker failed", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
