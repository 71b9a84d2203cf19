package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vote-tally/config"
	"vote-tally/services"
	"vote-tally/storage"
	"vote-tally/utils"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "vote-tally: %v\n", err)
		os.Exit(2)
	}
	logger := utils.NewLogger(utils.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Run failed: %v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	logger.Info("=== Vote tally starting ===")
	logger.Info("Config: data: %s | output: %s | format: %s | database: %q",
		cfg.DataDir, cfg.OutputDir, cfg.InputFormat, cfg.DatabaseType)

	csvWriter := storage.NewCSVSummaryWriter(cfg.OutputDir)

	p := &services.Pipeline{
		Loader:     services.NewLoader(storage.FileReader{}, logger),
		Aggregator: services.NewAggregator(logger),
		Report:     services.NewReportService(logger),
		Logger:     logger,
		Primary:    csvWriter,
	}
	if cfg.DatabaseType != "" {
		p.OpenMirror = func(ctx context.Context) (storage.SummaryWriter, error) {
			return openMirror(ctx, cfg, logger)
		}
	}
	if cfg.PrintReport {
		p.ReportOut = os.Stdout
	}

	if _, err := p.Run(ctx, services.Paths{
		Legislators: cfg.InputPath(services.LegislatorsInput),
		Bills:       cfg.InputPath(services.BillsInput),
		Votes:       cfg.InputPath(services.VotesInput),
		VoteResults: cfg.InputPath(services.VoteResultsInput),
	}); err != nil {
		return err
	}

	logger.Info("Done. Legislators → %s | Bills → %s", csvWriter.LegislatorsPath(), csvWriter.BillsPath())
	return nil
}

// openMirror connects the optional database sink named by DATABASE_TYPE.
func openMirror(ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.SummaryWriter, error) {
	switch cfg.DatabaseType {
	case "postgres":
		retry := &utils.RetryConfig{
			MaxAttempts: cfg.DBMaxRetries,
			BaseDelay:   time.Duration(cfg.DBRetryDelayMs) * time.Millisecond,
			Logger:      logger,
		}
		w, err := storage.NewPostgresWriter(ctx, cfg.DSN(), retry, logger)
		if err != nil {
			logger.Error("Make sure PostgreSQL is reachable at %s:%s", cfg.PostgresHost, cfg.PostgresPort)
			return nil, err
		}
		return w, nil
	case "sqlite":
		w, err := storage.NewSQLiteWriter(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
	return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
}
