package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecomdw/warehouse/internal/application/etl"
	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/ecomdw/warehouse/internal/infrastructure/config"
	"github.com/ecomdw/warehouse/internal/infrastructure/logger"
	"github.com/ecomdw/warehouse/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	// Parse flags
	var (
		seedPath      string
		overridesPath string
		startDate     string
		endDate       string
		logLevel      string
	)

	flag.StringVar(&seedPath, "seed", "", "Path to the master catalog seed CSV (overrides config)")
	flag.StringVar(&overridesPath, "overrides", "", "Path to the bridge overrides CSV (overrides config)")
	flag.StringVar(&startDate, "start", "", "Inventory window start date, YYYY-MM-DD (default: earliest order)")
	flag.StringVar(&endDate, "end", "", "Inventory window end date, YYYY-MM-DD (default: today)")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if seedPath == "" {
		seedPath = cfg.ETL.SeedPath
	}
	if overridesPath == "" {
		overridesPath = cfg.ETL.OverridesPath
	}
	if logLevel == "" {
		logLevel = cfg.Log.Level
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	window, err := parseWindow(startDate, endDate)
	if err != nil {
		log.Fatal("Invalid window flags", zap.Error(err))
	}

	opts := etl.RunOptions{Window: window, Prefixes: channelPrefixes(cfg)}
	if seedPath != "" {
		opts.Seed, err = etl.LoadSeedCSV(seedPath)
		if err != nil {
			log.Fatal("Failed to load seed file", zap.Error(err))
		}
	}
	if overridesPath != "" {
		opts.Overrides, err = etl.LoadOverridesCSV(overridesPath)
		if err != nil {
			log.Fatal("Failed to load overrides file", zap.Error(err))
		}
	}

	// Connect to the database
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel)))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Pipeline starting",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)
	started := time.Now()

	if err := etl.NewPipeline(db, log).Run(ctx, opts); err != nil {
		log.Fatal("Pipeline run failed", zap.Error(err))
	}

	log.Info("Pipeline finished", zap.Duration("elapsed", time.Since(started)))
}

func parseWindow(start, end string) (etl.Window, error) {
	var w etl.Window
	var err error
	if start != "" {
		w.Start, err = shared.ParseDateKey(start)
		if err != nil {
			return w, fmt.Errorf("invalid -start: %w", err)
		}
	}
	if end != "" {
		w.End, err = shared.ParseDateKey(end)
		if err != nil {
			return w, fmt.Errorf("invalid -end: %w", err)
		}
	}
	return w, nil
}

func channelPrefixes(cfg *config.Config) map[shared.Channel]string {
	if len(cfg.ETL.ChannelPrefixes) == 0 {
		return nil
	}
	prefixes := make(map[shared.Channel]string, len(cfg.ETL.ChannelPrefixes))
	for name, prefix := range cfg.ETL.ChannelPrefixes {
		prefixes[shared.Channel(name)] = prefix
	}
	return prefixes
}
