package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jmoreno-dev/polypredict/config"
	"github.com/jmoreno-dev/polypredict/internal/adapters/embedding"
	"github.com/jmoreno-dev/polypredict/internal/adapters/httpapi"
	"github.com/jmoreno-dev/polypredict/internal/adapters/models"
	"github.com/jmoreno-dev/polypredict/internal/adapters/news"
	"github.com/jmoreno-dev/polypredict/internal/adapters/polymarket"
	"github.com/jmoreno-dev/polypredict/internal/adapters/sentiment"
	"github.com/jmoreno-dev/polypredict/internal/adapters/social"
	"github.com/jmoreno-dev/polypredict/internal/adapters/storage"
	"github.com/jmoreno-dev/polypredict/internal/application/aggregator"
	"github.com/jmoreno-dev/polypredict/internal/application/features"
	"github.com/jmoreno-dev/polypredict/internal/application/pipeline"
	appsignal "github.com/jmoreno-dev/polypredict/internal/application/signal"
	"github.com/jmoreno-dev/polypredict/internal/domain"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	setupLogger(cfg.Log)
	zlog := newZerolog(cfg.Log)

	slog.Info("predictord starting",
		"config", *configPath,
		"batch_concurrency", cfg.Pipeline.BatchConcurrency,
		"midpoint_concurrency", cfg.Pipeline.MidpointConcurrency,
		"paper_trading", cfg.Signal.PaperTradingMode,
	)

	client := polymarket.NewClient(cfg.API.PriceBase, cfg.API.MetadataBase)
	marketSource := polymarket.NewMarketSource(client)
	midpointProvider := polymarket.NewMidpointProvider(client)

	newsClient := news.NewClient(cfg.API.NewsAPIKey)
	socialClient := social.NewClient(cfg.API.SocialBase)

	agg := aggregator.New(newsClient, midpointProvider, socialClient, cfg.Pipeline.MidpointConcurrency)

	featurePipeline := features.New(sentiment.New(), embedding.New())

	loadedModels := models.LoadAll(cfg.Models.ArtifactPaths)
	ensemble, err := models.NewEnsemble(loadedModels, cfg.Signal.EnsembleWeights, cfg.Signal.ConfidenceFloor)
	if err != nil {
		slog.Error("failed to build ensemble", "err", err)
		os.Exit(1)
	}
	slog.Info("models loaded", "count", ensemble.ModelCount())

	predictor := pipeline.NewPredictor(featurePipeline, ensemble)

	store, err := storage.New(cfg.Storage.DSN, storage.Config{
		Thresholds:   strengthThresholds(cfg.Signal),
		StartingCash: cfg.Signal.StartingCash,
		PaperTrading: cfg.Signal.PaperTradingMode,
	})
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	runner := pipeline.NewRunner(marketSource, agg, predictor, store,
		cfg.Pipeline.BatchConcurrency, cfg.Pipeline.PerMarketTimeout())

	server := httpapi.New(cfg.HTTP.Addr, runner, store, zlog)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server exited with error", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "err", err)
	}

	slog.Info("predictord stopped cleanly")
}

// strengthThresholds converts the YAML-friendly string-keyed multiplier map
// into the domain.Strength-keyed map signal.Thresholds requires, keeping
// config free of any dependency on internal/domain.
func strengthThresholds(cfg config.SignalConfig) appsignal.Thresholds {
	multipliers := make(map[domain.Strength]float64, len(cfg.StrengthMultipliers))
	for k, v := range cfg.StrengthMultipliers {
		switch k {
		case "WEAK":
			multipliers[domain.StrengthWeak] = v
		case "MEDIUM":
			multipliers[domain.StrengthMedium] = v
		case "STRONG":
			multipliers[domain.StrengthStrong] = v
		}
	}
	return appsignal.Thresholds{
		MinEdge:             cfg.MinEdge,
		MinConfidence:       cfg.MinConfidence,
		MinLiquidity:        cfg.MinLiquidity,
		MaxPositionSize:     cfg.MaxPositionSize,
		BaseUnit:            cfg.BaseUnit,
		StrengthMultipliers: multipliers,
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// newZerolog builds the request-scoped access logger the httpapi package
// uses, independent of the application-level slog logger above.
func newZerolog(cfg config.LogConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Level == "debug" {
		level = zerolog.DebugLevel
	}
	if cfg.Format == "json" {
		return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).Level(level).With().Timestamp().Logger()
}
