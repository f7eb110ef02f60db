package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete configuration for predictord.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Signal   SignalConfig   `yaml:"signal"`
	API      APIConfig      `yaml:"api"`
	Models   ModelsConfig   `yaml:"models"`
	Storage  StorageConfig  `yaml:"storage"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
}

// PipelineConfig controls the prediction cycle's concurrency/timeout knobs.
type PipelineConfig struct {
	BatchConcurrency        int `yaml:"batch_concurrency"`
	MidpointConcurrency     int `yaml:"midpoint_concurrency"`
	PerMarketTimeoutSeconds int `yaml:"per_market_timeout_seconds"`
}

// SignalConfig holds the gating thresholds and sizing parameters.
type SignalConfig struct {
	MinEdge              float64            `yaml:"min_edge"`
	MinConfidence        float64            `yaml:"min_confidence"`
	MinLiquidity         float64            `yaml:"min_liquidity"`
	MaxPositionSize      float64            `yaml:"max_position_size"`
	BaseUnit             float64            `yaml:"base_unit"`
	StrengthMultipliers  map[string]float64 `yaml:"strength_multipliers"`
	PaperTradingMode     bool               `yaml:"paper_trading_mode"`
	StartingCash         float64            `yaml:"starting_cash"`
	ConfidenceFloor      float64            `yaml:"confidence_floor"`
	EnsembleWeights      map[string]float64 `yaml:"ensemble_weights"`
}

// APIConfig holds upstream base URLs and API keys.
type APIConfig struct {
	PriceBase    string `yaml:"price_base"`
	MetadataBase string `yaml:"metadata_base"`
	NewsAPIKey   string `yaml:"news_api_key"`
	SocialBase   string `yaml:"social_base"` // empty disables the social provider
}

// ModelsConfig lists the gradient-boosting model artifact paths loaded at
// startup. At least one must load successfully.
type ModelsConfig struct {
	ArtifactPaths []string `yaml:"artifact_paths"`
}

// StorageConfig controls the PostgreSQL connection.
type StorageConfig struct {
	DSN string `yaml:"dsn"`
}

// HTTPConfig controls the HTTP surface.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig controls logging format/level.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the YAML config at path, then applies environment overrides
// and defaults. A .env file in the working directory, if present, is
// loaded first so its values are visible to the overrides step.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)
	return &cfg, nil
}

func (c *PipelineConfig) PerMarketTimeout() time.Duration {
	return time.Duration(c.PerMarketTimeoutSeconds) * time.Second
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		cfg.API.NewsAPIKey = v
	}
	if v := os.Getenv("MIN_EDGE"); v != "" {
		setFloat(&cfg.Signal.MinEdge, v)
	}
	if v := os.Getenv("MIN_CONFIDENCE"); v != "" {
		setFloat(&cfg.Signal.MinConfidence, v)
	}
	if v := os.Getenv("MIN_LIQUIDITY"); v != "" {
		setFloat(&cfg.Signal.MinLiquidity, v)
	}
	if v := os.Getenv("MAX_POSITION_SIZE"); v != "" {
		setFloat(&cfg.Signal.MaxPositionSize, v)
	}
	if v := os.Getenv("PAPER_TRADING_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Signal.PaperTradingMode = b
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func setFloat(field *float64, raw string) {
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		*field = f
	}
}

func setDefaults(cfg *Config) {
	if cfg.Pipeline.BatchConcurrency <= 0 {
		cfg.Pipeline.BatchConcurrency = 3
	}
	if cfg.Pipeline.MidpointConcurrency <= 0 {
		cfg.Pipeline.MidpointConcurrency = 20
	}
	if cfg.Pipeline.PerMarketTimeoutSeconds <= 0 {
		cfg.Pipeline.PerMarketTimeoutSeconds = 30
	}

	if cfg.Signal.MinEdge <= 0 {
		cfg.Signal.MinEdge = 0.05
	}
	if cfg.Signal.MinConfidence <= 0 {
		cfg.Signal.MinConfidence = 0.55
	}
	if cfg.Signal.MinLiquidity <= 0 {
		cfg.Signal.MinLiquidity = 500.0
	}
	if cfg.Signal.MaxPositionSize <= 0 {
		cfg.Signal.MaxPositionSize = 500.0
	}
	if cfg.Signal.BaseUnit <= 0 {
		cfg.Signal.BaseUnit = 50.0
	}
	if cfg.Signal.ConfidenceFloor <= 0 {
		cfg.Signal.ConfidenceFloor = 0.5
	}
	if cfg.Signal.StartingCash <= 0 {
		cfg.Signal.StartingCash = 10000.0
	}
	if len(cfg.Signal.StrengthMultipliers) == 0 {
		cfg.Signal.StrengthMultipliers = map[string]float64{
			"WEAK": 1.0, "MEDIUM": 2.0, "STRONG": 3.0,
		}
	}

	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "postgres://localhost:5432/polypredict?sslmode=disable"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
