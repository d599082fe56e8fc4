package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Solver defaults shared by the CLI and the HTTP API.
type SolverConfig struct {
	Strategy        string        `yaml:"strategy"`
	ImproveAttempts int           `yaml:"improve_attempts"`
	// Restarts is the number of shuffled rebuilds after the first build.
	// Negative means "until TimeLimit".
	Restarts        int           `yaml:"restarts"`
	Seed            int64         `yaml:"seed"`
	Strict          bool          `yaml:"strict"`
	TimeLimit       time.Duration `yaml:"time_limit"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	// Solve requests admitted per second, with bursts up to SolveBurst.
	SolveRatePerSec float64 `yaml:"solve_rate_per_sec"`
	SolveBurst      int     `yaml:"solve_burst"`
	// Instances larger than this are rejected before Floyd–Warshall runs.
	MaxVertices int `yaml:"max_vertices"`
}

type Config struct {
	DatabaseURL string       `yaml:"database_url"`
	LogLevel    string       `yaml:"log_level"`
	LogFile     string       `yaml:"log_file"`
	Solver      SolverConfig `yaml:"solver"`
	Server      ServerConfig `yaml:"server"`
}

// Default returns the configuration used when neither a file nor the environment says otherwise.
func Default() Config {
	return Config{
		LogLevel: "info",
		Solver: SolverConfig{
			Strategy:  "nearest-feasible",
			Seed:      1,
			TimeLimit: 30 * time.Second,
		},
		Server: ServerConfig{
			Port:            "8080",
			SolveRatePerSec: 5,
			SolveBurst:      10,
			MaxVertices:     1000,
		},
	}
}

// Load builds the configuration in three layers: defaults, then the YAML file named by
// CARP_CONFIG (if any), then environment variables. A .env file in the working directory
// is loaded into the environment first when present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load config: read .env: %w", err)
	}

	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CARP_CONFIG")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("load config: parse %q: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.DatabaseURL = Get("DATABASE_URL", cfg.DatabaseURL)
	cfg.LogLevel = Get("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = Get("LOG_FILE", cfg.LogFile)
	cfg.Solver.Strategy = Get("CARP_STRATEGY", cfg.Solver.Strategy)
	cfg.Server.Port = Get("PORT", cfg.Server.Port)

	var err error
	if cfg.Solver.ImproveAttempts, err = GetInt("CARP_IMPROVE_ATTEMPTS", cfg.Solver.ImproveAttempts); err != nil {
		return err
	}
	if cfg.Solver.Restarts, err = GetInt("CARP_RESTARTS", cfg.Solver.Restarts); err != nil {
		return err
	}
	if cfg.Server.SolveBurst, err = GetInt("SOLVE_BURST", cfg.Server.SolveBurst); err != nil {
		return err
	}
	if cfg.Server.MaxVertices, err = GetInt("MAX_VERTICES", cfg.Server.MaxVertices); err != nil {
		return err
	}

	if v := os.Getenv("CARP_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("load config: CARP_SEED=%q: %w", v, err)
		}
		cfg.Solver.Seed = seed
	}
	if v := os.Getenv("CARP_STRICT"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("load config: CARP_STRICT=%q: %w", v, err)
		}
		cfg.Solver.Strict = strict
	}
	if v := os.Getenv("SOLVE_RATE_PER_SEC"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("load config: SOLVE_RATE_PER_SEC=%q: %w", v, err)
		}
		cfg.Server.SolveRatePerSec = rate
	}

	return nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt is Get for integer values.
func GetInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("load config: %s=%q: %w", key, v, err)
	}
	return n, nil
}
