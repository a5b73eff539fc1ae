package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "workcal.toml"
	DefaultDBName         = "workcal.db"
)

type Config struct {
	Addr        string `toml:"addr"`
	DBPath      string `toml:"db_path"`
	Extractor   string `toml:"extractor"`    // "openai" or "gemini"
	PollSeconds int    `toml:"poll_seconds"` // realtime change-feed interval
	SupabaseURL string `toml:"supabase_url"` // env SUPABASE_URL wins
	SupabaseKey string `toml:"supabase_key"` // env SUPABASE_KEY wins
}

func defaultConfig() Config {
	return Config{
		Addr:        ":8080",
		DBPath:      DefaultDBName,
		Extractor:   "gemini",
		PollSeconds: 5,
	}
}

// LoadOrCreate reads the TOML config, writing a default file on first run.
// Environment variables override file values.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return applyEnv(cfg), err
		}
		return applyEnv(cfg), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return applyEnv(cfg), err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return applyEnv(cfg), err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.PollSeconds <= 0 {
		cfg.PollSeconds = 5
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		cfg.SupabaseURL = v
	}
	if v := os.Getenv("SUPABASE_KEY"); v != "" {
		cfg.SupabaseKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("WORKCAL_EXTRACTOR"); v != "" {
		cfg.Extractor = v
	}
	if v := os.Getenv("WORKCAL_POLL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PollSeconds = n
		}
	}
	return cfg
}

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollSeconds) * time.Second
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
