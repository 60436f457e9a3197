package app

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/beaverchoice/fulfillment-backend/internal/platform/envutil"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
)

type Config struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
	RequestsCSV  string   `yaml:"requests_csv"`
	QuotesCSV    string   `yaml:"quotes_csv"`
	SeedOnStart  bool     `yaml:"seed_on_start"`
}

// LoadConfig merges an optional YAML file (CONFIG_FILE) with environment
// overrides. Environment wins.
func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Addr:         ":8080",
		AllowOrigins: []string{"http://localhost:3000"},
		RequestsCSV:  "quote_requests.csv",
		QuotesCSV:    "quotes.csv",
		SeedOnStart:  true,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warn("config file unreadable, using defaults", "path", path, "error", err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Warn("config file invalid, using defaults", "path", path, "error", err)
		}
	}

	cfg.Addr = envutil.Str("ADDR", cfg.Addr)
	cfg.RequestsCSV = envutil.Str("REQUESTS_CSV", cfg.RequestsCSV)
	cfg.QuotesCSV = envutil.Str("QUOTES_CSV", cfg.QuotesCSV)
	cfg.SeedOnStart = envutil.Bool("SEED_ON_START", cfg.SeedOnStart)
	if origins := os.Getenv("ALLOW_ORIGINS"); origins != "" {
		cfg.AllowOrigins = nil
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
			}
		}
	}
	return cfg
}
