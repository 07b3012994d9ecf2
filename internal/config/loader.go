package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envKeys maps the environment variables we read onto koanf keys. Others
// are ignored; the process environment is full of unrelated names.
var envKeys = map[string]string{
	"PORT":             "port",
	"MONGO_URI":        "mongo_uri",
	"MONGO_DATABASE":   "mongo_database",
	"LOG_LEVEL":        "log_level",
	"PUBLIC_DIR":       "public_dir",
	"VIEWS_DIR":        "views_dir",
	"SHUTDOWN_TIMEOUT": "shutdown_timeout",
}

// Load builds a Config by layering, low to high precedence:
//  1. defaults (New)
//  2. YAML file named by CONFIG_FILE, if set
//  3. .env in the working directory, if present
//  4. process environment
//
// .env only fills variables the environment doesn't already set, which is
// what puts it below the real environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, ".env")
}

// LoadFrom is Load with an explicit .env path. A missing file is skipped.
func LoadFrom(_ context.Context, dotenv string) (*Config, error) {
	k := koanf.New(".")

	// .env goes into the process environment first, so it can name
	// CONFIG_FILE too.
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrLoadConfig, dotenv, err)
		}
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrLoadConfig, path, err)
		}
	}

	envProvider := env.Provider("", ".", func(s string) string {
		return envKeys[s]
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: reading environment: %v", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
