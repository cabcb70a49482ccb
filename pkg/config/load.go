package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DotEnvFile is the dotenv file loaded by LoadConfigWithEnvOverrides.
const DotEnvFile = ".env"

// LoadConfig loads configuration from a YAML file at path. An empty path or
// a missing file yields the defaults, since the service runs with no file
// at all. Defaults are applied and the result is validated.
func LoadConfig(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Defaults only.
		case err != nil:
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
			}
		}
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration and applies environment
// overrides. The loading sequence is:
//  1. Load .env from the working directory (missing file ignored; variables
//     already set in the process win)
//  2. Load YAML from path and apply defaults
//  3. Apply DISTILL_SECTION_FIELD overrides
//  4. Validate the final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	if err := LoadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads variables from the given dotenv files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// applyEnvOverrides applies DISTILL_SECTION_FIELD environment variables.
// Unparseable values are ignored.
func applyEnvOverrides(cfg *Config) {
	// Server overrides
	envString("DISTILL_SERVER_LISTEN_ADDRESS", &cfg.Server.ListenAddress)
	envDuration("DISTILL_SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	envDuration("DISTILL_SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	envDuration("DISTILL_SERVER_IDLE_TIMEOUT", &cfg.Server.IdleTimeout)
	envDuration("DISTILL_SERVER_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)
	envInt("DISTILL_SERVER_MAX_HEADER_BYTES", &cfg.Server.MaxHeaderBytes)
	if val := os.Getenv("DISTILL_SERVER_MAX_BODY_BYTES"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Server.MaxBodyBytes = i
		}
	}
	envBool("DISTILL_SERVER_CORS_ENABLED", &cfg.Server.CORS.Enabled)

	// Completion overrides
	envString("DISTILL_COMPLETION_BASE_URL", &cfg.Completion.BaseURL)
	envString("DISTILL_COMPLETION_MODEL", &cfg.Completion.Model)
	if val := os.Getenv("DISTILL_COMPLETION_TEMPERATURE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Completion.Temperature = f
		}
	}
	envInt("DISTILL_COMPLETION_MAX_TOKENS", &cfg.Completion.MaxTokens)
	envDuration("DISTILL_COMPLETION_TIMEOUT", &cfg.Completion.Timeout)
	envString("DISTILL_COMPLETION_API_KEY_SECRET", &cfg.Completion.APIKeySecret)

	// Limits overrides
	envInt("DISTILL_LIMITS_REQUESTS_PER_WINDOW", &cfg.Limits.RequestsPerWindow)
	envDuration("DISTILL_LIMITS_WINDOW", &cfg.Limits.Window)
	envString("DISTILL_LIMITS_SWEEP_SCHEDULE", &cfg.Limits.SweepSchedule)

	// Distill overrides
	envInt("DISTILL_DISTILL_MAX_TEXT_LENGTH", &cfg.Distill.MaxTextLength)

	// Secrets overrides
	envString("DISTILL_SECRETS_ENV_PREFIX", &cfg.Secrets.EnvPrefix)
	envString("DISTILL_SECRETS_FILE_DIR", &cfg.Secrets.FileDir)
	envBool("DISTILL_SECRETS_WATCH", &cfg.Secrets.Watch)
	envDuration("DISTILL_SECRETS_CACHE_TTL", &cfg.Secrets.CacheTTL)

	// Running list overrides
	envString("DISTILL_RUNNINGLIST_BACKEND", &cfg.RunningList.Backend)
	envString("DISTILL_RUNNINGLIST_SQLITE_PATH", &cfg.RunningList.SQLitePath)
	envString("DISTILL_RUNNINGLIST_STORAGE_KEY", &cfg.RunningList.StorageKey)

	// Telemetry overrides
	envString("DISTILL_TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	envString("DISTILL_TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	envBool("DISTILL_TELEMETRY_LOGGING_ADD_SOURCE", &cfg.Telemetry.Logging.AddSource)
	envBool("DISTILL_TELEMETRY_LOGGING_REDACT_SECRETS", &cfg.Telemetry.Logging.RedactSecrets)
	envBool("DISTILL_TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	envString("DISTILL_TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	envString("DISTILL_TELEMETRY_METRICS_NAMESPACE", &cfg.Telemetry.Metrics.Namespace)
}

func envString(key string, dst *string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func envInt(key string, dst *int) {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func envBool(key string, dst *bool) {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}
