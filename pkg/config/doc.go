// Package config provides configuration management for the distill service.
//
// Configuration is optional: with no file every field takes its default and
// the service listens on 127.0.0.1:8080, calls gpt-4o-mini, and admits ten
// requests per client per minute.
//
// # Loading
//
//	cfg, err := config.LoadConfig("distill.yaml")                 // file + defaults
//	cfg, err := config.LoadConfigWithEnvOverrides("distill.yaml") // + .env + DISTILL_*
//
// # Precedence
//
// Later sources override earlier ones:
//
//  1. Defaults (defaults.go)
//  2. YAML file
//  3. DISTILL_SECTION_FIELD environment variables
//     (e.g. DISTILL_SERVER_LISTEN_ADDRESS, DISTILL_LIMITS_WINDOW)
//
// A .env file in the working directory is loaded first without overriding
// variables already present, so OPENAI_API_KEY can live there during
// development.
//
// # Model Lock
//
// completion.model may only be "gpt-4o-mini". Any other value fails
// validation at startup.
//
// # Singleton
//
//	cfg, err := config.ReloadConfig("distill.yaml")
//	if err != nil { ... }
//	cfg = config.GetConfig()
//
// ReloadConfig publishes a fresh value on every call. Adjusters passed to
// it run before validation, so a published *Config is never mutated.
package config
