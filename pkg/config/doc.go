// Package config provides configuration management for ponyini.
//
// Configuration is read from an optional YAML file, completed with defaults
// and overridden by environment variables:
//
//	cfg, err := config.LoadConfig("ponyini.yaml")
//	cfg, err := config.LoadConfigWithEnvOverrides("ponyini.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention PONYINI_SECTION_FIELD:
//
//   - PONYINI_PACK_ROOT overrides pack.root
//   - PONYINI_CATALOG_SQLITE_DRIVER overrides catalog.sqlite.driver
//   - PONYINI_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// A .env file in the working directory is read before overrides are applied.
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
//	cfg, err := config.LoadConfigWithEnvOverrides("ponyini.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	config.SetConfig(cfg)
//	cfg = config.MustGetConfig()
package config
