// Package config provides configuration management for the EntiTrack SDK.
//
// This package defines the Config structure that controls where the SDK sends
// requests, how verbose it is and how long ordinary calls may take.
//
// # Basic Configuration
//
// A development setup points straight at a locally running backend:
//
//	cfg := &config.Config{
//		Environment:  config.Development,
//		BaseEndpoint: "http://localhost:5000",
//	}
//
// A production setup names the address the application is served from; the
// backend is expected on the same origin:
//
//	cfg := &config.Config{
//		Environment:     config.Production,
//		HostBaseAddress: "https://entitrack.example.com/UI/",
//	}
//
// # Loading From File and Environment
//
// Load reads an optional YAML file and ENTITRACK_* environment variables:
//
//	environment: Development
//	base_entitrack_endpoint: http://localhost:5000
//	debug: true
//	timeouts:
//	  request: 30s
//
// Nested keys map to variables with underscores, e.g. ENTITRACK_TIMEOUTS_REQUEST.
// Environment variables take precedence over the file.
//
// # Timeouts
//
// Timeouts.Request bounds every call except training uploads, which may take
// arbitrarily long and never carry a deadline. Zero values are replaced with
// defaults via WithDefaults() (100s).
//
// # Configuration Validation
//
// Always call Validate() to apply defaults and check required fields:
//
//	if err := cfg.Validate(); err != nil {
//		log.Fatalf("Invalid config: %v", err)
//	}
//
// Validate() will:
//   - Default Environment to Production
//   - Return error if Environment is not Development or Production
//   - Return error if BaseEndpoint is empty in Development
//   - Return error if HostBaseAddress is empty in Production
//
// # Thread Safety
//
// Config instances should be created once and not modified after passing to
// sdk.New(). The Config is read-only during SDK operations.
package config
