package config

import (
	"encoding/json"
	"os"

	"github.com/respirex/respirex-client/internal/flagx"
	"github.com/respirex/respirex-client/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify timeouts either as strings like "15s"
// or as integer nanoseconds. After parsing, set values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	BackendBaseURL   string         `json:"backend_base_url"`
	IdentityBaseURL  string         `json:"identity_base_url"`
	IdentityAPIKey   string         `json:"identity_api_key"`
	OAuthRedirectURL string         `json:"oauth_redirect_url"`
	SessionStorePath string         `json:"session_store_path"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	TokenWait        timex.Duration `json:"token_wait"`
	SafetyTimeout    timex.Duration `json:"safety_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. When no file is given the function is a no-op.
// Read or unmarshal errors panic; the caller owns recovery.
//
// Only fields present in the file override the current Config values, so the
// intended usage remains: defaults -> parseJson -> parseFlags.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BackendBaseURL != "" {
		cfg.BackendBaseURL = jc.BackendBaseURL
	}
	if jc.IdentityBaseURL != "" {
		cfg.IdentityBaseURL = jc.IdentityBaseURL
	}
	if jc.IdentityAPIKey != "" {
		cfg.IdentityAPIKey = jc.IdentityAPIKey
	}
	if jc.OAuthRedirectURL != "" {
		cfg.OAuthRedirectURL = jc.OAuthRedirectURL
	}
	if jc.SessionStorePath != "" {
		cfg.SessionStorePath = jc.SessionStorePath
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.TokenWait.Duration > 0 {
		cfg.TokenWait = jc.TokenWait.Duration
	}
	if jc.SafetyTimeout.Duration > 0 {
		cfg.SafetyTimeout = jc.SafetyTimeout.Duration
	}
}
