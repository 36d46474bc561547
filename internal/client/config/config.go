package config

import "time"

// Config holds runtime settings for the RespireX client.
//
// Fields:
//   - BackendBaseURL: base URL of the RespireX REST API.
//   - IdentityBaseURL: base URL of the identity provider's auth API.
//   - IdentityAPIKey: public (anon) API key sent to the identity provider.
//   - OAuthRedirectURL: redirect target for the OAuth sign-in flow.
//   - SessionStorePath: SQLite file persisting the session between runs.
//   - RequestTimeout: per-request HTTP timeout against the backend. The
//     backend runs the prediction model synchronously, so this is generous.
//   - TokenWait: how long an outbound request waits for a bearer token
//     before going out unauthenticated.
//   - SafetyTimeout: deadline after which the UI stops showing the startup
//     loading state even if the identity provider never answered.
type Config struct {
	BackendBaseURL   string
	IdentityBaseURL  string
	IdentityAPIKey   string
	OAuthRedirectURL string
	SessionStorePath string
	RequestTimeout   time.Duration
	TokenWait        time.Duration
	SafetyTimeout    time.Duration
}

// LoadDefaults populates c with sensible defaults for a local deployment.
func (c *Config) LoadDefaults() {
	c.BackendBaseURL = "http://localhost:8000/api"
	c.IdentityBaseURL = "http://localhost:9999/auth/v1"
	c.IdentityAPIKey = ""
	c.OAuthRedirectURL = "http://localhost:3000/callback"
	c.SessionStorePath = "respirex.db"
	c.RequestTimeout = 120 * time.Second
	c.TokenWait = 15 * time.Second
	c.SafetyTimeout = 20 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
