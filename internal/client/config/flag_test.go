package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name string
		args []string
		want func(t *testing.T, cfg *Config)
	}{
		{
			name: "no flags keeps defaults",
			args: []string{"testbin"},
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://localhost:8000/api", cfg.BackendBaseURL)
				assert.Equal(t, "respirex.db", cfg.SessionStorePath)
			},
		},
		{
			name: "backend and identity URLs",
			args: []string{"testbin", "-b", "https://api.respirex.example", "-u", "https://auth.respirex.example/auth/v1"},
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://api.respirex.example", cfg.BackendBaseURL)
				assert.Equal(t, "https://auth.respirex.example/auth/v1", cfg.IdentityBaseURL)
			},
		},
		{
			name: "api key and store path",
			args: []string{"testbin", "-k", "anon-key-123", "-d", "/tmp/sessions.db"},
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "anon-key-123", cfg.IdentityAPIKey)
				assert.Equal(t, "/tmp/sessions.db", cfg.SessionStorePath)
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"testbin", "-x", "whatever", "-b", "https://api.respirex.example"},
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://api.respirex.example", cfg.BackendBaseURL)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			var cfg Config
			cfg.LoadDefaults()
			parseFlags(&cfg)

			tt.want(t, &cfg)
		})
	}
}
