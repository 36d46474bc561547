package config

import (
	"flag"
	"os"

	"github.com/respirex/respirex-client/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   base URL of the RespireX backend API
//	-u string   base URL of the identity provider
//	-k string   identity provider public API key
//	-d string   path to the local session store
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-u", "-k", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendBaseURL, "b", cfg.BackendBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.IdentityBaseURL, "u", cfg.IdentityBaseURL, "base URL of the identity provider")
	fs.StringVar(&cfg.IdentityAPIKey, "k", cfg.IdentityAPIKey, "identity provider public API key")
	fs.StringVar(&cfg.SessionStorePath, "d", cfg.SessionStorePath, "path to the local session store")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
