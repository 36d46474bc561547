// Package config loads runtime configuration for the RespireX client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   base URL of the RespireX backend API
//	-u string   base URL of the identity provider
//	-k string   identity provider public API key
//	-d string   path to the local session store
//
// # JSON schema
//
// The JSON loader uses timex.Duration for timeouts, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "backend_base_url": "https://api.respirex.example/api",
//	  "identity_base_url": "https://auth.respirex.example/auth/v1",
//	  "identity_api_key": "anon-key",
//	  "token_wait": "15s",
//	  "safety_timeout": "20s"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
