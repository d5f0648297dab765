// Package config loads glimpse's startup configuration.
//
// # Configuration Discovery
//
// Load resolves settings in this order, later steps winning:
//
//  1. Hardcoded defaults
//  2. ~/.config/glimpse/config.toml (or the explicit path passed to Load)
//  3. GLIMPSE_BASE_URL from a dotenv file (./.env by default)
//  4. GLIMPSE_BASE_URL from the process environment
//
// A missing config or dotenv file is not an error. The -url flag in
// cmd/glimpse is applied by the caller after Load.
//
// # Default Values
//
//   - Config file: ~/.config/glimpse/config.toml
//   - Endpoint:    https://ai-image-classifier-backend-93uw.onrender.com
//   - Log file:    ~/.local/state/glimpse/glimpse.log
//
// # TOML Format
//
//	base_url  = "http://127.0.0.1:8000"
//	log_file  = "~/.local/state/glimpse/glimpse.log"
//	start_dir = "~/Pictures"
//
// All fields are optional. Tilde expansion is performed for paths.
//
// The returned Config is a plain value; nothing in this package keeps
// global state.
package config
