// Package config loads ghostsync configuration.
//
// Values are resolved in this order, later sources winning:
//   - the YAML file, with ${VAR} references expanded (a missing file is fine)
//   - environment variables (ALPACA_API_KEY, GHOST_TOKEN, SYNC_DAYS, ...),
//     optionally seeded from a .env file
//   - defaults for anything still unset
//
// Validate reports the first missing credential or out-of-range value.
package config
