// Package config holds rlol's configuration as one explicit value.
//
// A Config starts from Default, which carries the league's published sheet
// URLs, is overlaid with an optional YAML or TOML file and finally with
// RLOL_* environment variables (optionally read from a .env file). The
// result is validated before anything fetches. No other package reads the
// environment.
package config
