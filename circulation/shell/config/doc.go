// Package config loads the runtime configuration of the circulation tools from the
// environment (optionally seeded from a .env file) and opens the configured journal.
package config
