// Package config loads and validates application settings from environment
// variables, with sane defaults for everything that is not a secret. Settings
// are grouped by concern (server, database, auth, LLM, cost controls,
// catalog) so each component receives only the section it needs.
package config
