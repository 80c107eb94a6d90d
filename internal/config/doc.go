// Package config loads and validates viewer configuration from YAML
// files with ${VAR} environment variable expansion.
package config
