// Package config handles configuration loading, parsing, and validation
// from environment variables (MINSPIRIT_ prefix) and optional YAML files.
// The server and the command line tool each have their own configuration type.
package config
