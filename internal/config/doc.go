// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config file. It provides
// type-safe access to the settings the task handler needs at startup while
// keeping configuration details separate from request handling.
package config
