// Package auth resolves the API token from multiple sources in priority
// order: command-line flag, environment, config file.
package auth

import (
	"fmt"
	"os"
)

// Source indicates where a token was found
type Source string

const (
	SourceFlag   Source = "flag"
	SourceEnv    Source = "env"
	SourceConfig Source = "config"
)

// Result contains the resolved token and its source
type Result struct {
	Token  string
	Source Source
	Name   string // The specific source name (e.g., "GITHUB_TOKEN")
}

// Provider attempts to supply a token. It returns an empty token when the
// source has nothing, and an error only for unexpected failures.
type Provider func() (token string, source Source, name string, err error)

// Resolver resolves tokens from multiple sources in priority order
type Resolver struct {
	providers   []Provider
	helpMessage string
}

// NewResolver creates a token resolver.
func NewResolver() *Resolver {
	return &Resolver{providers: make([]Provider, 0)}
}

// WithFlag adds a flag-provided token as a source (highest priority).
// The flag value is evaluated at resolution time.
func (r *Resolver) WithFlag(flagValue *string) *Resolver {
	r.providers = append(r.providers, func() (string, Source, string, error) {
		if flagValue != nil && *flagValue != "" {
			return *flagValue, SourceFlag, "flag", nil
		}

		return "", "", "", nil
	})

	return r
}

// WithEnvs adds environment variables as token sources, checked in order.
func (r *Resolver) WithEnvs(envVars ...string) *Resolver {
	for _, envVar := range envVars {
		name := envVar

		r.providers = append(r.providers, func() (string, Source, string, error) {
			if token := os.Getenv(name); token != "" {
				return token, SourceEnv, name, nil
			}

			return "", "", "", nil
		})
	}

	return r
}

// WithConfigValue adds an already-loaded config file value as a source
// (lowest priority, registered last).
func (r *Resolver) WithConfigValue(value string) *Resolver {
	r.providers = append(r.providers, func() (string, Source, string, error) {
		if value != "" {
			return value, SourceConfig, "config", nil
		}

		return "", "", "", nil
	})

	return r
}

// WithHelpMessage sets the help message shown when no token is found
func (r *Resolver) WithHelpMessage(msg string) *Resolver {
	r.helpMessage = msg

	return r
}

// Resolve returns the first token found across the configured sources, or an
// error naming what was tried.
func (r *Resolver) Resolve() (*Result, error) {
	for _, provider := range r.providers {
		token, source, name, err := provider()
		if err != nil {
			return nil, fmt.Errorf("token provider error: %w", err)
		}

		if token != "" {
			return &Result{Token: token, Source: source, Name: name}, nil
		}
	}

	if r.helpMessage != "" {
		return nil, fmt.Errorf("GitHub token required\n\n%s", r.helpMessage)
	}

	return nil, fmt.Errorf("GitHub token required")
}
