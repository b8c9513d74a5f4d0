package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/inovacc/starkeep/internal/auth"
	"github.com/inovacc/starkeep/internal/config"
	"github.com/inovacc/starkeep/internal/database"
	"github.com/inovacc/starkeep/internal/gh"
	"github.com/inovacc/starkeep/internal/params"
	"github.com/inovacc/starkeep/internal/ratelimit"
)

// parseRepoArg splits an "owner/name" argument.
func parseRepoArg(arg string) (owner, name string, err error) {
	parts := strings.Split(arg, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/name", arg)
	}

	return parts[0], parts[1], nil
}

func loadConfig() (config.Config, error) {
	path := flagConfig
	if path == "" {
		path = params.DefaultConfigPath()
	}

	return config.Load(path)
}

func resolveToken(cfg config.Config) (string, error) {
	result, err := auth.NewResolver().
		WithFlag(&flagToken).
		WithEnvs("STARKEEP_TOKEN", "GITHUB_TOKEN").
		WithConfigValue(cfg.Token).
		WithHelpMessage("Pass --token, set STARKEEP_TOKEN or GITHUB_TOKEN, or add a token\nto the [github] section of " + params.DefaultConfigPath()).
		Resolve()
	if err != nil {
		return "", err
	}

	slog.Debug("token resolved", slog.String("source", result.Name))

	return result.Token, nil
}

// newAPIClient builds the authenticated client from config, env, and flags.
func newAPIClient(ctx context.Context) (*gh.Client, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}

	token, err := resolveToken(cfg)
	if err != nil {
		return nil, cfg, err
	}

	client, err := gh.NewClient(ctx, token, gh.Options{
		BaseURL:    cfg.APIBaseURL,
		Limiter:    ratelimit.New(cfg.RateCapacity, cfg.RateRefill, cfg.RateInterval),
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     slog.Default(),
	})
	if err != nil {
		return nil, cfg, err
	}

	return client, cfg, nil
}

// openStore opens the backup database. The caller owns the handle and must
// close it on every exit path.
func openStore() (*database.Bolt, error) {
	path := flagDB
	if path == "" {
		path = params.DefaultDBPath()
	}

	return database.OpenBolt(path)
}

func closeStore(store *database.Bolt) {
	if err := store.Close(); err != nil {
		slog.Warn("failed to close database", slog.String("error", err.Error()))
	}
}
