package main

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/dotlas/api-client-go/internal/cache"
	"github.com/dotlas/api-client-go/pkg/dotlas"
)

// newClient assembles a Dotlas client from the loaded config. The returned
// cleanup func closes the response cache when one was attached.
func newClient() (dotlas.Client, func(), error) {
	if cfg.Client.APIKey == "" {
		return nil, nil, eris.New("api key not configured (set DOTLAS_CLIENT_API_KEY or client.api_key)")
	}

	opts := []dotlas.Option{
		dotlas.WithTimeout(time.Duration(cfg.Client.TimeoutSecs) * time.Second),
	}
	if cfg.Client.BaseURL != "" {
		opts = append(opts, dotlas.WithBaseURL(cfg.Client.BaseURL))
	}
	if cfg.Client.Retries > 0 {
		opts = append(opts, dotlas.WithRetries(cfg.Client.Retries))
	}
	if cfg.Client.RateLimitRPS > 0 {
		opts = append(opts, dotlas.WithRateLimit(cfg.Client.RateLimitRPS))
	}

	cleanup := func() {}
	if cfg.Cache.Enabled {
		store, err := cache.New(cfg.Cache.Path, time.Duration(cfg.Cache.TTLHours)*time.Hour)
		if err != nil {
			return nil, nil, eris.Wrap(err, "open response cache")
		}
		opts = append(opts, dotlas.WithCache(store))
		cleanup = func() { _ = store.Close() }
	}

	return dotlas.New(cfg.Client.APIKey, opts...), cleanup, nil
}
