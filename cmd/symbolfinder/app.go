package main

import (
	"flag"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"tase-symbol-finder/internal/api"
	"tase-symbol-finder/internal/interfaces"
	"tase-symbol-finder/internal/known"
	"tase-symbol-finder/internal/lookup/alphavantage"
	"tase-symbol-finder/internal/lookup/yahoo"
	"tase-symbol-finder/internal/metrics"
	"tase-symbol-finder/internal/ratelimit"
	"tase-symbol-finder/internal/resolver"
	"tase-symbol-finder/internal/store"
)

const defaultConfigPath = "config.yaml"

// commonFlags are shared by every subcommand that resolves names
type commonFlags struct {
	configPath string
	apiKey     string
	offline    bool
}

func (c *commonFlags) register(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", defaultConfigPath, "path to config file (optional unless changed)")
	f.StringVar(&c.apiKey, "api-key", "", "Alpha Vantage API key (overrides the configured environment variable)")
	f.BoolVar(&c.offline, "offline", false, "use only the built-in table, never call external providers")
}

// app holds the loaded configuration and the collaborators built from it
type app struct {
	cfg      *store.Config
	apiKey   string
	metrics  *metrics.Metrics
	limiters *ratelimit.MultiRateLimiter
}

func newApp(flags commonFlags) (*app, error) {
	cfg, err := store.LoadOrDefault(flags.configPath, flags.configPath != defaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flags.offline {
		off := false
		cfg.Providers.Yahoo.Enabled = &off
		cfg.Providers.AlphaVantage.Enabled = &off
	}

	key := flags.apiKey
	if key == "" {
		key = cfg.APIKey()
	}

	limiters := ratelimit.NewMultiRateLimiter()
	limiters.AddLimiter(yahoo.ProviderName, ratelimit.PerSecond(cfg.Providers.Yahoo.RequestsPerSecond))
	limiters.AddLimiter(alphavantage.ProviderName, ratelimit.PerSecond(cfg.Providers.AlphaVantage.RequestsPerSecond))

	return &app{
		cfg:      cfg,
		apiKey:   key,
		metrics:  metrics.NewMetrics(),
		limiters: limiters,
	}, nil
}

// knownTable is the built-in table extended with any configured aliases
func (a *app) knownTable() (*known.Table, error) {
	table := known.Default()
	if a.cfg.Matching.AliasesFile == "" {
		return table, nil
	}
	extra, err := known.LoadAliases(a.cfg.Matching.AliasesFile)
	if err != nil {
		return nil, err
	}
	return table.With(extra...), nil
}

// providerA returns the candidate-ticker provider, or nil when disabled
func (a *app) providerA() interfaces.SymbolLookup {
	y := a.cfg.Providers.Yahoo
	if !a.cfg.YahooEnabled() {
		return nil
	}
	hc := newHTTPClient(seconds(y.TimeoutSeconds))

	var source yahoo.QuoteSource
	switch y.Backend {
	case "api":
		source = yahoo.NewAPISource(y.BaseURL, hc)
	default:
		source = yahoo.NewPageSource(y.BaseURL, hc, 0)
	}
	return yahoo.NewClient(source,
		yahoo.WithSuffix(y.MarketSuffix),
		yahoo.WithRateLimiter(a.limiters.GetLimiter(yahoo.ProviderName)),
	)
}

// providerB returns the search provider, or nil when disabled
func (a *app) providerB() *alphavantage.Client {
	av := a.cfg.Providers.AlphaVantage
	if !a.cfg.AlphaVantageEnabled() {
		return nil
	}
	return alphavantage.NewClient(av.BaseURL, newHTTPClient(seconds(av.TimeoutSeconds)), 0,
		alphavantage.WithMarkers(av.Markers...),
		alphavantage.WithRateLimiter(a.limiters.GetLimiter(alphavantage.ProviderName)),
		alphavantage.WithRetry(&api.RetryConfig{
			MaxAttempts: av.MaxAttempts,
			InitialWait: time.Second,
			MaxWait:     5 * time.Second,
		}),
	)
}

// policy assembles the resolution chain from configuration
func (a *app) policy() (*resolver.Policy, error) {
	table, err := a.knownTable()
	if err != nil {
		return nil, err
	}
	return resolver.Build(table, a.cfg.Matching.Threshold, a.providerA(), a.providerB(), a.apiKey,
		resolver.WithNotFound(a.cfg.Output.NotFoundLabel),
		resolver.WithMetrics(a.metrics),
	), nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
