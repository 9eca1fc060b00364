package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/apply-assistant/internal/assistant"
	"github.com/jonathan/apply-assistant/internal/config"
	"github.com/jonathan/apply-assistant/internal/db"
	"github.com/jonathan/apply-assistant/internal/fetch"
	"github.com/jonathan/apply-assistant/internal/ingestion"
	"github.com/jonathan/apply-assistant/internal/llm"
	"github.com/jonathan/apply-assistant/internal/observability"
	"github.com/jonathan/apply-assistant/internal/popup"
	"github.com/jonathan/apply-assistant/internal/store"
)

// Replaced in tests.
var (
	newLLMClient = llm.NewClient
	newExtractor = func() ingestion.PageExtractor { return &ingestion.PDFExtractor{} }
	newLoader    = func() popup.PageLoader { return fetch.NewLoader() }
)

// app is what a command runs against.
type app struct {
	cfg        config.Config
	repo       *store.Repository
	controller *popup.Controller
	printer    *observability.Printer
	closers    []func()
}

// newApp resolves configuration, opens the store and restores the panels.
// withAI connects the model client, which requires an API key.
func newApp(cmd *cobra.Command, withAI bool) (*app, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	kv, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		repo:    store.NewRepository(kv),
		printer: observability.NewPrinter(cmd.OutOrStdout()),
		closers: []func(){closeStore},
	}

	var ai popup.AI
	if withAI {
		if cfg.APIKey == "" {
			a.Close()
			return nil, fmt.Errorf("%s environment variable is required", config.EnvAPIKey)
		}
		client, err := newLLMClient(ctx, cfg.LLMConfig(), cfg.APIKey)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })

		tier := cfg.Tier()
		tasks := assistant.New(client).WithTier(tier)
		tasks.Verbose = cfg.Verbose
		ai = tasks
		if cfg.Verbose {
			log.Printf("[VERBOSE] Using %s model %s", tier, client.GetModel(tier))
		}
	}

	a.controller = popup.New(a.repo, ai, popup.Options{
		Extractor: newExtractor(),
		Loader:    newLoader(),
		Verbose:   cfg.Verbose,
	})
	if err := a.controller.Open(ctx, nil); err != nil {
		log.Printf("Warning: stored state could not be fully restored: %v", err)
	}
	return a, nil
}

// Close releases the store and the model client.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// resolveConfig layers flags over the environment over the config file.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("state") {
		cfg.StatePath = statePath
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}

	if cfg.Verbose && configPath != "" {
		log.Printf("[VERBOSE] Loaded config from: %s", configPath)
	}
	return cfg, nil
}

// openStore picks Postgres when a database URL is configured and the state
// file otherwise.
func openStore(ctx context.Context, cfg config.Config) (store.KV, func(), error) {
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		if cfg.Verbose {
			log.Printf("[VERBOSE] Using PostgreSQL state store")
		}
		return database, database.Close, nil
	}

	path, err := cfg.ResolvedStatePath()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Verbose {
		log.Printf("[VERBOSE] Using state file %s", path)
	}
	return store.NewFileKV(path), func() {}, nil
}

// jobSource builds a page source from the --url and --html-file flags.
func jobSource(cfg config.Config, url, htmlFile string, useBrowser bool) (fetch.Source, error) {
	if url == "" && htmlFile == "" {
		return fetch.Source{}, fmt.Errorf("either --url or --html-file must be provided")
	}
	return fetch.Source{
		URL:            url,
		HTMLFile:       htmlFile,
		UseBrowser:     useBrowser || cfg.UseBrowser,
		BrowserTimeout: cfg.BrowserTimeout(),
		Verbose:        cfg.Verbose,
	}, nil
}

// showMatch prints the match panel: the result, or the message it shows instead.
func (a *app) showMatch() {
	view := a.controller.Snapshot().Match
	switch {
	case view.Result != nil:
		a.printer.PrintMatch(view.Result)
	case view.Message != "":
		a.printer.PrintMatchError(view.Message)
	}
}
