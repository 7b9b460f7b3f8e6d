package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"webanswer/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		listenAddr     string
		configPath     string
		searxURL       string
		searxKey       string
		searxUA        string
		maxURLs        int
		blocklist      string
		skipURLs       string
		llmBaseURL     string
		llmModel       string
		llmKey         string
		embeddingModel string
		fetchTimeout   time.Duration
		searchTimeout  time.Duration
		maxExtract     int
		topK           int
		cacheTTL       time.Duration
		chunkSize      int
		keepLinks      bool
		keepImages     bool
		browserEnable  bool
		browserExec    string
		verbose        bool
	)

	flag.StringVar(&listenAddr, "listen", app.ListenDefault, "HTTP listen address")
	flag.StringVar(&configPath, "config", os.Getenv("WEBANSWER_CONFIG"), "Path to YAML/JSON config file (optional)")
	flag.StringVar(&searxURL, "searx.url", "", "SearxNG search endpoint URL")
	flag.StringVar(&searxKey, "searx.key", "", "SearxNG API key (optional, sent as x-api-key)")
	flag.StringVar(&searxUA, "searx.ua", app.UserAgentDefault, "Custom User-Agent for outbound requests")
	flag.IntVar(&maxURLs, "search.maxURLs", 0, "Maximum URLs fetched per query (0 = default)")
	flag.StringVar(&blocklist, "search.blocklist", "", "Comma-separated domain blocklist (empty = built-in list)")
	flag.StringVar(&skipURLs, "search.skipURLs", "", "Comma-separated exact URLs to skip")
	flag.StringVar(&llmBaseURL, "llm.base", "", "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", "", "Chat model for extraction and summarization")
	flag.StringVar(&llmKey, "llm.key", "", "API key for OpenAI-compatible server")
	flag.StringVar(&embeddingModel, "llm.embeddingModel", "", "Embedding model for passage retrieval")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", app.FetchTimeoutDefault, "Per-URL fetch timeout")
	flag.DurationVar(&searchTimeout, "search.timeout", app.SearchTimeoutDefault, "Search request timeout")
	flag.IntVar(&maxExtract, "extract.maxConcurrent", 0, "Cap on in-flight extraction model calls (0 = default)")
	flag.IntVar(&topK, "retrieval.topK", 0, "Passages retrieved per query (0 = default)")
	flag.DurationVar(&cacheTTL, "cache.ttl", 0, "Result cache TTL (0 = default)")
	flag.IntVar(&chunkSize, "extract.chunkSize", 0, "Maximum characters per retrieval chunk (0 = default)")
	flag.BoolVar(&keepLinks, "clean.keepLinks", false, "Keep markdown links in cleaned text")
	flag.BoolVar(&keepImages, "clean.keepImages", false, "Keep image references in cleaned text")
	flag.BoolVar(&browserEnable, "browser.enable", false, "Enable headless-browser fallback for blocked pages")
	flag.StringVar(&browserExec, "browser.execPath", "", "Path to Chrome binary for the browser fallback")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		ListenAddr:              listenAddr,
		SearxURL:                searxURL,
		SearxKey:                searxKey,
		UserAgent:               searxUA,
		MaxURLs:                 maxURLs,
		Blocklist:               splitList(blocklist),
		SkipURLs:                splitList(skipURLs),
		LLMBaseURL:              llmBaseURL,
		LLMModel:                llmModel,
		LLMAPIKey:               llmKey,
		EmbeddingModel:          embeddingModel,
		FetchTimeout:            fetchTimeout,
		SearchTimeout:           searchTimeout,
		MaxConcurrentExtraction: maxExtract,
		TopK:                    topK,
		CacheTTL:                cacheTTL,
		ChunkSize:               chunkSize,
		KeepLinks:               keepLinks,
		KeepImages:              keepImages,
		BrowserFallback:         browserEnable,
		BrowserExecPath:         browserExec,
		Verbose:                 verbose,
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("load config file")
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvToConfig(&cfg)

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := app.ValidateConfig(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	srv := app.NewServer(cfg.ListenAddr, a)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
