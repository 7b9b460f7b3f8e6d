// Package app wires the research pipeline together and exposes it
// through an HTTP front door.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"webanswer/internal/clean"
	"webanswer/internal/discover"
	"webanswer/internal/extract"
	"webanswer/internal/fetch"
	"webanswer/internal/llm"
	"webanswer/internal/rescache"
	"webanswer/internal/research"
)

// App owns every long-lived collaborator: the shared HTTP client, the
// model provider, the pipeline stages and the result cache. One App
// serves all queries for the life of the process.
type App struct {
	cfg      Config
	pipeline *research.Pipeline
	cache    *rescache.ResultCache
}

// New builds an App from cfg. It performs a best-effort model-list
// preflight so a dead LLM endpoint is visible at startup rather than on
// the first query.
func New(ctx context.Context, cfg Config) (*App, error) {
	transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
	if cfg.LLMBaseURL != "" {
		transportCfg.BaseURL = cfg.LLMBaseURL
	}
	client := openai.NewClientWithConfig(transportCfg)
	provider := &llm.OpenAIProvider{Inner: client, EmbeddingModel: cfg.EmbeddingModel}

	shared := newSharedHTTPClient()

	cleaner := clean.New(clean.Options{
		KeepLinks:  cfg.KeepLinks,
		KeepImages: cfg.KeepImages,
	})
	extractor := extract.New(cleaner, cfg.ChunkSize)

	fetcher := &fetch.Client{
		HTTPClient: shared,
		Extractor:  extractor,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.FetchTimeout,
	}
	if cfg.BrowserFallback {
		fetcher.Browser = &fetch.BrowserFetcher{ExecPath: cfg.BrowserExecPath}
	}

	blocklist := cfg.Blocklist
	if len(blocklist) == 0 {
		blocklist = discover.DefaultBlocklist
	}
	discoverer := &discover.Service{
		BaseURL:    cfg.SearxURL,
		APIKey:     cfg.SearxKey,
		HTTPClient: shared,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.SearchTimeout,
		MaxURLs:    cfg.MaxURLs,
		Blocklist:  blocklist,
		SkipURLs:   cfg.SkipURLs,
	}

	a := &App{
		cfg: cfg,
		pipeline: &research.Pipeline{
			Discoverer: discoverer,
			Fetcher:    fetcher,
			Embedder:   provider,
			Extractor: &research.Extractor{
				Client:        provider,
				Model:         cfg.LLMModel,
				MaxConcurrent: cfg.MaxConcurrentExtraction,
			},
			Summarizer: &research.Summarizer{
				Client: provider,
				Model:  cfg.LLMModel,
			},
			TopK: cfg.TopK,
		},
		cache: rescache.New(cfg.CacheTTL),
	}

	// Preflight is best-effort: a warn, never a startup failure.
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	models, err := provider.ListModels(pctx)
	if err != nil {
		log.Warn().Err(err).Msg("LLM model list failed; continuing")
	} else if len(models.Models) > 0 {
		log.Info().Int("count", len(models.Models)).Msg("LLM models available")
	} else {
		log.Warn().Msg("LLM returned zero models")
	}

	return a, nil
}

// Answer resolves query to its final summary, serving from the result
// cache when possible. Concurrent calls for the same uncached query
// share one pipeline run.
func (a *App) Answer(ctx context.Context, query string) (string, error) {
	return a.cache.GetOrCompute(ctx, query, func(ctx context.Context) (string, error) {
		res, err := a.pipeline.Run(ctx, query)
		if err != nil {
			return "", err
		}
		return res.Summary, nil
	})
}
