package research

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"webanswer/internal/extract"
	"webanswer/internal/fetch"
	"webanswer/internal/index"
	"webanswer/internal/llm"
)

// DefaultTopK is how many passages the retrieval index hands to the
// extraction stage when the configuration does not say otherwise.
const DefaultTopK = 5

// Discoverer resolves a query to candidate URLs. A nil or empty slice
// means discovery degraded; the pipeline proceeds with nothing to
// fetch.
type Discoverer interface {
	Discover(ctx context.Context, query string) []string
}

// Fetcher retrieves and extracts every URL, reporting one outcome per
// input URL in input order.
type Fetcher interface {
	FetchAll(ctx context.Context, urls []string) []fetch.Outcome
}

// Result is the finished product of one search.
type Result struct {
	// Query is the question exactly as asked.
	Query string
	// Sources holds one display line per discovered URL, success or
	// failure, in discovery order.
	Sources []string
	// Summary is the final narrative answer. It may be empty when every
	// stage degraded.
	Summary string
}

// Pipeline wires discovery, fetch, retrieval, extraction and
// summarization into one run per query. All collaborators are
// constructed once at startup and injected; the retrieval index is the
// exception, built fresh inside every Run so concurrent queries never
// share mutable state.
type Pipeline struct {
	Discoverer Discoverer
	Fetcher    Fetcher
	Embedder   llm.Embedder
	Extractor  *Extractor
	Summarizer *Summarizer
	// TopK bounds the passages retrieved for extraction; values < 1
	// mean DefaultTopK.
	TopK int
}

// Run answers query end to end. Every stage degrades in place — dead
// search backend, failed fetches, failed model calls all produce a
// structurally valid (if content-poor) Result. The returned error is
// non-nil only when the run itself blew up unexpectedly.
func (p *Pipeline) Run(ctx context.Context, query string) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("query", query).Msg("research pipeline panicked")
			res = Result{Query: query}
			err = fmt.Errorf("research pipeline: %v", r)
		}
	}()
	res.Query = query

	urls := p.Discoverer.Discover(ctx, query)
	log.Info().Str("query", query).Int("urls", len(urls)).Msg("discovery complete")

	outcomes := p.Fetcher.FetchAll(ctx, urls)
	var chunks []extract.Chunk
	ok := 0
	for _, o := range outcomes {
		res.Sources = append(res.Sources, o.Display())
		if o.OK() {
			ok++
			chunks = append(chunks, o.Doc.Chunks...)
		}
	}
	log.Info().Int("fetched", ok).Int("failed", len(outcomes)-ok).Int("chunks", len(chunks)).Msg("fetch complete")

	// Each run owns its own index; Reset is explicit so the embedded
	// vectors are released before the result is cached.
	ix := index.New(p.Embedder)
	defer ix.Reset()
	if err := ix.Add(ctx, chunks); err != nil {
		log.Warn().Err(err).Msg("indexing degraded, retrieval will fall back")
	}

	k := p.TopK
	if k < 1 {
		k = DefaultTopK
	}
	passages, err := ix.Query(ctx, query, k)
	if err != nil {
		log.Warn().Err(err).Msg("retrieval degraded, using fallback passage")
		passages = []extract.Chunk{{Text: index.NoRelevantInformation}}
	}

	facts := p.Extractor.ExtractAll(ctx, query, passages)
	res.Summary = p.Summarizer.Summarize(ctx, query, JoinFacts(facts))
	log.Info().Str("query", query).Int("passages", len(passages)).Bool("summary", res.Summary != "").Msg("research complete")
	return res, nil
}
