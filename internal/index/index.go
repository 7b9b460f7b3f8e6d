// Package index provides an ephemeral per-query similarity index. An
// Index lives for exactly one top-level search call: built from the
// fetched chunks, queried once for the top-k passages, then discarded.
// Instances are not safe for concurrent use and must never be shared
// across top-level calls — each call owns its own Index.
package index

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"webanswer/internal/extract"
	"webanswer/internal/llm"
)

// NoRelevantInformation is the fallback passage returned when the index
// holds nothing useful for a query.
const NoRelevantInformation = "No relevant information found."

// Index maps embedded vectors to chunk content and metadata. Similarity
// is squared Euclidean distance over the embedding space.
type Index struct {
	embedder llm.Embedder
	vectors  [][]float32
	chunks   []extract.Chunk
}

// New returns an empty Index backed by the given embedder.
func New(embedder llm.Embedder) *Index {
	return &Index{embedder: embedder}
}

// Add embeds the given chunks and inserts them. Empty and
// whitespace-only chunks are dropped before embedding.
func (ix *Index) Add(ctx context.Context, chunks []extract.Chunk) error {
	kept := make([]extract.Chunk, 0, len(chunks))
	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if strings.TrimSpace(c.Text) == "" {
			continue
		}
		kept = append(kept, c)
		texts = append(texts, c.Text)
	}
	if len(kept) == 0 {
		return nil
	}

	vecs, err := ix.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(vecs) != len(kept) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vecs), len(kept))
	}
	ix.vectors = append(ix.vectors, vecs...)
	ix.chunks = append(ix.chunks, kept...)
	return nil
}

// Query embeds q and returns the k nearest chunks by L2 distance. An
// empty index yields the single NoRelevantInformation fallback chunk.
func (ix *Index) Query(ctx context.Context, q string, k int) ([]extract.Chunk, error) {
	if len(ix.chunks) == 0 {
		return []extract.Chunk{{Text: NoRelevantInformation}}, nil
	}
	if k <= 0 {
		k = 1
	}

	vecs, err := ix.embedder.Embed(ctx, []string{q})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	qv := vecs[0]

	order := make([]int, len(ix.vectors))
	for i := range order {
		order[i] = i
	}
	dists := make([]float32, len(ix.vectors))
	for i, v := range ix.vectors {
		dists[i] = sqDistance(qv, v)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dists[order[a]] < dists[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}
	out := make([]extract.Chunk, 0, k)
	for _, i := range order[:k] {
		out = append(out, ix.chunks[i])
	}
	return out, nil
}

// Reset discards all indexed content.
func (ix *Index) Reset() {
	ix.vectors = nil
	ix.chunks = nil
}

// Len reports how many chunks are indexed.
func (ix *Index) Len() int { return len(ix.chunks) }

// sqDistance is squared L2 over the shorter of the two vectors;
// mismatched dimensions count the excess components at full weight.
func sqDistance(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	for _, v := range a[n:] {
		sum += v * v
	}
	for _, v := range b[n:] {
		sum += v * v
	}
	return sum
}
