package index

import (
	"context"
	"testing"

	"webanswer/internal/extract"
)

// stubEmbedder maps known strings to fixed vectors so distance ordering
// is deterministic.
type stubEmbedder struct {
	vectors map[string][]float32
	calls   int
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	s.calls++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := s.vectors[t]
		if !ok {
			v = []float32{0, 0}
		}
		out[i] = v
	}
	return out, nil
}

func TestQuery_ReturnsNearestKVerbatim(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string][]float32{
		"chunk one":   {1, 0},
		"chunk two":   {2, 0},
		"chunk three": {3, 0},
		"chunk four":  {10, 0},
		"chunk five":  {20, 0},
		"the query":   {0, 0},
	}}
	ix := New(emb)

	chunks := []extract.Chunk{
		{Text: "chunk one", Source: "https://a.example"},
		{Text: "chunk two", Source: "https://b.example"},
		{Text: "chunk three", Source: "https://c.example"},
		{Text: "chunk four", Source: "https://d.example"},
		{Text: "chunk five", Source: "https://e.example"},
	}
	if err := ix.Add(context.Background(), chunks); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if ix.Len() != 5 {
		t.Fatalf("Len = %d, want 5", ix.Len())
	}

	got, err := ix.Query(context.Background(), "the query", 3)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	want := []string{"chunk one", "chunk two", "chunk three"}
	for i, w := range want {
		if got[i].Text != w {
			t.Errorf("result %d = %q, want %q", i, got[i].Text, w)
		}
	}
	if got[0].Source != "https://a.example" {
		t.Errorf("source not preserved: %q", got[0].Source)
	}
}

func TestQuery_EmptyIndexFallback(t *testing.T) {
	ix := New(&stubEmbedder{})
	got, err := ix.Query(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 || got[0].Text != NoRelevantInformation {
		t.Fatalf("got %+v, want single fallback chunk", got)
	}
}

func TestAdd_DropsBlankChunks(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string][]float32{"real": {1, 1}}}
	ix := New(emb)
	err := ix.Add(context.Background(), []extract.Chunk{
		{Text: "   "},
		{Text: ""},
		{Text: "real"},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if ix.Len() != 1 {
		t.Fatalf("Len = %d, want 1", ix.Len())
	}
}

func TestReset_EmptiesIndex(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string][]float32{"x": {1}}}
	ix := New(emb)
	if err := ix.Add(context.Background(), []extract.Chunk{{Text: "x"}}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	ix.Reset()
	if ix.Len() != 0 {
		t.Fatalf("Len after Reset = %d, want 0", ix.Len())
	}
	got, err := ix.Query(context.Background(), "x", 1)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if got[0].Text != NoRelevantInformation {
		t.Fatalf("expected fallback after Reset, got %q", got[0].Text)
	}
}
