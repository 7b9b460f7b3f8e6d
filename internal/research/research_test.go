package research

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"webanswer/internal/extract"
)

// chatStub records every request and answers with canned content after
// an optional delay, tracking its peak number of in-flight calls.
type chatStub struct {
	mu        sync.Mutex
	requests  []openai.ChatCompletionRequest
	inFlight  int32
	peak      int32
	delay     time.Duration
	reply     string
	failUsers []string // user-message substrings that should fail
}

func (s *chatStub) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	n := atomic.AddInt32(&s.inFlight, 1)
	for {
		p := atomic.LoadInt32(&s.peak)
		if n <= p || atomic.CompareAndSwapInt32(&s.peak, p, n) {
			break
		}
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	atomic.AddInt32(&s.inFlight, -1)

	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	user := req.Messages[len(req.Messages)-1].Content
	for _, bad := range s.failUsers {
		if strings.Contains(user, bad) {
			return openai.ChatCompletionResponse{}, errors.New("model unavailable")
		}
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: s.reply}},
		},
	}, nil
}

func TestExtractAll_CapsConcurrencyAtFive(t *testing.T) {
	stub := &chatStub{delay: 20 * time.Millisecond, reply: "fact"}
	ex := &Extractor{Client: stub, Model: "test-model", MaxConcurrent: 5}

	passages := make([]extract.Chunk, 12)
	for i := range passages {
		passages[i] = extract.Chunk{Text: "passage", Source: "https://example.com"}
	}
	facts := ex.ExtractAll(context.Background(), "q", passages)

	if len(facts) != 12 {
		t.Fatalf("got %d facts, want 12", len(facts))
	}
	if peak := atomic.LoadInt32(&stub.peak); peak > 5 {
		t.Fatalf("peak in-flight calls = %d, want <= 5", peak)
	}
	if peak := atomic.LoadInt32(&stub.peak); peak < 2 {
		t.Fatalf("peak in-flight calls = %d, expected concurrent execution", peak)
	}
}

func TestExtractAll_FailureBecomesInlineFact(t *testing.T) {
	stub := &chatStub{reply: "good fact", failUsers: []string{"broken passage"}}
	ex := &Extractor{Client: stub, Model: "test-model"}

	facts := ex.ExtractAll(context.Background(), "q", []extract.Chunk{
		{Text: "fine passage", Source: "https://a.example"},
		{Text: "broken passage", Source: "https://b.example"},
		{Text: "fine passage", Source: "https://c.example"},
	})

	if facts[0].Text != "good fact" || facts[2].Text != "good fact" {
		t.Fatalf("healthy passages degraded: %+v", facts)
	}
	if !strings.HasPrefix(facts[1].Text, "Error extracting information:") {
		t.Fatalf("failed passage fact = %q, want inline error text", facts[1].Text)
	}
	if facts[1].Source != "https://b.example" {
		t.Fatalf("attribution lost on failure: %q", facts[1].Source)
	}
}

func TestExtractAll_ResultsKeepInputOrder(t *testing.T) {
	stub := &chatStub{delay: 5 * time.Millisecond, reply: "fact"}
	ex := &Extractor{Client: stub, Model: "m"}
	passages := []extract.Chunk{
		{Text: "alpha", Source: "s1"},
		{Text: "beta", Source: "s2"},
		{Text: "gamma", Source: "s3"},
	}
	facts := ex.ExtractAll(context.Background(), "q", passages)
	for i, p := range passages {
		if facts[i].Source != p.Source {
			t.Errorf("fact %d source = %q, want %q", i, facts[i].Source, p.Source)
		}
	}
}

func TestJoinFacts_BlankLineSeparatedInOrder(t *testing.T) {
	got := JoinFacts([]ExtractedFact{
		{Text: "first"},
		{Text: ""},
		{Text: "second"},
	})
	if got != "first\n\nsecond" {
		t.Fatalf("got %q", got)
	}
}

func TestSummarize_DegradesToEmptyOnFailure(t *testing.T) {
	stub := &chatStub{failUsers: []string{"Question:"}}
	s := &Summarizer{Client: stub, Model: "m"}
	if got := s.Summarize(context.Background(), "q", "facts"); got != "" {
		t.Fatalf("got %q, want empty summary on failure", got)
	}
}

func TestSummarize_ReturnsModelContent(t *testing.T) {
	stub := &chatStub{reply: "  a tidy summary  "}
	s := &Summarizer{Client: stub, Model: "m"}
	if got := s.Summarize(context.Background(), "q", "facts"); got != "a tidy summary" {
		t.Fatalf("got %q", got)
	}
}
