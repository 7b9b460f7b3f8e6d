// Package research runs the model-backed stages of a search: bounded
// fact extraction over the retrieved passages, summarization of the
// extracted facts, and the pipeline that strings every stage together.
package research

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"webanswer/internal/extract"
	"webanswer/internal/llm"
)

// DefaultMaxConcurrent caps in-flight extraction calls.
const DefaultMaxConcurrent = 5

// ExtractedFact is the model's answer-relevant digest of one passage,
// attributed to the passage's originating URL.
type ExtractedFact struct {
	Text   string
	Source string
}

// Extractor runs the fact-extraction call over retrieved passages with
// a hard concurrency cap. A failed call degrades to an inline error
// fact; no passage can fail the batch.
type Extractor struct {
	Client llm.Client
	Model  string
	// MaxConcurrent bounds in-flight model calls; values < 1 mean
	// DefaultMaxConcurrent.
	MaxConcurrent int
}

// ExtractAll processes every passage and returns one fact per passage
// in input order.
func (e *Extractor) ExtractAll(ctx context.Context, question string, passages []extract.Chunk) []ExtractedFact {
	facts := make([]ExtractedFact, len(passages))

	limit := e.MaxConcurrent
	if limit < 1 {
		limit = DefaultMaxConcurrent
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, p := range passages {
		i, p := i, p
		g.Go(func() error {
			facts[i] = e.extractOne(gctx, question, p)
			return nil
		})
	}
	// Workers never return errors; failures become fact text.
	_ = g.Wait()
	return facts
}

func (e *Extractor) extractOne(ctx context.Context, question string, passage extract.Chunk) ExtractedFact {
	req := openai.ChatCompletionRequest{
		Model: e.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildExtractionUserMessage(question, passage.Text, passage.Source)},
		},
		Temperature: 0.1,
		N:           1,
	}
	resp, err := e.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Warn().Err(err).Str("source", passage.Source).Msg("extraction call failed")
		return ExtractedFact{
			Text:   fmt.Sprintf("Error extracting information: %v", err),
			Source: passage.Source,
		}
	}
	if len(resp.Choices) == 0 {
		log.Warn().Str("source", passage.Source).Msg("extraction call returned no choices")
		return ExtractedFact{
			Text:   "Error extracting information: empty model response",
			Source: passage.Source,
		}
	}
	return ExtractedFact{
		Text:   strings.TrimSpace(resp.Choices[0].Message.Content),
		Source: passage.Source,
	}
}

// JoinFacts concatenates facts in order, separated by blank lines, as
// the input to summarization.
func JoinFacts(facts []ExtractedFact) string {
	parts := make([]string, 0, len(facts))
	for _, f := range facts {
		if f.Text == "" {
			continue
		}
		parts = append(parts, f.Text)
	}
	return strings.Join(parts, "\n\n")
}
