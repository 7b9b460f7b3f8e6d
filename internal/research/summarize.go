package research

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/rs/zerolog/log"

	"webanswer/internal/llm"
)

// Summarizer folds the extracted facts into the final narrative with a
// single model call. It never surfaces an error: a failed call degrades
// to an empty summary and a log line.
type Summarizer struct {
	Client llm.Client
	Model  string
}

// Summarize produces the final answer text for question from the joined
// facts.
func (s *Summarizer) Summarize(ctx context.Context, question, facts string) string {
	req := openai.ChatCompletionRequest{
		Model: s.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildSummaryUserMessage(question, facts)},
		},
		Temperature: 0.1,
		N:           1,
	}
	resp, err := s.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Warn().Err(err).Msg("summarization call failed")
		return ""
	}
	if len(resp.Choices) == 0 {
		log.Warn().Msg("summarization call returned no choices")
		return ""
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}
