// openai-stub is a tiny OpenAI-compatible server for local development:
// it answers the model-list, chat-completion and embedding endpoints
// with deterministic canned output, so the whole pipeline can run
// without a real model backend.
package main

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log"
	"net/http"
	"os"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input any    `json:"input"`
}

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		sys := ""
		if len(req.Messages) > 0 {
			sys = req.Messages[0].Content
		}
		var content string
		switch {
		case strings.Contains(sys, "information extraction system"):
			content = "EVENTS:\n- Stub fact extracted from the supplied passage."
		case strings.Contains(sys, "factual summary"):
			content = "Stub summary of the extracted facts."
		default:
			content = "Stub response."
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "stub",
			"object": "chat.completion",
			"model":  req.Model,
			"choices": []map[string]any{
				{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"},
			},
		})
	})
	mux.HandleFunc("/v1/embeddings", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req embeddingRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		var inputs []string
		switch v := req.Input.(type) {
		case string:
			inputs = []string{v}
		case []any:
			for _, it := range v {
				if s, ok := it.(string); ok {
					inputs = append(inputs, s)
				}
			}
		}
		data := make([]map[string]any, len(inputs))
		for i, s := range inputs {
			data[i] = map[string]any{
				"object":    "embedding",
				"index":     i,
				"embedding": stubVector(s),
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  req.Model,
			"data":   data,
		})
	})

	fmt.Fprintf(os.Stderr, "openai-stub listening on %s (model %s)\n", addr, model)
	log.Fatal(http.ListenAndServe(addr, mux))
}

// stubVector derives a small deterministic vector from the text so that
// identical texts embed identically and similar runs are reproducible.
func stubVector(s string) []float32 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	sum := h.Sum64()
	v := make([]float32, 8)
	for i := range v {
		v[i] = float32((sum>>(8*uint(i)))&0xff) / 255
	}
	return v
}
