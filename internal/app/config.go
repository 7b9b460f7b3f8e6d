package app

import "time"

// Config holds runtime configuration for the application.
type Config struct {
	// HTTP front door
	ListenAddr string

	// Search
	SearxURL  string
	SearxKey  string
	UserAgent string
	MaxURLs   int
	Blocklist []string
	SkipURLs  []string

	// LLM
	LLMBaseURL     string
	LLMModel       string
	LLMAPIKey      string
	EmbeddingModel string

	// Pipeline behavior
	FetchTimeout            time.Duration
	SearchTimeout           time.Duration
	MaxConcurrentExtraction int
	TopK                    int
	CacheTTL                time.Duration
	ChunkSize               int

	// Cleaner modes
	KeepLinks  bool
	KeepImages bool

	// Browser fallback
	BrowserFallback bool
	BrowserExecPath string

	Verbose bool
}
