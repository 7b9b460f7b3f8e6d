package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested
// sections map naturally to flags and environment variables.
type FileConfig struct {
	Listen string `yaml:"listen" json:"listen"`

	Searx struct {
		URL       string   `yaml:"url" json:"url"`
		Key       string   `yaml:"key" json:"key"`
		UA        string   `yaml:"ua" json:"ua"`
		MaxURLs   int      `yaml:"maxURLs" json:"maxURLs"`
		Blocklist []string `yaml:"blocklist" json:"blocklist"`
		SkipURLs  []string `yaml:"skipURLs" json:"skipURLs"`
	} `yaml:"searx" json:"searx"`

	LLM struct {
		BaseURL        string `yaml:"base" json:"base"`
		Model          string `yaml:"model" json:"model"`
		APIKey         string `yaml:"key" json:"key"`
		EmbeddingModel string `yaml:"embeddingModel" json:"embeddingModel"`
	} `yaml:"llm" json:"llm"`

	Pipeline struct {
		FetchTimeout            time.Duration `yaml:"fetchTimeout" json:"fetchTimeout"`
		SearchTimeout           time.Duration `yaml:"searchTimeout" json:"searchTimeout"`
		MaxConcurrentExtraction int           `yaml:"maxConcurrentExtraction" json:"maxConcurrentExtraction"`
		TopK                    int           `yaml:"topK" json:"topK"`
		CacheTTL                time.Duration `yaml:"cacheTTL" json:"cacheTTL"`
		ChunkSize               int           `yaml:"chunkSize" json:"chunkSize"`
	} `yaml:"pipeline" json:"pipeline"`

	Clean struct {
		KeepLinks  bool `yaml:"keepLinks" json:"keepLinks"`
		KeepImages bool `yaml:"keepImages" json:"keepImages"`
	} `yaml:"clean" json:"clean"`

	Browser struct {
		Enable   bool   `yaml:"enable" json:"enable"`
		ExecPath string `yaml:"execPath" json:"execPath"`
	} `yaml:"browser" json:"browser"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// Defaults the flag layer seeds before any overlay runs. ApplyFileConfig
// treats a field still holding its default as unset.
const (
	ListenDefault        = ":8000"
	UserAgentDefault     = "webanswer/1.0"
	FetchTimeoutDefault  = 10 * time.Second
	SearchTimeoutDefault = 10 * time.Second
)

// ApplyFileConfig overlays values from FileConfig into cfg for any
// fields currently unset or at their flag default. Flags win over the
// file; the file wins over built-in defaults.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if (cfg.ListenAddr == "" || cfg.ListenAddr == ListenDefault) && fc.Listen != "" {
		cfg.ListenAddr = fc.Listen
	}

	if cfg.SearxURL == "" && fc.Searx.URL != "" {
		cfg.SearxURL = fc.Searx.URL
	}
	if cfg.SearxKey == "" && fc.Searx.Key != "" {
		cfg.SearxKey = fc.Searx.Key
	}
	if (cfg.UserAgent == "" || cfg.UserAgent == UserAgentDefault) && fc.Searx.UA != "" {
		cfg.UserAgent = fc.Searx.UA
	}
	if cfg.MaxURLs == 0 && fc.Searx.MaxURLs > 0 {
		cfg.MaxURLs = fc.Searx.MaxURLs
	}
	if len(cfg.Blocklist) == 0 && len(fc.Searx.Blocklist) > 0 {
		cfg.Blocklist = append([]string{}, fc.Searx.Blocklist...)
	}
	if len(cfg.SkipURLs) == 0 && len(fc.Searx.SkipURLs) > 0 {
		cfg.SkipURLs = append([]string{}, fc.Searx.SkipURLs...)
	}

	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.EmbeddingModel == "" && fc.LLM.EmbeddingModel != "" {
		cfg.EmbeddingModel = fc.LLM.EmbeddingModel
	}

	if (cfg.FetchTimeout == 0 || cfg.FetchTimeout == FetchTimeoutDefault) && fc.Pipeline.FetchTimeout > 0 {
		cfg.FetchTimeout = fc.Pipeline.FetchTimeout
	}
	if (cfg.SearchTimeout == 0 || cfg.SearchTimeout == SearchTimeoutDefault) && fc.Pipeline.SearchTimeout > 0 {
		cfg.SearchTimeout = fc.Pipeline.SearchTimeout
	}
	if cfg.MaxConcurrentExtraction == 0 && fc.Pipeline.MaxConcurrentExtraction > 0 {
		cfg.MaxConcurrentExtraction = fc.Pipeline.MaxConcurrentExtraction
	}
	if cfg.TopK == 0 && fc.Pipeline.TopK > 0 {
		cfg.TopK = fc.Pipeline.TopK
	}
	if cfg.CacheTTL == 0 && fc.Pipeline.CacheTTL > 0 {
		cfg.CacheTTL = fc.Pipeline.CacheTTL
	}
	if cfg.ChunkSize == 0 && fc.Pipeline.ChunkSize > 0 {
		cfg.ChunkSize = fc.Pipeline.ChunkSize
	}

	if !cfg.KeepLinks && fc.Clean.KeepLinks {
		cfg.KeepLinks = true
	}
	if !cfg.KeepImages && fc.Clean.KeepImages {
		cfg.KeepImages = true
	}

	if !cfg.BrowserFallback && fc.Browser.Enable {
		cfg.BrowserFallback = true
	}
	if cfg.BrowserExecPath == "" && fc.Browser.ExecPath != "" {
		cfg.BrowserExecPath = fc.Browser.ExecPath
	}

	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ApplyEnvToConfig fills unset fields from environment variables, after
// flags and file config have had their turn.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.SearxURL == "" {
		cfg.SearxURL = os.Getenv("SEARX_URL")
	}
	if cfg.SearxKey == "" {
		cfg.SearxKey = os.Getenv("SEARX_KEY")
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = os.Getenv("LLM_MODEL")
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = os.Getenv("EMBEDDING_MODEL")
	}
}

// ValidateConfig performs minimal schema validation for required
// settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return errors.New("config: listen address is required")
	}
	if strings.TrimSpace(cfg.SearxURL) == "" {
		return errors.New("config: searx.url is required (or set SEARX_URL)")
	}
	if strings.TrimSpace(cfg.LLMModel) == "" {
		return errors.New("config: llm.model is required (or set LLM_MODEL)")
	}
	if strings.TrimSpace(cfg.EmbeddingModel) == "" {
		return errors.New("config: llm.embeddingModel is required (or set EMBEDDING_MODEL)")
	}
	if cfg.MaxURLs < 0 || cfg.TopK < 0 || cfg.MaxConcurrentExtraction < 0 || cfg.ChunkSize < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if cfg.FetchTimeout < 0 || cfg.SearchTimeout < 0 || cfg.CacheTTL < 0 {
		return errors.New("config: negative durations are not allowed")
	}
	return nil
}
