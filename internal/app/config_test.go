package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFile_YAMLAndOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
listen: ":9100"
searx:
  url: "http://searx.local:8080/search"
  key: "sekrit"
  maxURLs: 4
llm:
  base: "http://llm.local:1234/v1"
  model: "answer-model"
  embeddingModel: "embed-model"
pipeline:
  fetchTimeout: 15s
  topK: 7
  cacheTTL: 5m
clean:
  keepLinks: true
verbose: true
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}

	cfg := Config{
		ListenAddr:   ListenDefault,
		UserAgent:    UserAgentDefault,
		FetchTimeout: FetchTimeoutDefault,
	}
	ApplyFileConfig(&cfg, fc)

	if cfg.ListenAddr != ":9100" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.SearxURL != "http://searx.local:8080/search" || cfg.SearxKey != "sekrit" {
		t.Errorf("searx config not applied: %+v", cfg)
	}
	if cfg.MaxURLs != 4 {
		t.Errorf("MaxURLs = %d", cfg.MaxURLs)
	}
	if cfg.LLMModel != "answer-model" || cfg.EmbeddingModel != "embed-model" {
		t.Errorf("llm config not applied: %+v", cfg)
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Errorf("FetchTimeout = %v", cfg.FetchTimeout)
	}
	if cfg.TopK != 7 || cfg.CacheTTL != 5*time.Minute {
		t.Errorf("pipeline config not applied: %+v", cfg)
	}
	if !cfg.KeepLinks || cfg.KeepImages {
		t.Errorf("clean config not applied: %+v", cfg)
	}
	if !cfg.Verbose {
		t.Error("verbose not applied")
	}
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
	cfg := Config{ListenAddr: ":7000", LLMModel: "flag-model"}
	var fc FileConfig
	fc.Listen = ":9100"
	fc.LLM.Model = "file-model"
	ApplyFileConfig(&cfg, fc)
	if cfg.ListenAddr != ":7000" {
		t.Errorf("explicit flag overridden: %q", cfg.ListenAddr)
	}
	if cfg.LLMModel != "flag-model" {
		t.Errorf("explicit flag overridden: %q", cfg.LLMModel)
	}
}

func TestValidateConfig(t *testing.T) {
	good := Config{
		ListenAddr:     ":8000",
		SearxURL:       "http://searx.local/search",
		LLMModel:       "m",
		EmbeddingModel: "e",
	}
	if err := ValidateConfig(good); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	missingModel := good
	missingModel.LLMModel = ""
	if err := ValidateConfig(missingModel); err == nil {
		t.Error("missing llm.model accepted")
	}

	negative := good
	negative.TopK = -1
	if err := ValidateConfig(negative); err == nil {
		t.Error("negative topK accepted")
	}
}

func TestApplyEnvToConfig(t *testing.T) {
	t.Setenv("SEARX_URL", "http://env.searx/search")
	t.Setenv("LLM_MODEL", "env-model")
	cfg := Config{LLMModel: "explicit"}
	ApplyEnvToConfig(&cfg)
	if cfg.SearxURL != "http://env.searx/search" {
		t.Errorf("SearxURL = %q", cfg.SearxURL)
	}
	if cfg.LLMModel != "explicit" {
		t.Errorf("env overrode explicit value: %q", cfg.LLMModel)
	}
}
