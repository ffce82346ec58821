package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultSourceURL = "https://raw.githubusercontent.com/seandavi/awesome-single-cell/refs/heads/master/README.md"

type Config struct {
	GitHubToken string
	SourceURL   string
	OutputFile  string
	FetchDelay  time.Duration

	SurrealURL  string
	SurrealNS   string
	SurrealDB   string
	SurrealUser string
	SurrealPass string

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		GitHubToken: os.Getenv("GITHUB_TOKEN"),
		SourceURL:   os.Getenv("SOURCE_URL"),
		OutputFile:  os.Getenv("OUTPUT_FILE"),

		SurrealURL:  os.Getenv("SURREAL_URL"),
		SurrealNS:   os.Getenv("SURREAL_NS"),
		SurrealDB:   os.Getenv("SURREAL_DB"),
		SurrealUser: os.Getenv("SURREAL_USER"),
		SurrealPass: os.Getenv("SURREAL_PASS"),

		LLMBaseURL: os.Getenv("LLM_BASE_URL"),
		LLMAPIKey:  os.Getenv("LLM_API_KEY"),
		LLMModel:   os.Getenv("LLM_MODEL"),
	}

	if cfg.SourceURL == "" {
		cfg.SourceURL = DefaultSourceURL
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = "repos_data.json"
	}

	// Politeness throttle between consecutive GitHub API calls.
	cfg.FetchDelay = 100 * time.Millisecond
	if v := os.Getenv("FETCH_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.FetchDelay = d
		}
	}

	// The SDK appends /rpc automatically
	cfg.SurrealURL = strings.TrimSuffix(cfg.SurrealURL, "/rpc")
	cfg.SurrealURL = strings.TrimSuffix(cfg.SurrealURL, "/")

	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = "https://api.openai.com/v1"
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = "gpt-4o-mini"
	}

	return cfg
}
