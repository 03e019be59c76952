// Package file provides the TOML-backed configuration for the folio CLI.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Config is the on-disk configuration, stored as TOML at
// <config-dir>/config.toml. Zero values fall back to adapter defaults.
type Config struct {
	// DataDir overrides where the chunk database lives.
	DataDir string `toml:"data_dir,omitempty"`

	// TopK is the number of chunks retrieved per query.
	TopK int `toml:"top_k,omitempty"`

	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	GitHub    GitHubConfig    `toml:"github"`
	YouTube   YouTubeConfig   `toml:"youtube"`
}

// EmbeddingConfig selects and configures the embedding model.
type EmbeddingConfig struct {
	// Provider is "ollama" (default) or "openai".
	Provider string `toml:"provider,omitempty"`
	Model    string `toml:"model,omitempty"`
	BaseURL  string `toml:"base_url,omitempty"`
	// APIKey may also come from the OPENAI_API_KEY environment variable.
	APIKey     string `toml:"api_key,omitempty"`
	Dimensions int    `toml:"dimensions,omitempty"`
}

// LLMConfig selects and configures the chat model.
type LLMConfig struct {
	// Provider is "ollama" (default) or "openai".
	Provider string `toml:"provider,omitempty"`
	Model    string `toml:"model,omitempty"`
	BaseURL  string `toml:"base_url,omitempty"`
	APIKey   string `toml:"api_key,omitempty"`
}

// GitHubConfig configures the repository-metadata connector.
type GitHubConfig struct {
	// User is the account whose public repositories are indexed.
	User string `toml:"user,omitempty"`
	// Token may also come from the GITHUB_TOKEN environment variable.
	Token string `toml:"token,omitempty"`
}

// YouTubeConfig configures the video-metadata connector.
type YouTubeConfig struct {
	// ChannelID is the channel whose uploads are indexed.
	ChannelID string `toml:"channel_id,omitempty"`
	// APIKey may also come from the YOUTUBE_API_KEY environment variable.
	APIKey string `toml:"api_key,omitempty"`
}

// Store loads and saves the configuration file.
type Store struct {
	mu       sync.Mutex
	filePath string
}

// NewStore creates a config store rooted at configDir. If configDir is
// empty, defaults to ~/.folio.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".folio")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &Store{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.filePath
}

// Load reads the configuration. A missing file yields defaults, not an
// error, so first runs work without setup.
func (s *Store) Load() (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cfg Config
	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes the configuration atomically via a temp file rename.
func (s *Store) Save(cfg *Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
