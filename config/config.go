package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the docsearch tool.
type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Search    SearchConfig    `yaml:"search"`
	Ingest    IngestConfig    `yaml:"ingest"`
}

// StoreConfig selects the storage backend. The backend is an explicit
// choice made here, never substituted at runtime.
type StoreConfig struct {
	Backend   string `yaml:"backend"`    // "memory" or "bolt"
	IndexName string `yaml:"index_name"` // logical index name reported by stats
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`    // "openai", "deepseek", "jina", "ollama", "mock"
	Model     string `yaml:"model"`       // e.g., "text-embedding-3-small"
	APIKeyEnv string `yaml:"api_key_env"` // environment variable holding the API key
	BaseURL   string `yaml:"base_url"`    // override for self-hosted providers
	Dimension int    `yaml:"dimension"`   // used by the mock provider
	BatchSize int    `yaml:"batch_size"`
}

// LLMConfig holds answer-synthesis configuration.
type LLMConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Model       string  `yaml:"model"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
}

// SearchConfig holds retrieval configuration.
type SearchConfig struct {
	TopK     int     `yaml:"top_k"`
	MinScore float64 `yaml:"min_score"` // filter results below this score (0 = disabled)
}

// IngestConfig holds directory ingestion configuration.
type IngestConfig struct {
	Includes       []string `yaml:"includes"`
	Excludes       []string `yaml:"excludes"`
	SectionLines   int      `yaml:"section_lines"`
	SectionOverlap int      `yaml:"section_overlap"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:   "memory",
			IndexName: "docsearch",
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 1536,
			BatchSize: 100,
		},
		LLM: LLMConfig{
			Enabled:     false,
			Model:       "gpt-3.5-turbo",
			APIKeyEnv:   "OPENAI_API_KEY",
			Temperature: 0.1,
		},
		Search: SearchConfig{
			TopK: 5,
		},
		Ingest: IngestConfig{
			Includes:       []string{"**/*.md", "**/*.txt"},
			Excludes:       []string{"**/node_modules/**", "**/vendor/**", "**/.git/**"},
			SectionLines:   40,
			SectionOverlap: 5,
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for docsearch.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "docsearch.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".docsearch", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// IndexDBPath returns the path to the persistent index database.
func IndexDBPath(dir string) string {
	return filepath.Join(dir, ".docsearch", "index.db")
}

// EnsureDataDir ensures the .docsearch directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".docsearch"), 0755)
}
