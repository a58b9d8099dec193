package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Client is an embeddings client for OpenAI-compatible APIs.
type Client struct {
	apiKey    string
	model     string
	baseURL   string
	dimension int
	batchSize int
	http      *http.Client
}

type embedRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type embedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// modelDimensions maps known embedding models to their vector size.
var modelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
	"jina-embeddings-v3":     1024,
	"jina-embeddings-v4":     2048,
	"nomic-embed-text":       768,
	"mxbai-embed-large":      1024,
	"all-minilm":             384,
}

// NewClient creates an embeddings client against an OpenAI-compatible
// endpoint. The API key is read from the named environment variable;
// a missing key is a configuration error raised here, before any
// command executes.
func NewClient(apiKeyEnv, model, baseURL string) (*Client, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", apiKeyEnv)
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	dimension := 1536
	if d, ok := modelDimensions[model]; ok {
		dimension = d
	}

	return &Client{
		apiKey:    apiKey,
		model:     model,
		baseURL:   baseURL,
		dimension: dimension,
		batchSize: 100,
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// NewDeepSeekClient creates a client against the DeepSeek API.
func NewDeepSeekClient(apiKeyEnv, model string) (*Client, error) {
	return NewClient(apiKeyEnv, model, "https://api.deepseek.com/v1")
}

// NewJinaClient creates a client against the Jina API.
func NewJinaClient(apiKeyEnv, model string) (*Client, error) {
	return NewClient(apiKeyEnv, model, "https://api.jina.ai/v1")
}

// NewOllamaClient creates a client against a local Ollama server.
// Ollama requires no API key.
func NewOllamaClient(model, baseURL string) (*Client, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434/v1"
	}

	dimension := 768
	if d, ok := modelDimensions[model]; ok {
		dimension = d
	}

	return &Client{
		apiKey:    "ollama",
		model:     model,
		baseURL:   baseURL,
		dimension: dimension,
		batchSize: 100,
		http: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// Embed generates embeddings for the given texts, batching requests
// to stay under provider input limits.
func (c *Client) Embed(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var all [][]float32
	for i := 0; i < len(texts); i += c.batchSize {
		end := i + c.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch, err := c.embedBatch(texts[i:end])
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
	}

	return all, nil
}

func (c *Client) embedBatch(texts []string) ([][]float32, error) {
	body, err := json.Marshal(embedRequest{Input: texts, Model: c.model})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embeddings API returned status %d: %s", resp.StatusCode, truncate(respBody, 200))
	}

	var parsed embedResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response (body: %s): %w", truncate(respBody, 200), err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("embeddings API error: %s", parsed.Error.Message)
	}

	out := make([][]float32, len(texts))
	for _, d := range parsed.Data {
		if d.Index >= 0 && d.Index < len(out) {
			out[d.Index] = d.Embedding
		}
	}

	return out, nil
}

// Dimension returns the embedding vector dimension.
func (c *Client) Dimension() int {
	return c.dimension
}

// ModelName returns the name of the embedding model.
func (c *Client) ModelName() string {
	return c.model
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
