package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_MissingAPIKey(t *testing.T) {
	if _, err := NewClient("DOCSEARCH_TEST_ABSENT_KEY", "gpt-3.5-turbo", "", 0.1); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestClient_GenerateWithSystem(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "the answer"}}]}`))
	}))
	defer server.Close()

	t.Setenv("DOCSEARCH_TEST_KEY", "sk-test")
	client, err := NewClient("DOCSEARCH_TEST_KEY", "gpt-3.5-turbo", server.URL, 0.1)
	if err != nil {
		t.Fatal(err)
	}

	text, err := client.GenerateWithSystem("be helpful", "what is the answer")
	if err != nil {
		t.Fatalf("GenerateWithSystem failed: %v", err)
	}
	if text != "the answer" {
		t.Errorf("expected completion text, got %q", text)
	}

	if got.Model != "gpt-3.5-turbo" || got.Temperature != 0.1 {
		t.Errorf("unexpected request parameters: %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Errorf("unexpected messages: %+v", got.Messages)
	}
}

func TestClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	t.Setenv("DOCSEARCH_TEST_KEY", "sk-test")
	client, err := NewClient("DOCSEARCH_TEST_KEY", "gpt-3.5-turbo", server.URL, 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.Generate("hello"); err == nil {
		t.Error("expected error for empty choices")
	}
}
