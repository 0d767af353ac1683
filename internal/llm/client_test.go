package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaClientRefine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		var payload struct {
			Model  string `json:"model"`
			System string `json:"system"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		if payload.Model != "llama3.2:3b" {
			t.Errorf("expected model llama3.2:3b, got %s", payload.Model)
		}
		if !strings.Contains(payload.Prompt, "write a haiku") {
			t.Errorf("prompt missing draft: %s", payload.Prompt)
		}
		if payload.Stream {
			t.Error("expected streaming to be disabled")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":"  Write a haiku about autumn.  ","done":true}`))
	}))
	defer server.Close()

	client := &ollamaClient{host: server.URL, model: "llama3.2:3b", client: server.Client()}
	result, err := client.Refine(context.Background(), RefineRequest{Instructions: "write a haiku"})
	if err != nil {
		t.Fatalf("refine failed: %v", err)
	}
	if result != "Write a haiku about autumn." {
		t.Fatalf("unexpected refine result: %q", result)
	}
}

func TestOllamaClientSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := &ollamaClient{host: server.URL, model: "missing", client: server.Client()}
	_, err := client.Refine(context.Background(), RefineRequest{Instructions: "draft"})
	if err == nil || !strings.Contains(err.Error(), "ollama API error") {
		t.Fatalf("expected API error, got %v", err)
	}
}

func TestOpenAIClientRefine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected auth header: %s", got)
		}
		var payload struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		if len(payload.Messages) != 2 || payload.Messages[1].Role != "user" {
			t.Errorf("unexpected messages: %+v", payload.Messages)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Refined prompt"}}]}`))
	}))
	defer server.Close()

	client := &openAIClient{apiKey: "sk-test", model: "gpt-4o-mini", base: server.URL, client: server.Client()}
	result, err := client.Refine(context.Background(), RefineRequest{Instructions: "draft"})
	if err != nil {
		t.Fatalf("refine failed: %v", err)
	}
	if result != "Refined prompt" {
		t.Fatalf("unexpected refine result: %q", result)
	}
}

func TestOpenAIClientNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := &openAIClient{apiKey: "k", model: "m", base: server.URL, client: server.Client()}
	if _, err := client.Refine(context.Background(), RefineRequest{Instructions: "draft"}); err == nil {
		t.Fatal("expected an error for empty choices")
	}
}
