package llm

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestPickHTTPClientHonorsCustomClient(t *testing.T) {
	custom := &http.Client{Timeout: 42 * time.Second}
	if got := pickHTTPClient(custom); got != custom {
		t.Fatalf("expected custom client to be returned")
	}
}

func TestPickHTTPClientUsesLongerTimeout(t *testing.T) {
	client := pickHTTPClient(nil)
	if client.Timeout != defaultLLMHTTPTimeout {
		t.Fatalf("expected default timeout %s, got %s", defaultLLMHTTPTimeout, client.Timeout)
	}
}

func TestNewFromEnvDefaultsToOllama(t *testing.T) {
	t.Setenv("PROMPTMAKER_PROVIDER", "")
	t.Setenv("OLLAMA_HOST", "http://ollama.local:11434/")
	t.Setenv("OLLAMA_MODEL", "")

	client, err := NewFromEnv(Config{})
	if err != nil {
		t.Fatalf("NewFromEnv() error = %v", err)
	}
	ollama, ok := client.(*ollamaClient)
	if !ok {
		t.Fatalf("expected ollama client, got %T", client)
	}
	if ollama.host != "http://ollama.local:11434" {
		t.Fatalf("host mismatch: %s", ollama.host)
	}
	if ollama.model != defaultOllamaModel {
		t.Fatalf("model mismatch: got %s want %s", ollama.model, defaultOllamaModel)
	}
	if ProviderOf(client) != ProviderOllama {
		t.Fatalf("provider mismatch: %s", ProviderOf(client))
	}
}

func TestNewFromEnvOpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewFromEnv(Config{Provider: "openai"}); err == nil {
		t.Fatal("expected an error without an API key")
	}
	client, err := NewFromEnv(Config{Provider: "OpenAI", APIKey: "sk-test", Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("NewFromEnv() error = %v", err)
	}
	if client.Model() != "gpt-4o" || ProviderOf(client) != ProviderOpenAI {
		t.Fatalf("unexpected client: %s", client.Name())
	}
}

func TestNewFromEnvRejectsUnknownProvider(t *testing.T) {
	if _, err := NewFromEnv(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Fatal("expected unknown provider error")
	}
}

func TestCatalogIncludesActiveModel(t *testing.T) {
	client := &ollamaClient{model: "phi3:mini"}
	catalog := Catalog(client)
	if catalog[0].Models[0] != "phi3:mini" {
		t.Fatalf("active model should lead its provider list: %v", catalog[0].Models)
	}
	known := &ollamaClient{model: "mistral:7b"}
	if got := Catalog(known); len(got[0].Models) != 5 {
		t.Fatalf("known model should not be duplicated: %v", got[0].Models)
	}
}

func TestSplitModelRef(t *testing.T) {
	provider, model := SplitModelRef("openai/gpt-4o")
	if provider != "openai" || model != "gpt-4o" {
		t.Fatalf("split mismatch: %s %s", provider, model)
	}
	provider, model = SplitModelRef("llama3.1:8b")
	if provider != "" || model != "llama3.1:8b" {
		t.Fatalf("bare model mismatch: %q %q", provider, model)
	}
}

func TestBuildRefinePrompt(t *testing.T) {
	if _, err := buildRefinePrompt(RefineRequest{Instructions: "   "}); !errors.Is(err, ErrEmptyPrompt) {
		t.Fatalf("expected ErrEmptyPrompt, got %v", err)
	}
	prompt, err := buildRefinePrompt(RefineRequest{
		Instructions: "summarize the report",
		Feedback:     "mention the audience",
		Attachments:  []Attachment{{Name: "report.pdf", Content: "quarterly numbers"}},
	})
	if err != nil {
		t.Fatalf("buildRefinePrompt() error = %v", err)
	}
	for _, want := range []string{"summarize the report", "mention the audience", "--- report.pdf ---", "quarterly numbers"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildAttachmentContextRespectsBudget(t *testing.T) {
	got := buildAttachmentContext([]Attachment{
		{Name: "a", Content: "0123456789"},
		{Name: "b", Content: "abcdef"},
		{Name: "c", Content: "never"},
	}, 13)
	if !strings.Contains(got, "0123456789") || !strings.Contains(got, "--- b ---\nabc\n") {
		t.Fatalf("unexpected clipping: %q", got)
	}
	if strings.Contains(got, "never") {
		t.Fatalf("budget exceeded: %q", got)
	}
}
