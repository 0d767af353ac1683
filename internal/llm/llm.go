package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

const (
	defaultOllamaModel = "llama3.1:8b"
	defaultOpenAIModel = "gpt-4o-mini"
	defaultOllamaHost  = "http://localhost:11434"
	defaultOpenAIBase  = "https://api.openai.com/v1"
	// Attachment context is clipped well below common 128k-token windows
	// (roughly 4 chars/token) to leave room for the instructions themselves.
	maxContextChars = 200_000
)

const defaultLLMHTTPTimeout = 3 * time.Minute

// ErrEmptyPrompt is returned when there are no instructions to refine.
var ErrEmptyPrompt = errors.New("instructions are empty")

// Config describes how to build an LLM client.
type Config struct {
	Provider   string
	Model      string
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
}

// Attachment is extra context sent alongside the instructions.
type Attachment struct {
	Name    string
	Content string
}

// RefineRequest is the draft a user wants rewritten into a sharper prompt.
type RefineRequest struct {
	Instructions string
	Feedback     string
	Attachments  []Attachment
}

// Client refines prompt drafts.
type Client interface {
	Refine(ctx context.Context, req RefineRequest) (string, error)
	Name() string
	Model() string
}

// NewFromEnv inspects the config and environment variables to build a client.
func NewFromEnv(cfg Config) (Client, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = strings.ToLower(os.Getenv("PROMPTMAKER_PROVIDER"))
	}
	if provider == "" {
		provider = ProviderOllama
	}
	switch provider {
	case ProviderOllama:
		host := cfg.Endpoint
		if host == "" {
			host = envOr("OLLAMA_HOST", defaultOllamaHost)
		}
		return &ollamaClient{
			host:   strings.TrimRight(host, "/"),
			model:  firstNonEmpty(cfg.Model, os.Getenv("OLLAMA_MODEL"), defaultOllamaModel),
			client: pickHTTPClient(cfg.HTTPClient),
		}, nil
	case ProviderOpenAI:
		key := firstNonEmpty(cfg.APIKey, os.Getenv("OPENAI_API_KEY"))
		if key == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		base := cfg.Endpoint
		if base == "" {
			base = envOr("OPENAI_BASE_URL", defaultOpenAIBase)
		}
		return &openAIClient{
			apiKey: key,
			model:  firstNonEmpty(cfg.Model, os.Getenv("OPENAI_MODEL"), defaultOpenAIModel),
			base:   strings.TrimRight(base, "/"),
			client: pickHTTPClient(cfg.HTTPClient),
		}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

// ProviderModels lists the models offered for one provider in the picker.
type ProviderModels struct {
	Provider string
	Title    string
	Models   []string
}

// Catalog returns the known models grouped by provider. The active model is
// included even when it is not part of the built-in list.
func Catalog(active Client) []ProviderModels {
	catalog := []ProviderModels{
		{Provider: ProviderOllama, Title: "Ollama", Models: []string{"llama3.1:8b", "llama3.2:3b", "mistral:7b", "qwen2.5:7b", "gemma2:9b"}},
		{Provider: ProviderOpenAI, Title: "OpenAI", Models: []string{"gpt-4o-mini", "gpt-4o", "gpt-4.1", "gpt-4.1-mini", "o3-mini"}},
	}
	if active == nil {
		return catalog
	}
	provider := ProviderOf(active)
	for i := range catalog {
		if catalog[i].Provider != provider {
			continue
		}
		for _, model := range catalog[i].Models {
			if model == active.Model() {
				return catalog
			}
		}
		catalog[i].Models = append([]string{active.Model()}, catalog[i].Models...)
	}
	return catalog
}

// ProviderOf reports which provider backs client.
func ProviderOf(client Client) string {
	switch client.(type) {
	case *openAIClient:
		return ProviderOpenAI
	case *ollamaClient:
		return ProviderOllama
	default:
		return ""
	}
}

// SplitModelRef splits "provider/model" as produced by the model picker.
func SplitModelRef(ref string) (provider, model string) {
	provider, model, ok := strings.Cut(ref, "/")
	if !ok {
		return "", ref
	}
	return provider, model
}

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	// Local models often need more than a minute; cancellation comes from the caller's context.
	return &http.Client{Timeout: defaultLLMHTTPTimeout}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
