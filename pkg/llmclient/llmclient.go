package llmclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	openaimodel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Builder produces a tool-calling chat model from provider configuration.
type Builder interface {
	New(ctx context.Context) (model.ToolCallingChatModel, error)
}

var _ Builder = (*Config)(nil)

// providerDefaults maps a provider preset to its chat-completion base URL.
// Local providers (ollama, vllm) do not require an API key.
var providerDefaults = map[string]struct {
	baseURL string
	keyless bool
}{
	"openai":     {baseURL: "https://api.openai.com/v1"},
	"openrouter": {baseURL: "https://openrouter.ai/api/v1"},
	"modelscope": {baseURL: "https://api-inference.modelscope.cn/v1"},
	"ollama":     {baseURL: "http://localhost:11434/v1", keyless: true},
	"vllm":       {baseURL: "http://localhost:8000/v1", keyless: true},
}

type Config struct {
	Provider           string        `envconfig:"PROVIDER" split_words:"true" default:"openai"`
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken *int          `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"4000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"60s"`
}

func (c *Config) Validate() error {
	provider := strings.ToLower(strings.TrimSpace(c.Provider))
	defaults, ok := providerDefaults[provider]
	if !ok {
		return fmt.Errorf("llmclient: unknown provider %q", c.Provider)
	}
	if !defaults.keyless && strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("llmclient: api key is required for provider %q", provider)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("llmclient: model is required")
	}
	return nil
}

// ResolvedBaseURL returns the explicit base URL when set, else the provider
// preset's default.
func (c *Config) ResolvedBaseURL() string {
	if trimmed := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/"); trimmed != "" {
		return trimmed
	}
	provider := strings.ToLower(strings.TrimSpace(c.Provider))
	if defaults, ok := providerDefaults[provider]; ok {
		return defaults.baseURL
	}
	return providerDefaults["openai"].baseURL
}

// New builds an eino chat model that can have gateway tools bound to it.
func (c *Config) New(ctx context.Context) (model.ToolCallingChatModel, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	conf := &openaimodel.ChatModelConfig{
		BaseURL:     c.ResolvedBaseURL(),
		APIKey:      strings.TrimSpace(c.APIKey),
		Model:       strings.TrimSpace(c.Model),
		MaxTokens:   c.MaxCompletionToken,
		Temperature: &c.Temperature,
		Timeout:     c.Timeout,
	}

	m, err := openaimodel.NewChatModel(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("llmclient: create chat model: %w", err)
	}
	return m, nil
}

// NewRawClient builds a plain OpenAI-compatible SDK client for single
// chat-completion calls outside the graph runtime.
func (c *Config) NewRawClient() (*openaisdk.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(c.APIKey)),
		option.WithBaseURL(c.ResolvedBaseURL()),
		option.WithRequestTimeout(c.Timeout),
	}

	client := openaisdk.NewClient(opts...)
	return &client, nil
}
