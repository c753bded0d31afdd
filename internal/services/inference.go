package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vladimiradmaev/medscan/internal/config"
	"github.com/vladimiradmaev/medscan/internal/domain"
	"github.com/vladimiradmaev/medscan/internal/schema"
)

var (
	// ErrServiceRejected marks a request the inference service refused to
	// serve. Retrying the same request will not help.
	ErrServiceRejected = errors.New("inference service rejected the request")
	// ErrEmptyResponse marks a reply that carried no text.
	ErrEmptyResponse = errors.New("inference service returned an empty response")
)

// StructuredRequest asks for a JSON document conforming to Schema.
type StructuredRequest struct {
	Document domain.Document
	Prompt   string
	Schema   schema.Descriptor
}

// StructuredGenerator produces schema-constrained JSON text from a document.
type StructuredGenerator interface {
	GenerateStructured(ctx context.Context, req StructuredRequest) (string, error)
}

// ChatRequest is one conversational turn. History holds the prior
// transcript; Message is the new user message.
type ChatRequest struct {
	SystemInstruction string
	History           []domain.ChatMessage
	Message           string
}

// ChatGenerator produces the next model turn of a conversation.
type ChatGenerator interface {
	GenerateChat(ctx context.Context, req ChatRequest) (string, error)
}

// Provider is an inference backend offering both call shapes.
type Provider interface {
	StructuredGenerator
	ChatGenerator
	Close() error
}

// NewProvider creates the inference client selected in the configuration.
func NewProvider(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unknown inference provider %q", cfg.Provider)
	}
}

func rejected(err error) error {
	return fmt.Errorf("%w: %w", ErrServiceRejected, err)
}

// isClientHTTPStatus reports whether an HTTP status means the request itself
// was refused. Timeouts and rate limits are transient.
func isClientHTTPStatus(code int) bool {
	return code >= 400 && code < 500 && code != 408 && code != 429
}
