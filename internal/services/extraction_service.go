package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/vladimiradmaev/medscan/internal/domain"
	apperrors "github.com/vladimiradmaev/medscan/internal/errors"
	"github.com/vladimiradmaev/medscan/internal/logger"
	"github.com/vladimiradmaev/medscan/internal/schema"
)

// ExtractionService issues one structured extraction request and decodes
// the reply. Documents failing domain.Document.Validate are refused with
// that validation error; every other failure is an *apperrors.ExtractionError.
type ExtractionService struct {
	generator StructuredGenerator
}

func NewExtractionService(generator StructuredGenerator) *ExtractionService {
	return &ExtractionService{generator: generator}
}

// Extract sends doc with the prompt and schema and returns the JSON object
// found in the reply. profileContext replaces the profile placeholder of the
// prompt.
func (s *ExtractionService) Extract(ctx context.Context, doc domain.Document, prompt string, desc schema.Descriptor, profileContext string) (json.RawMessage, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	prompt = strings.ReplaceAll(prompt, profilePlaceholder, profileContext)

	text, err := s.generator.GenerateStructured(ctx, StructuredRequest{
		Document: doc,
		Prompt:   prompt,
		Schema:   desc,
	})
	if err != nil {
		return nil, classifyExtraction(desc.Name, err)
	}

	raw := extractJSON(text)
	if raw == "" {
		return nil, apperrors.NewExtractionError(desc.Name, apperrors.CauseMalformedResponse, errors.New("no JSON object in response"))
	}
	return json.RawMessage(raw), nil
}

// ExtractCoreFacts runs the core facts extraction.
func (s *ExtractionService) ExtractCoreFacts(ctx context.Context, doc domain.Document, profile domain.UserProfile) (domain.CoreFacts, error) {
	return extractInto[domain.CoreFacts](ctx, s, doc, coreFactsPrompt, schema.CoreFacts(), profile.ContextJSON())
}

// ExtractDeepInsights runs the deep insights extraction in the profile's language.
func (s *ExtractionService) ExtractDeepInsights(ctx context.Context, doc domain.Document, profile domain.UserProfile) (domain.DeepInsights, error) {
	prompt := strings.ReplaceAll(deepInsightsPrompt, languagePlaceholder, profile.PreferredLanguage())
	return extractInto[domain.DeepInsights](ctx, s, doc, prompt, schema.DeepInsights(), profile.ContextJSON())
}

type validated[T any] interface {
	*T
	Normalize()
	Validate() error
}

func extractInto[T any, P validated[T]](ctx context.Context, s *ExtractionService, doc domain.Document, prompt string, desc schema.Descriptor, profileContext string) (T, error) {
	var out T
	raw, err := s.Extract(ctx, doc, prompt, desc, profileContext)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, apperrors.NewExtractionError(desc.Name, apperrors.CauseMalformedResponse, err)
	}
	p := P(&out)
	p.Normalize()
	if err := p.Validate(); err != nil {
		logger.Warn("Extraction result failed validation", "part", desc.Name, "error", err)
		return out, apperrors.NewExtractionError(desc.Name, apperrors.CauseMalformedResponse, err)
	}
	return out, nil
}

func classifyExtraction(part string, err error) *apperrors.ExtractionError {
	switch {
	case errors.Is(err, ErrServiceRejected):
		return apperrors.NewExtractionError(part, apperrors.CauseServiceRejected, err)
	case errors.Is(err, ErrEmptyResponse):
		return apperrors.NewExtractionError(part, apperrors.CauseMalformedResponse, err)
	default:
		return apperrors.NewExtractionError(part, apperrors.CauseNetwork, err)
	}
}

// extractJSON attempts to extract a valid JSON object from the given string.
// It handles cases where the JSON is wrapped in code blocks (```json ... ```) or other text.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}
