package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"

	"github.com/vladimiradmaev/medscan/internal/domain"
)

// GeminiClient talks to the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = req.Schema.Schema

	doc := genai.Blob{MIMEType: req.Document.MIMEType, Data: req.Document.Data}
	resp, err := model.GenerateContent(ctx, doc, genai.Text(req.Prompt))
	if err != nil {
		return "", classifyGeminiError(err)
	}
	return responseText(resp)
}

func (c *GeminiClient) GenerateChat(ctx context.Context, req ChatRequest) (string, error) {
	model := c.client.GenerativeModel(c.model)
	if req.SystemInstruction != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemInstruction)}}
	}

	cs := model.StartChat()
	cs.History = geminiHistory(req.History)

	resp, err := cs.SendMessage(ctx, genai.Text(req.Message))
	if err != nil {
		return "", classifyGeminiError(err)
	}
	return responseText(resp)
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func geminiHistory(messages []domain.ChatMessage) []*genai.Content {
	history := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := "user"
		if m.Role == domain.RoleModel {
			role = "model"
		}
		history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Text)}})
	}
	return history
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}

func classifyGeminiError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return rejected(err)
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if isClientHTTPStatus(apiErr.HTTPCode()) {
			return rejected(err)
		}
		if st := apiErr.GRPCStatus(); st != nil {
			switch st.Code() {
			case codes.InvalidArgument, codes.PermissionDenied, codes.FailedPrecondition,
				codes.Unauthenticated, codes.NotFound:
				return rejected(err)
			}
		}
		return err
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) && isClientHTTPStatus(gErr.Code) {
		return rejected(err)
	}
	return err
}
