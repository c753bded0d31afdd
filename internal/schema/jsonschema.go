package schema

import (
	"encoding/json"

	"github.com/google/generative-ai-go/genai"
)

// JSONSchema renders a genai schema as a JSON Schema document for providers
// that take the standard format.
func JSONSchema(s *genai.Schema) json.RawMessage {
	data, err := json.Marshal(toJSONSchema(s))
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return data
}

func toJSONSchema(s *genai.Schema) map[string]any {
	if s == nil {
		return map[string]any{}
	}
	out := map[string]any{"type": typeName(s.Type)}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if s.Items != nil {
		out["items"] = toJSONSchema(s.Items)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = toJSONSchema(p)
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	if s.Nullable {
		out["nullable"] = true
	}
	return out
}

func typeName(t genai.Type) string {
	switch t {
	case genai.TypeString:
		return "string"
	case genai.TypeNumber:
		return "number"
	case genai.TypeInteger:
		return "integer"
	case genai.TypeBoolean:
		return "boolean"
	case genai.TypeArray:
		return "array"
	case genai.TypeObject:
		return "object"
	default:
		return "string"
	}
}
