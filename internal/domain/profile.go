package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/vladimiradmaev/medscan/internal/errors"
)

const DefaultLanguage = "English"

// UserProfile is the demographic context passed to every extraction.
type UserProfile struct {
	Name          string   `json:"name"`
	Age           int      `json:"age"`
	Gender        string   `json:"gender"`
	Conditions    []string `json:"conditions"`
	FamilyHistory []string `json:"familyHistory"`
	Language      string   `json:"language"`
}

// DefaultProfile is used when a user uploads a report before filling in a profile.
func DefaultProfile(name string) UserProfile {
	return UserProfile{
		Name:          name,
		Age:           30,
		Conditions:    []string{},
		FamilyHistory: []string{},
		Language:      DefaultLanguage,
	}
}

// PreferredLanguage returns the language insights should be written in.
func (p UserProfile) PreferredLanguage() string {
	if strings.TrimSpace(p.Language) == "" {
		return DefaultLanguage
	}
	return p.Language
}

// ContextJSON serializes the profile for prompt context.
func (p UserProfile) ContextJSON() string {
	if p.Conditions == nil {
		p.Conditions = []string{}
	}
	if p.FamilyHistory == nil {
		p.FamilyHistory = []string{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// ParseProfile reads the "key=value; key=value" form used by the /profile command.
// Fields not mentioned keep the values from base. Errors are validation AppErrors.
func ParseProfile(text string, base UserProfile) (UserProfile, error) {
	profile := base
	for _, field := range strings.FieldsFunc(text, func(r rune) bool { return r == ';' || r == '\n' }) {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return base, apperrors.NewValidationError(fmt.Sprintf("expected key=value, got %q", field))
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "name":
			profile.Name = value
		case "age":
			age, err := strconv.Atoi(value)
			if err != nil || age <= 0 || age > 130 {
				return base, apperrors.NewValidationError(fmt.Sprintf("invalid age %q", value))
			}
			profile.Age = age
		case "gender":
			profile.Gender = value
		case "conditions":
			profile.Conditions = splitList(value)
		case "family", "family_history", "familyhistory":
			profile.FamilyHistory = splitList(value)
		case "language", "lang":
			profile.Language = value
		default:
			return base, apperrors.NewValidationError(fmt.Sprintf("unknown profile field %q", strings.TrimSpace(key)))
		}
	}
	return profile, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
