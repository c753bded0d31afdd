package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vladimiradmaev/medscan/internal/errors"
)

func TestParseProfile(t *testing.T) {
	base := DefaultProfile("Ann")

	profile, err := ParseProfile("Age = 52; gender=female;\nconditions=hypertension, , asthma; family_history=diabetes; lang=Spanish", base)
	require.NoError(t, err)

	assert.Equal(t, "Ann", profile.Name)
	assert.Equal(t, 52, profile.Age)
	assert.Equal(t, "female", profile.Gender)
	assert.Equal(t, []string{"hypertension", "asthma"}, profile.Conditions)
	assert.Equal(t, []string{"diabetes"}, profile.FamilyHistory)
	assert.Equal(t, "Spanish", profile.Language)
}

func TestParseProfile_Errors(t *testing.T) {
	base := DefaultProfile("Ann")
	for _, input := range []string{"age=0", "age=abc", "height=180", "just text"} {
		t.Run(input, func(t *testing.T) {
			profile, err := ParseProfile(input, base)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, base, profile)
		})
	}
}

func TestUserProfile_PreferredLanguage(t *testing.T) {
	assert.Equal(t, DefaultLanguage, UserProfile{Language: "  "}.PreferredLanguage())
	assert.Equal(t, "German", UserProfile{Language: "German"}.PreferredLanguage())
}

func TestUserProfile_ContextJSON(t *testing.T) {
	data := UserProfile{Name: "Bob", Age: 61}.ContextJSON()

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(data), &decoded))
	assert.Equal(t, "Bob", decoded["name"])
	assert.Equal(t, float64(61), decoded["age"])
	assert.Equal(t, []any{}, decoded["conditions"])
	assert.Equal(t, []any{}, decoded["familyHistory"])
}
