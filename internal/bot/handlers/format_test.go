package handlers

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/vladimiradmaev/medscan/internal/domain"
	apperrors "github.com/vladimiradmaev/medscan/internal/errors"
	"github.com/vladimiradmaev/medscan/internal/services"
)

func TestFormatAnalysis(t *testing.T) {
	text := FormatAnalysis(*sampleRecord())

	assert.True(t, strings.HasPrefix(text, "🩸 Blood Test (2025-10-01)\n"))
	assert.Contains(t, text, "⚠️ Some values need attention")
	assert.Contains(t, text, "• Blood Sugar Level: 132 mg/dL (normal 70-100 mg/dL) - high, act soon")
	assert.Contains(t, text, "✅ 1 parameter in the normal range")
	assert.Contains(t, text, "Body map: ⚪ Head · 🟢 Chest · 🟠 Abdomen")
	assert.Contains(t, text, "Morning: Walk 20 minutes")
	assert.NotContains(t, text, "Evening:")
	assert.Contains(t, text, "• Should I repeat the test?")
}

func TestFormatAnalysis_MinimalRecord(t *testing.T) {
	text := FormatAnalysis(domain.AnalysisRecord{OverallStatus: domain.OverallGood})

	assert.True(t, strings.HasPrefix(text, "📋 Medical report\n✅ Looks good"))
	assert.NotContains(t, text, "Body map")
	assert.NotContains(t, text, "Daily plan")
	assert.NotContains(t, text, "Needs attention")
}

func TestFormatAnalysisFailure(t *testing.T) {
	failure := func(cause apperrors.ExtractionCause) error {
		return &apperrors.AnalysisError{Failures: []*apperrors.ExtractionError{
			apperrors.NewExtractionError("core_facts", cause, errors.New("boom")),
		}}
	}

	assert.Contains(t, FormatAnalysisFailure(failure(apperrors.CauseServiceRejected)), "could not process this document")
	assert.Contains(t, FormatAnalysisFailure(failure(apperrors.CauseMalformedResponse)), "came back incomplete")
	assert.Contains(t, FormatAnalysisFailure(failure(apperrors.CauseNetwork)), "could not reach")
	assert.Contains(t, FormatAnalysisFailure(errors.New("unexpected")), "could not reach")
}

func TestFormatDocumentError(t *testing.T) {
	assert.Contains(t, FormatDocumentError(apperrors.ErrEmptyDocument), "empty")
	assert.Contains(t, FormatDocumentError(apperrors.NewUnsupportedMediaError("text/plain")), "I can read")
}

func TestFormatHistory_NewestFirst(t *testing.T) {
	text := FormatHistory(services.DemoHistory().Reports)

	assert.Contains(t, text, "2 reports in your history")
	first := strings.Index(text, "2025-09-20")
	second := strings.Index(text, "2025-06-15")
	assert.True(t, first >= 0 && second > first, "newest report should come first")
	assert.Contains(t, text, "2025-06-15: Blood Test, 3 values, 2 flagged")
}

func TestFormatHistory_Empty(t *testing.T) {
	assert.Contains(t, FormatHistory(nil), "history is empty")
}

func TestFormatTrends(t *testing.T) {
	text := FormatTrends([]services.TrendDelta{
		{Parameter: "Blood Sugar Level", Previous: 145, Latest: 132, Difference: -13, Direction: services.DirectionFalling},
		{Parameter: "Hemoglobin", Previous: 13.5, Latest: 13.8, Difference: 0.3000000000000007, Direction: services.DirectionRising},
	})

	assert.Contains(t, text, "📉 Blood Sugar Level: 145 → 132 (-13)")
	assert.Contains(t, text, "📈 Hemoglobin: 13.5 → 13.8 (+0.3)")
	assert.Contains(t, FormatTrends(nil), "at least two reports")
}

func TestFormatTrend(t *testing.T) {
	text := FormatTrend(services.ParameterTrend{
		Parameter: "Total Cholesterol",
		Points: []services.TrendPoint{
			{Date: "2025-06-15", Value: 210, Status: string(domain.StatusSlightlyHigh)},
			{Date: "2025-09-20T10:00:00Z", Value: 190, Status: domain.StatusNormal},
		},
		Delta: services.TrendDelta{Difference: -20, Direction: services.DirectionFalling},
	})

	assert.Contains(t, text, "2025-06-15: 210 (slightly high)")
	assert.Contains(t, text, "2025-09-20: 190\n")
	assert.Contains(t, text, "Latest change: -20, falling")
}

func TestFormatProfile(t *testing.T) {
	text := FormatProfile(domain.DefaultProfile("Ann"))

	assert.Contains(t, text, "Name: Ann")
	assert.Contains(t, text, "Gender: not set")
	assert.Contains(t, text, "Conditions: none")
	assert.Contains(t, text, "Language: English")
}

func TestTruncate(t *testing.T) {
	short := "short message"
	assert.Equal(t, short, truncate(short))

	long := strings.Repeat("я", maxMessageLength+100)
	out := truncate(long)
	assert.Equal(t, maxMessageLength, utf8.RuneCountInString(out))
	assert.True(t, strings.HasSuffix(out, "…"))
}
