package handlers

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/vladimiradmaev/medscan/internal/domain"
	apperrors "github.com/vladimiradmaev/medscan/internal/errors"
	"github.com/vladimiradmaev/medscan/internal/services"
)

// Telegram rejects messages longer than 4096 characters.
const maxMessageLength = 4000

var overallLabels = map[domain.OverallStatus]string{
	domain.OverallGood:            "✅ Looks good",
	domain.OverallAttentionNeeded: "⚠️ Some values need attention",
	domain.OverallConsultDoctor:   "🚨 Please consult a doctor",
}

var regionLabels = map[domain.Region]string{
	domain.RegionHead:    "Head",
	domain.RegionChest:   "Chest",
	domain.RegionAbdomen: "Abdomen",
}

var regionIcons = map[domain.RegionHealth]string{
	domain.RegionNone:                          "⚪",
	domain.RegionHealth(domain.OrganGood):      "🟢",
	domain.RegionHealth(domain.OrganMonitor):   "🟡",
	domain.RegionHealth(domain.OrganAttention): "🟠",
	domain.RegionHealth(domain.OrganCritical):  "🔴",
}

var directionIcons = map[services.Direction]string{
	services.DirectionRising:  "📈",
	services.DirectionFalling: "📉",
	services.DirectionStable:  "➖",
}

// FormatAnalysis renders the summary sent after a successful analysis.
func FormatAnalysis(record domain.AnalysisRecord) string {
	var b strings.Builder

	title := record.ReportType
	if title == "" {
		title = "Medical report"
	}
	emoji := record.SummaryEmoji
	if emoji == "" {
		emoji = "📋"
	}
	fmt.Fprintf(&b, "%s %s", emoji, title)
	if record.ReportDate != "" {
		fmt.Fprintf(&b, " (%s)", record.ReportDate)
	}
	b.WriteString("\n")
	if label, ok := overallLabels[record.OverallStatus]; ok {
		b.WriteString(label + "\n")
	}
	if record.OneLineSummary != "" {
		b.WriteString(record.OneLineSummary + "\n")
	}

	if len(record.AttentionItems) > 0 {
		b.WriteString("\nNeeds attention:\n")
		for _, item := range record.AttentionItems {
			name := item.SimpleName
			if name == "" {
				name = item.Parameter
			}
			fmt.Fprintf(&b, "• %s: %s", name, item.YourValue)
			if item.NormalRange != "" {
				fmt.Fprintf(&b, " (normal %s)", item.NormalRange)
			}
			fmt.Fprintf(&b, " - %s, %s\n", humanize(string(item.Status)), urgencyLabel(item.Urgency))
		}
	}
	if n := len(record.GoodItems); n > 0 {
		fmt.Fprintf(&b, "\n✅ %d %s in the normal range\n", n, plural(n, "parameter", "parameters"))
	}

	if len(record.OrganMap) > 0 {
		statuses := domain.RegionStatuses(record.OrganMap)
		parts := make([]string, 0, len(domain.Regions))
		for _, region := range domain.Regions {
			parts = append(parts, fmt.Sprintf("%s %s", regionIcons[statuses[region]], regionLabels[region]))
		}
		b.WriteString("\nBody map: " + strings.Join(parts, " · ") + "\n")
	}

	if schedule := record.MedicineAnalysis.Schedule; !schedule.IsEmpty() {
		b.WriteString("\nDaily plan:\n")
		writeSlot(&b, "Morning", schedule.Morning)
		writeSlot(&b, "Afternoon", schedule.Afternoon)
		writeSlot(&b, "Evening", schedule.Evening)
		writeSlot(&b, "Bedtime", schedule.Bedtime)
	}

	if len(record.DoctorQuestions) > 0 {
		b.WriteString("\nAsk your doctor:\n")
		for _, q := range record.DoctorQuestions {
			b.WriteString("• " + q + "\n")
		}
	}

	b.WriteString("\n💬 Type a question to learn more about this report.")
	return truncate(b.String())
}

func writeSlot(b *strings.Builder, label string, actions []string) {
	if len(actions) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(actions, "; "))
}

// FormatAnalysisFailure explains a failed analysis in terms of what the
// user can do about it.
func FormatAnalysisFailure(err error) string {
	var analysisErr *apperrors.AnalysisError
	if errors.As(err, &analysisErr) {
		switch {
		case analysisErr.HasCause(apperrors.CauseServiceRejected):
			return "❌ The analysis service could not process this document. Try a clearer photo, a single page, or an image instead of a PDF."
		case analysisErr.HasCause(apperrors.CauseMalformedResponse):
			return "❌ The analysis came back incomplete. Press Retry to run it again."
		}
	}
	return "❌ I could not reach the analysis service. Press Retry to try again without uploading the report again."
}

// FormatDocumentError explains why an upload was refused before analysis.
func FormatDocumentError(err error) string {
	if errors.Is(err, apperrors.ErrEmptyDocument) {
		return "The file is empty. Please send the report again."
	}
	return "I can read JPEG, PNG and WEBP images or PDF files. Please send the report in one of these formats."
}

// FormatHistory lists stored reports, newest first.
func FormatHistory(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return "🗂 Your history is empty. Send a report to get started."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🗂 %d %s in your history:\n", len(entries), plural(len(entries), "report", "reports"))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		flagged := 0
		for _, p := range e.Parameters {
			if p.Status != domain.StatusNormal {
				flagged++
			}
		}
		fmt.Fprintf(&b, "\n• %s: %s, %d %s, %d flagged", displayDate(e.Date), e.ReportType,
			len(e.Parameters), plural(len(e.Parameters), "value", "values"), flagged)
	}
	return truncate(b.String())
}

// FormatTrends renders the overview of every parameter with a delta.
func FormatTrends(deltas []services.TrendDelta) string {
	if len(deltas) == 0 {
		return "📈 Trends need at least two reports with the same parameter. Upload another report to compare."
	}

	var b strings.Builder
	b.WriteString("📈 Changes since the previous report:\n")
	for _, d := range deltas {
		fmt.Fprintf(&b, "\n%s %s: %s → %s (%s)", directionIcons[d.Direction], d.Parameter,
			formatNumber(d.Previous), formatNumber(d.Latest), signed(d.Difference))
	}
	b.WriteString("\n\nUse /trends <name> to see the full series of one parameter.")
	return truncate(b.String())
}

// FormatTrend renders the full series of one parameter.
func FormatTrend(trend services.ParameterTrend) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", directionIcons[trend.Delta.Direction], trend.Parameter)
	for _, p := range trend.Points {
		fmt.Fprintf(&b, "\n%s: %s", displayDate(p.Date), formatNumber(p.Value))
		if p.Status != "" && p.Status != domain.StatusNormal {
			fmt.Fprintf(&b, " (%s)", humanize(p.Status))
		}
	}
	fmt.Fprintf(&b, "\n\nLatest change: %s, %s", signed(trend.Delta.Difference), trend.Delta.Direction)
	return truncate(b.String())
}

// FormatProfile renders a profile with the hint for editing it.
func FormatProfile(p domain.UserProfile) string {
	orNone := func(items []string) string {
		if len(items) == 0 {
			return "none"
		}
		return strings.Join(items, ", ")
	}
	gender := p.Gender
	if gender == "" {
		gender = "not set"
	}
	return fmt.Sprintf("👤 Your profile\n\nName: %s\nAge: %d\nGender: %s\nConditions: %s\nFamily history: %s\nLanguage: %s",
		p.Name, p.Age, gender, orNone(p.Conditions), orNone(p.FamilyHistory), p.PreferredLanguage())
}

func urgencyLabel(u domain.Urgency) string {
	switch u {
	case domain.UrgencyUrgent:
		return "see a doctor soon"
	case domain.UrgencySoon:
		return "act soon"
	default:
		return "monitor"
	}
}

func displayDate(date string) string {
	if len(date) >= 10 {
		return date[:10]
	}
	if date == "" {
		return "undated"
	}
	return date
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func signed(v float64) string {
	v = math.Round(v*100) / 100
	if v > 0 {
		return "+" + formatNumber(v)
	}
	return formatNumber(v)
}

func humanize(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxMessageLength {
		return text
	}
	return string(runes[:maxMessageLength-1]) + "…"
}
