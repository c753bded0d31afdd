package handlers

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/medscan/internal/bot/keyboards"
	"github.com/vladimiradmaev/medscan/internal/bot/state"
	"github.com/vladimiradmaev/medscan/internal/domain"
	apperrors "github.com/vladimiradmaev/medscan/internal/errors"
	"github.com/vladimiradmaev/medscan/internal/services"
)

func TestReport_PhotoIsAnalyzedAndStartsSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.handler.Handle(ctx, photoUpdate()))

	require.Equal(t, 1, env.analyzer.callCount())
	call := env.analyzer.calls[0]
	assert.Equal(t, photoBytes, call.doc.Data)
	assert.Equal(t, domain.MIMEJPEG, call.doc.MIMEType)
	assert.Equal(t, "Ann", call.profile.Name)

	assert.Contains(t, env.api.lastText(), "Sugar is a little high.")
	assert.True(t, env.api.requested(func(c tgbotapi.Chattable) bool {
		_, ok := c.(tgbotapi.DeleteMessageConfig)
		return ok
	}), "progress message should be deleted")

	entries, err := env.history.List(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Blood Test", entries[0].ReportType)

	session := env.state.Session(testUserID)
	require.NotNil(t, session)
	assert.Equal(t, "Blood Test", session.Record().ReportType)
	_, pending := env.state.PendingDocument(testUserID)
	assert.False(t, pending)
	assert.False(t, env.state.IsAnalyzing(testUserID))
}

func TestReport_PDFDocument(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.handler.Handle(context.Background(), documentUpdate("report.pdf", "application/pdf")))

	require.Equal(t, 1, env.analyzer.callCount())
	assert.Equal(t, domain.MIMEPDF, env.analyzer.calls[0].doc.MIMEType)
}

func TestReport_UnsupportedDocumentIsNotAnalyzed(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.handler.Handle(context.Background(), documentUpdate("notes.txt", "text/plain")))

	assert.Zero(t, env.analyzer.callCount())
	assert.Contains(t, env.api.lastText(), "I can read JPEG, PNG and WEBP")
	_, pending := env.state.PendingDocument(testUserID)
	assert.False(t, pending)
}

func TestReport_DownloadFailure(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.handler.Handle(context.Background(), documentUpdate("gone.pdf", "application/pdf")))

	assert.Zero(t, env.analyzer.callCount())
	assert.Contains(t, env.api.lastText(), "could not download")
}

func TestReport_SecondUploadWhileAnalyzing(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.state.BeginAnalysis(testUserID))

	require.NoError(t, env.handler.Handle(context.Background(), photoUpdate()))

	assert.Zero(t, env.analyzer.callCount())
	assert.Contains(t, env.api.lastText(), "still working")
	assert.True(t, env.state.IsAnalyzing(testUserID))
}

func TestReport_FailureKeepsDocumentForRetry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.analyzer.set(nil, &apperrors.AnalysisError{Failures: []*apperrors.ExtractionError{
		apperrors.NewExtractionError("deep_insights", apperrors.CauseNetwork, context.DeadlineExceeded),
	}})

	require.NoError(t, env.handler.Handle(ctx, photoUpdate()))

	assert.Contains(t, env.api.lastText(), "Press Retry")
	_, pending := env.state.PendingDocument(testUserID)
	assert.True(t, pending)
	assert.Nil(t, env.state.Session(testUserID))
	entries, err := env.history.List(ctx, testUserID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	env.analyzer.set(sampleRecord(), nil)
	require.NoError(t, env.handler.Handle(ctx, callbackUpdate(keyboards.CallbackRetry)))

	require.Equal(t, 2, env.analyzer.callCount())
	assert.Equal(t, env.analyzer.calls[0].doc, env.analyzer.calls[1].doc)
	assert.Contains(t, env.api.lastText(), "Sugar is a little high.")
	_, pending = env.state.PendingDocument(testUserID)
	assert.False(t, pending)
	assert.NotNil(t, env.state.Session(testUserID))
}

func TestReport_RetryWithoutPendingDocument(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.handler.Handle(context.Background(), callbackUpdate(keyboards.CallbackRetry)))

	assert.Zero(t, env.analyzer.callCount())
	assert.Contains(t, env.api.lastText(), "nothing to retry")
}

func TestReport_UnsavedResultIsStillShown(t *testing.T) {
	env := newTestEnv(t)
	env.handler = NewUpdateHandler(env.api, Dependencies{
		Reports:  services.NewReportService(env.analyzer, failingHistory{}),
		History:  env.history,
		Profiles: env.profiles,
		Chat:     services.NewChatService(&fakeChat{reply: "ok"}, 0),
	}, env.state)

	require.NoError(t, env.handler.Handle(context.Background(), photoUpdate()))

	text := env.api.lastText()
	assert.Contains(t, text, "could not be saved")
	assert.Contains(t, text, "Sugar is a little high.")
	assert.NotNil(t, env.state.Session(testUserID))
}

func TestText_WithoutSession(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.handler.Handle(context.Background(), textUpdate("What does this mean?")))

	assert.Contains(t, env.api.lastText(), "Analyze a report first")
}

func TestText_QuestionGoesToSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.handler.Handle(ctx, photoUpdate()))

	require.NoError(t, env.handler.Handle(ctx, textUpdate("Is my sugar bad?")))

	assert.Equal(t, "Here is what it means (Is my sugar bad?)", env.api.lastText())
	assert.True(t, env.api.requested(func(c tgbotapi.Chattable) bool {
		action, ok := c.(tgbotapi.ChatActionConfig)
		return ok && action.Action == tgbotapi.ChatTyping
	}))

	messages := env.state.Session(testUserID).Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, domain.RoleModel, messages[0].Role)
	assert.Equal(t, "Is my sugar bad?", messages[1].Text)
}

func TestProfile_EditFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.handler.Handle(ctx, commandUpdate("/profile")))
	assert.Contains(t, env.api.lastText(), "Your profile")
	assert.Equal(t, state.WaitingForProfile, env.state.GetUserState(testUserID))

	require.NoError(t, env.handler.Handle(ctx, textUpdate("age=52; language=Spanish")))
	assert.Contains(t, env.api.lastText(), "Profile saved")
	assert.Equal(t, state.None, env.state.GetUserState(testUserID))

	profile, found, err := env.profiles.Get(ctx, testUserID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 52, profile.Age)
	assert.Equal(t, "Spanish", profile.Language)
	assert.Equal(t, "Ann", profile.Name)
}

func TestProfile_InvalidInputKeepsWaiting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.state.SetUserState(testUserID, state.WaitingForProfile)

	require.NoError(t, env.handler.Handle(ctx, textUpdate("age=old")))

	assert.Contains(t, env.api.lastText(), "invalid age")
	assert.Equal(t, state.WaitingForProfile, env.state.GetUserState(testUserID))
	_, found, err := env.profiles.Get(ctx, testUserID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestProfile_CommandArguments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.handler.Handle(ctx, commandUpdate("/profile gender=female; conditions=asthma, hypertension")))

	profile, found, err := env.profiles.Get(ctx, testUserID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "female", profile.Gender)
	assert.Equal(t, []string{"asthma", "hypertension"}, profile.Conditions)
}

func TestHistoryAndTrends_DemoSeed(t *testing.T) {
	env := newTestEnv(t, func(d *Dependencies) { d.DemoHistory = true })
	ctx := context.Background()

	require.NoError(t, env.handler.Handle(ctx, commandUpdate("/history")))
	assert.Contains(t, env.api.lastText(), "2 reports in your history")

	require.NoError(t, env.handler.Handle(ctx, callbackUpdate(keyboards.CallbackTrends)))
	assert.Contains(t, env.api.lastText(), "Hemoglobin: 13.5 → 13.8 (+0.3)")

	require.NoError(t, env.handler.Handle(ctx, commandUpdate("/trends total cholesterol")))
	assert.Contains(t, env.api.lastText(), "2025-06-15: 210 (slightly high)")
}

func TestTrends_NotEnoughData(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.handler.Handle(ctx, commandUpdate("/trends Hemoglobin")))
	assert.Contains(t, env.api.lastText(), "at least two readings")

	require.NoError(t, env.handler.Handle(ctx, commandUpdate("/history")))
	assert.Contains(t, env.api.lastText(), "history is empty")
}

func TestVoiceSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.handler.Handle(ctx, commandUpdate("/voice")))
	assert.Contains(t, env.api.lastText(), "Analyze a report first")

	require.NoError(t, env.handler.Handle(ctx, photoUpdate()))
	require.NoError(t, env.handler.Handle(ctx, callbackUpdate(keyboards.CallbackVoiceSummary)))
	assert.Equal(t, "🔊 Your sugar is slightly high.", env.api.lastText())
}

func TestCommands_StartAndUnknown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.state.SetUserState(testUserID, state.WaitingForProfile)

	require.NoError(t, env.handler.Handle(ctx, commandUpdate("/start")))
	assert.Contains(t, env.api.lastText(), "MedScan")
	assert.Equal(t, state.None, env.state.GetUserState(testUserID))

	require.NoError(t, env.handler.Handle(ctx, commandUpdate("/dance")))
	assert.Contains(t, env.api.lastText(), "Unknown command")
}

func TestCallback_IsAnswered(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.handler.Handle(context.Background(), callbackUpdate(keyboards.CallbackHelp)))

	assert.True(t, env.api.requested(func(c tgbotapi.Chattable) bool {
		cb, ok := c.(tgbotapi.CallbackConfig)
		return ok && cb.CallbackQueryID == "cb-1"
	}))
	assert.Contains(t, env.api.lastText(), "Available commands")
}

func TestUpdate_IgnoresEmptyUpdates(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.handler.Handle(context.Background(), tgbotapi.Update{}))
	require.NoError(t, env.handler.Handle(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{Text: "no sender"}}))

	assert.Empty(t, env.api.texts())
}
