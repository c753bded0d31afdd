package handlers

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/medscan/internal/bot/keyboards"
	"github.com/vladimiradmaev/medscan/internal/bot/state"
	apperrors "github.com/vladimiradmaev/medscan/internal/errors"
	"github.com/vladimiradmaev/medscan/internal/logger"
	"github.com/vladimiradmaev/medscan/internal/services"
)

const (
	noReportText     = "📄 Analyze a report first: send a photo or a PDF of it."
	storageErrorText = "❌ I could not load your data right now. Please try again in a minute."
	profilePrompt    = "✏️ Send your profile in one line, for example:\nname=Ann; age=52; gender=female; conditions=hypertension; family=diabetes; language=English\n\nFields you leave out keep their current value."
)

// responder holds the views shared by commands and buttons.
type responder struct {
	api          BotAPI
	deps         Dependencies
	stateManager *state.Manager
	errHandler   *apperrors.Handler
}

func newResponder(api BotAPI, deps Dependencies, stateManager *state.Manager) *responder {
	return &responder{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
		errHandler:   apperrors.NewHandler(logger.GetLogger()),
	}
}

func (r *responder) sendText(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	_, err := r.api.Send(msg)
	return err
}

func backMenu() *tgbotapi.InlineKeyboardMarkup {
	kb := keyboards.BackMenu()
	return &kb
}

func (r *responder) seedDemo(ctx context.Context, userID int64) {
	if !r.deps.DemoHistory {
		return
	}
	seeded, err := r.deps.History.SeedIfEmpty(ctx, userID, services.DemoHistory())
	if err != nil {
		r.errHandler.Handle(ctx, err)
		return
	}
	if seeded {
		logger.WithUser(userID).Info("Seeded demo history")
	}
}

func (r *responder) showHistory(ctx context.Context, userID, chatID int64) error {
	r.seedDemo(ctx, userID)
	entries, err := r.deps.History.List(ctx, userID)
	if err != nil {
		r.errHandler.Handle(ctx, err)
		return r.sendText(chatID, storageErrorText, backMenu())
	}
	return r.sendText(chatID, FormatHistory(entries), backMenu())
}

func (r *responder) showTrends(ctx context.Context, userID, chatID int64) error {
	r.seedDemo(ctx, userID)
	deltas, err := r.deps.Trends.Overview(ctx, userID)
	if err != nil {
		r.errHandler.Handle(ctx, err)
		return r.sendText(chatID, storageErrorText, backMenu())
	}
	return r.sendText(chatID, FormatTrends(deltas), backMenu())
}

func (r *responder) showTrend(ctx context.Context, userID, chatID int64, name string) error {
	r.seedDemo(ctx, userID)
	trend, err := r.deps.Trends.TrendFor(ctx, userID, name)
	if errors.Is(err, apperrors.ErrInsufficientTrend) {
		return r.sendText(chatID, "📈 I need at least two readings of \""+name+"\" to show a trend.", backMenu())
	}
	if err != nil {
		r.errHandler.Handle(ctx, err)
		return r.sendText(chatID, storageErrorText, backMenu())
	}
	return r.sendText(chatID, FormatTrend(trend), backMenu())
}

func (r *responder) showProfile(ctx context.Context, userID, chatID int64, name string) error {
	profile, err := r.deps.Profiles.GetOrDefault(ctx, userID, name)
	if err != nil {
		r.errHandler.Handle(ctx, err)
		return r.sendText(chatID, storageErrorText, backMenu())
	}
	r.stateManager.SetUserState(userID, state.WaitingForProfile)
	return r.sendText(chatID, FormatProfile(profile)+"\n\n"+profilePrompt, backMenu())
}

func (r *responder) sendVoiceSummary(userID, chatID int64) error {
	session := r.stateManager.Session(userID)
	if session == nil {
		return r.sendText(chatID, noReportText, nil)
	}
	script := session.Record().SpokenSummaryScript
	if script == "" {
		script = "This report has no spoken summary."
	}
	return r.sendText(chatID, "🔊 "+truncate(script), nil)
}
