package handlers

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/medscan/internal/bot/state"
	"github.com/vladimiradmaev/medscan/internal/domain"
	apperrors "github.com/vladimiradmaev/medscan/internal/errors"
)

// TextHandler handles text messages
type TextHandler struct {
	*responder
	profiles *ProfileEditor
}

// NewTextHandler creates a new text handler
func NewTextHandler(api BotAPI, deps Dependencies, stateManager *state.Manager) *TextHandler {
	r := newResponder(api, deps, stateManager)
	return &TextHandler{responder: r, profiles: &ProfileEditor{responder: r}}
}

// Handle processes a text message: a profile edit when one was requested,
// otherwise a question about the last analyzed report.
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	userID := message.From.ID
	chatID := message.Chat.ID

	if h.stateManager.GetUserState(userID) == state.WaitingForProfile {
		return h.profiles.Apply(ctx, message.From, chatID, message.Text)
	}

	session := h.stateManager.Session(userID)
	if session == nil {
		return h.sendText(chatID, noReportText+" Then you can ask me questions about it.", nil)
	}

	if _, err := h.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		h.errHandler.Handle(ctx, err)
	}

	reply, err := session.Send(ctx, message.Text)
	if err != nil {
		if apperrors.IsValidation(err) {
			return h.sendText(chatID, "Please type your question.", nil)
		}
		h.errHandler.Handle(ctx, err)
		return nil
	}
	return h.sendText(chatID, truncate(reply), nil)
}

// ProfileEditor applies "key=value; ..." profile edits.
type ProfileEditor struct {
	*responder
}

func (e *ProfileEditor) Apply(ctx context.Context, from *tgbotapi.User, chatID int64, text string) error {
	current, err := e.deps.Profiles.GetOrDefault(ctx, from.ID, from.FirstName)
	if err != nil {
		e.errHandler.Handle(ctx, err)
		return e.sendText(chatID, storageErrorText, backMenu())
	}

	updated, err := domain.ParseProfile(text, current)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return e.sendText(chatID, "❌ "+appErr.Message+"\n\n"+profilePrompt, backMenu())
	}
	if err := e.deps.Profiles.Save(ctx, from.ID, updated); err != nil {
		e.errHandler.Handle(ctx, err)
		return e.sendText(chatID, storageErrorText, backMenu())
	}

	e.stateManager.ClearUserState(from.ID)
	return e.sendText(chatID, "✅ Profile saved\n\n"+FormatProfile(updated), backMenu())
}
