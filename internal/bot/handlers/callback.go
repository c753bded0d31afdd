package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/medscan/internal/bot/keyboards"
	"github.com/vladimiradmaev/medscan/internal/bot/menus"
	"github.com/vladimiradmaev/medscan/internal/bot/state"
	"github.com/vladimiradmaev/medscan/internal/logger"
)

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	*responder
	reports *ReportHandler
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api BotAPI, deps Dependencies, stateManager *state.Manager, reports *ReportHandler) *CallbackHandler {
	return &CallbackHandler{
		responder: newResponder(api, deps, stateManager),
		reports:   reports,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	// Answer the callback query first
	if _, err := h.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logger.Warn("Failed to answer callback query", "error", err)
	}
	if query.Message == nil {
		return nil
	}

	userID := query.From.ID
	chatID := query.Message.Chat.ID

	switch query.Data {
	case keyboards.CallbackMainMenu:
		h.stateManager.ClearUserState(userID)
		return menus.SendMainMenu(h.api, chatID)
	case keyboards.CallbackHelp:
		return menus.SendHelp(h.api, chatID)
	case keyboards.CallbackRetry:
		return h.reports.Retry(ctx, query.From, chatID)
	case keyboards.CallbackAskQuestion:
		if h.stateManager.Session(userID) == nil {
			return h.sendText(chatID, noReportText, nil)
		}
		return h.sendText(chatID, "💬 Type your question about the report, for example: \"What does my cholesterol mean?\"", nil)
	case keyboards.CallbackVoiceSummary:
		return h.sendVoiceSummary(userID, chatID)
	case keyboards.CallbackTrends:
		return h.showTrends(ctx, userID, chatID)
	case keyboards.CallbackHistory:
		return h.showHistory(ctx, userID, chatID)
	case keyboards.CallbackProfile:
		return h.showProfile(ctx, userID, chatID, query.From.FirstName)
	default:
		return h.sendText(chatID, "Unknown action. Use /start to open the main menu.", nil)
	}
}
