package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/medscan/internal/bot/menus"
	"github.com/vladimiradmaev/medscan/internal/bot/state"
	"github.com/vladimiradmaev/medscan/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	*responder
	profiles *ProfileEditor
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api BotAPI, deps Dependencies, stateManager *state.Manager) *CommandHandler {
	r := newResponder(api, deps, stateManager)
	return &CommandHandler{responder: r, profiles: &ProfileEditor{responder: r}}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	userID := message.From.ID
	chatID := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())
	logger.Info("Handling command", "command", message.Command(), "user_id", userID)

	switch message.Command() {
	case "start":
		h.stateManager.ClearUserState(userID)
		return menus.SendMainMenu(h.api, chatID)
	case "help":
		return menus.SendHelp(h.api, chatID)
	case "profile":
		if args == "" {
			return h.showProfile(ctx, userID, chatID, message.From.FirstName)
		}
		return h.profiles.Apply(ctx, message.From, chatID, args)
	case "history":
		return h.showHistory(ctx, userID, chatID)
	case "trends":
		if args != "" {
			return h.showTrend(ctx, userID, chatID, args)
		}
		return h.showTrends(ctx, userID, chatID)
	case "voice":
		return h.sendVoiceSummary(userID, chatID)
	default:
		return h.sendText(chatID, "Unknown command. Use /help to see the available commands.", nil)
	}
}
