package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/medscan/internal/interfaces"
)

// BotAPI is the part of *tgbotapi.BotAPI the handlers use.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	Reports  interfaces.ReportServiceInterface
	History  interfaces.HistoryServiceInterface
	Profiles interfaces.ProfileServiceInterface
	Trends   interfaces.TrendServiceInterface
	Chat     interfaces.ChatServiceInterface
	// DemoHistory seeds an empty history with sample reports the first time
	// a user asks for history or trends.
	DemoHistory bool
}
