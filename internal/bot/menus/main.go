package menus

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/medscan/internal/bot/keyboards"
)

// Sender is the part of the Telegram API the menus need.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

const mainMenuText = `🩺 *MedScan* explains your medical reports in plain language

📄 Send a photo or PDF of a lab report and I will:
• Point out the values that need attention
• Show which organs the findings relate to
• Suggest questions for your doctor
• Track your values across reports

After an analysis you can ask me follow-up questions in the chat.

⚠️ *Important:* this is reference information, always consult your doctor!`

const helpText = `Available commands:
/start - Show the main menu
/help - Show this message
/profile - Show or edit your profile
/history - List your analyzed reports
/trends - Compare values across reports
/trends <name> - Show one parameter, e.g. /trends Hemoglobin
/voice - Show the spoken summary of the last report

How to analyze a report:
1. Send a clear photo (JPEG, PNG, WEBP) or a PDF of the report
2. Wait for the analysis, it usually takes under a minute
3. Ask follow-up questions by typing them in the chat

Edit your profile with one line, for example:
/profile name=Ann; age=52; gender=female; conditions=hypertension; family=diabetes; language=English`

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api Sender, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, mainMenuText)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboards.MainMenu()
	if _, err := api.Send(msg); err != nil {
		// Fall back to plain text when Markdown is rejected
		msg.ParseMode = ""
		_, err = api.Send(msg)
		return err
	}
	return nil
}

// SendHelp sends the command overview
func SendHelp(api Sender, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, helpText)
	msg.ReplyMarkup = keyboards.BackMenu()
	_, err := api.Send(msg)
	return err
}
