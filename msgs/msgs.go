package msgs

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var (
	devBot    *tgbotapi.BotAPI
	devChatID int64
)

// InitDeveloperNotifications wires the Telegram channel used for operator
// alerts (integrity problems, storage failures the sweeper hits). With an
// empty token alerting stays disabled and sends are no-ops.
func InitDeveloperNotifications(token string, chatID int64) error {
	if token == "" || chatID == 0 {
		return nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return err
	}

	devBot = bot
	devChatID = chatID
	return nil
}

func SendNotificationToDeveloper(text string) {
	if devBot == nil {
		return
	}

	msg := tgbotapi.NewMessage(devChatID, text)
	if _, err := devBot.Send(msg); err != nil {
		log.Println("failed send notification to developer:", err)
	}
}
