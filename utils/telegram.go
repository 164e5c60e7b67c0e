package utils

import (
	"log"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var (
	tgOnce sync.Once
	tgBot  *tgbotapi.BotAPI
)

// InitTelegramBot is called once from main when a bot token is configured.
func InitTelegramBot(token string) {
	tgOnce.Do(func() {
		if token == "" {
			return
		}
		bot, err := tgbotapi.NewBotAPI(token)
		if err != nil {
			log.Println("Telegram bot disabled:", err)
			return
		}
		tgBot = bot
	})
}

// SendTelegramNotification messages the seller's chat. Best effort only.
func SendTelegramNotification(chatID int64, text string) {
	if tgBot == nil || chatID == 0 {
		return
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := tgBot.Send(msg); err != nil {
		log.Println("Could not send Telegram notification:", err)
	}
}
