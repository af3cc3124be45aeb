package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Типы Bot API, с которыми работает диспетчер команд
type (
	Update  = tgbotapi.Update
	Message = tgbotapi.Message
	Chat    = tgbotapi.Chat
)
