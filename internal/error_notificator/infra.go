package error_notificator

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voice_agent/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender - то, что нужно от *tgbotapi.BotAPI.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramInfra шлёт ошибки стадий в админский чат.
type TelegramInfra struct {
	bot         Sender
	adminChatID int64
}

func NewTelegramInfra(bot Sender, adminChatID int64) *TelegramInfra {
	return &TelegramInfra{bot: bot, adminChatID: adminChatID}
}

func (i *TelegramInfra) Notify(_ context.Context, source string, err error, details string) error {
	msg := tgbotapi.NewMessage(i.adminChatID, FormatMessage(source, err, details))

	if _, sendErr := i.bot.Send(msg); sendErr != nil {
		return fmt.Errorf("telegram send: %w", sendErr)
	}
	return nil
}

func FormatMessage(source string, err error, details string) string {
	return fmt.Sprintf(
		"❗ Ошибка в %s (%s)\n\nОшибка: %v\n\nДетали: %s",
		domain.ServiceName,
		source,
		err,
		details,
	)
}

// LogInfra - когда телеграм не настроен, ошибка просто пишется в лог.
type LogInfra struct {
	log domain.Logger
}

func NewLogInfra(log domain.Logger) *LogInfra {
	return &LogInfra{log: log}
}

func (i *LogInfra) Notify(_ context.Context, source string, err error, details string) error {
	i.log.Log(logger.LogEntry{
		Level:   "error",
		Message: fmt.Sprintf("[error_notificator] %s: %s", source, details),
		Service: domain.ServiceName,
		Error:   err,
	})
	return nil
}
