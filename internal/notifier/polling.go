package notifier

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// CommandHandler is called when a user command is received.
type CommandHandler func(ctx context.Context, command string) string

// StartPolling begins long-polling for Telegram commands. Blocks until ctx is cancelled.
// Messages from chats other than the configured one are ignored.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			log.Info("telegram polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			t.dispatch(ctx, update, handler)
		}
	}
}

func (t *TelegramNotifier) dispatch(ctx context.Context, update tgbotapi.Update, handler CommandHandler) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || strings.TrimSpace(msg.Text) == "" {
		return
	}
	if msg.Chat.ID != t.chatID {
		log.WithField("chat", msg.Chat.ID).Warn("ignoring message from unknown chat")
		return
	}
	text := strings.TrimSpace(msg.Text)
	log.WithField("command", text).Info("received command")
	reply := handler(ctx, text)
	if reply == "" {
		return
	}
	if err := t.sendTo(msg.Chat.ID, reply); err != nil {
		log.WithError(err).Error("send reply")
	}
}
