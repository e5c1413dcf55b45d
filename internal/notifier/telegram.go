package notifier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Notifier delivers a formatted message to the operator.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// botAPI is the subset of tgbotapi.BotAPI the notifier uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	bot         botAPI
	chatID      int64
	BackoffBase time.Duration
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, chatID, proxyURL string) (*TelegramNotifier, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat id: %w", err)
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	client := &http.Client{Timeout: 75 * time.Second, Transport: transport}
	bot, err := tgbotapi.NewBotAPIWithClient(botToken, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	log.WithField("bot", bot.Self.UserName).Info("telegram bot authorized")
	return newTelegramNotifier(bot, id), nil
}

func newTelegramNotifier(bot botAPI, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{bot: bot, chatID: chatID, BackoffBase: time.Second}
}

// Send sends an HTML message to the configured chat.
func (t *TelegramNotifier) Send(text string) error {
	return t.sendTo(t.chatID, text)
}

func (t *TelegramNotifier) sendTo(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		err := t.Send(text)
		if err == nil {
			return nil
		}
		lastErr = err
		if i == maxRetries {
			break
		}
		backoff := t.BackoffBase * time.Duration(1<<uint(i))
		log.WithError(err).Warnf("telegram send failed (attempt %d/%d), retrying in %v", i+1, maxRetries+1, backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("all %d attempts failed: %w", maxRetries+1, lastErr)
}

// LogNotifier writes messages to the log. Used when Telegram is not configured.
type LogNotifier struct{}

// SendWithRetry logs text and never fails.
func (LogNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	log.WithField("notifier", "log").Info(text)
	return nil
}
