// Package telegram delivers notifications to a single Telegram chat.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Delivery failures returned by Send.
var (
	// ErrRejected means the Bot API answered and refused the message.
	ErrRejected = errors.New("telegram rejected message")
	// ErrNetwork means no answer was received from the Bot API.
	ErrNetwork = errors.New("telegram unreachable")
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Sender sends text messages to one chat.
type Sender struct {
	api    telegramAPI
	chatID int64
	log    *slog.Logger
}

// New creates a Sender for chatID authorized with token.
func New(token string, chatID int64, log *slog.Logger) (*Sender, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	log.Debug("authorized on telegram", "bot", api.Self.UserName)
	return newSender(api, chatID, log), nil
}

func newSender(api telegramAPI, chatID int64, log *slog.Logger) *Sender {
	return &Sender{api: api, chatID: chatID, log: log}
}

// Send delivers text to the configured chat.
// The Bot API call is not cancellable; ctx is only checked before sending.
func (s *Sender) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(s.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := s.api.Send(msg); err != nil {
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) {
			return fmt.Errorf("%w: code %d: %w", ErrRejected, apiErr.Code, err)
		}
		// The request URL embeds the bot token; keep only the cause.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	s.log.Info("message sent", "chat_id", s.chatID)
	return nil
}
