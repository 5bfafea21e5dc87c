package services

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pizocrm/internal/models"
)

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts wake-ups to the operations chats.
type TelegramNotifier struct {
	bot     botSender
	chatIDs []int64
}

func NewTelegramNotifier(token string, chatIDs []int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatIDs: chatIDs}, nil
}

func (t *TelegramNotifier) LeadAwake(ctx context.Context, lead models.Lead) error {
	if t == nil || t.bot == nil || len(t.chatIDs) == 0 {
		return nil
	}
	text := fmt.Sprintf("⏰ <b>%s</b> volvió al tablero\nAsesor: %s\nEstatus: %s",
		escapeTelegram(leadTitle(lead)), escapeTelegram(lead.Asesor), escapeTelegram(string(lead.Estatus)))

	var errs []error
	for _, chatID := range t.chatIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableWebPagePreview = true
		if _, err := t.bot.Send(msg); err != nil {
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}
	return errors.Join(errs...)
}

func escapeTelegram(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

// MultiNotifier fans a notification out to every notifier and joins the errors.
type MultiNotifier []Notifier

func (m MultiNotifier) LeadAwake(ctx context.Context, lead models.Lead) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.LeadAwake(ctx, lead); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
