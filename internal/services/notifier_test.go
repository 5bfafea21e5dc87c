package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"pizocrm/internal/config"
	"pizocrm/internal/models"
)

type fakeMailer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeMailer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

type fakeBot struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func TestEmailNotifierRoutesToAdvisor(t *testing.T) {
	mailer := &fakeMailer{}
	n := newEmailNotifier(mailer, config.EmailConfig{
		FromEmail: "crm@pizo.mx",
		NotifyTo:  "ops@pizo.mx",
		Advisors:  map[string]string{"Ana": "ana@pizo.mx"},
	})

	require.NoError(t, n.LeadAwake(context.Background(), models.Lead{ID: "L1", Asesor: "ana", CondoName: "Torre <Sol>"}))
	require.NoError(t, n.LeadAwake(context.Background(), models.Lead{ID: "L2", Asesor: "beto"}))
	require.Len(t, mailer.sent, 2)

	assert.Equal(t, []string{"ana@pizo.mx"}, mailer.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"ops@pizo.mx"}, mailer.sent[1].GetHeader("To"))

	var body bytes.Buffer
	_, err := mailer.sent[0].WriteTo(&body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "Torre &lt;Sol&gt;")
}

func TestEmailNotifierSkipsWithoutRecipient(t *testing.T) {
	mailer := &fakeMailer{}
	n := newEmailNotifier(mailer, config.EmailConfig{})
	require.NoError(t, n.LeadAwake(context.Background(), models.Lead{ID: "L1", Asesor: "ana"}))
	assert.Empty(t, mailer.sent)
}

func TestTelegramNotifierSendsToEveryChat(t *testing.T) {
	bot := &fakeBot{}
	n := &TelegramNotifier{bot: bot, chatIDs: []int64{10, 20}}

	require.NoError(t, n.LeadAwake(context.Background(), models.Lead{ID: "L1", CondoName: "Altos", Asesor: "ana"}))
	require.Len(t, bot.sent, 2)
	assert.Equal(t, int64(10), bot.sent[0].ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, bot.sent[1].ParseMode)
	assert.Contains(t, bot.sent[0].Text, "Altos")
}

func TestMultiNotifierJoinsErrors(t *testing.T) {
	bot := &fakeBot{err: errors.New("forbidden")}
	mailer := &fakeMailer{}
	m := MultiNotifier{
		&TelegramNotifier{bot: bot, chatIDs: []int64{1}},
		newEmailNotifier(mailer, config.EmailConfig{NotifyTo: "ops@pizo.mx"}),
		nil,
	}
	err := m.LeadAwake(context.Background(), models.Lead{ID: "L1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")
	assert.Len(t, mailer.sent, 1, "one failing channel does not stop the others")
}
