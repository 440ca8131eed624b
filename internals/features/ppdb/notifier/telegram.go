package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"sekolahku_backend/internals/features/ppdb/model"
	"sekolahku_backend/internals/helpers/dbtime"
)

// Telegram mengirim pemberitahuan pendaftar baru ke chat admin.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	school string
}

func NewTelegram(token string, chatID int64, school string) (*Telegram, error) {
	if token == "" || chatID == 0 {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN / TELEGRAM_CHAT_ID belum diset")
	}
	b, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Telegram{bot: b, chatID: chatID, school: school}, nil
}

func RegistrationAlert(school string, r *model.RegistrationModel) string {
	return fmt.Sprintf(
		"Pendaftar PPDB baru - %s\n\nNama: %s\nNISN: %s\nAsal sekolah: %s\nTelepon: %s\nWaktu: %s",
		school, r.FullName, r.NISN, deref(r.PreviousSchool, "-"), r.Phone,
		dbtime.ToSchoolTime(r.CreatedAt).Format("02 Jan 2006 15:04"),
	)
}

func (t *Telegram) NotifySubmitted(ctx context.Context, r *model.RegistrationModel) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(t.chatID, RegistrationAlert(t.school, r))
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

func deref(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
