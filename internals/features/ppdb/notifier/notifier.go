package notifier

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/ppdb/model"
)

// SubmitNotifier dipanggil setelah pendaftaran baru tersimpan.
type SubmitNotifier interface {
	NotifySubmitted(ctx context.Context, r *model.RegistrationModel) error
}

// StatusNotifier dipanggil setelah admin mengubah status.
type StatusNotifier interface {
	NotifyStatus(ctx context.Context, r *model.RegistrationModel) error
}

// Set berisi semua kanal yang aktif; kanal yang tidak dikonfigurasi tidak dimasukkan.
type Set struct {
	OnSubmit map[string]SubmitNotifier
	OnStatus map[string]StatusNotifier
	Timeout  time.Duration
}

// Runner menjalankan f; default goroutine, test bisa menggantinya jadi sinkron.
type Runner func(f func())

func Async(f func()) { go f() }

// Submitted mengirim ke semua kanal OnSubmit tanpa menunggu hasil.
func (s *Set) Submitted(run Runner, r model.RegistrationModel) {
	for name, n := range s.OnSubmit {
		name, n := name, n
		run(func() {
			s.deliver(name, r.ID.String(), func(ctx context.Context) error { return n.NotifySubmitted(ctx, &r) })
		})
	}
}

func (s *Set) StatusChanged(run Runner, r model.RegistrationModel) {
	for name, n := range s.OnStatus {
		name, n := name, n
		run(func() {
			s.deliver(name, r.ID.String(), func(ctx context.Context) error { return n.NotifyStatus(ctx, &r) })
		})
	}
}

// deliver: kegagalan kanal hanya dicatat, tidak pernah mengubah respons.
func (s *Set) deliver(channel, regID string, f func(ctx context.Context) error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	defer func() {
		if rec := recover(); rec != nil {
			zap.L().Error("notifier panic", zap.String("channel", channel), zap.Any("panic", rec))
		}
	}()
	if err := f(ctx); err != nil {
		zap.L().Warn("notifikasi gagal", zap.String("channel", channel), zap.String("registration_id", regID), zap.Error(err))
		return
	}
	zap.L().Debug("notifikasi terkirim", zap.String("channel", channel), zap.String("registration_id", regID))
}

// StatusText: kalimat status yang dipakai push & email.
func StatusText(school string, r *model.RegistrationModel) (title, body string) {
	label := constants.PPDBStatusLabels[r.Status]
	if label == "" {
		label = r.Status
	}
	title = fmt.Sprintf("Status PPDB %s", school)
	body = fmt.Sprintf("Halo %s, status pendaftaran Anda: %s.", r.FullName, label)
	if r.Message != nil && *r.Message != "" {
		body += " Catatan: " + *r.Message
	}
	return title, body
}
