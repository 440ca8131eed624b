package notifier

import (
	"context"
	"fmt"
	"io"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sekolahku_backend/internals/features/ppdb/model"
)

// PushStore: subset repository yang dipakai pengirim push.
type PushStore interface {
	ActivePushSubscriptions(ctx context.Context, registrationID uuid.UUID) ([]model.PushSubscriptionModel, error)
	DisablePushSubscription(ctx context.Context, id uuid.UUID, reason string) error
}

type WebPush struct {
	store      PushStore
	opts       webpush.Options
	school     string
	httpClient webpush.HTTPClient
}

func NewWebPush(store PushStore, publicKey, privateKey, subscriber string, ttl int, school string) (*WebPush, error) {
	if publicKey == "" || privateKey == "" {
		return nil, fmt.Errorf("VAPID_PUBLIC_KEY / VAPID_PRIVATE_KEY belum diset")
	}
	if ttl <= 0 {
		ttl = 86400
	}
	return &WebPush{
		store:  store,
		school: school,
		opts: webpush.Options{
			Subscriber:      subscriber,
			VAPIDPublicKey:  publicKey,
			VAPIDPrivateKey: privateKey,
			TTL:             ttl,
			Urgency:         webpush.UrgencyNormal,
		},
	}, nil
}

// WithHTTPClient dipakai test.
func (w *WebPush) WithHTTPClient(c webpush.HTTPClient) *WebPush {
	w.httpClient = c
	return w
}

type pushPayload struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Status string `json:"status"`
	URL    string `json:"url"`
}

// NotifyStatus mengirim ke semua langganan aktif milik pendaftar.
// Endpoint yang dijawab 404/410 sudah mati dan langsung dinonaktifkan.
func (w *WebPush) NotifyStatus(ctx context.Context, r *model.RegistrationModel) error {
	subs, err := w.store.ActivePushSubscriptions(ctx, r.ID)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return nil
	}
	title, body := StatusText(w.school, r)
	payload, err := sonic.Marshal(pushPayload{Title: title, Body: body, Status: r.Status, URL: "/ppdb/status?nisn=" + r.NISN})
	if err != nil {
		return err
	}

	opts := w.opts
	if w.httpClient != nil {
		opts.HTTPClient = w.httpClient
	}

	failed := 0
	for _, s := range subs {
		keys := s.Keys.Data()
		resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
			Endpoint: s.Endpoint,
			Keys:     webpush.Keys{P256dh: keys.P256dh, Auth: keys.Auth},
		}, &opts)
		if err != nil {
			failed++
			zap.L().Warn("web push gagal", zap.String("subscription_id", s.ID.String()), zap.Error(err))
			continue
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
			reason := fmt.Sprintf("push service %d", resp.StatusCode)
			if err := w.store.DisablePushSubscription(ctx, s.ID, reason); err != nil {
				zap.L().Warn("gagal menonaktifkan langganan push", zap.String("subscription_id", s.ID.String()), zap.Error(err))
			}
		case resp.StatusCode >= 300:
			failed++
			zap.L().Warn("web push ditolak", zap.String("subscription_id", s.ID.String()), zap.Int("status", resp.StatusCode))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d dari %d push gagal", failed, len(subs))
	}
	return nil
}
