package notifier

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/ppdb/model"
)

func inline(f func()) { f() }

type countingNotifier struct {
	mu    sync.Mutex
	calls int
	err   error
	panic bool
}

func (c *countingNotifier) hit() error {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.panic {
		panic("boom")
	}
	return c.err
}

func (c *countingNotifier) NotifySubmitted(context.Context, *model.RegistrationModel) error {
	return c.hit()
}

func (c *countingNotifier) NotifyStatus(context.Context, *model.RegistrationModel) error {
	return c.hit()
}

func TestSetDeliversToEveryChannel(t *testing.T) {
	ok := &countingNotifier{}
	failing := &countingNotifier{err: errors.New("down")}
	panicky := &countingNotifier{panic: true}
	s := &Set{
		OnSubmit: map[string]SubmitNotifier{"ok": ok, "failing": failing, "panicky": panicky},
		OnStatus: map[string]StatusNotifier{"ok": ok},
	}
	r := model.RegistrationModel{ID: uuid.New()}

	assert.NotPanics(t, func() { s.Submitted(inline, r) })
	assert.Equal(t, 1, ok.calls)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, panicky.calls)

	s.StatusChanged(inline, r)
	assert.Equal(t, 2, ok.calls)
}

func TestSetAsyncDoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	done := make(chan struct{})
	s := &Set{OnSubmit: map[string]SubmitNotifier{"slow": slowNotifier{release: release, done: done}}}

	start := time.Now()
	s.Submitted(Async, model.RegistrationModel{ID: uuid.New()})
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier tidak pernah jalan")
	}
}

type slowNotifier struct {
	release, done chan struct{}
}

func (s slowNotifier) NotifySubmitted(context.Context, *model.RegistrationModel) error {
	<-s.release
	close(s.done)
	return nil
}

func TestStatusText(t *testing.T) {
	msg := "Daftar ulang 1 Juli"
	r := &model.RegistrationModel{FullName: "Budi", Status: constants.PPDBStatusAccepted, Message: &msg}
	title, body := StatusText("SD Harapan", r)
	assert.Equal(t, "Status PPDB SD Harapan", title)
	assert.Equal(t, "Halo Budi, status pendaftaran Anda: Diterima. Catatan: Daftar ulang 1 Juli", body)

	r.Status, r.Message = "LAINNYA", nil
	_, body = StatusText("SD Harapan", r)
	assert.Equal(t, "Halo Budi, status pendaftaran Anda: LAINNYA.", body)
}

func TestRegistrationAlertAndSheetRow(t *testing.T) {
	r := &model.RegistrationModel{
		ID:        uuid.New(),
		FullName:  "Ani",
		NISN:      "0011223344",
		NIK:       "3201000000000001",
		Phone:     "0812",
		Status:    constants.PPDBStatusVerification,
		BirthDate: time.Date(2015, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	msg := RegistrationAlert("SD Harapan", r)
	assert.Contains(t, msg, "Nama: Ani")
	assert.Contains(t, msg, "Asal sekolah: -")

	row := SheetRow(r)
	require.Len(t, row, 12)
	assert.Equal(t, r.ID.String(), row[1])
	assert.Equal(t, "2015-01-02", row[7])
	assert.Equal(t, "Sedang Diverifikasi", row[11])
}

func TestAlertTimesUseSchoolTimezone(t *testing.T) {
	// 17:30 UTC = 00:30 WIB hari berikutnya
	r := &model.RegistrationModel{
		ID:        uuid.New(),
		Status:    constants.PPDBStatusVerification,
		CreatedAt: time.Date(2026, 1, 1, 17, 30, 0, 0, time.UTC),
	}
	assert.Contains(t, RegistrationAlert("SD Harapan", r), "Waktu: 02 Jan 2026 00:30")
	assert.Equal(t, "2026-01-02 00:30:00", SheetRow(r)[0])
}

/* ============ email (sendgrid) ============ */

func TestEmailNotifyStatus(t *testing.T) {
	var gotBody, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	e, err := NewEmail("SG.key", "", "ppdb@sekolah.sch.id", "SD Harapan")
	require.NoError(t, err)
	e.host = srv.URL

	to := "ortu@example.com"
	r := &model.RegistrationModel{FullName: "Budi", Email: &to, Status: constants.PPDBStatusRejected}
	require.NoError(t, e.NotifyStatus(context.Background(), r))
	assert.Equal(t, "Bearer SG.key", gotAuth)
	assert.Contains(t, gotBody, "ortu@example.com")
	assert.Contains(t, gotBody, "Tidak Diterima")

	// tanpa email: tidak ada request
	gotBody = ""
	require.NoError(t, e.NotifyStatus(context.Background(), &model.RegistrationModel{FullName: "X"}))
	assert.Empty(t, gotBody)
}

func TestNewNotifiersRequireConfig(t *testing.T) {
	_, err := NewEmail("", "", "", "S")
	assert.Error(t, err)
	_, err = NewTelegram("", 0, "S")
	assert.Error(t, err)
	_, err = NewWebPush(nil, "", "", "", 0, "S")
	assert.Error(t, err)
}

/* ============ web push ============ */

type pushStore struct {
	subs     []model.PushSubscriptionModel
	disabled map[uuid.UUID]string
}

func (p *pushStore) ActivePushSubscriptions(_ context.Context, id uuid.UUID) ([]model.PushSubscriptionModel, error) {
	var out []model.PushSubscriptionModel
	for _, s := range p.subs {
		if s.RegistrationID == id {
			if _, off := p.disabled[s.ID]; !off {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (p *pushStore) DisablePushSubscription(_ context.Context, id uuid.UUID, reason string) error {
	p.disabled[id] = reason
	return nil
}

// pushClient menjawab per endpoint.
type pushClient struct {
	status map[string]int
	hits   []string
}

func (c *pushClient) Do(req *http.Request) (*http.Response, error) {
	c.hits = append(c.hits, req.URL.String())
	code, ok := c.status[req.URL.String()]
	if !ok {
		code = http.StatusCreated
	}
	return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader("")), Header: http.Header{}}, nil
}

func browserKeys(t *testing.T) model.PushKeys {
	t.Helper()
	k, err := ecdh.P256().GenerateKey(rand.Reader)
	require.NoError(t, err)
	auth := make([]byte, 16)
	_, err = rand.Read(auth)
	require.NoError(t, err)
	return model.PushKeys{
		P256dh: base64.RawURLEncoding.EncodeToString(k.PublicKey().Bytes()),
		Auth:   base64.RawURLEncoding.EncodeToString(auth),
	}
}

func TestWebPushDisablesGoneEndpoints(t *testing.T) {
	priv, pub, err := webpush.GenerateVAPIDKeys()
	require.NoError(t, err)

	regID := uuid.New()
	alive := model.PushSubscriptionModel{ID: uuid.New(), RegistrationID: regID, Endpoint: "https://push.example.com/alive", Keys: datatypes.NewJSONType(browserKeys(t))}
	gone := model.PushSubscriptionModel{ID: uuid.New(), RegistrationID: regID, Endpoint: "https://push.example.com/gone", Keys: datatypes.NewJSONType(browserKeys(t))}
	other := model.PushSubscriptionModel{ID: uuid.New(), RegistrationID: uuid.New(), Endpoint: "https://push.example.com/other", Keys: datatypes.NewJSONType(browserKeys(t))}
	store := &pushStore{subs: []model.PushSubscriptionModel{alive, gone, other}, disabled: map[uuid.UUID]string{}}
	client := &pushClient{status: map[string]int{gone.Endpoint: http.StatusGone}}

	w, err := NewWebPush(store, pub, priv, "ppdb@sekolah.sch.id", 0, "SD Harapan")
	require.NoError(t, err)
	w.WithHTTPClient(client)

	r := &model.RegistrationModel{ID: regID, FullName: "Budi", NISN: "0011223344", Status: constants.PPDBStatusAccepted}
	require.NoError(t, w.NotifyStatus(context.Background(), r))

	assert.ElementsMatch(t, []string{alive.Endpoint, gone.Endpoint}, client.hits)
	require.Contains(t, store.disabled, gone.ID)
	assert.Equal(t, "push service 410", store.disabled[gone.ID])
	assert.NotContains(t, store.disabled, alive.ID)

	// kirim berikutnya tidak lagi menyentuh endpoint mati
	client.hits = nil
	require.NoError(t, w.NotifyStatus(context.Background(), r))
	assert.Equal(t, []string{alive.Endpoint}, client.hits)
}

func TestWebPushReportsRejectedSends(t *testing.T) {
	priv, pub, err := webpush.GenerateVAPIDKeys()
	require.NoError(t, err)
	regID := uuid.New()
	sub := model.PushSubscriptionModel{ID: uuid.New(), RegistrationID: regID, Endpoint: "https://push.example.com/a", Keys: datatypes.NewJSONType(browserKeys(t))}
	store := &pushStore{subs: []model.PushSubscriptionModel{sub}, disabled: map[uuid.UUID]string{}}

	w, err := NewWebPush(store, pub, priv, "ppdb@sekolah.sch.id", 60, "SD Harapan")
	require.NoError(t, err)
	w.WithHTTPClient(&pushClient{status: map[string]int{sub.Endpoint: http.StatusTooManyRequests}})

	err = w.NotifyStatus(context.Background(), &model.RegistrationModel{ID: regID, Status: constants.PPDBStatusRejected})
	assert.Error(t, err)
	assert.Empty(t, store.disabled, "429 bukan alasan menonaktifkan")
}
