package controller

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/ppdb/dto"
	"sekolahku_backend/internals/features/ppdb/model"
	"sekolahku_backend/internals/features/ppdb/repository"
	"sekolahku_backend/internals/features/ppdb/service"
	helper "sekolahku_backend/internals/helpers"
)

// stubRepo: hanya method yang disentuh handler; sisanya panic lewat interface nil.
type stubRepo struct {
	repository.Repository
	reg     *model.RegistrationModel
	created int
}

func (s *stubRepo) Create(_ context.Context, r *model.RegistrationModel) error {
	r.ID = uuid.New()
	s.created++
	return nil
}

func (s *stubRepo) FindByIdentifier(_ context.Context, ident string) (*model.RegistrationModel, error) {
	if s.reg != nil && (s.reg.NISN == ident || s.reg.NIK == ident) {
		return s.reg, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindByOrderID(context.Context, string) (*model.RegistrationModel, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) LogPaymentEvent(context.Context, *model.PaymentEventModel) error { return nil }

func (s *stubRepo) List(_ context.Context, q dto.ListQuery) ([]model.RegistrationModel, int64, error) {
	if s.reg == nil {
		return nil, 0, nil
	}
	return []model.RegistrationModel{*s.reg}, 1, nil
}

func newApp(repo *stubRepo, vapid string) *fiber.App {
	svc := service.New(repo, nil, "SD Harapan")
	svc.Run = func(f func()) { f() }
	svc.Payment = &service.PaymentGateway{ServerKey: "server-key", Fee: 100000}
	ctl := NewPPDBController(svc, vapid)

	app := fiber.New(fiber.Config{
		ErrorHandler: helper.ErrorHandler,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
	})
	app.Post("/ppdb", ctl.Submit)
	app.Get("/ppdb", ctl.List)
	app.Get("/ppdb/by-nisn", ctl.ByNISN)
	app.Get("/ppdb/pdf", ctl.ReceiptPDF)
	app.Post("/ppdb/payment/notification", ctl.PaymentNotification)
	app.Get("/push/vapid-public-key", ctl.VAPIDKey)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

const submitBody = `{
	"fullName": "Budi Santoso",
	"nik": "3201010101010001",
	"nisn": "0012345678",
	"birthPlace": "Bogor",
	"birthDate": "2015-07-01",
	"gender": "L",
	"address": "Jl. Melati 1",
	"fatherName": "Santoso",
	"motherName": "Siti",
	"phone": "08123456789"
}`

func TestSubmit(t *testing.T) {
	repo := &stubRepo{}
	app := newApp(repo, "")

	resp, body := do(t, app, http.MethodPost, "/ppdb", submitBody)
	assert.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, `"id":"`)
	assert.Equal(t, 1, repo.created)

	resp, body = do(t, app, http.MethodPost, "/ppdb", `{"fullName":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, `"nik"`)

	resp, _ = do(t, app, http.MethodPost, "/ppdb", `{bukan json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 1, repo.created)
}

func TestByNISNAndReceipt(t *testing.T) {
	reg := &model.RegistrationModel{
		ID: uuid.New(), FullName: "Ani", NISN: "0099887766", NIK: "3201999999990001",
		Status: constants.PPDBStatusFilesValid, PaymentStatus: constants.PaymentUnpaid,
	}
	app := newApp(&stubRepo{reg: reg}, "")

	resp, body := do(t, app, http.MethodGet, "/ppdb/by-nisn?nisn=0099887766", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"statusLabel":"Berkas Valid"`)

	resp, _ = do(t, app, http.MethodGet, "/ppdb/by-nisn?nik=3201999999990001", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = do(t, app, http.MethodGet, "/ppdb/by-nisn?nisn=1234567890", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Data pendaftaran tidak ditemukan")

	resp, _ = do(t, app, http.MethodGet, "/ppdb/by-nisn", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, app, http.MethodGet, "/ppdb/pdf?nisn=0099887766", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "bukti-pendaftaran-0099887766.pdf")
	assert.True(t, strings.HasPrefix(body, "%PDF"))
}

func TestList(t *testing.T) {
	app := newApp(&stubRepo{reg: &model.RegistrationModel{ID: uuid.New(), FullName: "Ani"}}, "")

	resp, body := do(t, app, http.MethodGet, "/ppdb?page=1&pageSize=5", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"total":1`)
	assert.Contains(t, body, `"pageSize":5`)

	resp, _ = do(t, app, http.MethodGet, "/ppdb?status=cadangan", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPaymentNotificationRejectsBadSignature(t *testing.T) {
	app := newApp(&stubRepo{}, "")
	payload := `{"order_id":"PPDB-1","status_code":"200","gross_amount":"100000.00","transaction_status":"settlement","signature_key":"abc"}`

	resp, body := do(t, app, http.MethodPost, "/ppdb/payment/notification", payload)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Signature tidak valid")

	sig := service.Signature("PPDB-1", "200", "100000.00", "server-key")
	payload = strings.Replace(payload, `"abc"`, `"`+sig+`"`, 1)
	resp, body = do(t, app, http.MethodPost, "/ppdb/payment/notification", payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"ignored"`)
}

func TestVAPIDKey(t *testing.T) {
	resp, _ := do(t, newApp(&stubRepo{}, ""), http.MethodGet, "/push/vapid-public-key", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := do(t, newApp(&stubRepo{}, "BPUB"), http.MethodGet, "/push/vapid-public-key", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"publicKey":"BPUB"`)
}
