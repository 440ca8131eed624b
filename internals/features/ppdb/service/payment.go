package service

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/ppdb/dto"
	"sekolahku_backend/internals/features/ppdb/model"
	helper "sekolahku_backend/internals/helpers"
)

// SnapCreator: bagian snap.Client yang dipakai, supaya bisa di-fake.
type SnapCreator interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

type PaymentGateway struct {
	Snap      SnapCreator
	ServerKey string
	Fee       int64
}

// NewPaymentGateway: sandbox kecuali useProd.
func NewPaymentGateway(serverKey string, useProd bool, fee int64) *PaymentGateway {
	env := midtrans.Sandbox
	if useProd {
		env = midtrans.Production
	}
	var c snap.Client
	c.New(serverKey, env)
	return &PaymentGateway{Snap: &c, ServerKey: serverKey, Fee: fee}
}

/* =========================================================
   CREATE PAYMENT (Snap)
========================================================= */

func (s *Service) CreatePayment(ctx context.Context, id uuid.UUID) (*dto.PaymentDTO, error) {
	if s.Payment == nil || s.Payment.ServerKey == "" {
		return nil, helper.Upstream(errors.New("midtrans not configured"), "create payment")
	}
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, helper.DBError(err, notFoundMsg, "")
	}
	if m.PaymentStatus == constants.PaymentPaid {
		return nil, helper.Conflict("Biaya pendaftaran sudah dibayar")
	}

	orderID := NewOrderID(m.NISN)
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: s.Payment.Fee,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: m.FullName,
			Phone: m.Phone,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    "PPDB-FEE",
			Name:  "Biaya Pendaftaran PPDB",
			Price: s.Payment.Fee,
			Qty:   1,
		}},
	}
	if m.Email != nil {
		req.CustomerDetail.Email = *m.Email
	}

	resp, mErr := s.Payment.Snap.CreateTransaction(req)
	if mErr != nil {
		return nil, helper.Upstream(mErr, "midtrans create transaction")
	}
	if err := s.Repo.SetPayment(ctx, m.ID, orderID, constants.PaymentPending); err != nil {
		return nil, helper.Upstream(err, "save payment order")
	}
	return &dto.PaymentDTO{OrderID: orderID, Token: resp.Token, RedirectURL: resp.RedirectURL, Amount: s.Payment.Fee}, nil
}

// NewOrderID: suffix acak supaya dua request di detik yang sama tidak bentrok di Midtrans.
func NewOrderID(nisn string) string {
	return fmt.Sprintf("PPDB-%s-%s", nisn, strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10]))
}

/* =========================================================
   WEBHOOK MIDTRANS
========================================================= */

type MidtransNotification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
	TransactionID     string `json:"transaction_id"`
}

// Signature = SHA512(order_id + status_code + gross_amount + ServerKey)
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	h := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(h[:])
}

// MapMidtransStatus memetakan transaction_status (+fraud_status) ke status pembayaran internal.
func MapMidtransStatus(current string, n MidtransNotification) string {
	fraud := strings.ToLower(n.FraudStatus)
	switch strings.ToLower(n.TransactionStatus) {
	case "capture":
		switch fraud {
		case "accept", "":
			return constants.PaymentPaid
		case "challenge":
			return constants.PaymentPending
		}
		return constants.PaymentFailed
	case "settlement":
		return constants.PaymentPaid
	case "pending":
		return constants.PaymentPending
	case "deny", "failure":
		return constants.PaymentFailed
	case "cancel":
		return constants.PaymentCanceled
	case "expire":
		return constants.PaymentExpired
	case "refund", "partial_refund":
		return constants.PaymentRefunded
	}
	return current
}

// resolvePaymentStatus: notifikasi order aktif diterapkan apa adanya.
// Order lain (yang sudah diganti order baru) hanya boleh membuat status menjadi PAID,
// dan tidak pernah mengubah pendaftar yang sudah PAID.
func resolvePaymentStatus(m *model.RegistrationModel, n MidtransNotification) string {
	current := m.PaymentOrderID != nil && *m.PaymentOrderID == n.OrderID
	next := MapMidtransStatus(m.PaymentStatus, n)
	if current {
		return next
	}
	if m.PaymentStatus == constants.PaymentPaid || next != constants.PaymentPaid {
		return m.PaymentStatus
	}
	return next
}

// HandleNotification: signature salah → 401 tanpa perubahan apa pun.
// Order yang tidak dikenal tetap dicatat lalu diabaikan (200) agar Midtrans tidak retry terus.
func (s *Service) HandleNotification(ctx context.Context, raw []byte) (map[string]any, error) {
	if s.Payment == nil || s.Payment.ServerKey == "" {
		return nil, helper.Upstream(errors.New("midtrans not configured"), "payment notification")
	}
	var n MidtransNotification
	if err := sonic.Unmarshal(raw, &n); err != nil {
		return nil, helper.ValidationError("Payload tidak valid", nil)
	}
	want := strings.ToLower(n.SignatureKey)
	if want == "" || want != Signature(n.OrderID, n.StatusCode, n.GrossAmount, s.Payment.ServerKey) {
		return nil, helper.Unauthorized("Signature tidak valid")
	}

	ev := &model.PaymentEventModel{
		OrderID:    n.OrderID,
		RawPayload: datatypes.JSON(raw),
	}
	if n.TransactionStatus != "" {
		ts := n.TransactionStatus
		ev.TransactionStatus = &ts
	}

	m, err := s.Repo.FindByOrderID(ctx, n.OrderID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.Upstream(err, "find registration by order")
		}
		if err := s.Repo.LogPaymentEvent(ctx, ev); err != nil {
			zap.L().Warn("gagal simpan payment event", zap.String("order_id", n.OrderID), zap.Error(err))
		}
		return map[string]any{"status": "ignored", "reason": "order tidak dikenal"}, nil
	}

	ev.RegistrationID = &m.ID
	if err := s.Repo.LogPaymentEvent(ctx, ev); err != nil {
		zap.L().Warn("gagal simpan payment event", zap.String("order_id", n.OrderID), zap.Error(err))
	}

	next := resolvePaymentStatus(m, n)
	if next != m.PaymentStatus {
		if err := s.Repo.UpdatePaymentStatus(ctx, m.ID, n.OrderID, next); err != nil {
			return nil, helper.Upstream(err, "update payment status")
		}
	}
	return map[string]any{
		"status":            "ok",
		"registrationId":    m.ID,
		"paymentStatus":     next,
		"transactionStatus": n.TransactionStatus,
	}, nil
}
