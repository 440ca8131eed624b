package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/ppdb/dto"
	"sekolahku_backend/internals/features/ppdb/model"
	"sekolahku_backend/internals/features/ppdb/repository"
)

// fakeRepo: repository in-memory untuk test service.
type fakeRepo struct {
	mu     sync.Mutex
	regs   map[uuid.UUID]*model.RegistrationModel
	subs   []model.PushSubscriptionModel
	events []model.PaymentEventModel
	orders map[string]uuid.UUID

	paymentUpdates int
}

var _ repository.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{regs: map[uuid.UUID]*model.RegistrationModel{}, orders: map[string]uuid.UUID{}}
}

func (f *fakeRepo) add(m model.RegistrationModel) *model.RegistrationModel {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	f.regs[m.ID] = &m
	return &m
}

func (f *fakeRepo) Create(_ context.Context, r *model.RegistrationModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.regs {
		if x.NIK == r.NIK || x.NISN == r.NISN {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_ppdb_nisn"}
		}
	}
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	f.regs[r.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RegistrationModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.regs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) FindByIdentifier(_ context.Context, ident string) (*model.RegistrationModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.regs {
		if m.NISN == ident || m.NIK == ident {
			cp := *m
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByOrderID(_ context.Context, orderID string) (*model.RegistrationModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.orders[orderID]; ok {
		cp := *f.regs[id]
		return &cp, nil
	}
	for _, m := range f.regs {
		if m.PaymentOrderID != nil && *m.PaymentOrderID == orderID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) List(ctx context.Context, q dto.ListQuery) ([]model.RegistrationModel, int64, error) {
	rows, _ := f.ListAll(ctx, q.Status)
	return rows, int64(len(rows)), nil
}

func (f *fakeRepo) ListAll(_ context.Context, status string) ([]model.RegistrationModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.RegistrationModel{}
	for _, m := range f.regs {
		if status == "" || m.Status == status {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string, message *string) (*model.RegistrationModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.regs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	m.Status = status
	m.Message = message
	m.UpdatedAt = time.Now()
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) SetPayment(_ context.Context, id uuid.UUID, orderID, paymentStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.regs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if _, dup := f.orders[orderID]; dup {
		return &pgconn.PgError{Code: "23505", ConstraintName: "payment_orders_pkey"}
	}
	f.orders[orderID] = id
	m.PaymentOrderID = &orderID
	m.PaymentStatus = paymentStatus
	return nil
}

func (f *fakeRepo) UpdatePaymentStatus(_ context.Context, id uuid.UUID, orderID, paymentStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.regs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.PaymentOrderID = &orderID
	m.PaymentStatus = paymentStatus
	f.paymentUpdates++
	return nil
}

func (f *fakeRepo) LogPaymentEvent(_ context.Context, ev *model.PaymentEventModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, *ev)
	return nil
}

func (f *fakeRepo) UpsertPushSubscription(_ context.Context, s *model.PushSubscriptionModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.subs {
		if f.subs[i].Endpoint == s.Endpoint {
			f.subs[i].RegistrationID = s.RegistrationID
			f.subs[i].Keys = s.Keys
			f.subs[i].DisabledAt = nil
			return nil
		}
	}
	s.ID = uuid.New()
	f.subs = append(f.subs, *s)
	return nil
}

func (f *fakeRepo) ActivePushSubscriptions(_ context.Context, registrationID uuid.UUID) ([]model.PushSubscriptionModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.PushSubscriptionModel
	for _, s := range f.subs {
		if s.RegistrationID == registrationID && s.DisabledAt == nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) DisablePushSubscription(_ context.Context, id uuid.UUID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.subs {
		if f.subs[i].ID == id {
			now := time.Now()
			f.subs[i].DisabledAt = &now
			f.subs[i].LastError = &reason
		}
	}
	return nil
}

func (f *fakeRepo) PruneDisabledPush(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.subs[:0]
	var n int64
	for _, s := range f.subs {
		if s.DisabledAt != nil && s.DisabledAt.Before(before) {
			n++
			continue
		}
		kept = append(kept, s)
	}
	f.subs = kept
	return n, nil
}

/* ============ notifier perekam ============ */

type recorder struct {
	mu        sync.Mutex
	submitted []string
	status    []string
}

func (r *recorder) NotifySubmitted(_ context.Context, m *model.RegistrationModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitted = append(r.submitted, m.NISN)
	return nil
}

func (r *recorder) NotifyStatus(_ context.Context, m *model.RegistrationModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = append(r.status, m.Status)
	return nil
}
