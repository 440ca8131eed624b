package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/ppdb/dto"
	"sekolahku_backend/internals/features/ppdb/model"
	"sekolahku_backend/internals/features/ppdb/notifier"
	"sekolahku_backend/internals/features/ppdb/repository"
	helper "sekolahku_backend/internals/helpers"
)

const notFoundMsg = "Data pendaftaran tidak ditemukan"

type Service struct {
	Repo       repository.Repository
	Notify     *notifier.Set
	Run        notifier.Runner
	SchoolName string
	Payment    *PaymentGateway
}

func New(repo repository.Repository, notify *notifier.Set, schoolName string) *Service {
	if notify == nil {
		notify = &notifier.Set{}
	}
	return &Service{Repo: repo, Notify: notify, Run: notifier.Async, SchoolName: schoolName}
}

/* =========================================================
   SUBMIT (publik)
========================================================= */

// SubmitRegistration: NIK/NISN ganda dibiarkan ditolak unique index (→ 409).
func (s *Service) SubmitRegistration(ctx context.Context, req dto.SubmitRegistrationRequest) (*model.RegistrationModel, error) {
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}
	m := req.ToModel()
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, helper.DBError(err, "", "NIK atau NISN sudah terdaftar")
	}
	s.Notify.Submitted(s.Run, *m)
	return m, nil
}

/* =========================================================
   LOOKUP (publik, by NISN atau NIK)
========================================================= */

func (s *Service) LookupByIdentifier(ctx context.Context, ident string) (*model.RegistrationModel, error) {
	ident = strings.TrimSpace(ident)
	if ident == "" {
		return nil, helper.FieldError("nisn", "nisn wajib diisi")
	}
	m, err := s.Repo.FindByIdentifier(ctx, ident)
	if err != nil {
		return nil, helper.DBError(err, notFoundMsg, "")
	}
	return m, nil
}

/* =========================================================
   ADMIN
========================================================= */

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.RegistrationModel, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, helper.DBError(err, notFoundMsg, "")
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, q dto.ListQuery) ([]model.RegistrationModel, int64, error) {
	if q.Status != "" && !constants.IsValidPPDBStatus(q.Status) {
		return nil, 0, helper.FieldError("status", "status tidak dikenal")
	}
	rows, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return nil, 0, helper.Upstream(err, "list ppdb")
	}
	return rows, total, nil
}

// UpdateStatus menimpa status & pesan apa adanya; urutan status tidak dibatasi.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateStatusRequest) (*model.RegistrationModel, error) {
	req.Status = strings.ToUpper(strings.TrimSpace(req.Status))
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}
	m, err := s.Repo.UpdateStatus(ctx, id, req.Status, req.Message)
	if err != nil {
		return nil, helper.DBError(err, notFoundMsg, "")
	}
	s.Notify.StatusChanged(s.Run, *m)
	return m, nil
}

/* =========================================================
   PUSH SUBSCRIBE
========================================================= */

func (s *Service) SubscribeToPush(ctx context.Context, req dto.PushSubscribeRequest, userAgent string) error {
	req.Endpoint = strings.TrimSpace(req.Endpoint)
	if err := helper.ValidateStruct(req); err != nil {
		return err
	}
	if !strings.HasPrefix(req.Endpoint, "https://") {
		return helper.FieldError("endpoint", "endpoint harus https")
	}
	regID, _ := uuid.Parse(req.RegistrationID)
	if _, err := s.Repo.FindByID(ctx, regID); err != nil {
		return helper.DBError(err, notFoundMsg, "")
	}
	sub := &model.PushSubscriptionModel{
		RegistrationID: regID,
		Endpoint:       req.Endpoint,
		Keys:           datatypes.NewJSONType(model.PushKeys{P256dh: req.Keys.P256dh, Auth: req.Keys.Auth}),
		UserAgent:      helper.TrimPtr(&userAgent),
	}
	if err := s.Repo.UpsertPushSubscription(ctx, sub); err != nil {
		return helper.DBError(err, notFoundMsg, "")
	}
	return nil
}
