package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/ppdb/model"
	helper "sekolahku_backend/internals/helpers"
)

/* =========================================================
   REQUEST
========================================================= */

// SubmitRegistrationRequest: formulir PPDB publik.
type SubmitRegistrationRequest struct {
	FullName         string  `json:"fullName" validate:"required,notblank,max=150"`
	NIK              string  `json:"nik" validate:"required,len=16,digits"`
	NISN             string  `json:"nisn" validate:"required,len=10,digits"`
	BirthPlace       string  `json:"birthPlace" validate:"required,notblank,max=100"`
	BirthDate        string  `json:"birthDate" validate:"required,date"`
	Gender           string  `json:"gender" validate:"required,oneof=L P"`
	Address          string  `json:"address" validate:"required,notblank"`
	FatherName       string  `json:"fatherName" validate:"required,notblank,max=150"`
	FatherOccupation *string `json:"fatherOccupation" validate:"omitempty,max=100"`
	MotherName       string  `json:"motherName" validate:"required,notblank,max=150"`
	MotherOccupation *string `json:"motherOccupation" validate:"omitempty,max=100"`
	Phone            string  `json:"phone" validate:"required,notblank,max=30"`
	Email            *string `json:"email" validate:"omitempty,email,max=150"`
	PreviousSchool   *string `json:"previousSchool" validate:"omitempty,max=200"`
}

// Normalize merapikan spasi sebelum validasi.
func (r *SubmitRegistrationRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.NIK = strings.TrimSpace(r.NIK)
	r.NISN = strings.TrimSpace(r.NISN)
	r.BirthPlace = strings.TrimSpace(r.BirthPlace)
	r.BirthDate = strings.TrimSpace(r.BirthDate)
	r.Gender = strings.ToUpper(strings.TrimSpace(r.Gender))
	r.Address = strings.TrimSpace(r.Address)
	r.FatherName = strings.TrimSpace(r.FatherName)
	r.MotherName = strings.TrimSpace(r.MotherName)
	r.Phone = strings.TrimSpace(r.Phone)
	r.FatherOccupation = helper.TrimPtr(r.FatherOccupation)
	r.MotherOccupation = helper.TrimPtr(r.MotherOccupation)
	r.Email = helper.TrimPtr(r.Email)
	r.PreviousSchool = helper.TrimPtr(r.PreviousSchool)
}

// ToModel dipanggil setelah validasi (birthDate sudah pasti valid).
func (r SubmitRegistrationRequest) ToModel() *model.RegistrationModel {
	bd, _ := time.Parse("2006-01-02", r.BirthDate)
	return &model.RegistrationModel{
		FullName:         r.FullName,
		NIK:              r.NIK,
		NISN:             r.NISN,
		BirthPlace:       r.BirthPlace,
		BirthDate:        bd,
		Gender:           r.Gender,
		Address:          r.Address,
		FatherName:       r.FatherName,
		FatherOccupation: r.FatherOccupation,
		MotherName:       r.MotherName,
		MotherOccupation: r.MotherOccupation,
		Phone:            r.Phone,
		Email:            r.Email,
		PreviousSchool:   r.PreviousSchool,
		Status:           constants.PPDBStatusVerification,
		PaymentStatus:    constants.PaymentUnpaid,
	}
}

type UpdateStatusRequest struct {
	Status  string  `json:"status" validate:"required,oneof=VERIFIKASI BERKAS_VALID DITERIMA DITOLAK"`
	Message *string `json:"message"`
}

type PushSubscribeRequest struct {
	RegistrationID string `json:"registrationId" validate:"required,uuid"`
	Endpoint       string `json:"endpoint" validate:"required,url"`
	Keys           struct {
		P256dh string `json:"p256dh" validate:"required,notblank"`
		Auth   string `json:"auth" validate:"required,notblank"`
	} `json:"keys"`
}

// ListQuery: filter daftar pendaftar untuk admin.
type ListQuery struct {
	Status string
	Q      string
	Paging helper.Paging
}

/* =========================================================
   RESPONSE
========================================================= */

type RegistrationDTO struct {
	ID               uuid.UUID `json:"id"`
	FullName         string    `json:"fullName"`
	NIK              string    `json:"nik"`
	NISN             string    `json:"nisn"`
	BirthPlace       string    `json:"birthPlace"`
	BirthDate        string    `json:"birthDate"`
	Gender           string    `json:"gender"`
	Address          string    `json:"address"`
	FatherName       string    `json:"fatherName"`
	FatherOccupation *string   `json:"fatherOccupation"`
	MotherName       string    `json:"motherName"`
	MotherOccupation *string   `json:"motherOccupation"`
	Phone            string    `json:"phone"`
	Email            *string   `json:"email"`
	PreviousSchool   *string   `json:"previousSchool"`
	Status           string    `json:"status"`
	StatusLabel      string    `json:"statusLabel"`
	Message          *string   `json:"message"`
	PaymentStatus    string    `json:"paymentStatus"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func ToRegistrationDTO(m *model.RegistrationModel) RegistrationDTO {
	return RegistrationDTO{
		ID:               m.ID,
		FullName:         m.FullName,
		NIK:              m.NIK,
		NISN:             m.NISN,
		BirthPlace:       m.BirthPlace,
		BirthDate:        m.BirthDate.Format("2006-01-02"),
		Gender:           m.Gender,
		Address:          m.Address,
		FatherName:       m.FatherName,
		FatherOccupation: m.FatherOccupation,
		MotherName:       m.MotherName,
		MotherOccupation: m.MotherOccupation,
		Phone:            m.Phone,
		Email:            m.Email,
		PreviousSchool:   m.PreviousSchool,
		Status:           m.Status,
		StatusLabel:      constants.PPDBStatusLabels[m.Status],
		Message:          m.Message,
		PaymentStatus:    m.PaymentStatus,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func ToRegistrationDTOs(rows []model.RegistrationModel) []RegistrationDTO {
	out := make([]RegistrationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ToRegistrationDTO(&rows[i]))
	}
	return out
}

type PaymentDTO struct {
	OrderID     string `json:"orderId"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
	Amount      int64  `json:"amount"`
}
