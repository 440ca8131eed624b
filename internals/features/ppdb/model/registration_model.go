package model

import (
	"time"

	"github.com/google/uuid"
)

type RegistrationModel struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FullName         string    `gorm:"column:full_name;size:150;not null"`
	NIK              string    `gorm:"column:nik;size:16;not null"`
	NISN             string    `gorm:"column:nisn;size:10;not null"`
	BirthPlace       string    `gorm:"column:birth_place;size:100;not null"`
	BirthDate        time.Time `gorm:"column:birth_date;type:date;not null"`
	Gender           string    `gorm:"column:gender;size:1;not null"`
	Address          string    `gorm:"column:address;not null"`
	FatherName       string    `gorm:"column:father_name;size:150;not null"`
	FatherOccupation *string   `gorm:"column:father_occupation;size:100"`
	MotherName       string    `gorm:"column:mother_name;size:150;not null"`
	MotherOccupation *string   `gorm:"column:mother_occupation;size:100"`
	Phone            string    `gorm:"column:phone;size:30;not null"`
	Email            *string   `gorm:"column:email;size:150"`
	PreviousSchool   *string   `gorm:"column:previous_school;size:200"`

	Status         string  `gorm:"column:status;size:20;not null;default:VERIFIKASI"`
	Message        *string `gorm:"column:message"`
	PaymentStatus  string  `gorm:"column:payment_status;size:20;not null;default:UNPAID"`
	PaymentOrderID *string `gorm:"column:payment_order_id;size:80"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (RegistrationModel) TableName() string { return "ppdb_registrations" }
