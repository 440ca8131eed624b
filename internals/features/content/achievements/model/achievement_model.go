package model

import (
	"time"

	"sekolahku_backend/internals/features/content/shared"
)

type AchievementModel struct {
	shared.Base
	Description *string    `gorm:"column:description"`
	StudentName *string    `gorm:"column:student_name;size:150"`
	Level       *string    `gorm:"column:level;size:20"`
	Rank        *string    `gorm:"column:rank;size:80"`
	Organizer   *string    `gorm:"column:organizer;size:150"`
	AchievedAt  *time.Time `gorm:"column:achieved_at;type:date"`
}

func (AchievementModel) TableName() string { return "achievements" }
