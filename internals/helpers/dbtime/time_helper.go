package dbtime

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"gorm.io/gorm"
)

const DefaultTimezone = "Asia/Jakarta"

var schoolLoc atomic.Pointer[time.Location]

// Location: timezone sekolah.
// Urutan: SetLocation → Asia/Jakarta → WIB (UTC+7) bila tzdata tidak tersedia.
func Location() *time.Location {
	if loc := schoolLoc.Load(); loc != nil {
		return loc
	}
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.FixedZone("WIB", 7*3600)
	}
	schoolLoc.CompareAndSwap(nil, loc)
	return schoolLoc.Load()
}

// SetLocation dipanggil saat boot dari SCHOOL_TIMEZONE; nama kosong diabaikan.
func SetLocation(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	schoolLoc.Store(loc)
	return nil
}

// ToSchoolTime mengonversi waktu (DB = UTC) ke timezone sekolah.
// Kalau t.IsZero() → dikembalikan apa adanya.
func ToSchoolTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(Location())
}

// Versi pointer, biar gampang dipakai di DTO yg pakai *time.Time
func ToSchoolTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := ToSchoolTime(*t)
	return &v
}

func NowInSchool() time.Time {
	return time.Now().In(Location())
}

// GetDBTime: SELECT NOW() dari Postgres, dikonversi ke timezone sekolah.
func GetDBTime(ctx context.Context, db *gorm.DB) (time.Time, error) {
	var now time.Time
	if err := db.WithContext(ctx).Raw("SELECT NOW()").Scan(&now).Error; err != nil {
		return time.Time{}, err
	}
	return ToSchoolTime(now), nil
}
