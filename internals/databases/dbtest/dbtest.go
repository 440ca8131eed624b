//go:build integration

// Package dbtest menyiapkan Postgres untuk test integrasi (go test -tags integration).
package dbtest

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "sekolahku_backend/internals/databases"
)

const defaultDSN = "host=localhost port=5433 user=sekolahku password=sekolahku dbname=sekolahku_test sslmode=disable TimeZone=Asia/Jakarta"

// Open membuka TEST_DATABASE_DSN lalu menjalankan semua migrasi.
// Dipanggil dari TestMain; gagal = proses keluar.
func Open() *gorm.DB {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "tidak bisa konek database test: %v\n", err)
		os.Exit(1)
	}
	if err := database.MigrateUp(db); err != nil {
		fmt.Fprintf(os.Stderr, "migrasi database test gagal: %v\n", err)
		os.Exit(1)
	}
	return db
}

// Truncate mengosongkan tabel sebelum test dan mendaftarkan pembersihan setelahnya.
func Truncate(t *testing.T, db *gorm.DB, tables ...string) {
	t.Helper()
	stmt := "TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE"
	if err := db.Exec(stmt).Error; err != nil {
		t.Fatalf("truncate %v: %v", tables, err)
	}
	t.Cleanup(func() { db.Exec(stmt) })
}
