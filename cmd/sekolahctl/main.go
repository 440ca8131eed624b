// Command sekolahctl: tugas operasional (migrasi, seed, reset password, ekspor PPDB).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	database "sekolahku_backend/internals/databases"
	ppdbRepo "sekolahku_backend/internals/features/ppdb/repository"
	ppdbService "sekolahku_backend/internals/features/ppdb/service"
	userRepo "sekolahku_backend/internals/features/users/users/repository"
	userService "sekolahku_backend/internals/features/users/users/service"
	"sekolahku_backend/internals/seeds"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type env struct {
	cfg *configs.Config
	db  *gorm.DB
}

// boot: config + logger + DB, dipakai semua subcommand.
func boot() (*env, func(), error) {
	cfg := configs.LoadEnv()
	configs.Set(cfg)
	logger, err := configs.InitLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.ConnectDB(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		database.Close(db)
		_ = logger.Sync()
	}
	return &env{cfg: cfg, db: db}, closeFn, nil
}

func withEnv(fn func(ctx context.Context, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		e, closeFn, err := boot()
		if err != nil {
			return err
		}
		defer closeFn()
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()
		return fn(ctx, e)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sekolahctl",
		Short:         "Alat admin backend website sekolah",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(migrateCmd(), seedCmd(), resetPasswordCmd(), exportPPDBCmd())
	return root
}

/* ============ migrate ============ */

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "migrate", Short: "Jalankan migrasi skema"}

	up := &cobra.Command{
		Use:   "up",
		Short: "Terapkan semua migrasi yang belum jalan",
		RunE: withEnv(func(_ context.Context, e *env) error {
			return database.MigrateUp(e.db)
		}),
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Mundurkan migrasi sebanyak --steps",
		RunE: withEnv(func(_ context.Context, e *env) error {
			if steps < 1 {
				return fmt.Errorf("--steps minimal 1")
			}
			return database.MigrateDown(e.db, steps)
		}),
	}
	down.Flags().IntVar(&steps, "steps", 1, "jumlah langkah mundur")

	cmd.AddCommand(up, down)
	return cmd
}

/* ============ seed ============ */

func seedCmd() *cobra.Command {
	var contentFile string
	cmd := &cobra.Command{
		Use:     "seed-superadmin",
		Aliases: []string{"seed"},
		Short:   "Buat superadmin dari env SUPERADMIN_* dan (opsional) konten contoh",
		RunE: withEnv(func(ctx context.Context, e *env) error {
			users := userService.New(userRepo.New(e.db))
			return seeds.RunAllSeeds(ctx, e.db, users, e.cfg, contentFile)
		}),
	}
	cmd.Flags().StringVar(&contentFile, "content", "", "file JSON konten contoh, mis. internals/seeds/content/data_content.json")
	return cmd
}

/* ============ reset-password ============ */

func resetPasswordCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Ganti password admin",
		RunE: withEnv(func(ctx context.Context, e *env) error {
			users := userService.New(userRepo.New(e.db))
			if err := users.ResetPassword(ctx, username, password); err != nil {
				return err
			}
			zap.L().Info("password diganti", zap.String("username", username))
			return nil
		}),
	}
	cmd.Flags().StringVar(&username, "username", "", "username admin")
	cmd.Flags().StringVar(&password, "password", "", "password baru (min 8 karakter)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

/* ============ export-ppdb ============ */

func exportPPDBCmd() *cobra.Command {
	var out, status string
	cmd := &cobra.Command{
		Use:   "export-ppdb",
		Short: "Ekspor pendaftar PPDB ke file xlsx",
		RunE: withEnv(func(ctx context.Context, e *env) error {
			svc := ppdbService.New(ppdbRepo.New(e.db), nil, e.cfg.Notify.SchoolName)
			buf, name, err := svc.Export(ctx, status)
			if err != nil {
				return err
			}
			if out == "" {
				out = name
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			zap.L().Info("ekspor selesai", zap.String("file", out))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "path file keluaran (default: nama otomatis)")
	cmd.Flags().StringVar(&status, "status", "", "filter status (VERIFIKASI|BERKAS_VALID|DITERIMA|DITOLAK)")
	return cmd
}
