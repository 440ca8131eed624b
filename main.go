package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"sekolahku_backend/internals/configs"
	database "sekolahku_backend/internals/databases"
	scheduler "sekolahku_backend/internals/features/users/auth/scheduler"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/dbtime"
	middlewares "sekolahku_backend/internals/middlewares"
	routes "sekolahku_backend/internals/route"
	"sekolahku_backend/internals/seeds"
)

// subscription push yang dimatikan lebih dari ini dihapus permanen
const pushRetention = 30 * 24 * time.Hour

func main() {
	cfg := configs.LoadEnv()
	configs.Set(cfg)

	logger, err := configs.InitLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	configs.InitRollbar(cfg)
	if err := dbtime.SetLocation(cfg.Notify.SchoolTimezone); err != nil {
		zap.L().Warn("SCHOOL_TIMEZONE tidak valid, pakai Asia/Jakarta", zap.Error(err))
	}

	// 🔌 DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg.DB)
	if err != nil {
		zap.L().Fatal("database", zap.Error(err))
	}
	database.TunePool(db, cfg.DB)
	if cfg.DB.AutoMigrate {
		if err := database.MigrateUp(db); err != nil {
			zap.L().Fatal("migrate", zap.Error(err))
		}
	}
	database.WarmUpQueries(db)

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		BodyLimit:               int(cfg.Upload.MaxBytes) + 1<<20, // multipart overhead
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          cfg.TrustedProxies,
	})
	middlewares.SetupMiddlewares(app, cfg)

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	deps, err := routes.BuildDeps(bootCtx, cfg, db)
	if err != nil {
		cancelBoot()
		zap.L().Fatal("build deps", zap.Error(err))
	}
	seeds.SeedSuperadmin(bootCtx, deps.Users, cfg.Auth)
	cancelBoot()

	// ✅ Routes
	routes.SetupRoutes(app, deps)

	// ⏱ scheduler setelah DB siap
	cr, err := startJobs(deps)
	if err != nil {
		zap.L().Fatal("scheduler", zap.Error(err))
	}

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 30 * time.Second
	app.Server().WriteTimeout = 90 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		zap.L().Info("✅ Listening", zap.String("port", cfg.Port))
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			zap.L().Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	<-cr.Stop().Done()
	database.Close(db)
}

func startJobs(d *routes.Deps) (*cron.Cron, error) {
	jobs := []scheduler.Job{{
		Name: "push_subscriptions",
		Spec: "30 3 * * *",
		Run: func(ctx context.Context) (int64, error) {
			return d.PPDBRepo.PruneDisabledPush(ctx, time.Now().Add(-pushRetention))
		},
	}}
	// blacklist redis kedaluwarsa sendiri lewat TTL
	if dbl, ok := d.Blacklist.(*helperAuth.DBBlacklist); ok {
		jobs = append(jobs, scheduler.Job{Name: "session_blacklist", Spec: "@hourly", Run: dbl.PruneExpired})
	}
	return scheduler.Start(jobs...)
}
