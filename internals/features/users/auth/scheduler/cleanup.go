package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Pruner: sumber data yang punya baris kedaluwarsa untuk dibersihkan.
type Pruner func(ctx context.Context) (int64, error)

// Job adalah satu tugas pembersihan terjadwal.
type Job struct {
	Name string
	Spec string // format cron standar, mis. "@daily" atau "0 3 * * *"
	Run  Pruner
}

// Start mendaftarkan semua job ke robfig/cron dan menjalankannya.
// Panggil Stop() pada *cron.Cron saat shutdown.
func Start(jobs ...Job) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.Recover(cronLogger{})))
	for _, j := range jobs {
		j := j
		if j.Run == nil {
			continue
		}
		if _, err := c.AddFunc(j.Spec, func() { runJob(j) }); err != nil {
			return nil, err
		}
	}
	c.Start()
	return c, nil
}

func runJob(j Job) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := j.Run(ctx)
	if err != nil {
		zap.L().Error("[CLEANUP] gagal", zap.String("job", j.Name), zap.Error(err))
		return
	}
	zap.L().Info("[CLEANUP] selesai", zap.String("job", j.Name), zap.Int64("deleted", n))
}

// cronLogger meneruskan log robfig/cron ke zap.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	zap.S().Debugw(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	zap.S().Errorw(msg, append(keysAndValues, "error", err)...)
}
