package content

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"

	achievementModel "sekolahku_backend/internals/features/content/achievements/model"
	downloadModel "sekolahku_backend/internals/features/content/downloads/model"
	newsModel "sekolahku_backend/internals/features/content/news/model"
	"sekolahku_backend/internals/features/content/shared"
	helper "sekolahku_backend/internals/helpers"
)

// File berisi konten contoh untuk lingkungan dev/staging.
type File struct {
	News         []NewsSeed        `json:"news"`
	Achievements []AchievementSeed `json:"achievements"`
	Downloads    []DownloadSeed    `json:"downloads"`
}

type NewsSeed struct {
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Author   string   `json:"author"`
}

type AchievementSeed struct {
	Title       string `json:"title"`
	StudentName string `json:"student_name"`
	Level       string `json:"level"`
	Rank        string `json:"rank"`
	AchievedAt  string `json:"achieved_at"` // YYYY-MM-DD
}

type DownloadSeed struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	FileURL  string `json:"file_url"`
}

// Stats: jumlah baris yang benar-benar diinsert per tabel.
type Stats struct {
	News, Achievements, Downloads int
}

// SeedFromJSON membaca file lalu menginsert konten yang slug-nya belum ada.
// Semua konten contoh langsung diterbitkan.
func SeedFromJSON(ctx context.Context, db *gorm.DB, filePath string) (Stats, error) {
	zap.L().Info("📥 Membaca file seed", zap.String("path", filePath))

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return Stats{}, fmt.Errorf("baca file seed: %w", err)
	}
	var f File
	if err := sonic.Unmarshal(raw, &f); err != nil {
		return Stats{}, fmt.Errorf("decode seed: %w", err)
	}

	var st Stats
	now := time.Now()
	for _, n := range f.News {
		m := newsModel.NewsModel{
			Base:       base(n.Title, now),
			Excerpt:    opt(n.Excerpt),
			Content:    opt(n.Content),
			Category:   opt(n.Category),
			Tags:       n.Tags,
			AuthorName: opt(n.Author),
		}
		if insertIfAbsent(ctx, db, "news", &m, m.Slug) {
			st.News++
		}
	}
	for _, a := range f.Achievements {
		m := achievementModel.AchievementModel{
			Base:        base(a.Title, now),
			StudentName: opt(a.StudentName),
			Level:       opt(strings.ToLower(a.Level)),
			Rank:        opt(a.Rank),
		}
		if t, err := time.Parse("2006-01-02", a.AchievedAt); err == nil {
			m.AchievedAt = &t
		}
		if insertIfAbsent(ctx, db, "achievements", &m, m.Slug) {
			st.Achievements++
		}
	}
	for _, d := range f.Downloads {
		m := downloadModel.DownloadModel{
			Base:     base(d.Title, now),
			Category: opt(d.Category),
			FileURL:  d.FileURL,
		}
		if insertIfAbsent(ctx, db, "downloads", &m, m.Slug) {
			st.Downloads++
		}
	}
	zap.L().Info("✅ seed konten selesai",
		zap.Int("news", st.News), zap.Int("achievements", st.Achievements), zap.Int("downloads", st.Downloads))
	return st, nil
}

func base(title string, now time.Time) shared.Base {
	b := shared.Base{
		Title:       strings.TrimSpace(title),
		Slug:        helper.Slugify(title, helper.SlugMaxLen),
		IsPublished: true,
	}
	b.EnsurePublishedAt(now)
	return b
}

func insertIfAbsent(ctx context.Context, db *gorm.DB, table string, row any, slug string) bool {
	var n int64
	if err := db.WithContext(ctx).Table(table).Where("LOWER(slug) = ?", strings.ToLower(slug)).Count(&n).Error; err != nil {
		zap.L().Error("❌ cek slug", zap.String("table", table), zap.Error(err))
		return false
	}
	if n > 0 {
		zap.L().Info("ℹ️ sudah ada, lewati", zap.String("table", table), zap.String("slug", slug))
		return false
	}
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		zap.L().Error("❌ gagal insert", zap.String("table", table), zap.String("slug", slug), zap.Error(err))
		return false
	}
	return true
}

func opt(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
