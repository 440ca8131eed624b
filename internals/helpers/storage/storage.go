package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImageStore adalah CDN gambar (Aliyun OSS): menerima byte asli, menyimpan versi WebP.
type ImageStore interface {
	PutImage(ctx context.Context, folder, filename string, data []byte) (Object, error)
	Delete(ctx context.Context, key string) error
}

// BlobStore adalah bucket file umum (Supabase Storage).
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader, size int64) (Object, error)
	Delete(ctx context.Context, key string) error
}

// Browser dipakai halaman superadmin untuk melihat & membersihkan bucket.
type Browser interface {
	List(ctx context.Context, bucket, prefix string) ([]Entry, error)
	Remove(ctx context.Context, bucket string, paths []string) error
}

// Object: hasil upload, URL publik + path di storage.
type Object struct {
	URL         string
	StoragePath string
	ContentType string
	Size        int64
}

type Entry struct {
	Name      string     `json:"name"`
	Path      string     `json:"path"`
	IsFolder  bool       `json:"isFolder"`
	Size      int64      `json:"size"`
	MimeType  string     `json:"mimeType,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	PublicURL string     `json:"publicUrl,omitempty"`
}

var (
	reUnsafeName   = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
	reUnsafeFolder = regexp.MustCompile(`[^a-z0-9\-_/]+`)
)

func sanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	safe := reUnsafeName.ReplaceAllString(base, "_")
	if len(safe) > 80 {
		ext := path.Ext(safe)
		safe = safe[:80-len(ext)] + ext
	}
	return safe
}

// SanitizeFolder menormalkan folder dari form: huruf kecil, tanpa "..", tanpa slash ganda.
func SanitizeFolder(folder string) string {
	folder = strings.ToLower(strings.TrimSpace(folder))
	folder = reUnsafeFolder.ReplaceAllString(folder, "-")
	var parts []string
	for _, p := range strings.Split(folder, "/") {
		if p == "" || p == "." || p == ".." {
			continue
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return "misc"
	}
	return strings.Join(parts, "/")
}

// GenerateUniqueFilename: <folder>/<yyyymmdd>-<uuid>-<nama-aman>
func GenerateUniqueFilename(folder, originalFilename string) string {
	return fmt.Sprintf("%s/%s-%s-%s",
		SanitizeFolder(folder),
		time.Now().Format("20060102"),
		uuid.New().String(),
		sanitizeFilename(originalFilename),
	)
}

// ReplaceExt mengganti ekstensi (dipakai saat gambar dikonversi ke .webp).
func ReplaceExt(name, ext string) string {
	return strings.TrimSuffix(name, path.Ext(name)) + ext
}
