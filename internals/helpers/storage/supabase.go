package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// SupabaseStorage bicara dengan Supabase Storage REST API memakai service-role key.
type SupabaseStorage struct {
	baseURL string
	key     string
	bucket  string
	http    *http.Client
}

func NewSupabaseStorage(projectURL, serviceKey, bucket string) (*SupabaseStorage, error) {
	if projectURL == "" || serviceKey == "" {
		return nil, fmt.Errorf("SUPABASE_PROJECT_URL atau SUPABASE_SERVICE_ROLE_KEY belum diset")
	}
	return &SupabaseStorage{
		baseURL: strings.TrimRight(projectURL, "/"),
		key:     serviceKey,
		bucket:  bucket,
		http:    &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// WithHTTPClient dipakai test untuk mengarahkan ke httptest.Server.
func (s *SupabaseStorage) WithHTTPClient(c *http.Client) *SupabaseStorage {
	s.http = c
	return s
}

func (s *SupabaseStorage) objectURL(bucket, p string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, bucket, escapePath(p))
}

func (s *SupabaseStorage) PublicURL(bucket, p string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, escapePath(p))
}

func escapePath(p string) string {
	parts := strings.Split(strings.TrimLeft(p, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

func (s *SupabaseStorage) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("apikey", s.key)
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("supabase %s %s status %d: %s", req.Method, req.URL.Path, resp.StatusCode, string(body))
	}
	return body, nil
}

// Put mengunggah ke bucket default (x-upsert=false: nama file selalu unik).
func (s *SupabaseStorage) Put(ctx context.Context, key, contentType string, r io.Reader, size int64) (Object, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.objectURL(s.bucket, key), r)
	if err != nil {
		return Object{}, err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "max-age=31536000")
	if size > 0 {
		req.ContentLength = size
	}
	if _, err := s.do(req); err != nil {
		return Object{}, err
	}
	zap.L().Debug("supabase upload", zap.String("bucket", s.bucket), zap.String("key", key))
	return Object{
		URL:         s.PublicURL(s.bucket, key),
		StoragePath: s.bucket + "/" + key,
		ContentType: contentType,
		Size:        size,
	}, nil
}

func (s *SupabaseStorage) Delete(ctx context.Context, key string) error {
	return s.Remove(ctx, s.bucket, []string{key})
}

type listRequest struct {
	Prefix string            `json:"prefix"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	SortBy map[string]string `json:"sortBy"`
}

type listItem struct {
	Name      string     `json:"name"`
	ID        *string    `json:"id"`
	UpdatedAt *time.Time `json:"updated_at"`
	Metadata  *struct {
		Size     int64  `json:"size"`
		Mimetype string `json:"mimetype"`
	} `json:"metadata"`
}

const listPageSize = 1000

// List menampilkan isi satu "folder" (tidak rekursif); folder ditandai id null.
func (s *SupabaseStorage) List(ctx context.Context, bucket, prefix string) ([]Entry, error) {
	if bucket == "" {
		bucket = s.bucket
	}
	prefix = strings.Trim(prefix, "/")

	var out []Entry
	for offset := 0; ; offset += listPageSize {
		payload, _ := sonic.Marshal(listRequest{
			Prefix: prefix,
			Limit:  listPageSize,
			Offset: offset,
			SortBy: map[string]string{"column": "name", "order": "asc"},
		})
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			fmt.Sprintf("%s/storage/v1/object/list/%s", s.baseURL, url.PathEscape(bucket)),
			bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		body, err := s.do(req)
		if err != nil {
			return nil, err
		}
		var items []listItem
		if err := sonic.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		for _, it := range items {
			full := it.Name
			if prefix != "" {
				full = prefix + "/" + it.Name
			}
			e := Entry{Name: it.Name, Path: full, IsFolder: it.ID == nil, UpdatedAt: it.UpdatedAt}
			if it.Metadata != nil {
				e.Size = it.Metadata.Size
				e.MimeType = it.Metadata.Mimetype
			}
			if !e.IsFolder {
				e.PublicURL = s.PublicURL(bucket, full)
			}
			out = append(out, e)
		}
		if len(items) < listPageSize {
			break
		}
	}
	return out, nil
}

// Remove menghapus banyak objek sekaligus.
func (s *SupabaseStorage) Remove(ctx context.Context, bucket string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	if bucket == "" {
		bucket = s.bucket
	}
	payload, _ := sonic.Marshal(map[string][]string{"prefixes": paths})
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/storage/v1/object/%s", s.baseURL, url.PathEscape(bucket)),
		bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = s.do(req)
	return err
}

// RemovePrefix menghapus semua file di bawah prefix, turun ke subfolder.
func (s *SupabaseStorage) RemovePrefix(ctx context.Context, bucket, prefix string) (int, error) {
	entries, err := s.List(ctx, bucket, prefix)
	if err != nil {
		return 0, err
	}
	var files []string
	removed := 0
	for _, e := range entries {
		if e.IsFolder {
			n, err := s.RemovePrefix(ctx, bucket, e.Path)
			removed += n
			if err != nil {
				return removed, err
			}
			continue
		}
		files = append(files, e.Path)
	}
	if err := s.Remove(ctx, bucket, files); err != nil {
		return removed, err
	}
	return removed + len(files), nil
}

// ExtractSupabasePath memecah URL publik menjadi bucket + path.
func ExtractSupabasePath(fullURL string) (bucket string, p string, err error) {
	u, err := url.Parse(fullURL)
	if err != nil {
		return "", "", err
	}
	parts := strings.SplitN(u.Path, "/object/public/", 2)
	if len(parts) < 2 {
		return "", "", fmt.Errorf("url tidak valid untuk Supabase public object")
	}
	pathParts := strings.SplitN(parts[1], "/", 2)
	if len(pathParts) < 2 {
		return "", "", fmt.Errorf("gagal ekstrak bucket dan path")
	}
	return pathParts[0], pathParts[1], nil
}
