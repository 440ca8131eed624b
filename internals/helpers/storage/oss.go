package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"go.uber.org/zap"

	"sekolahku_backend/internals/configs"
)

// OSSService adalah CDN gambar; semua gambar disimpan sebagai WebP.
type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	PublicBase string
	WebP       WebPOptions
}

func NewOSSService(c configs.StorageConfig, up configs.UploadConfig) (*OSSService, error) {
	if c.OSSEndpoint == "" || c.OSSAccessKey == "" || c.OSSSecretKey == "" || c.OSSBucket == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var opts []oss.ClientOption
	if c.OSSSecurityToken != "" {
		opts = append(opts, oss.SecurityToken(c.OSSSecurityToken))
	}
	client, err := oss.New(c.OSSEndpoint, c.OSSAccessKey, c.OSSSecretKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(c.OSSBucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(c.OSSBucket); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 {
			zap.L().Warn("oss: skip location check (AccessDenied)", zap.String("bucket", c.OSSBucket))
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		zap.L().Info("oss bucket siap", zap.String("bucket", c.OSSBucket), zap.String("location", loc))
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   c.OSSEndpoint,
		BucketName: c.OSSBucket,
		PublicBase: c.OSSPublicBaseURL,
		WebP:       WebPOptions{MaxSide: up.ImageMaxSide, Quality: up.WebPQuality},
	}, nil
}

// PublicURL: pakai domain CDN bila diset, selain itu https://bucket.endpoint/key
func (s *OSSService) PublicURL(key string) string {
	if s.PublicBase != "" {
		return s.PublicBase + "/" + key
	}
	host := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, host, key)
}

// PutImage mengonversi ke WebP lalu menyimpan dengan cache immutable.
func (s *OSSService) PutImage(ctx context.Context, folder, filename string, data []byte) (Object, error) {
	webpData, err := ConvertToWebP(data, s.WebP)
	if err != nil {
		return Object{}, err
	}
	key := ReplaceExt(GenerateUniqueFilename(folder, filename), ".webp")

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType("image/webp"),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(webpData), opts...); err != nil {
		return Object{}, fmt.Errorf("oss put %s: %w", key, err)
	}
	return Object{
		URL:         s.PublicURL(key),
		StoragePath: key,
		ContentType: "image/webp",
		Size:        int64(len(webpData)),
	}, nil
}

func (s *OSSService) Delete(ctx context.Context, key string) error {
	return s.Bucket.DeleteObject(key, oss.WithContext(ctx))
}
