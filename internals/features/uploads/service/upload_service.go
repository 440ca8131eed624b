package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sekolahku_backend/internals/constants"
	mediaDTO "sekolahku_backend/internals/features/media/dto"
	mediaModel "sekolahku_backend/internals/features/media/model"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/storage"
)

// Attacher: bagian media service yang dipakai upload (biar gampang di-fake).
type Attacher interface {
	AttachOne(ctx context.Context, entityType string, entityID uuid.UUID, in mediaDTO.MediaInput) (*mediaModel.MediaItemModel, error)
}

type Input struct {
	Filename   string
	Data       []byte
	Folder     string
	EntityType string
	EntityID   string
	Caption    *string
	IsMain     bool
}

type Result struct {
	URL         string  `json:"url"`
	MediaType   string  `json:"mediaType"`
	StoragePath string  `json:"storagePath"`
	ContentType string  `json:"contentType"`
	Size        int64   `json:"size"`
	MediaID     *string `json:"mediaId,omitempty"`
}

type Service struct {
	Images   storage.ImageStore
	Blobs    storage.BlobStore
	Media    Attacher
	MaxBytes int64
}

func New(images storage.ImageStore, blobs storage.BlobStore, media Attacher, maxBytes int64) *Service {
	return &Service{Images: images, Blobs: blobs, Media: media, MaxBytes: maxBytes}
}

// Upload: gambar → OSS (WebP), selain itu → Supabase. Bila entityType+entityId
// dikirim, hasilnya langsung ditempel sebagai media entitas tsb.
func (s *Service) Upload(ctx context.Context, in Input) (*Result, error) {
	if len(in.Data) == 0 {
		return nil, helper.FieldError("file", "File wajib diunggah")
	}
	if s.MaxBytes > 0 && int64(len(in.Data)) > s.MaxBytes {
		return nil, helper.FieldError("file", "Ukuran file melebihi batas")
	}

	// validasi target dulu supaya file tidak terlanjur diunggah
	var entityID uuid.UUID
	attach := strings.TrimSpace(in.EntityType) != "" || strings.TrimSpace(in.EntityID) != ""
	if attach {
		if _, ok := constants.EntityTables[in.EntityType]; !ok {
			return nil, helper.FieldError("entityType", "entityType tidak dikenal")
		}
		id, err := uuid.Parse(strings.TrimSpace(in.EntityID))
		if err != nil {
			return nil, helper.FieldError("entityId", "entityId harus berupa UUID")
		}
		entityID = id
	}

	head := in.Data
	if len(head) > 512 {
		head = head[:512]
	}
	mediaType, contentType := constants.DetectMediaType(head, in.Filename)
	if attach && !constants.IsAttachableMedia(mediaType) {
		return nil, helper.FieldError("file", "Dokumen tidak bisa dijadikan media konten")
	}

	var (
		obj storage.Object
		err error
	)
	switch mediaType {
	case constants.MediaImage:
		if s.Images == nil {
			return nil, helper.Upstream(errors.New("image store not configured"), "upload image")
		}
		obj, err = s.Images.PutImage(ctx, in.Folder, in.Filename, in.Data)
		if errors.Is(err, storage.ErrUnsupportedImage) {
			return nil, helper.FieldError("file", err.Error())
		}
	default:
		if s.Blobs == nil {
			return nil, helper.Upstream(errors.New("blob store not configured"), "upload file")
		}
		key := storage.GenerateUniqueFilename(in.Folder, in.Filename)
		obj, err = s.Blobs.Put(ctx, key, contentType, bytes.NewReader(in.Data), int64(len(in.Data)))
	}
	if err != nil {
		return nil, helper.Upstream(err, "upload "+mediaType)
	}

	res := &Result{
		URL:         obj.URL,
		MediaType:   mediaType,
		StoragePath: obj.StoragePath,
		ContentType: obj.ContentType,
		Size:        obj.Size,
	}
	if !attach {
		return res, nil
	}

	sp := obj.StoragePath
	item, err := s.Media.AttachOne(ctx, in.EntityType, entityID, mediaDTO.MediaInput{
		URL:         obj.URL,
		Type:        mediaType,
		IsMain:      in.IsMain,
		Caption:     in.Caption,
		StoragePath: &sp,
	})
	if err != nil {
		s.cleanup(mediaType, obj.StoragePath)
		var ae *helper.AppError
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, helper.DBError(err, "Entitas tidak ditemukan", "")
	}
	id := item.ID.String()
	res.MediaID = &id
	return res, nil
}

// cleanup: file yang gagal ditempel dibuang lagi, best-effort.
func (s *Service) cleanup(mediaType, storagePath string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var err error
	if mediaType == constants.MediaImage && s.Images != nil {
		err = s.Images.Delete(ctx, storagePath)
	} else if s.Blobs != nil {
		key := storagePath
		if i := strings.Index(key, "/"); i >= 0 {
			key = key[i+1:] // buang prefix bucket
		}
		err = s.Blobs.Delete(ctx, key)
	}
	if err != nil {
		zap.L().Warn("cleanup upload gagal", zap.String("path", storagePath), zap.Error(err))
	}
}
