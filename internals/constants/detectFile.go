package constants

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// Media types yang boleh ditempel ke entitas konten.
const (
	MediaImage = "image"
	MediaVideo = "video"
	MediaEmbed = "embed"
	// MediaDocument hanya hasil klasifikasi upload; tidak boleh masuk media_items.
	MediaDocument = "document"
)

var extMediaType = map[string]string{
	".png": MediaImage, ".jpg": MediaImage, ".jpeg": MediaImage, ".webp": MediaImage, ".gif": MediaImage,
	".mp4": MediaVideo, ".webm": MediaVideo, ".mov": MediaVideo,
}

// DetectMediaType menebak jenis file: sniff isi dulu, lalu fallback ke ekstensi.
func DetectMediaType(head []byte, filename string) (mediaType, contentType string) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType = http.DetectContentType(head)

	switch {
	case strings.HasPrefix(contentType, "image/"):
		return MediaImage, contentType
	case strings.HasPrefix(contentType, "video/"):
		return MediaVideo, contentType
	}

	if mt, ok := extMediaType[ext]; ok {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			contentType = byExt
		}
		return mt, contentType
	}
	if byExt := mime.TypeByExtension(ext); byExt != "" && strings.HasPrefix(contentType, "application/octet-stream") {
		contentType = byExt
	}
	return MediaDocument, contentType
}

// IsAttachableMedia: dokumen tidak punya tempat di galeri/berita.
func IsAttachableMedia(mt string) bool {
	return mt == MediaImage || mt == MediaVideo || mt == MediaEmbed
}
