package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// ErrUnsupportedImage: isi file bukan jpg/png/gif/webp yang bisa didecode.
var ErrUnsupportedImage = fmt.Errorf("format gambar tidak didukung (pakai jpg/png/webp)")

type WebPOptions struct {
	MaxSide int     // sisi terpanjang; 0 = tanpa resize
	Quality float32 // 0..100
}

// ConvertToWebP: decode (orientasi EXIF dibetulkan) → downscale → encode WebP.
func ConvertToWebP(data []byte, opt WebPOptions) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrUnsupportedImage
	}
	img = downscaleIfNeeded(img, opt.MaxSide)

	q := opt.Quality
	if q <= 0 || q > 100 {
		q = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: q}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// downscaleIfNeeded menjaga rasio; CatmullRom untuk kualitas foto.
func downscaleIfNeeded(src image.Image, maxSide int) image.Image {
	if maxSide <= 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return src
	}
	scale := math.Min(float64(maxSide)/float64(w), float64(maxSide)/float64(h))
	nw := int(math.Max(1, math.Round(float64(w)*scale)))
	nh := int(math.Max(1, math.Round(float64(h)*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
