// Package images validates and normalizes uploaded artwork.
package images

import (
	"bytes"
	"fmt"
	"image"
	"net/http"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register the WebP decoder
)

const (
	// MaxUploadBytes bounds the raw upload size before decoding.
	MaxUploadBytes = 10 << 20
	// maxDimension caps the longer edge of the stored image.
	maxDimension = 2048
	webpQuality  = 82
)

// Normalize decodes the upload, rejects anything that is not a real image,
// bounds the longer edge at maxDimension, and re-encodes to WebP. The
// returned bytes are what the asset store should keep.
func Normalize(content []byte) ([]byte, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("empty upload")
	}
	if len(content) > MaxUploadBytes {
		return nil, fmt.Errorf("upload too large (max %dMB)", MaxUploadBytes>>20)
	}
	if detected := http.DetectContentType(content); !allowedMIME(detected) {
		return nil, fmt.Errorf("unsupported upload type %s", detected)
	}

	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("undecodable image: %w", err)
	}

	decoded = resizeToFit(decoded, maxDimension)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, decoded, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return buf.Bytes(), nil
}

func allowedMIME(mime string) bool {
	switch mime {
	case "image/png", "image/jpeg", "image/gif", "image/webp":
		return true
	}
	return false
}

func resizeToFit(img image.Image, max int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return img
	}
	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
