package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizeProducesWebP(t *testing.T) {
	out, err := Normalize(encodePNG(t, 16, 16))
	require.NoError(t, err)

	// WebP container: RIFF....WEBP
	require.Greater(t, len(out), 12)
	assert.Equal(t, "RIFF", string(out[:4]))
	assert.Equal(t, "WEBP", string(out[8:12]))
}

func TestNormalizeBoundsDimensions(t *testing.T) {
	out, err := Normalize(encodePNG(t, 4096, 1024))
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 2048, cfg.Width)
	assert.Equal(t, 512, cfg.Height)
}

func TestNormalizeKeepsSmallImages(t *testing.T) {
	out, err := Normalize(encodePNG(t, 40, 30))
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
}

func TestNormalizeRejectsNonImages(t *testing.T) {
	_, err := Normalize(nil)
	assert.Error(t, err, "empty upload")

	_, err = Normalize([]byte("just some text pretending to be art"))
	assert.Error(t, err, "non-image payload")

	// Valid PNG magic bytes with a truncated body still must not pass.
	_, err = Normalize([]byte("\x89PNG\r\n\x1a\n_not_a_real_png"))
	assert.Error(t, err)
}

func TestNormalizeRejectsOversizedUploads(t *testing.T) {
	_, err := Normalize(make([]byte, MaxUploadBytes+1))
	assert.Error(t, err)
}
