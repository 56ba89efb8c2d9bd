package avatar

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()
	require.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestProcessProducesJPEGDataURI(t *testing.T) {
	uri, err := Process(pngBytes(t, 100, 80), nil)
	require.NoError(t, err)

	img := decodeDataURI(t, uri)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestProcessDownscalesWideImages(t *testing.T) {
	uri, err := Process(pngBytes(t, 1000, 400), nil)
	require.NoError(t, err)

	img := decodeDataURI(t, uri)
	assert.Equal(t, 500, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy(), "aspect ratio is preserved")
}

func TestProcessAppliesCrop(t *testing.T) {
	uri, err := Process(pngBytes(t, 200, 200), &CropRegion{X: 10, Y: 20, Width: 50, Height: 50})
	require.NoError(t, err)

	img := decodeDataURI(t, uri)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestProcessRejectsGarbage(t *testing.T) {
	_, err := Process([]byte("not an image"), nil)
	assert.Error(t, err)
}

func TestProcessRejectsCropOutsideBounds(t *testing.T) {
	_, err := Process(pngBytes(t, 50, 50), &CropRegion{X: 100, Y: 100, Width: 10, Height: 10})
	assert.Error(t, err)
}

func TestTransparentPixelDecodes(t *testing.T) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(TransparentPixel, "data:image/png;base64,"))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 1, img.Bounds().Dx())
	assert.Equal(t, 1, img.Bounds().Dy())
}
