package avatar

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// TransparentPixel is the 1x1 transparent PNG placeholder used for avatars
// until the user uploads a picture.
const TransparentPixel = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

const (
	maxWidth    = 500
	jpegQuality = 90
)

// CropRegion is a rectangle in the coordinates of the downscaled image.
type CropRegion struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Process turns uploaded image bytes into an embeddable thumbnail: decode,
// downscale to at most 500px wide, apply the optional crop, flatten to RGB
// and re-encode as a JPEG data URI. This runs synchronously in-request.
func Process(raw []byte, crop *CropRegion) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	if crop != nil {
		rect := image.Rect(crop.X, crop.Y, crop.X+crop.Width, crop.Y+crop.Height)
		rect = rect.Intersect(img.Bounds())
		if rect.Empty() {
			return "", fmt.Errorf("crop region outside image bounds")
		}
		img = imaging.Crop(img, rect)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
