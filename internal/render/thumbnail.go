package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
)

// Thumbnail scales a rendered grid to fit maxWidth x maxHeight and returns it as a JPEG.
// A zero bound leaves that dimension free.
func Thumbnail(content io.Reader, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var thumb image.Image
	switch {
	case maxWidth > 0 && maxHeight > 0:
		thumb = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	case maxWidth > 0:
		thumb = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	case maxHeight > 0:
		thumb = imaging.Resize(img, 0, maxHeight, imaging.Lanczos)
	default:
		thumb = img
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
