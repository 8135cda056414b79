package common

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

const maxPhotoWidth = 1024

// ResizePhoto decodes an uploaded photo and scales it down to maxPhotoWidth
// when wider, keeping the aspect ratio. The result is always jpeg.
func ResizePhoto(data []byte) ([]byte, string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}

	if img.Bounds().Dx() > maxPhotoWidth {
		img = resize.Resize(maxPhotoWidth, 0, img, resize.Lanczos3)
	}

	buf := bytes.Buffer{}
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), "image/jpeg", nil
}
