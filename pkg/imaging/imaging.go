package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"

	"github.com/nfnt/resize"
)

const (
	JPEG = "image/jpeg"
	PNG  = "image/png"
)

var ErrUnsupportedFormat = errors.New("imaging: unsupported image format")

// Extensions maps the accepted content types to file extensions.
var Extensions = map[string]string{
	JPEG: "jpg",
	PNG:  "png",
}

// Detect sniffs the content type of data and accepts only JPEG and PNG.
func Detect(data []byte) (string, error) {
	contentType := http.DetectContentType(data)
	if _, ok := Extensions[contentType]; !ok {
		return "", ErrUnsupportedFormat
	}
	return contentType, nil
}

// Downscale shrinks the image to maxWidth keeping the aspect ratio.
// Images already narrow enough, or a zero maxWidth, are returned untouched.
func Downscale(data []byte, contentType string, maxWidth uint) ([]byte, error) {
	if maxWidth == 0 {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if uint(img.Bounds().Dx()) <= maxWidth {
		return data, nil
	}

	resized := resize.Resize(maxWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	switch contentType {
	case JPEG:
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85})
	case PNG:
		err = png.Encode(&buf, resized)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
