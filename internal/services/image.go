package services

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// maxLogoWidth is the widest a stored logo ever needs to be; larger
// uploads are scaled down before storage
const maxLogoWidth = 512

// maxLogoBytes caps accepted logo uploads at 5 MB
const maxLogoBytes = 5 * 1024 * 1024

// ImageService normalizes uploaded logo images before they reach
// object storage
type ImageService struct{}

// NewImageService creates a new image service
func NewImageService() *ImageService {
	return &ImageService{}
}

// NormalizedImage is a processed image ready for upload
type NormalizedImage struct {
	Data        *bytes.Reader
	ContentType string
	Size        int64
}

// NormalizeLogo decodes an uploaded image, scales it down to the
// maximum logo width when needed, and re-encodes it as PNG
func (s *ImageService) NormalizeLogo(reader io.Reader) (*NormalizedImage, error) {
	limited := io.LimitReader(reader, maxLogoBytes+1)

	img, err := imaging.Decode(limited, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo image: %w", err)
	}

	if img.Bounds().Dx() > maxLogoWidth {
		img = imaging.Resize(img, maxLogoWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode logo image: %w", err)
	}
	if buf.Len() > maxLogoBytes {
		return nil, fmt.Errorf("logo image too large: %d bytes", buf.Len())
	}

	return &NormalizedImage{
		Data:        bytes.NewReader(buf.Bytes()),
		ContentType: "image/png",
		Size:        int64(buf.Len()),
	}, nil
}
