package storage

import (
	"bytes"
	"fmt"
	"image"

	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

type ImageProcessor struct {
	MaxSize int64 // bytes (default: 5MB)
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 5 * 1024 * 1024} // 5MB
}

// ValidateImage checks JPEG/PNG and rejects files over MaxSize.
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("image format %s not allowed (only jpeg/png)", format)
	}
}

// ProcessAvatar downscales to fit 1024x1024, JPEG quality 90.
// Small square-ish images pass through mostly untouched.
func (p *ImageProcessor) ProcessAvatar(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}
	resized := imaging.Fit(img, 1024, 1024, imaging.Lanczos)
	return encodeJPEG(resized)
}

// ProcessBanner center-crops to the 1600x600 profile header format.
func (p *ImageProcessor) ProcessBanner(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}
	cropped := imaging.Fill(img, 1600, 600, imaging.Center, imaging.Lanczos)
	return encodeJPEG(cropped)
}

func encodeJPEG(img image.Image) ([]byte, error) {
	b := new(bytes.Buffer)
	if err := jpeg.Encode(b, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("cannot encode jpeg: %w", err)
	}
	return b.Bytes(), nil
}
