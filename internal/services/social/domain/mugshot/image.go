package mugshot

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"
)

// Image is one encoded portrait.
type Image struct {
	data   []byte
	format string
	width  int
	height int
}

// DecodeBase64 decodes a base64 payload and validates that it holds a
// supported image (png, jpeg or gif).
func DecodeBase64(payload string) (*Image, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, fmt.Errorf("mugshot payload is empty")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode mugshot base64: %w", err)
	}
	return Decode(data)
}

// Decode validates encoded image bytes.
func Decode(data []byte) (*Image, error) {
	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode mugshot image: %w", err)
	}
	bounds := decoded.Bounds()
	return &Image{
		data:   bytes.Clone(data),
		format: format,
		width:  bounds.Dx(),
		height: bounds.Dy(),
	}, nil
}

// FromImage encodes img as png.
func FromImage(img image.Image) (*Image, error) {
	if img == nil {
		return nil, fmt.Errorf("image is required")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode mugshot png: %w", err)
	}
	bounds := img.Bounds()
	return &Image{
		data:   buf.Bytes(),
		format: "png",
		width:  bounds.Dx(),
		height: bounds.Dy(),
	}, nil
}

// Base64 returns the encoded image as standard base64.
func (i *Image) Base64() string {
	if i == nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(i.data)
}

// Bytes returns a copy of the encoded image.
func (i *Image) Bytes() []byte {
	if i == nil {
		return nil
	}
	return bytes.Clone(i.data)
}

// Format names the decoder that accepted the image ("png", "jpeg", "gif").
func (i *Image) Format() string { return i.format }

// Width returns the image width in pixels.
func (i *Image) Width() int { return i.width }

// Height returns the image height in pixels.
func (i *Image) Height() int { return i.height }
