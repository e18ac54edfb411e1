package vkgraph

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/gogpu/gputypes"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is tightly packed texel data ready for upload.
type Image struct {
	Width  uint32
	Height uint32
	Format gputypes.TextureFormat
	Pix    []byte
}

// Extent returns the image size as a texture extent.
func (img *Image) Extent() gputypes.Extent3D {
	return gputypes.NewExtent2D(img.Width, img.Height)
}

// NewImageRGBA converts src to an RGBA8 image.
func NewImageRGBA(src image.Image) *Image {
	bounds := src.Bounds()
	rgba, ok := src.(*image.RGBA)
	if !ok || rgba.Stride != 4*bounds.Dx() || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)
	}
	return &Image{
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
		Format: gputypes.TextureFormatRGBA8Unorm,
		Pix:    rgba.Pix,
	}
}

// ReadImage decodes the image file at path into RGBA8 texels.
// PNG, JPEG, BMP, TIFF and WebP files are supported.
func ReadImage(path string) (*Image, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	img, _, err := image.Decode(fp)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return NewImageRGBA(img), nil
}
