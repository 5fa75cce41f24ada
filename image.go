package upscale

import (
	"image"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Image is a raw 8-bit raster.
// Pix holds Height rows of Width pixels, each pixel Channels interleaved bytes,
// so the value of channel ch at (row, col) lives at ((row*Width)+col)*Channels+ch.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewImage allocates a zero-filled image.
func NewImage(width, height, channels int) (*Image, error) {
	if width <= 0 || height <= 0 || channels <= 0 {
		return nil, errors.Wrapf(ErrInvalidImage, "dimensions %dx%dx%d", width, height, channels)
	}
	pix, err := allocPix(height, width, channels)
	if err != nil {
		return nil, err
	}
	return &Image{Width: width, Height: height, Channels: channels, Pix: pix}, nil
}

// Validate checks the dimensions against the length of the pixel buffer.
func (m *Image) Validate() error {
	if m == nil {
		return errors.Wrap(ErrInvalidImage, "nil image")
	}
	if m.Width <= 0 || m.Height <= 0 || m.Channels <= 0 {
		return errors.Wrapf(ErrInvalidImage, "dimensions %dx%dx%d", m.Width, m.Height, m.Channels)
	}
	if len(m.Pix) != m.Width*m.Height*m.Channels {
		return errors.Wrapf(ErrInvalidImage, "buffer holds %d bytes, want %d", len(m.Pix), m.Width*m.Height*m.Channels)
	}
	return nil
}

// PixOffset returns the index of the first channel of the pixel at (row, col).
func (m *Image) PixOffset(row, col int) int {
	return ((row * m.Width) + col) * m.Channels
}

// Pixel returns the channels of the pixel at (row, col).
// The returned slice aliases Pix.
func (m *Image) Pixel(row, col int) []uint8 {
	off := m.PixOffset(row, col)
	return m.Pix[off : off+m.Channels : off+m.Channels]
}

// Bounds returns the image rectangle with X as column and Y as row.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// FromImage converts a decoded image into a raw raster.
// channels selects the layout: 1 (gray), 3 (RGB) or 4 (non-premultiplied RGBA).
func FromImage(src image.Image, channels int) (*Image, error) {
	rect := src.Bounds()
	w, h := rect.Dx(), rect.Dy()

	switch channels {
	case 1:
		gray := image.NewGray(image.Rect(0, 0, w, h))
		draw.Draw(gray, gray.Bounds(), src, rect.Min, draw.Src)
		return &Image{Width: w, Height: h, Channels: 1, Pix: gray.Pix}, nil
	case 3, 4:
		nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), src, rect.Min, draw.Src)
		if channels == 4 {
			return &Image{Width: w, Height: h, Channels: 4, Pix: nrgba.Pix}, nil
		}
		pix := make([]uint8, w*h*3)
		for i, j := 0, 0; i < len(nrgba.Pix); i, j = i+4, j+3 {
			copy(pix[j:j+3], nrgba.Pix[i:i+3])
		}
		return &Image{Width: w, Height: h, Channels: 3, Pix: pix}, nil
	}

	return nil, errors.Wrapf(ErrInvalidImage, "unsupported channel count %d", channels)
}

// ToImage wraps the raster in a standard library image for encoding.
// One channel becomes *image.Gray, three become an opaque *image.NRGBA and
// four an *image.NRGBA.
func (m *Image) ToImage() (image.Image, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	rect := image.Rect(0, 0, m.Width, m.Height)

	switch m.Channels {
	case 1:
		return &image.Gray{Pix: m.Pix, Stride: m.Width, Rect: rect}, nil
	case 3:
		nrgba := image.NewNRGBA(rect)
		for i, j := 0, 0; j < len(m.Pix); i, j = i+4, j+3 {
			copy(nrgba.Pix[i:i+3], m.Pix[j:j+3])
			nrgba.Pix[i+3] = 0xff
		}
		return nrgba, nil
	case 4:
		return &image.NRGBA{Pix: m.Pix, Stride: m.Width * 4, Rect: rect}, nil
	}

	return nil, errors.Wrapf(ErrInvalidImage, "unsupported channel count %d", m.Channels)
}
