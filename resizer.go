package upscale

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/obzva/upscale/internal/logging"
)

const (
	// DefaultGridSize is the number of tiles along each axis of the destination.
	DefaultGridSize = 3
	// MaxGridSize bounds GridSize, and with it the number of goroutines per call.
	MaxGridSize = 256
	// DefaultMaxBufferSize caps the destination buffer in bytes.
	DefaultMaxBufferSize = min(1<<34, math.MaxInt)
	// minSourceSize is the smallest side that can pass the perimeter check.
	minSourceSize = 4
)

var (
	ErrInvalidRatio      = errors.New("invalid ratio: must be a finite number greater than 0 that yields at least one pixel")
	ErrInvalidGridSize   = errors.New("invalid grid size: must be between 1 and 256")
	ErrInvalidRounding   = errors.New("invalid rounding mode: only truncate and round are available")
	ErrInvalidImage      = errors.New("invalid image")
	ErrResourceExhausted = errors.New("destination buffer cannot be allocated")
	ErrTileOverlap       = errors.New("tiles do not partition the destination")
)

// Instruction configures a Resizer.
type Instruction struct {
	// Ratio scales both dimensions. Required.
	Ratio float64
	// GridSize is N for the N x N tile grid, at most MaxGridSize.
	// Zero means DefaultGridSize. Axes shorter than N get one tile per pixel.
	GridSize int
	// Rounding converts interpolated sums to bytes. The zero value truncates.
	Rounding Rounding
	// MaxBufferSize caps the destination size in bytes. Zero means DefaultMaxBufferSize.
	MaxBufferSize int
}

// Resizer enlarges images with bicubic convolution, one goroutine per tile.
//
// A call to Resize cannot be cancelled and has no timeout: it returns only
// after every tile worker has finished.
type Resizer struct {
	Instruction
}

// NewResizer validates i and fills in defaults for its zero fields.
func NewResizer(i Instruction) (*Resizer, error) {
	if math.IsNaN(i.Ratio) || math.IsInf(i.Ratio, 0) || i.Ratio <= 0 {
		return nil, errors.Wrapf(ErrInvalidRatio, "ratio %v", i.Ratio)
	}

	switch {
	case i.GridSize == 0:
		i.GridSize = DefaultGridSize
	case i.GridSize < 0, i.GridSize > MaxGridSize:
		return nil, errors.Wrapf(ErrInvalidGridSize, "grid size %d", i.GridSize)
	}

	if !i.Rounding.valid() {
		return nil, errors.Wrapf(ErrInvalidRounding, "%v", i.Rounding)
	}

	if i.MaxBufferSize <= 0 {
		i.MaxBufferSize = DefaultMaxBufferSize
	}

	return &Resizer{Instruction: i}, nil
}

// Resize scales src with the default grid size and truncating conversion.
func Resize(src *Image, ratio float64) (*Image, error) {
	r, err := NewResizer(Instruction{Ratio: ratio})
	if err != nil {
		return nil, err
	}
	return r.Resize(src)
}

// Resize returns a new image of floor(Height*Ratio) rows and floor(Width*Ratio)
// columns with the channel count of src. src is only read.
//
// Destination pixels whose source point lies within two pixels of the source
// border keep the fallback value zero in every channel. A source with fewer
// than four rows or columns therefore yields an all-zero image.
func (r *Resizer) Resize(src *Image) (*Image, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	rows, cols, err := r.destSize(src)
	if err != nil {
		return nil, err
	}

	pix, err := allocPix(rows, cols, src.Channels)
	if err != nil {
		return nil, err
	}
	dst := &Image{Width: cols, Height: rows, Channels: src.Channels, Pix: pix}

	logging.Debug("resize %dx%d -> %dx%d (ratio %v, %d channels)", src.Height, src.Width, rows, cols, r.Ratio, src.Channels)

	if src.Height < minSourceSize || src.Width < minSourceSize {
		logging.Debug("source %dx%d too small to interpolate, destination stays zero", src.Height, src.Width)
		return dst, nil
	}

	bounds := dst.Bounds()
	tiles := partition(bounds, r.GridSize)
	if err := checkPartition(bounds, tiles); err != nil {
		return nil, err
	}

	logging.Debug("starting %d tile workers on a %dx%d grid", len(tiles), r.GridSize, r.GridSize)

	var group errgroup.Group
	for _, t := range tiles {
		w := &tileWorker{
			src:   src,
			view:  tileView{dst: dst, rect: t},
			ratio: r.Ratio,
			a:     DefaultSharpness,
			mode:  r.Rounding,
		}
		group.Go(w.fill)
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return dst, nil
}

// destSize truncates the scaled dimensions of src.
func (r *Resizer) destSize(src *Image) (rows, cols int, err error) {
	fr := math.Floor(float64(src.Height) * r.Ratio)
	fc := math.Floor(float64(src.Width) * r.Ratio)
	if fr < 1 || fc < 1 {
		return 0, 0, errors.Wrapf(ErrInvalidRatio, "ratio %v scales %dx%d to nothing", r.Ratio, src.Height, src.Width)
	}
	if fr*fc*float64(src.Channels) > float64(r.MaxBufferSize) {
		return 0, 0, errors.Wrapf(ErrResourceExhausted, "%.0fx%.0fx%d exceeds %d bytes", fr, fc, src.Channels, r.MaxBufferSize)
	}
	return int(fr), int(fc), nil
}

// allocPix returns a zero-filled buffer for rows x cols pixels.
func allocPix(rows, cols, channels int) (pix []uint8, err error) {
	if cols > math.MaxInt/channels || rows > math.MaxInt/(cols*channels) {
		return nil, errors.Wrapf(ErrResourceExhausted, "%dx%dx%d overflows", rows, cols, channels)
	}

	defer func() {
		if p := recover(); p != nil {
			pix = nil
			err = errors.Wrapf(ErrResourceExhausted, "%dx%dx%d: %v", rows, cols, channels, p)
		}
	}()
	return make([]uint8, rows*cols*channels), nil
}
