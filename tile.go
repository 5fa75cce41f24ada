package upscale

import (
	"cmp"
	"image"
	"slices"

	"github.com/pkg/errors"
)

// partition splits bounds into an n x n grid of tiles.
// Rectangles use X for columns and Y for rows. The step is rounded up, so the
// last row and column of tiles may be shorter than the rest; tiles that end up
// empty are dropped, so an axis never has more tiles than pixels.
func partition(bounds image.Rectangle, n int) []image.Rectangle {
	rows := bounds.Dy()
	cols := bounds.Dx()
	if rows <= 0 || cols <= 0 || n <= 0 {
		return nil
	}
	ny := min(n, rows)
	nx := min(n, cols)
	rowStep := (rows + ny - 1) / ny
	colStep := (cols + nx - 1) / nx

	tiles := make([]image.Rectangle, 0, nx*ny)
	for ty := range ny {
		for tx := range nx {
			r := image.Rect(
				bounds.Min.X+tx*colStep, bounds.Min.Y+ty*rowStep,
				bounds.Min.X+(tx+1)*colStep, bounds.Min.Y+(ty+1)*rowStep,
			).Intersect(bounds)
			if r.Empty() {
				continue
			}
			tiles = append(tiles, r)
		}
	}
	return tiles
}

// checkPartition verifies that grid-aligned tiles cover bounds exactly and
// without overlap. Tiles are grouped into bands sharing the same rows; the
// bands must stack from top to bottom and the tiles of each band must line up
// from left to right without gaps.
func checkPartition(bounds image.Rectangle, tiles []image.Rectangle) error {
	for _, t := range tiles {
		if t.Empty() || !t.In(bounds) {
			return errors.Wrapf(ErrTileOverlap, "tile %v outside %v", t, bounds)
		}
	}

	sorted := slices.Clone(tiles)
	slices.SortFunc(sorted, func(a, b image.Rectangle) int {
		return cmp.Or(cmp.Compare(a.Min.Y, b.Min.Y), cmp.Compare(a.Min.X, b.Min.X))
	})

	y := bounds.Min.Y
	for i := 0; i < len(sorted); {
		band := sorted[i]
		if band.Min.Y != y {
			return errors.Wrapf(ErrTileOverlap, "band at row %d, want row %d", band.Min.Y, y)
		}
		x := bounds.Min.X
		for ; i < len(sorted) && sorted[i].Min.Y == band.Min.Y; i++ {
			t := sorted[i]
			if t.Max.Y != band.Max.Y {
				return errors.Wrapf(ErrTileOverlap, "tiles %v and %v are not aligned", band, t)
			}
			if t.Min.X != x {
				return errors.Wrapf(ErrTileOverlap, "tile %v starts at column %d, want column %d", t, t.Min.X, x)
			}
			x = t.Max.X
		}
		if x != bounds.Max.X {
			return errors.Wrapf(ErrTileOverlap, "band at row %d ends at column %d of %d", band.Min.Y, x, bounds.Max.X)
		}
		y = band.Max.Y
	}
	if y != bounds.Max.Y {
		return errors.Wrapf(ErrTileOverlap, "tiles cover rows up to %d of %d", y, bounds.Max.Y)
	}
	return nil
}

// tileView is the part of the destination buffer a single worker may write.
type tileView struct {
	dst  *Image
	rect image.Rectangle
}

// pixel returns the writable channels at (row, col).
func (v tileView) pixel(row, col int) ([]uint8, error) {
	if !image.Pt(col, row).In(v.rect) {
		return nil, errors.Wrapf(ErrTileOverlap, "write at row %d col %d outside tile %v", row, col, v.rect)
	}
	return v.dst.Pixel(row, col), nil
}

// tileWorker fills one tile of the destination.
type tileWorker struct {
	src   *Image
	view  tileView
	ratio float64
	a     float64
	mode  Rounding
}

// inside reports whether the 4x4 window around (x, y) fits in the source.
// Pixels that fail keep their fallback value of zero.
func (w *tileWorker) inside(x, y float64) bool {
	return x > 1 && x < float64(w.src.Height-2) && y > 1 && y < float64(w.src.Width-2)
}

func (w *tileWorker) fill() error {
	r := w.view.rect
	for i := r.Min.Y; i < r.Max.Y; i++ {
		srcX := float64(i) / w.ratio
		for j := r.Min.X; j < r.Max.X; j++ {
			srcY := float64(j) / w.ratio
			if !w.inside(srcX, srcY) {
				continue
			}

			px, err := w.view.pixel(i, j)
			if err != nil {
				return err
			}
			c := calcCoeff(srcX, srcY, w.a)
			sample(w.src, srcX, srcY, &c, w.mode, px)
		}
	}
	return nil
}
