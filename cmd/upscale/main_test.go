package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obzva/upscale"
)

func TestDefaultOutput(t *testing.T) {
	tests := []struct {
		input, dir, want string
	}{
		{"photos/cat.png", "photos", filepath.Join("photos", "cat_upscaled.png")},
		{"cat.jpg", "out", filepath.Join("out", "cat_upscaled.jpg")},
		{"cat.webp", ".", "cat_upscaled.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, defaultOutput(tt.input, tt.dir), tt.input)
	}
}

func TestSettingsResizer(t *testing.T) {
	data := &upscale.Data{Image: &upscale.Image{Width: 50, Height: 20, Channels: 3}}

	t.Run("width overrides ratio", func(t *testing.T) {
		s := settings{ratio: 2, width: 125, grid: 3}
		tm, err := s.resizer(data)
		require.NoError(t, err)
		assert.Equal(t, 2.5, tm.Resizer.Ratio)
		assert.Equal(t, upscale.Truncate, tm.Resizer.Rounding)
	})

	t.Run("round selects nearest", func(t *testing.T) {
		s := settings{ratio: 2, grid: 3, round: true}
		tm, err := s.resizer(data)
		require.NoError(t, err)
		assert.Equal(t, upscale.RoundNearest, tm.Resizer.Rounding)
	})

	t.Run("rejects negative ratio", func(t *testing.T) {
		s := settings{ratio: -1, grid: 3}
		_, err := s.resizer(data)
		assert.ErrorIs(t, err, upscale.ErrInvalidRatio)
	})
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	src, err := upscale.NewImage(8, 8, 3)
	require.NoError(t, err)
	for i := range src.Pix {
		src.Pix[i] = 90
	}

	var inputs []string
	for _, name := range []string{"a.png", "b.bmp"} {
		p := filepath.Join(dir, name)
		require.NoError(t, upscale.Save(p, src))
		inputs = append(inputs, p)
	}

	out := filepath.Join(dir, "out")
	s := settings{ratio: 2, grid: 2, channels: 3}
	require.NoError(t, doBatch(s, inputs, out, 2))

	for _, name := range []string{"a_upscaled.png", "b_upscaled.bmp"} {
		d, err := upscale.Open(filepath.Join(out, name), 3)
		require.NoError(t, err)
		assert.Equal(t, 16, d.Image.Width)
		assert.Equal(t, 16, d.Image.Height)
	}
}
