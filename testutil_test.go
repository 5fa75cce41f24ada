package upscale

import (
	"bytes"
	"image"
	"image/jpeg"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubImageReader struct {
	image []byte
}

func (s *stubImageReader) Read(p []byte) (int, error) {
	n := copy(p, s.image)
	s.image = s.image[n:]
	if len(s.image) == 0 {
		return n, io.EOF
	}
	return n, nil
}

func (s *stubImageReader) Close() error {
	return nil
}

func newStubImageData() []byte {
	mockImg := image.NewRGBA(image.Rect(0, 0, 100, 80))
	b := new(bytes.Buffer)
	_ = jpeg.Encode(b, mockImg, nil)
	return b.Bytes()
}

func newStubImageReader() *stubImageReader {
	return &stubImageReader{image: newStubImageData()}
}

// newFilledImage returns a width x height image with every byte set to v.
func newFilledImage(t testing.TB, width, height, channels int, v uint8) *Image {
	t.Helper()
	m, err := NewImage(width, height, channels)
	require.NoError(t, err)
	for i := range m.Pix {
		m.Pix[i] = v
	}
	return m
}

// newRandomImage returns an image filled from a fixed seed.
func newRandomImage(t testing.TB, width, height, channels int, seed int64) *Image {
	t.Helper()
	m, err := NewImage(width, height, channels)
	require.NoError(t, err)
	rnd := rand.New(rand.NewSource(seed))
	for i := range m.Pix {
		m.Pix[i] = uint8(rnd.Intn(256))
	}
	return m
}

// interpolable mirrors the perimeter check of the tile worker.
func interpolable(src *Image, x, y float64) bool {
	return x > 1 && x < float64(src.Height-2) && y > 1 && y < float64(src.Width-2)
}
