package upscale

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obzva/upscale/internal/logging"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestTimer(t *testing.T) {
	src := newRandomImage(t, 12, 10, 3, 14)
	r, err := NewResizer(Instruction{Ratio: 2})
	require.NoError(t, err)

	t.Run("result is unchanged", func(t *testing.T) {
		want, err := r.Resize(src)
		require.NoError(t, err)

		got, err := NewTimer(r, nil).Resize(src)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("observes elapsed seconds", func(t *testing.T) {
		var seen []float64
		tm := NewTimer(r, prometheus.ObserverFunc(func(v float64) {
			seen = append(seen, v)
		}))
		tm.now = fakeClock(250 * time.Millisecond)

		_, err := tm.Resize(src)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.25}, seen)
	})

	t.Run("feeds the histogram", func(t *testing.T) {
		h := NewDurationHistogram()
		tm := NewTimer(r, h)
		for range 3 {
			_, err := tm.Resize(src)
			require.NoError(t, err)
		}
		assert.Equal(t, 1, testutil.CollectAndCount(h, "upscale_resize_duration_seconds"))

		m := &dto.Metric{}
		require.NoError(t, h.Write(m))
		assert.Equal(t, uint64(3), m.GetHistogram().GetSampleCount())

		reg := prometheus.NewPedanticRegistry()
		require.NoError(t, reg.Register(h))
	})

	t.Run("logs failures", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetOutput(&buf)
		logging.SetLevel(logging.LevelInfo)
		defer logging.SetOutput(os.Stderr)
		defer logging.SetLevel(logging.LevelWarning)

		tm := NewTimer(r, nil)
		tm.Label = "broken"
		_, err := tm.Resize(&Image{Width: 2, Height: 2, Channels: 3})
		assert.ErrorIs(t, err, ErrInvalidImage)
		assert.Contains(t, buf.String(), "broken failed after")
	})
}
