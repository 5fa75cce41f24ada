package upscale

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/obzva/upscale/internal/logging"
)

// NewDurationHistogram returns a histogram for resize wall-clock time in seconds.
// Registering it is up to the caller.
func NewDurationHistogram() prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "upscale",
		Name:      "resize_duration_seconds",
		Help:      "Wall-clock time of a single resize call.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
	})
}

// Timer measures resize calls without changing their result.
type Timer struct {
	Resizer *Resizer
	// Observer receives the elapsed seconds of every call. It may be nil.
	Observer prometheus.Observer
	// Label names the measured operation in log lines.
	Label string

	now func() time.Time
}

// NewTimer wraps r, reporting to o when it is not nil.
func NewTimer(r *Resizer, o prometheus.Observer) *Timer {
	return &Timer{Resizer: r, Observer: o, Label: "resize", now: time.Now}
}

// Resize calls the wrapped Resizer and records how long it took.
// Failed calls are timed too.
func (t *Timer) Resize(src *Image) (*Image, error) {
	now := t.now
	if now == nil {
		now = time.Now
	}

	start := now()
	dst, err := t.Resizer.Resize(src)
	elapsed := now().Sub(start)

	if t.Observer != nil {
		t.Observer.Observe(elapsed.Seconds())
	}
	if err != nil {
		logging.Info("%s failed after %v: %v", t.Label, elapsed, err)
	} else {
		logging.Info("%s to %dx%d took %v", t.Label, dst.Height, dst.Width, elapsed)
	}
	return dst, err
}
