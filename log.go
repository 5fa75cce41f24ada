package upscale

import "github.com/obzva/upscale/internal/logging"

// SetLogLevel sets the package log level: debug, info, warning, error or none.
func SetLogLevel(level string) {
	logging.SetLevel(logging.ParseLevel(level))
}
