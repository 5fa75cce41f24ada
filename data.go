package upscale

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/obzva/upscale/internal/logging"
)

var (
	ErrInvalidFileName     = errors.New("invalid file name")
	ErrInvalidFormat       = errors.New("invalid format: only jpg/jpeg, png, bmp, tif/tiff and webp formats are supported")
	ErrUnsupportedEncoding = errors.New("unsupported output format: only jpeg, png, bmp and tiff can be written")
)

var fileNamePattern = regexp.MustCompile(`^(.+)\.([^.]+)$`)

// Data is a struct that contains the name and format of the image, and the raw raster itself.
type Data struct {
	Name   string
	Format string
	Image  *Image
}

// splitFileName extracts the base name and the normalized format from fileName.
func splitFileName(fileName string) (name, format string, err error) {
	matches := fileNamePattern.FindStringSubmatch(filepath.Base(fileName))
	if len(matches) != 3 {
		return "", "", errors.Wrapf(ErrInvalidFileName, "%q", fileName)
	}

	name = matches[1]
	format = strings.ToLower(matches[2])
	switch format {
	case "jpg":
		format = "jpeg"
	case "tif":
		format = "tiff"
	}
	switch format {
	case "jpeg", "png", "bmp", "tiff", "webp":
	default:
		return "", "", errors.Wrapf(ErrInvalidFormat, "%q", matches[2])
	}
	return name, format, nil
}

// NewData creates a new Data instance from a file name and a reader.
// The decoded image is converted to a raster with the given number of channels.
func NewData(fileName string, r io.Reader, channels int) (*Data, error) {
	name, format, err := splitFileName(fileName)
	if err != nil {
		return nil, err
	}

	dec, decFormat, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %q", fileName)
	}
	if decFormat != format {
		logging.Warning("%q has extension %s but decodes as %s", fileName, format, decFormat)
	}

	img, err := FromImage(dec, channels)
	if err != nil {
		return nil, err
	}

	return &Data{
		Name:   name,
		Format: format,
		Image:  img,
	}, nil
}

// Open reads and decodes the image file at path.
func Open(path string, channels int) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open image")
	}
	defer f.Close()

	return NewData(filepath.Base(path), f, channels)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img *Image, format string) error {
	m, err := img.ToImage()
	if err != nil {
		return err
	}

	switch format {
	case "jpeg":
		err = jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
	case "png":
		err = png.Encode(w, m)
	case "bmp":
		err = bmp.Encode(w, m)
	case "tiff":
		err = tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	default:
		return errors.Wrapf(ErrUnsupportedEncoding, "%q", format)
	}
	return errors.Wrapf(err, "encode %s", format)
}

// Save encodes img into the file at path, choosing the format from the extension.
func Save(path string, img *Image) error {
	_, format, err := splitFileName(path)
	if err != nil {
		return err
	}
	if format == "webp" {
		return errors.Wrapf(ErrUnsupportedEncoding, "%q", format)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create image")
	}

	err = Encode(f, img, format)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "close image")
	}
	return err
}
