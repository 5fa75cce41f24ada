package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/obzva/upscale"
	"github.com/obzva/upscale/internal/logging"
)

const (
	checkmark = "✓"
	crossmark = "✗"
)

type settings struct {
	ratio    float64
	width    int
	grid     int
	round    bool
	channels int
}

func main() {
	app := kingpin.New("upscale", "Enlarge images with tiled bicubic interpolation")
	app.HelpFlag.Short('h')

	logLevel := app.Flag("log-level", "Log level: debug, info, warning, error, none").Default("warning").String()

	var s settings
	app.Flag("ratio", "Scale ratio applied to both dimensions").Short('r').Default("2").Float64Var(&s.ratio)
	app.Flag("grid", "Tiles along each axis, one worker per tile").Short('g').Default(fmt.Sprint(upscale.DefaultGridSize)).IntVar(&s.grid)
	app.Flag("round", "Round to nearest instead of truncating").BoolVar(&s.round)
	app.Flag("channels", "Channels per pixel: 1, 3 or 4").Short('c').Default("3").IntVar(&s.channels)

	resize := app.Command("resize", "Resize a single image").Default()
	var (
		input  = resize.Arg("input", "Source image").Required().ExistingFile()
		output = resize.Arg("output", "Destination image").String()
	)
	resize.Flag("width", "Target width; overrides --ratio").Short('w').IntVar(&s.width)

	batch := app.Command("batch", "Resize several images concurrently")
	var (
		outDir = batch.Flag("output", "Output directory").Short('o').Default(".").String()
		jobs   = batch.Flag("jobs", "Images processed at the same time").Short('j').Default("2").Int()
		inputs = batch.Arg("inputs", "Source images").Required().ExistingFiles()
	)

	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	upscale.SetLogLevel(*logLevel)

	var err error
	switch command {
	case resize.FullCommand():
		err = doResize(s, *input, *output)
	case batch.FullCommand():
		err = doBatch(s, *inputs, *outDir, *jobs)
	default:
		err = fmt.Errorf("unknown command: %q", command)
	}

	if err != nil {
		logging.Error("%v", err)
		os.Exit(1)
	}
}

func (s settings) resizer(data *upscale.Data) (*upscale.Timer, error) {
	ratio := s.ratio
	if s.width > 0 {
		ratio = float64(s.width) / float64(data.Image.Width)
	}

	i := upscale.Instruction{Ratio: ratio, GridSize: s.grid}
	if s.round {
		i.Rounding = upscale.RoundNearest
	}
	r, err := upscale.NewResizer(i)
	if err != nil {
		return nil, err
	}
	return upscale.NewTimer(r, nil), nil
}

func defaultOutput(input, dir string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(filepath.Base(input), ext)
	if strings.EqualFold(ext, ".webp") {
		ext = ".png"
	}
	return filepath.Join(dir, base+"_upscaled"+ext)
}

func doResize(s settings, input, output string) error {
	if output == "" {
		output = defaultOutput(input, filepath.Dir(input))
	}
	return resizeFile(s, input, output)
}

func doBatch(s settings, inputs []string, outDir string, jobs int) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	var group errgroup.Group
	if jobs > 0 {
		group.SetLimit(jobs)
	}
	for _, input := range inputs {
		group.Go(func() error {
			return resizeFile(s, input, defaultOutput(input, outDir))
		})
	}
	return group.Wait()
}

func resizeFile(s settings, input, output string) error {
	data, err := upscale.Open(input, s.channels)
	if err != nil {
		fmt.Printf("%v Failed to read %q: %v\n", crossmark, input, err)
		return err
	}

	t, err := s.resizer(data)
	if err != nil {
		return err
	}
	t.Label = data.Name

	dst, err := t.Resize(data.Image)
	if err != nil {
		fmt.Printf("%v Failed to resize %q: %v\n", crossmark, input, err)
		return err
	}

	err = upscale.Save(output, dst)
	if err != nil {
		fmt.Printf("%v Failed to save %q: %v\n", crossmark, output, err)
		return err
	}

	fmt.Printf("%v %q (%dx%d) saved as %q (%dx%d).\n", checkmark, input, data.Image.Width, data.Image.Height, output, dst.Width, dst.Height)
	return nil
}
