// Command snipedit is a demo harness for the editing engine: it loads an
// image from a file or the clipboard, applies one transform, reports the
// estimated export sizes, and writes the result to disk or back to the
// clipboard.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/snipedit/snipedit/internal/codec"
	"github.com/snipedit/snipedit/internal/session"
	"github.com/snipedit/snipedit/internal/source"
	"github.com/snipedit/snipedit/internal/transform"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func run() error {
	var args cliArgs
	cliCtx := kong.Parse(
		&args,
		kong.Name("snipedit"),
		kong.Description("Crop, resize, and annotate images from the command line."),
		kong.UsageOnError(),
	)
	return cliCtx.Run()
}

type cliArgs struct {
	Info     infoCmd     `cmd:"" help:"Print image metadata"`
	Estimate estimateCmd `cmd:"" help:"Estimate export sizes in PNG and JPEG"`
	Crop     cropCmd     `cmd:"" help:"Crop a region out of an image"`
	Resize   resizeCmd   `cmd:"" help:"Resize an image by a uniform scale"`
}

type infoCmd struct {
	Input   string `arg:"" optional:"" help:"Image file to inspect"`
	Paste   bool   `help:"Read the image from the system clipboard instead of a file"`
	Verbose bool   `help:"Enable verbose logging" default:"false"`
}

func (cmd *infoCmd) Run() error {
	setupLogging(cmd.Verbose)

	img, err := loadSource(cmd.Input, cmd.Paste)
	if err != nil {
		return err
	}
	defer img.Release()

	return printJSON(img.Info())
}

type estimateCmd struct {
	Input   string  `arg:"" optional:"" help:"Image file to inspect"`
	Paste   bool    `help:"Read the image from the system clipboard instead of a file"`
	Quality float64 `help:"JPEG quality in [0,1]" default:"0.92"`
	Verbose bool    `help:"Enable verbose logging" default:"false"`
}

func (cmd *estimateCmd) Run() error {
	setupLogging(cmd.Verbose)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx = log.Logger.WithContext(ctx)

	img, err := loadSource(cmd.Input, cmd.Paste)
	if err != nil {
		return err
	}
	defer img.Release()

	est, err := codec.EstimateBoth(ctx, img.Raster(), cmd.Quality)
	if err != nil {
		return err
	}
	return printJSON(est)
}

type cropCmd struct {
	Input         string  `arg:"" optional:"" help:"Image file to crop"`
	Paste         bool    `help:"Read the image from the system clipboard instead of a file"`
	X             float64 `help:"Selection origin X in display pixels" default:"0"`
	Y             float64 `help:"Selection origin Y in display pixels" default:"0"`
	Width         float64 `help:"Selection width in display pixels" required:""`
	Height        float64 `help:"Selection height in display pixels" required:""`
	DisplayWidth  float64 `help:"Displayed image width the selection was made on (defaults to natural width)"`
	DisplayHeight float64 `help:"Displayed image height the selection was made on (defaults to natural height)"`
	exportOpts
	Verbose bool `help:"Enable verbose logging" default:"false"`
}

func (cmd *cropCmd) Run() error {
	setupLogging(cmd.Verbose)

	s := session.New(log.Logger)
	defer s.Reset()

	info, err := loadInto(s, cmd.Input, cmd.Paste)
	if err != nil {
		return err
	}

	displayW := cmd.DisplayWidth
	if displayW == 0 {
		displayW = float64(info.Width)
	}
	displayH := cmd.DisplayHeight
	if displayH == 0 {
		displayH = float64(info.Height)
	}

	region := transform.CropRegion{X: cmd.X, Y: cmd.Y, Width: cmd.Width, Height: cmd.Height}
	s.SetCrop(region, displayW, displayH)

	return finishExport(s, cmd.exportOpts)
}

type resizeCmd struct {
	Input string  `arg:"" optional:"" help:"Image file to resize"`
	Paste bool    `help:"Read the image from the system clipboard instead of a file"`
	Scale float64 `help:"Scale percentage, 100 keeps the original size" required:""`
	exportOpts
	Verbose bool `help:"Enable verbose logging" default:"false"`
}

func (cmd *resizeCmd) Run() error {
	setupLogging(cmd.Verbose)

	s := session.New(log.Logger)
	defer s.Reset()

	if _, err := loadInto(s, cmd.Input, cmd.Paste); err != nil {
		return err
	}

	s.SetMode(session.ModeResize)
	s.SetResizeScale(cmd.Scale)

	return finishExport(s, cmd.exportOpts)
}

// exportOpts are the output flags shared by the transform commands.
type exportOpts struct {
	Output    string  `short:"o" help:"Directory to save the result into" default:"."`
	Format    string  `help:"Export format: png or jpg" default:"png"`
	Quality   float64 `help:"JPEG quality in [0,1]" default:"0.92"`
	Clipboard bool    `help:"Copy the result to the clipboard instead of saving"`
}

// finishExport applies the export settings, reports the size estimates,
// and writes the session output per opts.
func finishExport(s *session.Session, opts exportOpts) error {
	format, err := codec.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	s.SetFormat(format)
	s.SetQuality(opts.Quality)

	d, err := s.RecomputeNow()
	if err != nil {
		return err
	}
	if d != nil && d.Estimate != nil {
		log.Info().
			Float64("png_mb", d.Estimate.PNGSizeMB).
			Float64("jpeg_mb", d.Estimate.JPEGSizeMB).
			Msg("estimated export sizes")
	}

	if opts.Clipboard {
		return s.CopyToClipboard()
	}

	path, err := s.SaveToFile(opts.Output)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New("nothing to export: the selection is empty")
	}
	log.Info().Str("path", path).Msg("wrote image")
	return nil
}

func setupLogging(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.NewConsoleWriter()).Level(level)
	zerolog.DefaultContextLogger = &log.Logger
}

func loadSource(path string, paste bool) (*source.Image, error) {
	if paste {
		return source.FromClipboard()
	}
	if path == "" {
		return nil, errors.New("an input file or --paste is required")
	}
	return source.FromFile(path)
}

func loadInto(s *session.Session, path string, paste bool) (source.ImageInfo, error) {
	if paste {
		return s.LoadClipboard()
	}
	if path == "" {
		return source.ImageInfo{}, errors.New("an input file or --paste is required")
	}
	return s.LoadFile(path)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
