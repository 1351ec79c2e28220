package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/ironsheep/swatch/internal/imaging"
	"github.com/ironsheep/swatch/internal/render"
	"github.com/ironsheep/swatch/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// errNoImage is reported when -i/-image is missing.
var errNoImage = errors.New("error: please provide absolute path of an image!")

type options struct {
	image        string
	maxDepth     int
	output       render.Format
	maxDimension int
	repaint      string
}

func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("swatch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.image, "image", "", "path of the image to extract a palette from")
	fs.StringVar(&opts.image, "i", "", "shorthand for -image")
	fs.IntVar(&opts.maxDepth, "max-depth", imaging.DefaultMaxDepth, "median cut depth; the palette has 2^depth colors")
	fs.IntVar(&opts.maxDepth, "d", imaging.DefaultMaxDepth, "shorthand for -max-depth")
	fs.Var(&opts.output, "output", "output format: html | json | file")
	fs.Var(&opts.output, "o", "shorthand for -output")
	fs.IntVar(&opts.maxDimension, "max-dimension", 0, "downscale so neither side exceeds this many pixels (0 keeps full size)")
	fs.StringVar(&opts.repaint, "repaint", "", "also write the image repainted with its palette to this PNG path")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: swatch -i <image> [options]")
		fmt.Fprintln(stderr, "       swatch serve")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}
	return fs
}

// run extracts a palette as described by args and writes it to stdout.
func run(args []string, stdout, stderr io.Writer) error {
	opts := options{output: render.FormatHTML}
	fs := newFlagSet(&opts, stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.image == "" {
		return errNoImage
	}

	cache := imaging.NewImageCache()
	img, err := cache.Load(opts.image)
	if err != nil {
		return err
	}

	paletteOpts := imaging.PaletteOptions{
		MaxDepth:     opts.maxDepth,
		MaxDimension: opts.maxDimension,
	}

	analysis, err := imaging.Analyze(img, paletteOpts)
	if err != nil {
		return err
	}
	result, err := analysis.Palette()
	if err != nil {
		return err
	}
	if debugEnabled() {
		log.Printf("Extracted %d colors from %s (%dx%d sample)",
			len(result.Pixels), opts.image, result.SampleWidth, result.SampleHeight)
	}

	saved, err := render.Write(opts.output, stdout, ".", filepath.Base(opts.image), result.Pixels)
	if err != nil {
		return err
	}
	if saved != "" {
		log.Printf("Palette written to %s", saved)
	}

	if opts.repaint != "" {
		if err := imaging.SavePNG(opts.repaint, analysis.Repaint().Image); err != nil {
			return err
		}
		log.Printf("Repainted image written to %s", opts.repaint)
	}

	return nil
}

func debugEnabled() bool {
	return os.Getenv("SWATCH_LOG_LEVEL") == "debug"
}

func printHelp() {
	fmt.Println("swatch - median cut color palette extraction")
	fmt.Println()
	fmt.Println("Usage: swatch -i <image> [options]")
	fmt.Println("       swatch serve")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -i, -image <path>        Image to extract a palette from (required)")
	fmt.Println("  -d, -max-depth <n>       Median cut depth, 2^n colors (default 4)")
	fmt.Println("  -o, -output <format>     html | json | file (default html)")
	fmt.Println("  -max-dimension <n>       Downscale before quantizing (default 0, off)")
	fmt.Println("  -repaint <path>          Write the repainted image as PNG")
	fmt.Println("  --version, -v            Print version information")
	fmt.Println("  --help, -h               Print this help message")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve    Run as an MCP server over stdin/stdout")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  SWATCH_LOG_LEVEL=debug    Enable debug logging")
}

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("swatch %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	// Configure logging to stderr (stdout carries the palette or MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if len(os.Args) > 1 && os.Args[1] == "serve" {
		if debugEnabled() {
			log.Printf("Swatch MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		}
		srv := server.New()
		if err := srv.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if errors.Is(err, errNoImage) {
			fmt.Fprintln(os.Stderr, err)
		} else {
			log.Printf("swatch: %v", err)
		}
		os.Exit(1)
	}
}
