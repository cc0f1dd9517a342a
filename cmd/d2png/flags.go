package main

import (
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
)

// ErrTooManyArgs signals extra positional arguments.
var ErrTooManyArgs = errors.New("expected at most one positional argument (the book root)")

// rendererFlags holds flags overriding the [preprocessor.d2-png] settings.
type rendererFlags struct {
	renderer  string
	layout    string
	outputDir string
	theme     string
	darkTheme string
	inline    bool
	timeout   time.Duration
}

// outputFlags holds destination-related flags.
type outputFlags struct {
	destDir    string
	previewDir string
}

// cliFlags holds every parsed flag plus the positional book root.
type cliFlags struct {
	bookRoot string
	config   string
	verbose  bool
	quiet    bool

	renderer rendererFlags
	output   outputFlags

	// set records which renderer flags were given explicitly, so only those
	// override the book configuration.
	set *flag.FlagSet
}

// parseFlags parses the command line. The only positional argument is the
// book root directory (default ".").
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{bookRoot: "."}

	fs := flag.NewFlagSet("d2png", flag.ContinueOnError)
	fs.SortFlags = false

	fs.StringVarP(&f.config, "config", "c", "", "standalone YAML settings file (overrides book.toml)")
	fs.StringVar(&f.output.destDir, "dest-dir", "processed", "directory for processed markdown, relative to the book root")
	fs.StringVar(&f.output.previewDir, "preview-dir", "", "also write HTML previews of processed chapters here")

	fs.StringVar(&f.renderer.renderer, "renderer", "", "path to the d2 executable")
	fs.StringVar(&f.renderer.layout, "layout", "", "d2 layout engine (e.g. dagre, elk)")
	fs.StringVar(&f.renderer.outputDir, "output-dir", "", "image directory name under the book source root")
	fs.StringVar(&f.renderer.theme, "theme", "", "d2 theme identifier")
	fs.StringVar(&f.renderer.darkTheme, "dark-theme", "", "d2 dark theme identifier")
	fs.BoolVar(&f.renderer.inline, "inline", false, "embed images as base64 data URIs instead of files")
	fs.DurationVar(&f.renderer.timeout, "timeout", 0, "per-diagram render timeout (default 30s)")

	fs.BoolVarP(&f.verbose, "verbose", "v", false, "report each processed chapter")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress the run summary")

	var showVersion bool
	fs.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	if showVersion {
		fmt.Printf("d2png %s\n", Version)
		// Exit through the normal path with nothing to do.
		f.bookRoot = ""
		return f, nil
	}

	switch fs.NArg() {
	case 0:
	case 1:
		f.bookRoot = fs.Arg(0)
	default:
		return nil, ErrTooManyArgs
	}

	f.set = fs
	return f, nil
}

// changed reports whether a flag was explicitly set on the command line.
func (f *cliFlags) changed(name string) bool {
	return f.set != nil && f.set.Changed(name)
}
