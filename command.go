package main

import (
	"flag"
	"fmt"
	"os"

	"imgconv/codec"
	"imgconv/logger"
)

type Config struct {
	Folder       string
	InputFormat  string
	OutputFormat string
	Width        int
	Height       int
	Quality      int
	Version      string
}

var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func ParseConfig(args []string, console *logger.Console) (*Config, error) {
	cfg := &Config{Version: Version}

	fs := flag.NewFlagSet("imgconv", flag.ContinueOnError)
	fs.StringVar(&cfg.InputFormat, "from", "", "Source format/extension, e.g. svg, png, jpg (required)")
	fs.StringVar(&cfg.OutputFormat, "to", "", "Target format/extension, e.g. png, webp, avif (required)")
	fs.IntVar(&cfg.Width, "width", 0, "Output width in pixels (0 derives it from height)")
	fs.IntVar(&cfg.Height, "height", 0, "Output height in pixels (0 derives it from width)")
	fs.IntVar(&cfg.Quality, "quality", 0, "Output quality for lossy formats, conventionally 1-100")

	showVersion := fs.Bool("version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *showVersion {
		versionInfo := fmt.Sprintf(
			"Version: %s\nBuild date: %s\nGit commit: %s",
			cfg.Version, BuildDate, GitCommit,
		)
		console.Box("imgconv version information", versionInfo)
		os.Exit(0)
	}

	cfg.Folder = "."
	if fs.NArg() > 0 {
		cfg.Folder = fs.Arg(0)
	}

	cfg.InputFormat = codec.NormalizeFormat(cfg.InputFormat)
	cfg.OutputFormat = codec.NormalizeFormat(cfg.OutputFormat)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Quality is deliberately not range-checked: out-of-range values are the
// encoder's concern.
func (cfg *Config) validate() error {
	if cfg.InputFormat == "" {
		return fmt.Errorf("error: -from is required")
	}
	if cfg.OutputFormat == "" {
		return fmt.Errorf("error: -to is required")
	}
	if cfg.Width < 0 {
		return fmt.Errorf("error: width must be a positive integer")
	}
	if cfg.Height < 0 {
		return fmt.Errorf("error: height must be a positive integer")
	}
	return nil
}
