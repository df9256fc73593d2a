package main

import (
	"os"
	"strings"

	"imgconv/codec"
	"imgconv/logger"
)

func main() {
	console := logger.NewConsole(logger.DefaultOptions())

	cfg, err := ParseConfig(os.Args[1:], console)
	if err != nil {
		os.Stderr.WriteString("Configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	engine, err := codec.NewEngine(codec.Config{TargetFormat: cfg.OutputFormat})
	if err != nil {
		console.Error("Codec initialization failed: %v", err)
		console.Info("Supported output formats: %s", strings.Join(codec.SupportedFormats(), ", "))
		console.Info("For AVIF output with a native libavif in a non-standard location, set %s to its lib directory", codec.NativeLibDirEnv)
		os.Exit(1)
	}

	if dir := engine.NativeLibDir(); dir != "" {
		console.Log("Native codec libraries: %s", dir)
	}

	processor := NewProcessor(cfg, engine, console)

	// Missing folders, empty matches, and per-file failures are reported in
	// the summary; only startup failures exit non-zero.
	processor.ConvertAll(cfg.Folder)
}
