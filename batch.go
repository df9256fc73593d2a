package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"imgconv/codec"
	"imgconv/logger"
)

type imageOpener interface {
	Open(path string) (codec.Image, error)
}

// ConversionRequest describes one file's conversion. Immutable per call.
type ConversionRequest struct {
	SourcePath   string
	OutputPath   string // empty means derive from SourcePath
	TargetFormat string
	Width        int
	Height       int
	Quality      int
}

type ConversionResult struct {
	Success bool
	Err     error
}

type BatchSummary struct {
	TotalFound int
	Successful int
	Failed     int
}

type Processor struct {
	Engine  imageOpener
	Console *logger.Console
	Config  *Config
}

func NewProcessor(cfg *Config, engine imageOpener, console *logger.Console) *Processor {
	return &Processor{
		Engine:  engine,
		Console: console,
		Config:  cfg,
	}
}

func (req ConversionRequest) outputPath() string {
	if req.OutputPath != "" {
		return req.OutputPath
	}
	base := strings.TrimSuffix(req.SourcePath, filepath.Ext(req.SourcePath))
	return base + "." + strings.ToLower(req.TargetFormat)
}

// ConvertImage runs one open/resize/quality/encode/save pass. Every failure
// is captured in the result, never raised past this boundary, so a bad file
// cannot take down the batch.
func (p *Processor) ConvertImage(req ConversionRequest) ConversionResult {
	img, err := p.Engine.Open(req.SourcePath)
	if err != nil {
		return ConversionResult{Err: err}
	}

	if req.Width > 0 || req.Height > 0 {
		img.Resize(req.Width, req.Height)
	}
	if req.Quality > 0 {
		img.SetQuality(req.Quality)
	}
	if err := img.SetFormat(req.TargetFormat); err != nil {
		return ConversionResult{Err: err}
	}
	if err := img.Save(req.outputPath()); err != nil {
		return ConversionResult{Err: err}
	}

	return ConversionResult{Success: true}
}

// ConvertAll converts every file in folderPath whose extension matches the
// configured source format. Missing folders and empty matches are reported
// conditions, not errors; per-file failures are counted and the batch always
// runs to completion.
func (p *Processor) ConvertAll(folderPath string) BatchSummary {
	info, err := os.Stat(folderPath)
	if err != nil {
		p.Console.Error("Folder %q does not exist", folderPath)
		return BatchSummary{}
	}
	if !info.IsDir() {
		p.Console.Error("%q is not a directory", folderPath)
		return BatchSummary{}
	}

	files, err := p.collectFiles(folderPath)
	if err != nil {
		p.Console.Error("Error listing %q: %v", folderPath, err)
		return BatchSummary{}
	}

	from := strings.ToUpper(p.Config.InputFormat)
	if len(files) == 0 {
		p.Console.Warn("No %s files found in %q", from, folderPath)
		return BatchSummary{}
	}

	p.Console.Info("Found %d %s file(s) in %q", len(files), from, folderPath)
	p.Console.Info("Converting to %s...", strings.ToUpper(p.Config.OutputFormat))
	if p.Config.Width > 0 || p.Config.Height > 0 {
		p.Console.Info("Resizing to: %sx%s", dimension(p.Config.Width), dimension(p.Config.Height))
	}
	if p.Config.Quality > 0 {
		p.Console.Info("Quality: %d", p.Config.Quality)
	}

	timer := p.Console.StartTimer("Batch conversion")
	bar := p.Console.NewProgressBar(int64(len(files)), "Converting images")

	summary := BatchSummary{TotalFound: len(files)}
	for _, file := range files {
		result := p.ConvertImage(ConversionRequest{
			SourcePath:   file,
			TargetFormat: p.Config.OutputFormat,
			Width:        p.Config.Width,
			Height:       p.Config.Height,
			Quality:      p.Config.Quality,
		})

		if result.Success {
			summary.Successful++
			p.Console.Success("Converted: %s", filepath.Base(file))
		} else {
			summary.Failed++
			p.Console.Error("Error converting %s: %v", filepath.Base(file), result.Err)
		}

		bar.Increment(1)
	}
	bar.Complete()
	timer.End()

	p.displaySummary(summary)

	return summary
}

// collectFiles lists regular files directly inside dirPath whose extension
// case-insensitively equals the source format. os.ReadDir sorts by name, so
// batch order is deterministic.
func (p *Processor) collectFiles(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("error while exploring directory: %w", err)
	}

	want := "." + p.Config.InputFormat
	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), want) {
			files = append(files, filepath.Join(dirPath, entry.Name()))
		}
	}

	return files, nil
}

func (p *Processor) displaySummary(summary BatchSummary) {
	table := p.Console.NewTable([]string{"Metric", "Value"})
	table.AddRow("Files found", strconv.Itoa(summary.TotalFound))
	table.AddRow("Successful", strconv.Itoa(summary.Successful))
	table.AddRow("Failed", strconv.Itoa(summary.Failed))

	p.Console.Info("\nConversion complete:")
	table.Print()
}

func dimension(v int) string {
	if v <= 0 {
		return "auto"
	}
	return strconv.Itoa(v)
}
