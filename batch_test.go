package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"imgconv/codec"
	"imgconv/logger"
)

type fakeImage struct {
	resizeCalled bool
	width        int
	height       int
	qualitySet   bool
	quality      int
	format       string
	savedPath    string
	saveErr      error
}

func (f *fakeImage) Resize(width, height int) {
	f.resizeCalled = true
	f.width = width
	f.height = height
}

func (f *fakeImage) SetQuality(quality int) {
	f.qualitySet = true
	f.quality = quality
}

func (f *fakeImage) SetFormat(format string) error {
	f.format = format
	return nil
}

func (f *fakeImage) Save(path string) error {
	f.savedPath = path
	return f.saveErr
}

type fakeEngine struct {
	opened     []string
	images     []*fakeImage
	failFor    map[string]error
	saveErrFor map[string]error
}

func (e *fakeEngine) Open(path string) (codec.Image, error) {
	e.opened = append(e.opened, path)
	if err, ok := e.failFor[filepath.Base(path)]; ok {
		return nil, err
	}
	img := &fakeImage{saveErr: e.saveErrFor[filepath.Base(path)]}
	e.images = append(e.images, img)
	return img, nil
}

func quietConsole() *logger.Console {
	opts := logger.DefaultOptions()
	opts.Output = io.Discard
	opts.EnableColors = false
	return logger.NewConsole(opts)
}

func newTestProcessor(cfg *Config, engine *fakeEngine) *Processor {
	return NewProcessor(cfg, engine, quietConsole())
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestConvertAllConvertsEveryMatch(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "c.svg", "a.svg", "b.svg", "skip.png", "noext")

	engine := &fakeEngine{}
	cfg := &Config{InputFormat: "svg", OutputFormat: "png"}
	summary := newTestProcessor(cfg, engine).ConvertAll(dir)

	if summary.TotalFound != 3 || summary.Successful != 3 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want 3/3/0", summary)
	}
	if len(engine.opened) != 3 {
		t.Fatalf("expected 3 conversion attempts, got %d", len(engine.opened))
	}

	wantOrder := []string{"a.svg", "b.svg", "c.svg"}
	for i, want := range wantOrder {
		if got := filepath.Base(engine.opened[i]); got != want {
			t.Errorf("opened[%d] = %s, want %s", i, got, want)
		}
	}

	wantOutputs := []string{"a.png", "b.png", "c.png"}
	for i, want := range wantOutputs {
		if got := filepath.Base(engine.images[i].savedPath); got != want {
			t.Errorf("savedPath[%d] = %s, want %s", i, got, want)
		}
		if engine.images[i].format != "png" {
			t.Errorf("format[%d] = %s, want png", i, engine.images[i].format)
		}
	}
}

func TestConvertAllMatchesExtensionCaseInsensitively(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "upper.SVG", "lower.svg", "other.svgz")

	engine := &fakeEngine{}
	cfg := &Config{InputFormat: "svg", OutputFormat: "png"}
	summary := newTestProcessor(cfg, engine).ConvertAll(dir)

	if summary.TotalFound != 2 {
		t.Fatalf("TotalFound = %d, want 2", summary.TotalFound)
	}
}

func TestConvertAllMissingFolder(t *testing.T) {
	engine := &fakeEngine{}
	cfg := &Config{InputFormat: "svg", OutputFormat: "png"}
	summary := newTestProcessor(cfg, engine).ConvertAll(filepath.Join(t.TempDir(), "nope"))

	if summary != (BatchSummary{}) {
		t.Fatalf("summary = %+v, want empty", summary)
	}
	if len(engine.opened) != 0 {
		t.Fatalf("expected no conversion attempts, got %d", len(engine.opened))
	}
}

func TestConvertAllFolderIsAFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "file.svg")

	engine := &fakeEngine{}
	cfg := &Config{InputFormat: "svg", OutputFormat: "png"}
	summary := newTestProcessor(cfg, engine).ConvertAll(filepath.Join(dir, "file.svg"))

	if summary != (BatchSummary{}) || len(engine.opened) != 0 {
		t.Fatalf("expected empty summary and no attempts, got %+v, %d attempts", summary, len(engine.opened))
	}
}

func TestConvertAllNoMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.png", "b.jpg")

	engine := &fakeEngine{}
	cfg := &Config{InputFormat: "svg", OutputFormat: "png"}
	summary := newTestProcessor(cfg, engine).ConvertAll(dir)

	if summary != (BatchSummary{}) || len(engine.opened) != 0 {
		t.Fatalf("expected empty summary and no attempts, got %+v, %d attempts", summary, len(engine.opened))
	}
}

func TestConvertAllContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.svg", "b.svg", "c.svg")

	engine := &fakeEngine{failFor: map[string]error{"b.svg": fmt.Errorf("corrupt file")}}
	cfg := &Config{InputFormat: "svg", OutputFormat: "png"}
	summary := newTestProcessor(cfg, engine).ConvertAll(dir)

	if len(engine.opened) != 3 {
		t.Fatalf("expected all 3 files attempted, got %d", len(engine.opened))
	}
	if summary.Successful != 2 || summary.Failed != 1 {
		t.Fatalf("summary = %+v, want 2 successful, 1 failed", summary)
	}
	if summary.Successful+summary.Failed != summary.TotalFound {
		t.Fatalf("successful+failed = %d, want %d", summary.Successful+summary.Failed, summary.TotalFound)
	}
}

func TestConvertImageDerivesOutputPath(t *testing.T) {
	engine := &fakeEngine{}
	p := newTestProcessor(&Config{}, engine)

	result := p.ConvertImage(ConversionRequest{
		SourcePath:   "/imgs/photo.SVG",
		TargetFormat: "PNG",
	})
	if !result.Success {
		t.Fatalf("unexpected failure: %v", result.Err)
	}
	if got := engine.images[0].savedPath; got != "/imgs/photo.png" {
		t.Errorf("savedPath = %s, want /imgs/photo.png", got)
	}
}

func TestConvertImageHonorsExplicitOutputPath(t *testing.T) {
	engine := &fakeEngine{}
	p := newTestProcessor(&Config{}, engine)

	result := p.ConvertImage(ConversionRequest{
		SourcePath:   "/imgs/photo.svg",
		OutputPath:   "/out/thumb.png",
		TargetFormat: "png",
	})
	if !result.Success {
		t.Fatalf("unexpected failure: %v", result.Err)
	}
	if got := engine.images[0].savedPath; got != "/out/thumb.png" {
		t.Errorf("savedPath = %s, want /out/thumb.png", got)
	}
}

func TestConvertImageResizeDimensions(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		wantResize bool
	}{
		{"width only", 1024, 0, true},
		{"height only", 0, 768, true},
		{"both", 1024, 768, true},
		{"neither", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{}
			p := newTestProcessor(&Config{}, engine)

			result := p.ConvertImage(ConversionRequest{
				SourcePath:   "/imgs/a.svg",
				TargetFormat: "png",
				Width:        tt.width,
				Height:       tt.height,
			})
			if !result.Success {
				t.Fatalf("unexpected failure: %v", result.Err)
			}

			img := engine.images[0]
			if img.resizeCalled != tt.wantResize {
				t.Fatalf("resizeCalled = %v, want %v", img.resizeCalled, tt.wantResize)
			}
			if tt.wantResize && (img.width != tt.width || img.height != tt.height) {
				t.Errorf("resize dimensions = %dx%d, want %dx%d", img.width, img.height, tt.width, tt.height)
			}
		})
	}
}

func TestConvertImageQualityPassthrough(t *testing.T) {
	engine := &fakeEngine{}
	p := newTestProcessor(&Config{}, engine)

	p.ConvertImage(ConversionRequest{SourcePath: "a.svg", TargetFormat: "jpg", Quality: 85})
	if img := engine.images[0]; !img.qualitySet || img.quality != 85 {
		t.Errorf("quality = %d (set=%v), want 85", img.quality, img.qualitySet)
	}

	p.ConvertImage(ConversionRequest{SourcePath: "b.svg", TargetFormat: "jpg"})
	if img := engine.images[1]; img.qualitySet {
		t.Error("quality should not be set when the request leaves it zero")
	}
}

func TestConvertImageSaveFailureIsCaptured(t *testing.T) {
	engine := &fakeEngine{saveErrFor: map[string]error{"a.svg": fmt.Errorf("disk full")}}
	p := newTestProcessor(&Config{}, engine)

	result := p.ConvertImage(ConversionRequest{SourcePath: "a.svg", TargetFormat: "png"})
	if result.Success || result.Err == nil {
		t.Fatalf("result = %+v, want captured save error", result)
	}
}
