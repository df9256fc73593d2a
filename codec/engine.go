// Package codec wraps the image decode/transform/encode libraries behind a
// narrow capability interface so batch logic can run against a fake.
package codec

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"
)

// Image is an open picture ready for transformation. Mutations accumulate
// and take effect on Save.
type Image interface {
	Resize(width, height int)
	SetQuality(quality int)
	SetFormat(format string) error
	Save(path string) error
}

type Config struct {
	// TargetFormat is the output format the batch will encode to. Checked
	// once here so an unsupported target fails at startup, not per file.
	TargetFormat string

	// NativeLibDir optionally points at the directory holding a native
	// libavif build. Empty means probe the environment.
	NativeLibDir string
}

type Engine struct {
	nativeLibDir string
}

// NewEngine validates that the configured target format has an encoder and
// returns a ready-to-use engine. A missing encoder is a startup error.
func NewEngine(cfg Config) (*Engine, error) {
	format := NormalizeFormat(cfg.TargetFormat)
	if _, err := encoderFor(format); err != nil {
		return nil, err
	}

	dir := cfg.NativeLibDir
	if dir == "" {
		dir = probeNativeLibDir()
	}

	return &Engine{nativeLibDir: dir}, nil
}

// NativeLibDir reports where a native codec library was located, or empty if
// the bundled fallback will be used.
func (e *Engine) NativeLibDir() string {
	return e.nativeLibDir
}

func (e *Engine) Open(path string) (Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}
	return &picture{img: img}, nil
}

// NormalizeFormat lowercases a format or extension string and strips any
// leading dots, so ".PNG", "PNG", and "png" all compare equal.
func NormalizeFormat(format string) string {
	return strings.ToLower(strings.TrimLeft(format, "."))
}

func encoderFor(format string) (encodeFunc, error) {
	if enc, ok := encoders[format]; ok {
		return enc, nil
	}
	return nil, fmt.Errorf("no encoder registered for format %q", format)
}

type picture struct {
	img     image.Image
	quality int
	encode  encodeFunc
}

func (p *picture) Resize(width, height int) {
	if width <= 0 && height <= 0 {
		return
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	// A zero dimension preserves the aspect ratio.
	p.img = imaging.Resize(p.img, width, height, imaging.Lanczos)
}

func (p *picture) SetQuality(quality int) {
	p.quality = quality
}

func (p *picture) SetFormat(format string) error {
	enc, err := encoderFor(NormalizeFormat(format))
	if err != nil {
		return err
	}
	p.encode = enc
	return nil
}

func (p *picture) Save(path string) error {
	if p.encode == nil {
		return fmt.Errorf("output format not set")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}

	if err := p.encode(f, p.img, p.quality); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("error encoding image: %w", err)
	}

	return f.Close()
}
