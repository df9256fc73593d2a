package codec

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"sort"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gen2brain/avif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Encoder defaults used when no quality was requested.
const (
	defaultWebPQuality = 90
	defaultAVIFQuality = 80
	defaultAVIFSpeed   = 6
)

type encodeFunc func(w io.Writer, img image.Image, quality int) error

var encoders = map[string]encodeFunc{
	"png":  imagingEncoder(imaging.PNG),
	"jpg":  imagingEncoder(imaging.JPEG),
	"jpeg": imagingEncoder(imaging.JPEG),
	"gif":  imagingEncoder(imaging.GIF),
	"bmp":  imagingEncoder(imaging.BMP),
	"tif":  imagingEncoder(imaging.TIFF),
	"tiff": imagingEncoder(imaging.TIFF),
	"webp": encodeWebP,
	"avif": encodeAVIF,
}

// SupportedFormats returns the output formats an Engine can encode,
// sorted for stable display.
func SupportedFormats() []string {
	formats := make([]string, 0, len(encoders))
	for format := range encoders {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

func imagingEncoder(format imaging.Format) encodeFunc {
	return func(w io.Writer, img image.Image, quality int) error {
		if format == imaging.JPEG && quality > 0 {
			return imaging.Encode(w, img, format, imaging.JPEGQuality(quality))
		}
		return imaging.Encode(w, img, format)
	}
}

func encodeWebP(w io.Writer, img image.Image, quality int) error {
	q := float32(defaultWebPQuality)
	if quality > 0 {
		q = float32(quality)
	}
	return webp.Encode(w, img, &webp.Options{Quality: q})
}

func encodeAVIF(w io.Writer, img image.Image, quality int) error {
	opts := avif.Options{
		Quality:           defaultAVIFQuality,
		QualityAlpha:      defaultAVIFQuality,
		Speed:             defaultAVIFSpeed,
		ChromaSubsampling: image.YCbCrSubsampleRatio420,
	}
	if quality > 0 {
		opts.Quality = quality
		opts.QualityAlpha = quality
	}
	return avif.Encode(w, img, opts)
}
