// Package preview turns a selected image into something displayable: a
// self-contained data URI plus a small half-block rendering for the terminal.
package preview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gabriel-vasile/mimetype"
	"github.com/nfnt/resize"
)

// Thumbnail bounds in terminal cells. Each cell shows two pixel rows.
const (
	MaxCols = 48
	MaxRows = 20
)

// Preview is the displayable form of a selected file.
type Preview struct {
	DataURI string
	MIME    string
	Size    int
	Width   int
	Height  int
	Art     string // empty when the data is not a decodable image
}

// Load reads the file at path and builds its preview.
func Load(path string) (Preview, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preview{}, fmt.Errorf("read image: %w", err)
	}
	return FromBytes(data), nil
}

// FromBytes builds a preview from raw file contents.
func FromBytes(data []byte) Preview {
	mime := mimetype.Detect(data).String()
	p := Preview{
		DataURI: DataURI(mime, data),
		MIME:    mime,
		Size:    len(data),
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return p
	}
	bounds := img.Bounds()
	p.Width, p.Height = bounds.Dx(), bounds.Dy()
	p.Art = Render(resize.Thumbnail(MaxCols, MaxRows*2, img, resize.Bilinear))
	return p
}

// DataURI encodes data as a base64 data URI with the given media type.
func DataURI(mime string, data []byte) string {
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = mime[:idx]
	}
	if mime == "" {
		mime = "application/octet-stream"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Render draws img with upper-half blocks: the foreground carries the top
// pixel and the background the one below it.
func Render(img image.Image) string {
	if img == nil {
		return ""
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return ""
	}

	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		if y > bounds.Min.Y {
			b.WriteString("\n")
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(img, x, y))
			if y+1 < bounds.Max.Y {
				style = style.Background(hexColor(img, x, y+1))
			}
			b.WriteString(style.Render("▀"))
		}
	}
	return b.String()
}

func hexColor(img image.Image, x, y int) lipgloss.Color {
	r, g, b, _ := img.At(x, y).RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// Dimensions returns "WxH" or an empty string when unknown.
func (p Preview) Dimensions() string {
	if p.Width == 0 || p.Height == 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", p.Width, p.Height)
}
