// Package render rasterizes sheet layouts to PNG previews.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/panelwright/nestcut/internal/model"
)

// Palette for placed parts, cycled by placement index. Matches the PDF
// exporter's scheme so previews and documents look alike.
var partPalette = []color.NRGBA{
	{76, 175, 80, 255},
	{33, 150, 243, 255},
	{255, 152, 0, 255},
	{156, 39, 176, 255},
	{0, 188, 212, 255},
	{244, 67, 54, 255},
	{255, 235, 59, 255},
	{121, 85, 72, 255},
}

var (
	sheetFill   = color.NRGBA{210, 180, 140, 255}
	offcutFill  = color.NRGBA{235, 235, 220, 255}
	borderColor = color.NRGBA{30, 30, 30, 255}
)

// Options controls rasterization.
type Options struct {
	MaxWidth  int // Pixel width cap for the output image
	ThumbSize int // Longest edge of thumbnails, 0 disables
}

func DefaultOptions() Options {
	return Options{MaxWidth: 1200, ThumbSize: 240}
}

// SheetImage rasterizes one sheet layout to an image. One millimeter maps to
// a fixed pixel scale chosen so the sheet's length fits MaxWidth.
func SheetImage(sheet model.SheetLayout, opts Options) *image.NRGBA {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = DefaultOptions().MaxWidth
	}
	scale := float64(opts.MaxWidth) / sheet.Stock.Length
	w := opts.MaxWidth
	h := int(sheet.Stock.Width * scale)
	if h < 1 {
		h = 1
	}

	img := imaging.New(w, h, sheetFill)

	for _, fr := range sheet.FreeRects {
		if fr.Area() < model.MinOffcutArea {
			continue
		}
		fillRect(img, scaleRect(fr.X, fr.Y, fr.Width, fr.Height, scale), offcutFill)
	}

	for i, p := range sheet.Placements {
		r := scaleRect(p.X, p.Y, p.PlacedWidth, p.PlacedHeight, scale)
		fillRect(img, r, partPalette[i%len(partPalette)])
		strokeRect(img, r, borderColor)
	}

	return img
}

// SaveSheetImages writes one PNG per sheet into dir, named sheet_001.png and
// so on, plus matching thumbnails when enabled. Returns the written paths.
func SaveSheetImages(dir string, result model.LayoutResult, opts Options) ([]string, error) {
	var paths []string
	for i, sheet := range result.Sheets {
		img := SheetImage(sheet, opts)

		path := filepath.Join(dir, fmt.Sprintf("sheet_%03d.png", i+1))
		if err := imaging.Save(img, path); err != nil {
			return paths, fmt.Errorf("failed to save sheet image: %w", err)
		}
		paths = append(paths, path)

		if opts.ThumbSize > 0 {
			thumb := imaging.Fit(img, opts.ThumbSize, opts.ThumbSize, imaging.Lanczos)
			thumbPath := filepath.Join(dir, fmt.Sprintf("sheet_%03d_thumb.png", i+1))
			if err := imaging.Save(thumb, thumbPath); err != nil {
				return paths, fmt.Errorf("failed to save thumbnail: %w", err)
			}
			paths = append(paths, thumbPath)
		}
	}
	return paths, nil
}

func scaleRect(x, y, w, h, scale float64) image.Rectangle {
	return image.Rect(
		int(x*scale), int(y*scale),
		int((x+w)*scale), int((y+h)*scale),
	)
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// strokeRect draws a one pixel outline.
func strokeRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetNRGBA(x, r.Min.Y, c)
		img.SetNRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetNRGBA(r.Min.X, y, c)
		img.SetNRGBA(r.Max.X-1, y, c)
	}
}
