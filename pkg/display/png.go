package display

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/tiler/pkg/orchestrator"
)

// DefaultCellSize is the PNG cell size in pixels.
const DefaultCellSize = 24

var (
	outlineColor = color.RGBA{G: 0xff, A: 0xff}
	cellColor    = color.Black
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	cell   int
	labels bool
}

// WithCellSize sets the side of one cell in pixels.
func WithCellSize(px int) PNGOption {
	return func(r *pngRenderer) {
		if px > 0 {
			r.cell = px
		}
	}
}

// WithoutPNGLabels omits the plaquette index printed in every cell.
func WithoutPNGLabels() PNGOption { return func(r *pngRenderer) { r.labels = false } }

// RenderPNG rasterizes a resolved layout. The picture matches [RenderSVG]
// with a fixed cell size instead of a fixed canvas height.
func RenderPNG(l *orchestrator.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{cell: DefaultCellSize, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	s := l.Shape()
	margin := r.cell
	img := image.NewRGBA(image.Rect(0, 0, s.X*r.cell+2*margin, s.Y*r.cell+2*margin))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	at := func(x, y, w, h int) image.Rectangle {
		ul := image.Pt((x-l.UL.X)*r.cell+margin, (y-l.UL.Y)*r.cell+margin)
		return image.Rectangle{Min: ul, Max: ul.Add(image.Pt(w*r.cell, h*r.cell))}
	}

	d := &font.Drawer{Dst: img, Src: image.NewUniform(cellColor), Face: basicfont.Face7x13}
	for _, c := range l.Children {
		for cy, row := range c.Grid {
			for cx, v := range row {
				if v == 0 {
					continue
				}
				box := at(c.Position.X+cx, c.Position.Y+cy, 1, 1)
				strokeRect(img, box, cellColor, 1)
				if r.labels {
					drawLabel(d, box, strconv.Itoa(v))
				}
			}
		}
	}
	for _, c := range l.Children {
		strokeRect(img, at(c.Position.X, c.Position.Y, c.Shape.X, c.Shape.Y), outlineColor, 2)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// strokeRect draws the border of box, width pixels thick, inside box.
func strokeRect(img draw.Image, box image.Rectangle, c color.Color, width int) {
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		{Min: box.Min, Max: image.Pt(box.Max.X, box.Min.Y+width)},
		{Min: image.Pt(box.Min.X, box.Max.Y-width), Max: box.Max},
		{Min: box.Min, Max: image.Pt(box.Min.X+width, box.Max.Y)},
		{Min: image.Pt(box.Max.X-width, box.Min.Y), Max: box.Max},
	}
	for _, e := range edges {
		draw.Draw(img, e.Intersect(img.Bounds()), src, image.Point{}, draw.Src)
	}
}

// drawLabel centres text in box.
func drawLabel(d *font.Drawer, box image.Rectangle, text string) {
	advance := d.MeasureString(text).Ceil()
	m := d.Face.Metrics()
	height := (m.Ascent + m.Descent).Ceil()
	x := box.Min.X + (box.Dx()-advance)/2
	y := box.Min.Y + (box.Dy()-height)/2 + m.Ascent.Ceil()
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}
