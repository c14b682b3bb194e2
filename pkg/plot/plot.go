// 19 Oct 2026

// Package plot draws simple bar charts as png files. Text is rendered
// with freetype in the Go regular font, so nothing has to be installed.
package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

type Error string

func (e Error) Error() string { return string(e) }

const ErrNoData = Error("nothing to plot")

// Layout in pixels.
const (
	height   = 400
	top      = 50 // room for title and value labels
	bottom   = 50 // room for bar labels
	left     = 30
	right    = 30
	slot     = 70 // horizontal space for one bar
	barWidth = 44
	fontSize = 12
)

var (
	barColour  = color.RGBA{R: 70, G: 110, B: 170, A: 255}
	axisColour = color.Gray{Y: 60}
)

// barRect is where bar i goes if it has height h pixels.
func barRect(i, h int) image.Rectangle {
	x0 := left + i*slot + (slot-barWidth)/2
	return image.Rect(x0, height-bottom-h, x0+barWidth, height-bottom)
}

// width of the whole picture for n bars
func width(n int) int { return left + n*slot + right }

// textDrawer puts strings on an image, centred on a point.
type textDrawer struct {
	c    *freetype.Context
	face font.Face
}

func newTextDrawer(dst draw.Image) (*textDrawer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(fontSize)
	c.SetClip(dst.Bounds())
	c.SetDst(dst)
	c.SetSrc(image.Black)
	c.SetHinting(font.HintingFull)
	face := truetype.NewFace(f, &truetype.Options{Size: fontSize, DPI: 72, Hinting: font.HintingFull})
	return &textDrawer{c: c, face: face}, nil
}

// centred draws s with its baseline at y, centred on x.
func (td *textDrawer) centred(s string, x, y int) error {
	w := font.MeasureString(td.face, s).Round()
	_, err := td.c.DrawString(s, freetype.Pt(x-w/2, y))
	return err
}

// BarPNG draws one bar per value, labelled underneath, with the value
// written on top. NaN values get no bar and "n/a". Bars are scaled to
// the largest value.
func BarPNG(w io.Writer, title string, labels []string, vals []float64) error {
	if len(vals) == 0 {
		return ErrNoData
	}
	if len(labels) != len(vals) {
		return fmt.Errorf("%d labels for %d values", len(labels), len(vals))
	}
	maxV := 0.
	for _, v := range vals {
		if !math.IsNaN(v) && v > maxV {
			maxV = v
		}
	}
	if maxV == 0 {
		maxV = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, width(len(vals)), height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	axis := image.Rect(left, height-bottom, width(len(vals))-right, height-bottom+1)
	draw.Draw(img, axis, &image.Uniform{C: axisColour}, image.Point{}, draw.Src)

	td, err := newTextDrawer(img)
	if err != nil {
		return err
	}
	plotH := float64(height - top - bottom)
	for i, v := range vals {
		mid := left + i*slot + slot/2
		h := barHeight(v, maxV, plotH)
		if h > 0 {
			draw.Draw(img, barRect(i, h), &image.Uniform{C: barColour}, image.Point{}, draw.Src)
		}
		txt := fmt.Sprintf("%.2f", v)
		if math.IsNaN(v) {
			txt = "n/a"
		}
		if err := td.centred(txt, mid, height-bottom-h-6); err != nil {
			return err
		}
		if err := td.centred(labels[i], mid, height-bottom+20); err != nil {
			return err
		}
	}
	if err := td.centred(title, width(len(vals))/2, 20); err != nil {
		return err
	}
	return png.Encode(w, img)
}

// barHeight in pixels, zero for missing or negative values.
func barHeight(v, maxV, plotH float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	return int(math.Round(v / maxV * plotH))
}
