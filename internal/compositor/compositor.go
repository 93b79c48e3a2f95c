package compositor

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Source tells how the mockup was produced: the design image was composited
// onto the garment, or the text caption stood in for it.
type Source int

const (
	SourceComposited Source = iota
	SourceCaption
)

// RenderResult is the rendered mockup. PNG is never empty on a nil error.
type RenderResult struct {
	PNG    []byte
	Source Source
}

// Design carries the decoded artwork (nil when the design has no usable
// image) and the description used for the caption fallback.
type Design struct {
	Image       image.Image
	Description string
}

// sizeFactors scales the design per garment size label.
var sizeFactors = map[string]float64{
	"xs":  0.5,
	"s":   0.6,
	"m":   0.7,
	"l":   0.8,
	"xl":  0.9,
	"xxl": 1.0,
}

const defaultSizeFactor = 0.7

// ScaleFactor returns the design scale for a size label, 0.7 for labels we
// do not recognize.
func ScaleFactor(size string) float64 {
	if f, ok := sizeFactors[size]; ok {
		return f
	}
	return defaultSizeFactor
}

// captionAnchor is where the fallback text starts, near the center of the
// standard 800x800 garment canvas.
var captionAnchor = image.Pt(400, 400)

// Render overlays the design onto the base garment image and encodes the
// result as PNG. A design without a usable image yields the caption
// fallback; Render fails only if encoding itself does.
func Render(base image.Image, design Design, size string) (RenderResult, error) {
	canvas := image.NewRGBA(base.Bounds())
	draw.Draw(canvas, canvas.Bounds(), base, base.Bounds().Min, draw.Src)

	source := SourceCaption
	if design.Image != nil {
		overlay(canvas, design.Image, size)
		source = SourceComposited
	} else {
		drawCaption(canvas, design.Description)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return RenderResult{}, fmt.Errorf("encode mockup: %w", err)
	}
	return RenderResult{PNG: buf.Bytes(), Source: source}, nil
}

// overlay scales the design and draws it horizontally centered, vertically
// at one third of the garment height.
func overlay(canvas *image.RGBA, design image.Image, size string) {
	factor := ScaleFactor(size)
	db := design.Bounds()
	newW := int(float64(db.Dx()) * factor)
	newH := int(float64(db.Dy()) * factor)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), design, db, xdraw.Src, nil)

	cb := canvas.Bounds()
	pos := image.Pt(cb.Min.X+(cb.Dx()-newW)/2, cb.Min.Y+(cb.Dy()-newH)/3)
	target := image.Rectangle{Min: pos, Max: pos.Add(image.Pt(newW, newH))}

	op := draw.Over
	if opaque(design) {
		op = draw.Src
	}
	draw.Draw(canvas, target, scaled, image.Point{}, op)
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}

func drawCaption(canvas *image.RGBA, text string) {
	d := font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(captionAnchor.X, captionAnchor.Y),
	}
	d.DrawString(text)
}
