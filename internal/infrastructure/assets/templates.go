package assets

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
)

const (
	canvasWidth  = 800
	canvasHeight = 800
)

// garmentColors maps the stocked garment color names to pixel values for the
// blank-canvas fallback. Unknown names render white, same as the default
// template.
var garmentColors = map[string]color.RGBA{
	"white":  {255, 255, 255, 255},
	"black":  {0, 0, 0, 255},
	"red":    {255, 0, 0, 255},
	"blue":   {0, 0, 255, 255},
	"green":  {0, 128, 0, 255},
	"yellow": {255, 255, 0, 255},
	"purple": {128, 0, 128, 255},
	"gray":   {128, 128, 128, 255},
}

// TemplateStore resolves garment base images from a directory of PNG
// templates, one per color, with a default.png fallback.
type TemplateStore struct {
	fsys fs.FS
}

func NewTemplateStore(fsys fs.FS) *TemplateStore {
	return &TemplateStore{fsys: fsys}
}

// Base returns the garment image for the color. Missing color template falls
// back to default.png; missing default falls back to a solid canvas in the
// requested color. Base never fails.
func (s *TemplateStore) Base(colorName string) image.Image {
	if img, err := s.load(colorName + ".png"); err == nil {
		return img
	}
	if img, err := s.load("default.png"); err == nil {
		return img
	}
	return blankCanvas(colorName)
}

func (s *TemplateStore) load(name string) (image.Image, error) {
	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func blankCanvas(colorName string) image.Image {
	fill, ok := garmentColors[colorName]
	if !ok {
		fill = garmentColors["white"]
	}
	canvas := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: fill}, image.Point{}, draw.Src)
	return canvas
}
