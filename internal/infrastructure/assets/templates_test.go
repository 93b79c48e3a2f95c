package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func templatePNG(t *testing.T, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 800, 800))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBaseResolvesColorTemplate(t *testing.T) {
	store := NewTemplateStore(fstest.MapFS{
		"red.png":     {Data: templatePNG(t, color.RGBA{200, 0, 0, 255})},
		"default.png": {Data: templatePNG(t, color.RGBA{240, 240, 240, 255})},
	})

	img := store.Base("red")
	r, _, _, _ := img.At(100, 100).RGBA()
	assert.Equal(t, uint32(200<<8|200), r)
}

func TestBaseFallsBackToDefaultTemplate(t *testing.T) {
	store := NewTemplateStore(fstest.MapFS{
		"default.png": {Data: templatePNG(t, color.RGBA{240, 240, 240, 255})},
	})

	img := store.Base("purple")
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xf0f0, 0xf0f0, 0xf0f0}, []uint32{r, g, b})
}

func TestBaseSynthesizesCanvasForColor(t *testing.T) {
	store := NewTemplateStore(fstest.MapFS{})

	img := store.Base("blue")
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 800, img.Bounds().Dy())
	_, _, b, _ := img.At(400, 400).RGBA()
	assert.Equal(t, uint32(0xffff), b)
}

func TestBaseUnknownColorRendersWhite(t *testing.T) {
	store := NewTemplateStore(fstest.MapFS{})

	img := store.Base("chartreuse")
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff}, []uint32{r, g, b})
}
