package compositor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
)

// ErrAssetUnusable marks a design file that was read fine but cannot be
// decoded as an image (corrupt data, or a format like SVG we do not
// rasterize). Callers treat it as "no image" and take the caption path;
// read failures are a different, fatal matter and never wrap this.
var ErrAssetUnusable = errors.New("design asset unusable")

// DecodeAsset decodes an uploaded design file into an image.
func DecodeAsset(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrAssetUnusable)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetUnusable, err)
	}
	return img, nil
}
