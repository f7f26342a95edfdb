package io

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/geoshaper/pkg/errors"
	"github.com/matzehuels/geoshaper/pkg/fitness"
)

// ReadImage decodes an image from r and returns it as an *image.RGBA with
// bounds starting at the origin. An undecodable stream or an image with no
// pixels is a DECODE_ERROR. ReadImage does not close r.
func ReadImage(r io.Reader) (*image.RGBA, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeDecode, err, "decode image")
	}
	if b := img.Bounds(); b.Dx() < 1 || b.Dy() < 1 {
		return nil, format, errors.New(errors.ErrCodeDecode, "image has no pixels (%v)", b)
	}
	return fitness.ToRGBA(img), format, nil
}

// ImportImage opens path and decodes it with [ReadImage]. A missing or
// unreadable file is a DECODE_ERROR.
func ImportImage(path string) (*image.RGBA, error) {
	if err := errors.ValidateImagePath(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "open %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "open %s", path)
	}
	defer f.Close()

	img, _, err := ReadImage(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "read %s", path)
	}
	return img, nil
}
