package io

import (
	"image"
	"image/png"
	"io"
	"os"

	"github.com/matzehuels/geoshaper/pkg/errors"
)

// WritePNG encodes img as PNG to w.
func WritePNG(img image.Image, w io.Writer) error {
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode png")
	}
	return nil
}

// ExportPNG writes img to a PNG file at path, replacing any existing file.
func ExportPNG(img image.Image, path string) error {
	return writeFile(path, func(w io.Writer) error { return WritePNG(img, w) })
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}
