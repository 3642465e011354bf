package tiled

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LazyLoader does not touch any file: the handle of an image is its resolved
// path, left for the caller to load later.
type LazyLoader struct{}

func (LazyLoader) Load(path string) (string, error) { return path, nil }

// DecodeLoader reads images through a Provider and decodes them with the
// image package. PNG, JPEG, GIF, BMP, TIFF and WebP are registered.
type DecodeLoader struct {
	// Provider defaults to FileProvider. Paths handed to Load already
	// include the manager's base path.
	Provider Provider
}

func (d DecodeLoader) Load(path string) (image.Image, error) {
	p := d.Provider
	if p == nil {
		p = FileProvider{}
	}
	data, err := p.Read("", path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, parseErr(fmt.Errorf("decode image %s: %w", path, err))
	}
	return img, nil
}
