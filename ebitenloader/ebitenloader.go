// Package ebitenloader loads the images of Tiled maps as ebiten images.
//
//	rm := ebitenloader.NewManager(tiled.WithBasePath("assets/maps"))
//	m, err := tiled.OpenWith(rm, "level1.tmx")
//	...
//	for cell, gid := range tiles {
//		img, ok := ebitenloader.Tile(m, gid)
//		...
//		op := &ebiten.DrawImageOptions{GeoM: ebitenloader.FlipGeoM(gid, m.TileSize)}
//	}
package ebitenloader

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/retroblast-engine/tiled"
)

// Loader decodes images with tiled.DecodeLoader and uploads them with
// ebiten.NewImageFromImage.
type Loader struct {
	// Provider defaults to tiled.FileProvider.
	Provider tiled.Provider
}

func (l Loader) Load(path string) (*ebiten.Image, error) {
	img, err := tiled.DecodeLoader{Provider: l.Provider}.Load(path)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// NewManager returns a resource manager whose image handles are ebiten
// images. Documents and images are read with the same provider.
func NewManager(opts ...tiled.Option) *tiled.ResourceManager[*ebiten.Image] {
	return tiled.NewResourceManager[*ebiten.Image](Loader{}, opts...)
}

// NewManagerFS is NewManager reading from p for both documents and images.
func NewManagerFS(p tiled.Provider, opts ...tiled.Option) *tiled.ResourceManager[*ebiten.Image] {
	opts = append([]tiled.Option{tiled.WithProvider(p)}, opts...)
	return tiled.NewResourceManager[*ebiten.Image](Loader{Provider: p}, opts...)
}

// Tile returns the sub-image gid is drawn from.
func Tile(m *tiled.Map[*ebiten.Image], gid tiled.GID) (*ebiten.Image, bool) {
	img, r, ok := m.TileImage(gid)
	if !ok || img == nil {
		return nil, false
	}
	return SubImage(img, r), true
}

// SubImage cuts r out of img.
func SubImage(img *ebiten.Image, r tiled.Rect) *ebiten.Image {
	return img.SubImage(r.Image()).(*ebiten.Image)
}

// FlipGeoM returns the transform that applies the flip flags of gid to a
// tile of the given size drawn at the origin. The diagonal flip is applied
// first, then the horizontal one, then the vertical one.
func FlipGeoM(gid tiled.GID, size tiled.Vec2) ebiten.GeoM {
	var g ebiten.GeoM
	w, h := float64(size.X), float64(size.Y)
	if gid.FlippedDiagonally() {
		g.SetElement(0, 0, 0)
		g.SetElement(0, 1, 1)
		g.SetElement(1, 0, 1)
		g.SetElement(1, 1, 0)
		w, h = h, w
	}
	if gid.FlippedHorizontally() {
		g.Scale(-1, 1)
		g.Translate(w, 0)
	}
	if gid.FlippedVertically() {
		g.Scale(1, -1)
		g.Translate(0, h)
	}
	return g
}
