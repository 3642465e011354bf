package tiled

import (
	"fmt"
	"iter"
	"math"
	"path"
	"path/filepath"
)

// Layer is one plane of a map: *TileLayer, *GroupLayer, *ObjectLayer or
// *ImageLayer[I]. Later format versions may add variants, so type switches
// over layers should keep a default branch.
type Layer interface {
	Info() *LayerInfo
	isLayer()
}

// LayerInfo holds the attributes every layer kind has.
type LayerInfo struct {
	ID      int // 0 when the document did not assign one
	Name    string
	Class   string
	Offset  FVec2
	Opacity float64
	Visible bool
	// Tint multiplies the colors of the layer and everything below it.
	Tint       Color
	Properties Properties
}

// Info returns the common attributes of the layer.
func (l *LayerInfo) Info() *LayerInfo { return l }

// TileLayer is a grid of tiles.
type TileLayer struct {
	LayerInfo
	Size Vec2
	// Tiles is row-major and holds Size.X*Size.Y cells. Zero marks an empty
	// cell; use At to tell empty cells apart.
	Tiles []GID
}

// GroupLayer contains other layers, possibly further groups. Its offset,
// opacity and tint apply to all of its descendants.
type GroupLayer struct {
	LayerInfo
	Content []Layer
}

// ObjectLayer holds free-standing objects.
type ObjectLayer struct {
	LayerInfo
	// Color is the display color of the objects in the editor.
	Color   *Color
	Objects []*Object
}

// ImageLayer displays a single image.
type ImageLayer[I any] struct {
	LayerInfo
	Image       I
	ImageSource string // empty when the layer has no image
	RepeatX     bool
	RepeatY     bool
}

func (*TileLayer) isLayer()     {}
func (*GroupLayer) isLayer()    {}
func (*ObjectLayer) isLayer()   {}
func (*ImageLayer[I]) isLayer() {}

// At returns the tile at column x, row y. ok is false for empty cells and
// coordinates outside the layer.
func (l *TileLayer) At(x, y int) (gid GID, ok bool) {
	if x < 0 || y < 0 || x >= l.Size.X || y >= l.Size.Y {
		return 0, false
	}
	gid = l.Tiles[y*l.Size.X+x]
	return gid, gid != 0
}

// TilesInRenderOrder returns an iterator over every cell of the layer in the
// given render order, empty cells included (their GID is zero). Only
// right-down is implemented.
func (l *TileLayer) TilesInRenderOrder(order RenderOrder) (iter.Seq2[Vec2, GID], error) {
	if order != RightDown {
		return nil, unsupported("render order '%s'", order)
	}
	return func(yield func(Vec2, GID) bool) {
		for y := 0; y < l.Size.Y; y++ {
			for x := 0; x < l.Size.X; x++ {
				if !yield(Vec2{x, y}, l.Tiles[y*l.Size.X+x]) {
					return
				}
			}
		}
	}, nil
}

// parseLayers collects the layer children of n in document order. Other
// children are skipped.
func (b *builder[I]) parseLayers(n *node) ([]Layer, error) {
	var layers []Layer
	for _, c := range n.children {
		var (
			l   Layer
			err error
		)
		switch c.name {
		case "layer":
			l, err = b.parseTileLayer(c)
		case "group":
			l, err = b.parseGroupLayer(c)
		case "objectgroup":
			l, err = b.parseObjectLayer(c)
		case "imagelayer":
			l, err = b.parseImageLayer(c)
		case "tileset", "properties", "editorsettings":
			continue
		default:
			Logger().Debug("tiled: skipping unknown element", "tag", c.name, "parent", n.name)
			continue
		}
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}
	return layers, nil
}

func parseLayerInfo(n *node) (LayerInfo, error) {
	info := LayerInfo{
		Name:  n.attrOr("name", ""),
		Class: n.attrOr("class", ""),
		Tint:  White,
	}

	var err error
	if info.ID, err = optInt(n, "id", 0); err != nil {
		return info, err
	}
	if info.Offset.X, err = optFloat(n, "offsetx", 0); err != nil {
		return info, err
	}
	if info.Offset.Y, err = optFloat(n, "offsety", 0); err != nil {
		return info, err
	}
	if info.Opacity, err = optFloat(n, "opacity", 1); err != nil {
		return info, err
	}
	if info.Visible, err = optBool(n, "visible", true); err != nil {
		return info, err
	}
	tint, err := optColor(n, "tintcolor")
	if err != nil {
		return info, err
	}
	if tint != nil {
		info.Tint = *tint
	}
	if info.Properties, err = parseProperties(n); err != nil {
		return info, err
	}
	return info, nil
}

func (b *builder[I]) parseTileLayer(n *node) (*TileLayer, error) {
	info, err := parseLayerInfo(n)
	if err != nil {
		return nil, err
	}
	l := &TileLayer{LayerInfo: info}
	if l.Size.X, err = requireSize(n, "width"); err != nil {
		return nil, err
	}
	if l.Size.Y, err = requireSize(n, "height"); err != nil {
		return nil, err
	}

	if l.Size.Y > 0 && l.Size.X > math.MaxInt32/l.Size.Y {
		return nil, parseErr(fmt.Errorf("layer '%s': %dx%d cells is too large", l.Name, l.Size.X, l.Size.Y))
	}

	data := n.child("data")
	if data == nil {
		return nil, structureErr(n.name, "layer '%s' has no data element", l.Name)
	}
	if l.Tiles, err = parseData(data, l.Size.X*l.Size.Y); err != nil {
		return nil, err
	}
	if len(l.Tiles) != l.Size.X*l.Size.Y {
		return nil, structureErr(data.name, "layer '%s' holds %d tiles, want %dx%d", l.Name, len(l.Tiles), l.Size.X, l.Size.Y)
	}
	return l, nil
}

func (b *builder[I]) parseGroupLayer(n *node) (*GroupLayer, error) {
	info, err := parseLayerInfo(n)
	if err != nil {
		return nil, err
	}
	content, err := b.parseLayers(n)
	if err != nil {
		return nil, err
	}
	return &GroupLayer{LayerInfo: info, Content: content}, nil
}

func (b *builder[I]) parseObjectLayer(n *node) (*ObjectLayer, error) {
	info, err := parseLayerInfo(n)
	if err != nil {
		return nil, err
	}
	l := &ObjectLayer{LayerInfo: info}
	if l.Color, err = optColor(n, "color"); err != nil {
		return nil, err
	}
	for _, on := range n.childrenNamed("object") {
		o, err := b.parseObject(on)
		if err != nil {
			return nil, err
		}
		l.Objects = append(l.Objects, o)
	}
	return l, nil
}

func (b *builder[I]) parseImageLayer(n *node) (*ImageLayer[I], error) {
	info, err := parseLayerInfo(n)
	if err != nil {
		return nil, err
	}
	l := &ImageLayer[I]{LayerInfo: info}
	if l.RepeatX, err = optBool(n, "repeatx", false); err != nil {
		return nil, err
	}
	if l.RepeatY, err = optBool(n, "repeaty", false); err != nil {
		return nil, err
	}

	img := n.child("image")
	if img == nil {
		return l, nil
	}
	// Tiled writes an empty source when the image was removed.
	src := img.attrOr("source", "")
	if src == "" {
		return l, nil
	}
	rel := b.rel(src)
	if l.Image, err = b.rm.Image(rel); err != nil {
		return nil, err
	}
	l.ImageSource = b.rm.resolve(rel)
	return l, nil
}

// rel resolves a path written in the current document.
func (b *builder[I]) rel(p string) string {
	if path.IsAbs(p) || filepath.IsAbs(p) {
		return p
	}
	return path.Join(b.dir, p)
}
