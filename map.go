// Package tiled loads maps made with the Tiled map editor (TMX documents,
// with external TSX tilesets and TX object templates) into an immutable
// object model.
//
// Images and documents referenced by a map are fetched through a
// ResourceManager, whose ImageLoader decides what an image handle is:
//
//	m, err := tiled.Open("maps/level1.tmx") // handles are image paths
//
//	rm := tiled.NewResourceManager[image.Image](tiled.DecodeLoader{})
//	m, err := tiled.OpenWith(rm, "maps/level1.tmx")
//
// Layers are walked depth first with Map.AllLayers, and Map.TileImage maps a
// GID to the image and source rectangle it is drawn from.
package tiled

import (
	"cmp"
	"fmt"
	"path"
	"path/filepath"
	"slices"
)

// Orientation is the projection of a map. Only orthogonal maps are given a
// geometric meaning by this package; the others parse.
type Orientation int

const (
	Orthogonal Orientation = iota
	Isometric
	Staggered
	Hexagonal
)

var orientationNames = map[string]Orientation{
	"orthogonal": Orthogonal,
	"isometric":  Isometric,
	"staggered":  Staggered,
	"hexagonal":  Hexagonal,
}

func (o Orientation) String() string {
	for k, v := range orientationNames {
		if v == o {
			return k
		}
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// ParseOrientation parses the orientation attribute of a map.
func ParseOrientation(s string) (Orientation, error) {
	if o, ok := orientationNames[s]; ok {
		return o, nil
	}
	return 0, &ParseError{Err: fmt.Errorf("invalid orientation '%s'", s)}
}

// RenderOrder is the order in which tiles are drawn.
type RenderOrder int

const (
	RightDown RenderOrder = iota
	RightUp
	LeftDown
	LeftUp
)

var renderOrderNames = map[string]RenderOrder{
	"right-down": RightDown,
	"right-up":   RightUp,
	"left-down":  LeftDown,
	"left-up":    LeftUp,
}

func (r RenderOrder) String() string {
	for k, v := range renderOrderNames {
		if v == r {
			return k
		}
	}
	return fmt.Sprintf("RenderOrder(%d)", int(r))
}

// ParseRenderOrder parses the renderorder attribute of a map.
func ParseRenderOrder(s string) (RenderOrder, error) {
	if r, ok := renderOrderNames[s]; ok {
		return r, nil
	}
	return 0, &ParseError{Err: fmt.Errorf("invalid render order '%s'", s)}
}

// Map is a loaded TMX document. I is the image handle type of the
// ResourceManager it was loaded with.
type Map[I any] struct {
	Version Version
	// TiledVersion is the version of the editor that saved the map, nil
	// when the document does not say.
	TiledVersion    *Version
	Orientation     Orientation
	RenderOrder     RenderOrder
	Size            Vec2 // in tiles
	TileSize        Vec2 // in pixels
	BackgroundColor *Color
	// TileSets is sorted by FirstGID.
	TileSets   []*TileSet[I]
	Layers     []Layer
	Properties Properties
}

// builder carries the state shared while parsing one document tree.
type builder[I any] struct {
	rm *ResourceManager[I]
	// dir is the directory of the document being parsed, relative to the
	// manager's base path.
	dir      string
	tilesets []*TileSet[I]
}

// Open loads the map at path from the filesystem. Images are not decoded:
// their handles are the resolved image paths.
func Open(p string) (*Map[string], error) {
	rm := NewLazyManager(WithBasePath(filepath.Dir(p)))
	return load(rm, filepath.Base(p))
}

// OpenWith loads the map at p, a path relative to rm's base path, with
// rm's provider and image loader.
func OpenWith[I any](rm *ResourceManager[I], p string) (*Map[I], error) {
	return load(rm, filepath.ToSlash(p))
}

func load[I any](rm *ResourceManager[I], p string) (*Map[I], error) {
	data, err := rm.ReadFile(p)
	if err != nil {
		return nil, err
	}
	b := &builder[I]{rm: rm, dir: path.Dir(p)}
	m, err := b.parseMap(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", rm.resolve(p), err)
	}
	return m, nil
}

// Parse loads a map from an in-memory document. Relative paths in it are
// resolved against rm's base path.
func Parse[I any](rm *ResourceManager[I], data []byte) (*Map[I], error) {
	b := &builder[I]{rm: rm, dir: "."}
	return b.parseMap(data)
}

// ParseString is Parse with a lazy manager rooted at the working directory.
func ParseString(doc string) (*Map[string], error) {
	return Parse(NewLazyManager(), []byte(doc))
}

func (b *builder[I]) parseMap(data []byte) (*Map[I], error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	if root.name != "map" {
		return nil, structureErr(root.name, "expected tag 'map' at root level, got '%s'", root.name)
	}

	m := &Map[I]{}

	v, err := requireAttr(root, "version")
	if err != nil {
		return nil, err
	}
	if m.Version, err = ParseVersion(v); err != nil {
		return nil, err
	}
	if tv, ok := root.attr("tiledversion"); ok {
		ver, err := ParseVersion(tv)
		if err != nil {
			return nil, err
		}
		m.TiledVersion = &ver
	}

	o, err := requireAttr(root, "orientation")
	if err != nil {
		return nil, err
	}
	if m.Orientation, err = ParseOrientation(o); err != nil {
		return nil, err
	}
	if ro, ok := root.attr("renderorder"); ok {
		if m.RenderOrder, err = ParseRenderOrder(ro); err != nil {
			return nil, err
		}
	}

	if m.Size.X, err = requireSize(root, "width"); err != nil {
		return nil, err
	}
	if m.Size.Y, err = requireSize(root, "height"); err != nil {
		return nil, err
	}
	if m.TileSize.X, err = requireSize(root, "tilewidth"); err != nil {
		return nil, err
	}
	if m.TileSize.Y, err = requireSize(root, "tileheight"); err != nil {
		return nil, err
	}

	infinite, err := optBool(root, "infinite", false)
	if err != nil {
		return nil, err
	}
	if infinite {
		return nil, unsupported("infinite maps")
	}

	if m.BackgroundColor, err = optColor(root, "backgroundcolor"); err != nil {
		return nil, err
	}
	if m.Properties, err = parseProperties(root); err != nil {
		return nil, err
	}

	// Tilesets first: object templates are remapped against them.
	for _, tn := range root.childrenNamed("tileset") {
		ts, err := b.parseTileSetRef(tn)
		if err != nil {
			return nil, err
		}
		m.TileSets = append(m.TileSets, ts)
	}
	slices.SortStableFunc(m.TileSets, func(a, b *TileSet[I]) int {
		return cmp.Compare(a.FirstGID.ID(), b.FirstGID.ID())
	})
	b.tilesets = m.TileSets

	if m.Layers, err = b.parseLayers(root); err != nil {
		return nil, err
	}
	return m, nil
}
