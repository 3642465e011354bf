package tiled

import (
	"fmt"
	"path"
	"strconv"
)

// TileSet is a collection of same-sized tiles cut from one atlas image. It
// claims the GIDs from FirstGID to FirstGID+TileCount-1.
type TileSet[I any] struct {
	FirstGID GID
	// Source is the resolved path of the external .tsx document, empty for
	// tilesets embedded in the map.
	Source     string
	Name       string
	Class      string
	TileSize   Vec2
	Spacing    int
	Margin     int
	TileCount  int
	Columns    int
	TileOffset Vec2

	Image       I
	ImageSource string // resolved path the image handle was loaded from
	ImageSize   Vec2   // zero when the document does not declare it
	// Trans is the color treated as transparent in the image, if any.
	Trans *Color

	Properties Properties
	// Tiles holds per-tile data keyed by local tile id. Only tiles the
	// document mentions are present.
	Tiles map[uint32]*TileData
}

// TileData is the per-tile information of a tileset.
type TileData struct {
	ID         uint32
	Class      string
	Properties Properties
}

// parseTileSetRef parses a <tileset> element of a map. Its firstgid is kept
// even when the body comes from an external document.
func (b *builder[I]) parseTileSetRef(n *node) (*TileSet[I], error) {
	v, err := requireAttr(n, "firstgid")
	if err != nil {
		return nil, err
	}
	first, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return nil, parseErr(fmt.Errorf("tileset.firstgid: %w", err))
	}

	src, ok := n.attr("source")
	if !ok {
		ts, err := b.parseTileSet(n)
		if err != nil {
			return nil, err
		}
		ts.FirstGID = GID(first)
		return ts, nil
	}

	rel := b.rel(src)
	Logger().Debug("tiled: loading external tileset", "path", rel)
	data, err := b.rm.ReadFile(rel)
	if err != nil {
		return nil, err
	}
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	if root.name != "tileset" {
		return nil, structureErr(root.name, "expected tag 'tileset' at root level of %s, got '%s'", rel, root.name)
	}

	// Paths inside the external document are relative to it.
	sub := &builder[I]{rm: b.rm, dir: path.Dir(rel)}
	ts, err := sub.parseTileSet(root)
	if err != nil {
		return nil, fmt.Errorf("tileset %s: %w", rel, err)
	}
	ts.FirstGID = GID(first)
	ts.Source = b.rm.resolve(rel)
	return ts, nil
}

// parseTileSet reads the attributes and children shared by embedded and
// external tilesets.
func (b *builder[I]) parseTileSet(n *node) (*TileSet[I], error) {
	name, err := requireAttr(n, "name")
	if err != nil {
		return nil, err
	}
	ts := &TileSet[I]{
		Name:  name,
		Class: n.attrOr("class", ""),
		Tiles: make(map[uint32]*TileData),
	}

	if ts.TileSize.X, err = requireSize(n, "tilewidth"); err != nil {
		return nil, err
	}
	if ts.TileSize.Y, err = requireSize(n, "tileheight"); err != nil {
		return nil, err
	}
	if ts.Spacing, err = optSize(n, "spacing", 0); err != nil {
		return nil, err
	}
	if ts.Margin, err = optSize(n, "margin", 0); err != nil {
		return nil, err
	}
	if ts.TileCount, err = optSize(n, "tilecount", 0); err != nil {
		return nil, err
	}
	if ts.Columns, err = optSize(n, "columns", 0); err != nil {
		return nil, err
	}
	if ts.Properties, err = parseProperties(n); err != nil {
		return nil, err
	}

	if off := n.child("tileoffset"); off != nil {
		if ts.TileOffset.X, err = optInt(off, "x", 0); err != nil {
			return nil, err
		}
		if ts.TileOffset.Y, err = optInt(off, "y", 0); err != nil {
			return nil, err
		}
	}

	img := n.child("image")
	if img == nil {
		return nil, unsupported("image collection tileset '%s'", ts.Name)
	}
	if err := b.parseTileSetImage(ts, img); err != nil {
		return nil, err
	}

	for _, tn := range n.childrenNamed("tile") {
		td, err := parseTileData(tn)
		if err != nil {
			return nil, err
		}
		ts.Tiles[td.ID] = td
	}

	if ts.Columns == 0 && ts.ImageSize.X > 0 && ts.TileSize.X+ts.Spacing > 0 {
		ts.Columns = (ts.ImageSize.X - 2*ts.Margin + ts.Spacing) / (ts.TileSize.X + ts.Spacing)
	}
	if ts.TileCount == 0 && ts.Columns > 0 && ts.ImageSize.Y > 0 && ts.TileSize.Y+ts.Spacing > 0 {
		rows := (ts.ImageSize.Y - 2*ts.Margin + ts.Spacing) / (ts.TileSize.Y + ts.Spacing)
		ts.TileCount = rows * ts.Columns
	}
	return ts, nil
}

func (b *builder[I]) parseTileSetImage(ts *TileSet[I], n *node) error {
	if n.child("data") != nil {
		return unsupported("embedded image data in tileset '%s'", ts.Name)
	}
	src, err := requireAttr(n, "source")
	if err != nil {
		return err
	}
	if ts.ImageSize.X, err = optSize(n, "width", 0); err != nil {
		return err
	}
	if ts.ImageSize.Y, err = optSize(n, "height", 0); err != nil {
		return err
	}
	if trans, ok := n.attr("trans"); ok && trans != "" {
		// trans is written without the leading '#'.
		if trans[0] != '#' {
			trans = "#" + trans
		}
		c, err := ParseColor(trans)
		if err != nil {
			return parseErr(fmt.Errorf("image.trans: %w", err))
		}
		ts.Trans = &c
	}

	rel := b.rel(src)
	if ts.Image, err = b.rm.Image(rel); err != nil {
		return err
	}
	ts.ImageSource = b.rm.resolve(rel)
	return nil
}

func parseTileData(n *node) (*TileData, error) {
	v, err := requireAttr(n, "id")
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return nil, parseErr(fmt.Errorf("tile.id: %w", err))
	}
	if n.child("image") != nil {
		return nil, unsupported("per-tile images")
	}
	props, err := parseProperties(n)
	if err != nil {
		return nil, err
	}
	return &TileData{
		ID:         uint32(id),
		Class:      n.attrOr("type", n.attrOr("class", "")),
		Properties: props,
	}, nil
}
