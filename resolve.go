package tiled

import "sort"

// TileSetFor returns the tileset owning gid: the one with the largest
// FirstGID not above gid's masked id. ok is false for 0 and for ids below
// every tileset.
func (m *Map[I]) TileSetFor(gid GID) (ts *TileSet[I], ok bool) {
	id := gid.ID()
	if id == 0 {
		return nil, false
	}
	// First tileset starting after id; its predecessor owns id.
	i := sort.Search(len(m.TileSets), func(i int) bool {
		return m.TileSets[i].FirstGID.ID() > id
	})
	if i == 0 {
		return nil, false
	}
	return m.TileSets[i-1], true
}

// TileImage returns the image handle of gid's tileset and the rectangle of
// the tile inside that image. Flip flags are not applied; read them from
// gid.
func (m *Map[I]) TileImage(gid GID) (img I, r Rect, ok bool) {
	ts, ok := m.TileSetFor(gid)
	if !ok {
		return img, r, false
	}
	r, ok = ts.TileRect(gid.ID() - ts.FirstGID.ID())
	if !ok {
		return img, r, false
	}
	return ts.Image, r, true
}

// TileRect returns the source rectangle of the tile with local id lid.
func (ts *TileSet[I]) TileRect(lid uint32) (Rect, bool) {
	if ts.Columns <= 0 {
		return Rect{}, false
	}
	col := int(lid) % ts.Columns
	row := int(lid) / ts.Columns
	stride := ts.TileSize.Add(Vec2{ts.Spacing, ts.Spacing})
	return Rect{
		UpperLeft: Vec2{col, row}.Mul(stride).Add(Vec2{ts.Margin, ts.Margin}),
		Size:      ts.TileSize,
	}, true
}
