package tiled

// Flip flags stored in the top three bits of a GID.
const (
	FlipHorizontal GID = 0x80000000
	FlipVertical   GID = 0x40000000
	FlipDiagonal   GID = 0x20000000

	flipMask = FlipHorizontal | FlipVertical | FlipDiagonal
)

// GID is a global tile id. It indexes into the tilesets of a map once its
// flip bits are masked off with ID. A stored GID is never zero: the zero
// value stands for an empty cell.
type GID uint32

// ID returns g with the flip bits cleared.
func (g GID) ID() uint32 { return uint32(g &^ flipMask) }

// FlippedHorizontally reports whether the tile is mirrored along the y axis.
func (g GID) FlippedHorizontally() bool { return g&FlipHorizontal != 0 }

// FlippedVertically reports whether the tile is mirrored along the x axis.
func (g GID) FlippedVertically() bool { return g&FlipVertical != 0 }

// FlippedDiagonally reports whether the tile's x and y axes are swapped. It
// is applied before the other two flips.
func (g GID) FlippedDiagonally() bool { return g&FlipDiagonal != 0 }
