package tiled

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Encoding is the text encoding of a <data> payload.
type Encoding int

const (
	EncodingBase64 Encoding = iota
	EncodingCSV
)

// parseEncoding reads the encoding attribute. Without it the cells are
// written as <tile> elements, which this package does not read.
func parseEncoding(n *node) (Encoding, error) {
	v, err := requireAttr(n, "encoding")
	if err != nil {
		return 0, err
	}
	switch v {
	case "base64":
		return EncodingBase64, nil
	case "csv":
		return EncodingCSV, nil
	}
	return 0, structureErr(n.name, "unsupported data encoding '%s'", v)
}

// Compression is the compression applied to a base64 payload before
// encoding.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionZlib
	CompressionGzip
	CompressionZstd
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZlib:
		return "zlib"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	}
	return fmt.Sprintf("Compression(%d)", int(c))
}

func parseCompression(n *node) (Compression, error) {
	v, ok := n.attr("compression")
	if !ok || v == "" {
		return CompressionNone, nil
	}
	switch v {
	case "zlib":
		return CompressionZlib, nil
	case "gzip":
		return CompressionGzip, nil
	case "zstd":
		return CompressionZstd, nil
	}
	return 0, structureErr(n.name, "unsupported data compression '%s'", v)
}

// errTooManyTiles reports a payload that decodes to more bytes than the
// layer has cells for.
var errTooManyTiles = errors.New("tile data exceeds the layer size")

// decompress inflates raw according to c, reading at most limit bytes of
// output.
func decompress(raw []byte, c Compression, limit int) ([]byte, error) {
	var r io.Reader
	switch c {
	case CompressionNone:
		if len(raw) > limit {
			return nil, errTooManyTiles
		}
		return raw, nil
	case CompressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("zlib: %w", err)
		}
		defer zr.Close()
		r = zr
	case CompressionGzip:
		gr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gr.Close()
		r = gr
	case CompressionZstd:
		zr, err := zstd.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zr.Close()
		r = zr
	default:
		return nil, fmt.Errorf("unknown compression %v", c)
	}

	var out bytes.Buffer
	if _, err := io.Copy(&out, io.LimitReader(r, int64(limit)+1)); err != nil {
		return nil, fmt.Errorf("%v: %w", c, err)
	}
	if out.Len() > limit {
		return nil, errTooManyTiles
	}
	return out.Bytes(), nil
}

// decodeTiles turns a decompressed payload into GIDs. Each little endian u32
// is one cell; zero is an empty cell and stays zero.
func decodeTiles(raw []byte) ([]GID, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("decoded tile data is %d bytes, not a multiple of 4", len(raw))
	}
	tiles := make([]GID, len(raw)/4)
	for i := range tiles {
		tiles[i] = GID(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return tiles, nil
}

// decodeBase64Tiles is the whole pipeline for a base64 payload holding at
// most cells tiles.
func decodeBase64Tiles(payload string, c Compression, cells int) ([]GID, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}
	raw, err = decompress(raw, c, cells*4)
	if err != nil {
		return nil, err
	}
	return decodeTiles(raw)
}

// parseData decodes a <data> element of a tile layer with the given number
// of cells.
func parseData(n *node, cells int) ([]GID, error) {
	enc, err := parseEncoding(n)
	if err != nil {
		return nil, err
	}
	comp, err := parseCompression(n)
	if err != nil {
		return nil, err
	}

	if len(n.childrenNamed("chunk")) > 0 {
		return nil, unsupported("chunked tile data of infinite maps")
	}

	if enc == EncodingCSV {
		return nil, unsupported("csv tile data encoding")
	}

	tiles, err := decodeBase64Tiles(n.content(), comp, cells)
	if errors.Is(err, errTooManyTiles) {
		return nil, structureErr(n.name, "tile data holds more than %d tiles", cells)
	}
	if err != nil {
		return nil, parseErr(err)
	}
	return tiles, nil
}
