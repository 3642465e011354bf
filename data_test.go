package tiled

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

func packGIDs(gids ...uint32) []byte {
	buf := make([]byte, 4*len(gids))
	for i, g := range gids {
		binary.LittleEndian.PutUint32(buf[i*4:], g)
	}
	return buf
}

func compressWith(t *testing.T, c Compression, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	var w io.WriteCloser
	switch c {
	case CompressionNone:
		return raw
	case CompressionZlib:
		w = zlib.NewWriter(&buf)
	case CompressionGzip:
		w = gzip.NewWriter(&buf)
	case CompressionZstd:
		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			t.Fatal(err)
		}
		w = zw
	}
	if _, err := w.Write(raw); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func dataNode(t *testing.T, doc string) *node {
	t.Helper()
	n, err := parseDocument([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestDecodeBase64Tiles(t *testing.T) {
	gids := []uint32{1, 0, 2, 0x80000003, 0, 0xE0000001}
	want := []GID{1, 0, 2, 0x80000003, 0, 0xE0000001}

	for _, c := range []Compression{CompressionNone, CompressionZlib, CompressionGzip, CompressionZstd} {
		t.Run(c.String(), func(t *testing.T) {
			payload := base64.StdEncoding.EncodeToString(compressWith(t, c, packGIDs(gids...)))
			got, err := decodeBase64Tiles("\n   "+payload+"\n  ", c, len(gids))
			if err != nil {
				t.Fatalf("decodeBase64Tiles: %v", err)
			}
			if !slices.Equal(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestDecodeTilesLength(t *testing.T) {
	if _, err := decodeTiles(make([]byte, 7)); err == nil {
		t.Error("7 bytes decoded without error")
	}
	got, err := decodeTiles(nil)
	if err != nil || len(got) != 0 {
		t.Errorf("got %v, %v; want empty, nil", got, err)
	}
}

func TestParseData(t *testing.T) {
	zeros := base64.StdEncoding.EncodeToString(make([]byte, 16))
	zlibbed := base64.StdEncoding.EncodeToString(compressWith(t, CompressionZlib, packGIDs(7, 8)))

	tests := []struct {
		name  string
		doc   string
		cells int
		want  []GID
		err   any
	}{
		{
			name:  "plain",
			doc:   `<data encoding="base64">` + zeros + `</data>`,
			cells: 4,
			want:  []GID{0, 0, 0, 0},
		},
		{
			name:  "empty compression attribute",
			doc:   `<data encoding="base64" compression="">` + zeros + `</data>`,
			cells: 4,
			want:  []GID{0, 0, 0, 0},
		},
		{
			name:  "zlib",
			doc:   `<data encoding="base64" compression="zlib">` + zlibbed + `</data>`,
			cells: 2,
			want:  []GID{7, 8},
		},
		{
			name:  "fewer tiles than cells",
			doc:   `<data encoding="base64" compression="zlib">` + zlibbed + `</data>`,
			cells: 3,
			want:  []GID{7, 8},
		},
		{
			name:  "bad base64",
			doc:   `<data encoding="base64">!!!not base64!!!</data>`,
			cells: 4,
			err:   new(*ParseError),
		},
		{
			name:  "length not a multiple of four",
			doc:   `<data encoding="base64">` + base64.StdEncoding.EncodeToString([]byte{1, 2, 3}) + `</data>`,
			cells: 4,
			err:   new(*ParseError),
		},
		{
			name:  "corrupt zlib stream",
			doc:   `<data encoding="base64" compression="zlib">` + zeros + `</data>`,
			cells: 4,
			err:   new(*ParseError),
		},
		{
			name:  "more tiles than cells",
			doc:   `<data encoding="base64">` + zeros + `</data>`,
			cells: 3,
			err:   new(*StructureError),
		},
		{
			name:  "compressed tiles beyond cells",
			doc:   `<data encoding="base64" compression="zlib">` + zlibbed + `</data>`,
			cells: 1,
			err:   new(*StructureError),
		},
		{
			name:  "unknown compression",
			doc:   `<data encoding="base64" compression="lzma">` + zeros + `</data>`,
			cells: 4,
			err:   new(*StructureError),
		},
		{
			name:  "unknown encoding",
			doc:   `<data encoding="hex">00</data>`,
			cells: 1,
			err:   new(*StructureError),
		},
		{
			name:  "missing encoding",
			doc:   `<data>` + zeros + `</data>`,
			cells: 4,
			err:   new(*StructureError),
		},
		{
			name:  "tile elements",
			doc:   `<data><tile gid="1"/></data>`,
			cells: 1,
			err:   new(*StructureError),
		},
		{
			name:  "csv",
			doc:   `<data encoding="csv">1,2,3,4</data>`,
			cells: 4,
			err:   new(*UnsupportedFeatureError),
		},
		{
			name:  "chunks",
			doc:   `<data encoding="base64"><chunk x="0" y="0" width="16" height="16"></chunk></data>`,
			cells: 256,
			err:   new(*UnsupportedFeatureError),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseData(dataNode(t, tt.doc), tt.cells)
			if tt.err != nil {
				if err == nil || !errors.As(err, tt.err) {
					t.Fatalf("got error %v, want %T", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseData: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMissingEncodingNamesAttribute(t *testing.T) {
	_, err := parseData(dataNode(t, `<data><tile gid="1"/></data>`), 1)
	var sErr *StructureError
	if !errors.As(err, &sErr) {
		t.Fatalf("got %v, want *StructureError", err)
	}
	if sErr.Tag != "data" || !strings.Contains(sErr.Msg, "encoding") {
		t.Errorf("got tag %q msg %q", sErr.Tag, sErr.Msg)
	}
}

func TestDecompressStopsAtLimit(t *testing.T) {
	// 4 MiB of zeros compresses to a few KiB; only the first limit+1 bytes
	// may be inflated.
	big := make([]byte, 4<<20)
	for _, c := range []Compression{CompressionZlib, CompressionGzip, CompressionZstd} {
		t.Run(c.String(), func(t *testing.T) {
			_, err := decompress(compressWith(t, c, big), c, 64)
			if !errors.Is(err, errTooManyTiles) {
				t.Errorf("got %v, want errTooManyTiles", err)
			}
			out, err := decompress(compressWith(t, c, big[:64]), c, 64)
			if err != nil || len(out) != 64 {
				t.Errorf("at the limit: got %d bytes, %v; want 64, nil", len(out), err)
			}
		})
	}
}
