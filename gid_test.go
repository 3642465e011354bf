package tiled

import "testing"

func TestGIDFlags(t *testing.T) {
	tests := []struct {
		gid     GID
		id      uint32
		h, v, d bool
	}{
		{0, 0, false, false, false},
		{1, 1, false, false, false},
		{0x80000005, 5, true, false, false},
		{0x40000005, 5, false, true, false},
		{0x20000005, 5, false, false, true},
		{0xE0000001, 1, true, true, true},
		{0x1FFFFFFF, 0x1FFFFFFF, false, false, false},
	}
	for _, tt := range tests {
		if got := tt.gid.ID(); got != tt.id {
			t.Errorf("GID(%#x).ID() = %d, want %d", uint32(tt.gid), got, tt.id)
		}
		if got := tt.gid.FlippedHorizontally(); got != tt.h {
			t.Errorf("GID(%#x).FlippedHorizontally() = %v, want %v", uint32(tt.gid), got, tt.h)
		}
		if got := tt.gid.FlippedVertically(); got != tt.v {
			t.Errorf("GID(%#x).FlippedVertically() = %v, want %v", uint32(tt.gid), got, tt.v)
		}
		if got := tt.gid.FlippedDiagonally(); got != tt.d {
			t.Errorf("GID(%#x).FlippedDiagonally() = %v, want %v", uint32(tt.gid), got, tt.d)
		}
	}
}
