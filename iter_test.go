package tiled

import (
	"slices"
	"testing"
)

func tl(name string) *TileLayer { return &TileLayer{LayerInfo: LayerInfo{Name: name}} }

func grp(name string, content ...Layer) *GroupLayer {
	return &GroupLayer{LayerInfo: LayerInfo{Name: name}, Content: content}
}

type step struct {
	name string
	pops int
}

func walk(layers []Layer) []step {
	var steps []step
	it := IterLayers(layers)
	for l, pops, ok := it.Next(); ok; l, pops, ok = it.Next() {
		steps = append(steps, step{l.Info().Name, pops})
	}
	return steps
}

func TestLayerIterator(t *testing.T) {
	tests := []struct {
		name   string
		layers []Layer
		want   []step
	}{
		{
			name: "empty",
		},
		{
			name:   "flat",
			layers: []Layer{tl("a"), tl("b"), tl("c")},
			want:   []step{{"a", 0}, {"b", 0}, {"c", 0}},
		},
		{
			name:   "group then sibling",
			layers: []Layer{grp("g", tl("a"), tl("b")), tl("c")},
			want:   []step{{"g", 0}, {"a", 0}, {"b", 0}, {"c", 1}},
		},
		{
			name:   "nested groups closed together",
			layers: []Layer{grp("g1", grp("g2", tl("a"))), tl("b")},
			want:   []step{{"g1", 0}, {"g2", 0}, {"a", 0}, {"b", 2}},
		},
		{
			name:   "empty group",
			layers: []Layer{grp("g"), tl("a")},
			want:   []step{{"g", 0}, {"a", 1}},
		},
		{
			name:   "trailing group",
			layers: []Layer{tl("a"), grp("g", tl("b"))},
			want:   []step{{"a", 0}, {"g", 0}, {"b", 0}},
		},
		{
			name: "siblings inside group",
			layers: []Layer{
				grp("g1", tl("a"), grp("g2", tl("b")), tl("c")),
				grp("g3", tl("d")),
			},
			want: []step{{"g1", 0}, {"a", 0}, {"g2", 0}, {"b", 0}, {"c", 1}, {"g3", 1}, {"d", 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := walk(tt.layers)
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayerIteratorCount(t *testing.T) {
	layers := []Layer{
		grp("g1", tl("a"), grp("g2"), tl("b")),
		tl("c"),
		grp("g3", grp("g4", grp("g5", tl("d")))),
	}
	// 5 groups and 4 tile layers
	if got := len(walk(layers)); got != 9 {
		t.Errorf("got %d layers, want 9", got)
	}
}

func TestLayerIteratorDepth(t *testing.T) {
	it := IterLayers([]Layer{grp("g", grp("h", tl("a"))), tl("b")})
	var depths []int
	for _, _, ok := it.Next(); ok; _, _, ok = it.Next() {
		depths = append(depths, it.Depth())
	}
	if want := []int{1, 2, 2, 0}; !slices.Equal(depths, want) {
		t.Errorf("got %v, want %v", depths, want)
	}
	if _, _, ok := it.Next(); ok {
		t.Error("Next after exhaustion returned a layer")
	}
}

func TestAllLayers(t *testing.T) {
	m := &Map[string]{Layers: []Layer{grp("g", tl("a")), tl("b")}}

	var got []step
	for l, pops := range m.AllLayers() {
		got = append(got, step{l.Info().Name, pops})
	}
	want := []step{{"g", 0}, {"a", 0}, {"b", 1}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// Each call starts over, and breaking early is allowed.
	n := 0
	for range m.AllLayers() {
		n++
		break
	}
	for range m.AllLayers() {
		n++
	}
	if n != 4 {
		t.Errorf("got %d iterations, want 4", n)
	}
}
