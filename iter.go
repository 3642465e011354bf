package tiled

import "iter"

// LayerIterator walks a layer tree depth first, parents before children.
// Along with each layer it reports how many groups were left since the
// previous layer, so callers can keep a stack of inherited attributes
// (opacity, offset, tint) without recursing:
//
//	it := tiled.IterLayers(m.Layers)
//	for l, pops, ok := it.Next(); ok; l, pops, ok = it.Next() {
//		stack = stack[:len(stack)-pops]
//		...
//		if g, isGroup := l.(*tiled.GroupLayer); isGroup {
//			stack = append(stack, g)
//		}
//	}
type LayerIterator struct {
	// stack holds the siblings still to visit at each depth.
	stack [][]Layer
}

// IterLayers returns an iterator over layers and all their descendants.
func IterLayers(layers []Layer) *LayerIterator {
	return &LayerIterator{stack: [][]Layer{layers}}
}

// Next returns the next layer and the number of groups left since the
// previous one. A group is left once all of its content has been returned,
// so an empty group is left right after it is returned. ok is false when
// the tree is exhausted.
func (it *LayerIterator) Next() (l Layer, pops int, ok bool) {
	for len(it.stack) > 0 {
		top := len(it.stack) - 1
		if len(it.stack[top]) == 0 {
			it.stack = it.stack[:top]
			if top > 0 {
				pops++
			}
			continue
		}

		l = it.stack[top][0]
		it.stack[top] = it.stack[top][1:]
		if g, isGroup := l.(*GroupLayer); isGroup {
			it.stack = append(it.stack, g.Content)
		}
		return l, pops, true
	}
	return nil, 0, false
}

// Depth is the number of groups entered and not yet left.
func (it *LayerIterator) Depth() int {
	if len(it.stack) == 0 {
		return 0
	}
	return len(it.stack) - 1
}

// AllLayers returns a fresh depth-first iterator over the layer tree of m,
// yielding each layer with its pop count.
func (m *Map[I]) AllLayers() iter.Seq2[Layer, int] {
	return func(yield func(Layer, int) bool) {
		it := IterLayers(m.Layers)
		for l, pops, ok := it.Next(); ok; l, pops, ok = it.Next() {
			if !yield(l, pops) {
				return
			}
		}
	}
}
