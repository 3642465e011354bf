package tiled

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// node is a parsed XML element. The builder walks these instead of
// unmarshalling into tagged structs so that sibling order (layers, groups and
// object groups interleave) is kept and missing attributes can be told apart
// from zero values.
type node struct {
	name     string
	attrs    []xml.Attr
	children []*node
	text     strings.Builder
}

func parseDocument(data []byte) (*node, error) {
	d := xml.NewDecoder(bytes.NewReader(data))

	var root *node
	var stack []*node
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseErr(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name.Local, attrs: t.Attr}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, parseErr(errors.New("document has no root element"))
	}
	return root, nil
}

func (n *node) attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *node) attrOr(name, def string) string {
	if v, ok := n.attr(name); ok {
		return v
	}
	return def
}

func (n *node) child(name string) *node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (n *node) childrenNamed(name string) []*node {
	var out []*node
	for _, c := range n.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

func (n *node) content() string { return n.text.String() }

// requireAttr returns the value of a mandatory attribute or a StructureError
// naming the tag and the attribute.
func requireAttr(n *node, name string) (string, error) {
	v, ok := n.attr(name)
	if !ok {
		return "", structureErr(n.name, "required attribute '%s' missing", name)
	}
	return v, nil
}

func requireInt(n *node, name string) (int, error) {
	v, err := requireAttr(n, name)
	if err != nil {
		return 0, err
	}
	return parseInt(n, name, v)
}

func parseInt(n *node, name, v string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, parseErr(fmt.Errorf("%s.%s: %w", n.name, name, err))
	}
	return i, nil
}

func optInt(n *node, name string, def int) (int, error) {
	v, ok := n.attr(name)
	if !ok {
		return def, nil
	}
	return parseInt(n, name, v)
}

// requireSize is requireInt for sizes and counts, which must not be negative.
func requireSize(n *node, name string) (int, error) {
	i, err := requireInt(n, name)
	if err != nil {
		return 0, err
	}
	return i, checkSize(n, name, i)
}

// optSize is optInt for sizes and counts, which must not be negative.
func optSize(n *node, name string, def int) (int, error) {
	i, err := optInt(n, name, def)
	if err != nil {
		return 0, err
	}
	return i, checkSize(n, name, i)
}

func checkSize(n *node, name string, i int) error {
	if i < 0 {
		return parseErr(fmt.Errorf("%s.%s: negative value %d", n.name, name, i))
	}
	return nil
}

func optFloat(n *node, name string, def float64) (float64, error) {
	v, ok := n.attr(name)
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, parseErr(fmt.Errorf("%s.%s: %w", n.name, name, err))
	}
	return f, nil
}

// optBool accepts Tiled's "0"/"1" as well as "true"/"false".
func optBool(n *node, name string, def bool) (bool, error) {
	v, ok := n.attr(name)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, parseErr(fmt.Errorf("%s.%s: %w", n.name, name, err))
	}
	return b, nil
}

func optColor(n *node, name string) (*Color, error) {
	v, ok := n.attr(name)
	if !ok {
		return nil, nil
	}
	c, err := ParseColor(v)
	if err != nil {
		return nil, parseErr(fmt.Errorf("%s.%s: %w", n.name, name, err))
	}
	return &c, nil
}
