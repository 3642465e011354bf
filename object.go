package tiled

import (
	"fmt"
	"strconv"
	"strings"
)

// Object is a free-standing entity of an object layer: a shape, a point, a
// text box or, when HasGID is set, a tile stamp.
type Object struct {
	ID       int
	Name     string
	Class    string
	Position FVec2
	Size     FVec2
	Rotation float64 // degrees, clockwise
	GID      GID
	HasGID   bool
	Visible  bool
	// Template is the resolved path of the template this object was
	// instantiated from, empty if none.
	Template   string
	Kind       ObjectKind
	Properties Properties
}

// ObjectKind is one of Rectangle, Ellipse, Point, Polygon, Polyline, Text or
// UnknownKind.
type ObjectKind interface {
	isObjectKind()
}

type (
	Rectangle struct{}
	Ellipse   struct{}
	Point     struct{}
	Polygon   struct {
		Points []FVec2 // relative to the object position
	}
	Polyline struct {
		Points []FVec2
	}
	// UnknownKind is a shape element this package does not know, kept so
	// that maps written by newer editors still load.
	UnknownKind struct {
		Tag string
	}
)

// Text is a text box object.
type Text struct {
	Content    string
	FontFamily string
	PixelSize  int
	Wrap       bool
	Color      Color
	Bold       bool
	Italic     bool
	Underline  bool
	Strikeout  bool
	Kerning    bool
	HAlign     string
	VAlign     string
}

func (Rectangle) isObjectKind()   {}
func (Ellipse) isObjectKind()     {}
func (Point) isObjectKind()       {}
func (Polygon) isObjectKind()     {}
func (Polyline) isObjectKind()    {}
func (Text) isObjectKind()        {}
func (UnknownKind) isObjectKind() {}

func newObject() *Object {
	return &Object{Visible: true, Kind: Rectangle{}, Properties: Properties{}}
}

// parseObject builds an object, starting from its template when it has one.
// Attributes and properties present on the instance win over the template.
func (b *builder[I]) parseObject(n *node) (*Object, error) {
	o := newObject()

	if src, ok := n.attr("template"); ok {
		rel := b.rel(src)
		t, err := b.rm.Template(rel)
		if err != nil {
			return nil, err
		}
		o = t.Object.clone()
		o.Template = b.rm.resolve(rel)
		if t.Object.HasGID && t.TileSetSource != "" {
			gid, err := b.remapTemplateGID(t)
			if err != nil {
				return nil, err
			}
			o.GID = gid
		}
	}

	if err := applyObject(o, n); err != nil {
		return nil, err
	}
	return o, nil
}

// remapTemplateGID translates the GID of a template, which refers to the
// template's own tileset reference, into the GID space of the map.
func (b *builder[I]) remapTemplateGID(t *Template) (GID, error) {
	for _, ts := range b.tilesets {
		if ts.Source == t.TileSetSource {
			if t.Object.GID.ID() < t.FirstGID.ID() {
				return 0, structureErr("template", "%s: gid %d is below the firstgid %d of its tileset",
					t.Path, t.Object.GID.ID(), t.FirstGID.ID())
			}
			flips := t.Object.GID & flipMask
			lid := t.Object.GID.ID() - t.FirstGID.ID()
			return GID(uint32(ts.FirstGID)+lid) | flips, nil
		}
	}
	return 0, unsupported("template tileset %s is not referenced by the map", t.TileSetSource)
}

func (o *Object) clone() *Object {
	c := *o
	c.Properties = o.Properties.Merge(nil)
	return &c
}

// applyObject sets the fields of o whose attributes or children are present
// on n, leaving the rest untouched.
func applyObject(o *Object, n *node) error {
	var err error
	if o.ID, err = optInt(n, "id", o.ID); err != nil {
		return err
	}
	o.Name = n.attrOr("name", o.Name)
	// Tiled 1.9 renamed the type attribute to class.
	o.Class = n.attrOr("type", n.attrOr("class", o.Class))
	if o.Position.X, err = optFloat(n, "x", o.Position.X); err != nil {
		return err
	}
	if o.Position.Y, err = optFloat(n, "y", o.Position.Y); err != nil {
		return err
	}
	if o.Size.X, err = optFloat(n, "width", o.Size.X); err != nil {
		return err
	}
	if o.Size.Y, err = optFloat(n, "height", o.Size.Y); err != nil {
		return err
	}
	if o.Rotation, err = optFloat(n, "rotation", o.Rotation); err != nil {
		return err
	}
	if o.Visible, err = optBool(n, "visible", o.Visible); err != nil {
		return err
	}
	if v, ok := n.attr("gid"); ok {
		gid, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return parseErr(fmt.Errorf("object.gid: %w", err))
		}
		o.GID, o.HasGID = GID(gid), gid != 0
	}

	if err := o.Properties.update(n); err != nil {
		return err
	}

	for _, c := range n.children {
		if c.name == "properties" {
			continue
		}
		kind, err := parseObjectKind(c)
		if err != nil {
			return err
		}
		o.Kind = kind
		break
	}
	return nil
}

func parseObjectKind(n *node) (ObjectKind, error) {
	switch n.name {
	case "ellipse":
		return Ellipse{}, nil
	case "point":
		return Point{}, nil
	case "polygon":
		pts, err := parsePoints(n)
		if err != nil {
			return nil, err
		}
		return Polygon{Points: pts}, nil
	case "polyline":
		pts, err := parsePoints(n)
		if err != nil {
			return nil, err
		}
		return Polyline{Points: pts}, nil
	case "text":
		return parseText(n)
	}
	return UnknownKind{Tag: n.name}, nil
}

// parsePoints reads a points attribute such as "0,0 16,0 16,16".
func parsePoints(n *node) ([]FVec2, error) {
	v, err := requireAttr(n, "points")
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(v)
	pts := make([]FVec2, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, parseErr(fmt.Errorf("%s.points: malformed point %q", n.name, f))
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, parseErr(fmt.Errorf("%s.points: %w", n.name, err))
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, parseErr(fmt.Errorf("%s.points: %w", n.name, err))
		}
		pts = append(pts, FVec2{x, y})
	}
	return pts, nil
}

func parseText(n *node) (Text, error) {
	t := Text{
		Content:    n.content(),
		FontFamily: n.attrOr("fontfamily", "sans-serif"),
		HAlign:     n.attrOr("halign", "left"),
		VAlign:     n.attrOr("valign", "top"),
		Color:      Color{A: 0xFF},
	}

	var err error
	if t.PixelSize, err = optInt(n, "pixelsize", 16); err != nil {
		return t, err
	}
	flags := []struct {
		name string
		dst  *bool
		def  bool
	}{
		{"wrap", &t.Wrap, false},
		{"bold", &t.Bold, false},
		{"italic", &t.Italic, false},
		{"underline", &t.Underline, false},
		{"strikeout", &t.Strikeout, false},
		{"kerning", &t.Kerning, true},
	}
	for _, f := range flags {
		if *f.dst, err = optBool(n, f.name, f.def); err != nil {
			return t, err
		}
	}
	c, err := optColor(n, "color")
	if err != nil {
		return t, err
	}
	if c != nil {
		t.Color = *c
	}
	return t, nil
}

// parseTemplate parses a .tx document: an optional tileset reference and the
// template object.
func (b *builder[I]) parseTemplate(data []byte) (*Template, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	if root.name != "template" {
		return nil, structureErr(root.name, "expected tag 'template' at root level, got '%s'", root.name)
	}

	on := root.child("object")
	if on == nil {
		return nil, structureErr(root.name, "template has no object")
	}
	o := newObject()
	if err := applyObject(o, on); err != nil {
		return nil, err
	}
	t := &Template{Object: o}

	if tn := root.child("tileset"); tn != nil {
		v, err := requireAttr(tn, "firstgid")
		if err != nil {
			return nil, err
		}
		first, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, parseErr(fmt.Errorf("tileset.firstgid: %w", err))
		}
		src, err := requireAttr(tn, "source")
		if err != nil {
			return nil, err
		}
		t.FirstGID = GID(first)
		t.TileSetSource = b.rm.resolve(b.rel(src))
	}
	return t, nil
}
