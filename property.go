package tiled

import (
	"fmt"
	"strconv"
	"strings"
)

// PropertyType names the variant stored in a PropertyValue.
type PropertyType int

const (
	TypeString PropertyType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeColor
	TypeFile
	TypeObject
)

var propertyTypeNames = [...]string{
	TypeString: "string",
	TypeInt:    "int",
	TypeFloat:  "float",
	TypeBool:   "bool",
	TypeColor:  "color",
	TypeFile:   "file",
	TypeObject: "object",
}

func (t PropertyType) String() string {
	if int(t) < len(propertyTypeNames) {
		return propertyTypeNames[t]
	}
	return fmt.Sprintf("PropertyType(%d)", int(t))
}

// PropertyValue is one of StringValue, IntValue, FloatValue, BoolValue,
// ColorValue, FileValue or ObjectRef.
type PropertyValue interface {
	Type() PropertyType
}

type (
	StringValue string
	IntValue    int64
	FloatValue  float64
	BoolValue   bool
	ColorValue  Color
	FileValue   string
	// ObjectRef is the id of another object in the same map.
	ObjectRef int64
)

func (StringValue) Type() PropertyType { return TypeString }
func (IntValue) Type() PropertyType    { return TypeInt }
func (FloatValue) Type() PropertyType  { return TypeFloat }
func (BoolValue) Type() PropertyType   { return TypeBool }
func (ColorValue) Type() PropertyType  { return TypeColor }
func (FileValue) Type() PropertyType   { return TypeFile }
func (ObjectRef) Type() PropertyType   { return TypeObject }

func (c ColorValue) String() string { return Color(c).String() }

// Property is a named custom property.
type Property struct {
	Name  string
	Value PropertyValue
}

func (p Property) mismatch(want PropertyType) error {
	return &PropertyTypeError{Name: p.Name, Want: want, Got: p.Value.Type()}
}

// AsString returns the value of a string property.
func (p Property) AsString() (string, error) {
	if v, ok := p.Value.(StringValue); ok {
		return string(v), nil
	}
	return "", p.mismatch(TypeString)
}

// AsInt returns the value of an int property.
func (p Property) AsInt() (int64, error) {
	if v, ok := p.Value.(IntValue); ok {
		return int64(v), nil
	}
	return 0, p.mismatch(TypeInt)
}

// AsFloat returns the value of a float property.
func (p Property) AsFloat() (float64, error) {
	if v, ok := p.Value.(FloatValue); ok {
		return float64(v), nil
	}
	return 0, p.mismatch(TypeFloat)
}

// AsBool returns the value of a bool property.
func (p Property) AsBool() (bool, error) {
	if v, ok := p.Value.(BoolValue); ok {
		return bool(v), nil
	}
	return false, p.mismatch(TypeBool)
}

// AsColor returns the value of a color property. An unset color is the zero Color.
func (p Property) AsColor() (Color, error) {
	if v, ok := p.Value.(ColorValue); ok {
		return Color(v), nil
	}
	return Color{}, p.mismatch(TypeColor)
}

// AsFile returns the path stored in a file property, as written in the
// document.
func (p Property) AsFile() (string, error) {
	if v, ok := p.Value.(FileValue); ok {
		return string(v), nil
	}
	return "", p.mismatch(TypeFile)
}

// AsObjectRef returns the object id stored in an object property; 0 means none.
func (p Property) AsObjectRef() (ObjectRef, error) {
	if v, ok := p.Value.(ObjectRef); ok {
		return v, nil
	}
	return 0, p.mismatch(TypeObject)
}

// Properties maps property names to properties. Names are unique; when a
// document repeats a name the last one wins.
type Properties map[string]Property

// Get returns the property called name.
func (ps Properties) Get(name string) (Property, bool) {
	p, ok := ps[name]
	return p, ok
}

// Merge returns a new set holding ps overlaid with over; entries of over win.
func (ps Properties) Merge(over Properties) Properties {
	out := make(Properties, len(ps)+len(over))
	for k, v := range ps {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// parseProperties reads the <properties> child of n, if any.
func parseProperties(n *node) (Properties, error) {
	ps := Properties{}
	if err := ps.update(n); err != nil {
		return nil, err
	}
	return ps, nil
}

// update adds the properties under n's <properties> child to ps, replacing
// entries with the same name.
func (ps Properties) update(n *node) error {
	props := n.child("properties")
	if props == nil {
		return nil
	}
	for _, pn := range props.childrenNamed("property") {
		p, err := parseProperty(pn)
		if err != nil {
			return err
		}
		ps[p.Name] = p
	}
	return nil
}

func parseProperty(n *node) (Property, error) {
	name, ok := n.attr("name")
	if !ok {
		return Property{}, structureErr(n.name, "property is missing a name")
	}
	v, err := parsePropertyValue(n, name)
	if err != nil {
		return Property{}, err
	}
	return Property{Name: name, Value: v}, nil
}

func parsePropertyValue(n *node, name string) (PropertyValue, error) {
	raw, hasValue := n.attr("value")
	wrap := func(err error) error {
		return parseErr(fmt.Errorf("property '%s': %w", name, err))
	}

	switch typ := n.attrOr("type", "string"); typ {
	case "string":
		if !hasValue {
			raw = n.content()
		}
		return StringValue(raw), nil
	case "int":
		if !hasValue {
			return IntValue(0), nil
		}
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, wrap(err)
		}
		return IntValue(i), nil
	case "float":
		if !hasValue {
			return FloatValue(0), nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, wrap(err)
		}
		return FloatValue(f), nil
	case "bool":
		if !hasValue {
			return BoolValue(false), nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, wrap(err)
		}
		return BoolValue(b), nil
	case "color":
		// Tiled writes an empty value for an unset color.
		if !hasValue || raw == "" {
			return ColorValue{}, nil
		}
		c, err := ParseColor(raw)
		if err != nil {
			return nil, wrap(err)
		}
		return ColorValue(c), nil
	case "file":
		return FileValue(raw), nil
	case "object":
		if !hasValue {
			return ObjectRef(0), nil
		}
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, wrap(err)
		}
		return ObjectRef(id), nil
	default:
		return nil, unsupported("property type '%s' of property '%s'", typ, name)
	}
}
