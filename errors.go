package tiled

import (
	"errors"
	"fmt"
)

// ErrPropertyType is matched by every *PropertyTypeError via errors.Is.
var ErrPropertyType = errors.New("tiled: property type mismatch")

// StructureError reports a required tag or attribute that is missing, or an
// element found where it is not expected.
type StructureError struct {
	Tag string
	Msg string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("tiled: error in map data at '%s': %s", e.Tag, e.Msg)
}

// ParseError wraps a value that could not be converted to its target type:
// numbers, colors, versions, base64 payloads, compressed streams, point lists.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "tiled: parse error: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports that a Provider failed to read a path.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("tiled: read %s: %v", e.Path, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// UnsupportedFeatureError reports a construct of the format that is
// recognised but not implemented.
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return "tiled: feature not supported: " + e.Feature
}

// PropertyTypeError is returned by the typed Property accessors when the
// stored value has a different type.
type PropertyTypeError struct {
	Name string
	Want PropertyType
	Got  PropertyType
}

func (e *PropertyTypeError) Error() string {
	return fmt.Sprintf("tiled: property '%s' is %s, not %s", e.Name, e.Got, e.Want)
}

func (e *PropertyTypeError) Is(target error) bool { return target == ErrPropertyType }

func structureErr(tag, format string, args ...any) error {
	return &StructureError{Tag: tag, Msg: fmt.Sprintf(format, args...)}
}

func parseErr(err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Err: err}
}

func unsupported(format string, args ...any) error {
	return &UnsupportedFeatureError{Feature: fmt.Sprintf(format, args...)}
}
