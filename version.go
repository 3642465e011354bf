package tiled

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a MAJOR.MINOR[.PATCH] version number as found in the
// version and tiledversion attributes.
type Version struct {
	Major uint32
	Minor uint32
	Patch *uint32 // nil when the version had no patch component
}

// ParseVersion parses "major.minor" or "major.minor.patch".
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Version{}, &ParseError{Err: fmt.Errorf("version %q: major and minor are required", s)}
	}
	if len(parts) > 3 {
		return Version{}, &ParseError{Err: fmt.Errorf("version %q: too many components", s)}
	}

	var nums [3]uint32
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return Version{}, &ParseError{Err: fmt.Errorf("version %q: %w", s, err)}
		}
		nums[i] = uint32(n)
	}

	v := Version{Major: nums[0], Minor: nums[1]}
	if len(parts) == 3 {
		patch := nums[2]
		v.Patch = &patch
	}
	return v, nil
}

// MustParseVersion is like ParseVersion but panics on error. It is meant for
// constants in tests and tools.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	if v.Patch == nil {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, *v.Patch)
}

// Equal reports whether both versions have the same components.
func (v Version) Equal(o Version) bool {
	if v.Major != o.Major || v.Minor != o.Minor {
		return false
	}
	if v.Patch == nil || o.Patch == nil {
		return v.Patch == nil && o.Patch == nil
	}
	return *v.Patch == *o.Patch
}

