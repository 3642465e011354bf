package tiled

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		patch bool
	}{
		{"1.0", "1.0", false},
		{"1.10", "1.10", false},
		{"1.10.2", "1.10.2", true},
		{"0.0.0", "0.0.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := ParseVersion(tt.in)
			if err != nil {
				t.Fatalf("ParseVersion(%q): %v", tt.in, err)
			}
			if got := v.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if (v.Patch != nil) != tt.patch {
				t.Errorf("got patch %v, want present=%v", v.Patch, tt.patch)
			}
		})
	}
}

func TestParseVersionErrors(t *testing.T) {
	for _, in := range []string{"", "1", "1.", ".1", "a.b", "1.x", "1.2.3.4", "-1.0", "1.2.z"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseVersion(in)
			var pErr *ParseError
			if !errors.As(err, &pErr) {
				t.Errorf("ParseVersion(%q) = %v, want *ParseError", in, err)
			}
		})
	}
}

func TestVersionEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1.0", "1.0", true},
		{"1.0", "1.0.0", false},
		{"1.2.3", "1.2.3", true},
		{"1.2.3", "1.2.4", false},
		{"1.2", "2.2", false},
	}
	for _, tt := range tests {
		if got := MustParseVersion(tt.a).Equal(MustParseVersion(tt.b)); got != tt.want {
			t.Errorf("%s.Equal(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMustParseVersionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseVersion did not panic")
		}
	}()
	MustParseVersion("nope")
}
