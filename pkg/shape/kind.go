package shape

import (
	"github.com/matzehuels/geoshaper/pkg/errors"
)

// Kind identifies a shape kind.
type Kind int

const (
	KindRectangle Kind = iota
	KindTriangle
)

// Kind names as accepted on the command line and in config files.
const (
	NameRectangle = "rectangle"
	NameTriangle  = "triangle"
)

// Kinds lists every supported kind.
var Kinds = []Kind{KindRectangle, KindTriangle}

func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return NameRectangle
	case KindTriangle:
		return NameTriangle
	}
	return "unknown"
}

// NumPoints returns how many points a shape of this kind has.
func (k Kind) NumPoints() int {
	switch k {
	case KindRectangle:
		return 4
	case KindTriangle:
		return 3
	}
	return 0
}

// ParseKind converts a kind name into a Kind.
func ParseKind(name string) (Kind, error) {
	if err := errors.ValidateShapeName(name); err != nil {
		return 0, err
	}
	if name == NameTriangle {
		return KindTriangle, nil
	}
	return KindRectangle, nil
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
