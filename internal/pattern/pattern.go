// Package pattern renders procedural fabric textures and loads uploaded
// pattern images.
package pattern

import (
	"errors"
	"fmt"
)

// DefaultSize is the texture edge length in pixels.
const DefaultSize = 512

// Pattern errors.
var (
	ErrUnknownKind   = errors.New("unknown pattern kind")
	ErrNotProcedural = errors.New("pattern kind is not procedural")
)

// Kind identifies how a pattern texture is produced.
type Kind int

const (
	Solid Kind = iota
	Stripes
	Plaid
	Dots
	Image // uploaded bitmap
)

var kindNames = map[Kind]string{
	Solid:   "solid",
	Stripes: "stripes",
	Plaid:   "plaid",
	Dots:    "dots",
	Image:   "image",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind parses a kind name.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
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

// Entry is one item of the pattern catalog.
type Entry struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Kind   Kind   `yaml:"kind"`
	Source string `yaml:"source,omitempty"` // image path for uploaded patterns
}

// NoneID is the catalog ID of the plain-colour pattern.
const NoneID = "none"

// DefaultCatalog returns the built-in patterns.
func DefaultCatalog() []Entry {
	return []Entry{
		{ID: NoneID, Name: "Solid", Kind: Solid},
		{ID: "stripes", Name: "Two-tone stripes", Kind: Stripes},
		{ID: "plaid", Name: "Tartan plaid", Kind: Plaid},
		{ID: "dots", Name: "Polka dots", Kind: Dots},
	}
}
