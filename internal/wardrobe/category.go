// Package wardrobe holds per-part material state and the brush selection
// the host UI edits.
package wardrobe

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrUnknownCategory is returned when parsing an unrecognised category name.
var ErrUnknownCategory = errors.New("unknown part category")

// PartCategory tags a mesh part with its semantic role.
type PartCategory int

const (
	Unclassified PartCategory = iota
	Skin
	Hair
	Eye
	Clothing
	Accessory
)

var categoryNames = [...]string{
	Unclassified: "unclassified",
	Skin:         "skin",
	Hair:         "hair",
	Eye:          "eye",
	Clothing:     "clothing",
	Accessory:    "accessory",
}

// Categories lists every category in declaration order.
func Categories() []PartCategory {
	return []PartCategory{Unclassified, Skin, Hair, Eye, Clothing, Accessory}
}

func (c PartCategory) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ParseCategory parses a category name.
func ParseCategory(s string) (PartCategory, error) {
	for i, name := range categoryNames {
		if name == s {
			return PartCategory(i), nil
		}
	}
	return Unclassified, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// MarshalText implements encoding.TextMarshaler.
func (c PartCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *PartCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Classifier maps mesh names to categories from authored asset metadata.
// Names missing from the table are Unclassified.
type Classifier struct {
	Parts map[string]PartCategory `yaml:"parts"`
}

// NewClassifier creates a classifier over a copy of table.
func NewClassifier(table map[string]PartCategory) *Classifier {
	parts := make(map[string]PartCategory, len(table))
	for name, c := range table {
		parts[name] = c
	}
	return &Classifier{Parts: parts}
}

// ParseClassifier reads a YAML parts table:
//
//	parts:
//	  Body: skin
//	  Hair_Long: hair
func ParseClassifier(data []byte) (*Classifier, error) {
	var c Classifier
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing parts table: %w", err)
	}
	if c.Parts == nil {
		c.Parts = make(map[string]PartCategory)
	}
	return &c, nil
}

// LoadClassifier reads a parts table from a file.
func LoadClassifier(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading parts table: %w", err)
	}
	return ParseClassifier(data)
}

// Classify returns the category of a mesh name.
func (c *Classifier) Classify(name string) PartCategory {
	if c == nil {
		return Unclassified
	}
	return c.Parts[name]
}

// Names returns the table's mesh names, sorted.
func (c *Classifier) Names() []string {
	names := make([]string, 0, len(c.Parts))
	for name := range c.Parts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
