package wardrobe

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jinzhu/copier"

	"github.com/Faultbox/orchid-atelier/internal/pattern"
	"github.com/Faultbox/orchid-atelier/internal/sculpt"
)

// State errors.
var (
	ErrUnknownPart    = errors.New("unknown part")
	ErrUnknownPattern = errors.New("unknown pattern")
)

// Material defaults applied to every part.
const (
	DefaultRoughness = 0.5
	DefaultMetalness = 0.1
	DefaultColor     = "#FF0000"
	DefaultAccent    = "#FFFFFF"
)

// PartState is the material and visibility of one mesh part.
type PartState struct {
	Category  PartCategory `yaml:"category"`
	Color     string       `yaml:"color"`
	Accent    string       `yaml:"accent"`
	Pattern   string       `yaml:"pattern"`
	Visible   bool         `yaml:"visible"`
	Roughness float32      `yaml:"roughness"`
	Metalness float32      `yaml:"metalness"`
}

// DefaultPartState returns the initial material for a part.
func DefaultPartState(c PartCategory) PartState {
	return PartState{
		Category:  c,
		Color:     DefaultColor,
		Accent:    DefaultAccent,
		Pattern:   pattern.NoneID,
		Visible:   true,
		Roughness: DefaultRoughness,
		Metalness: DefaultMetalness,
	}
}

// Textured reports whether the part shows a pattern texture.
func (p PartState) Textured() bool {
	return p.Pattern != "" && p.Pattern != pattern.NoneID
}

// DisplayColor is the material tint: white under a texture so the pattern
// shows its own colours.
func (p PartState) DisplayColor() string {
	if p.Textured() {
		return DefaultAccent
	}
	return p.Color
}

// Category is an entry of the asset library's top-level menu.
type Category struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// DefaultLibrary returns the built-in library categories.
func DefaultLibrary() []Category {
	return []Category{
		{ID: "patterns", Name: "Patterns"},
		{ID: "clothes", Name: "Clothes"},
		{ID: "scenes", Name: "Scenes"},
	}
}

// Dress holds the garment proportion sliders.
type Dress struct {
	Width  float32 `yaml:"width"`  // added hem radius
	Length float32 `yaml:"length"` // added skirt length
}

// State is the editable application state owned by the host UI. Solvers
// receive the pieces they need from it; none of them keep a reference.
type State struct {
	Parts map[string]PartState `yaml:"parts"`

	// Brush is the selected paint colour, empty when none is selected.
	Brush string `yaml:"-"`

	Sculpt   sculpt.BrushConfig `yaml:"sculpt"`
	Dress    Dress              `yaml:"dress"`
	Patterns []pattern.Entry    `yaml:"patterns"`

	Library         []Category `yaml:"library"`
	LibraryCategory string     `yaml:"library_category"`
	ClothingType    string     `yaml:"clothing_type"`
	Fabric          string     `yaml:"fabric"`

	// NextID numbers user-added catalog entries.
	NextID int `yaml:"next_id"`
}

// NewState returns an empty state with the built-in catalogs.
func NewState() *State {
	return &State{
		Parts:           make(map[string]PartState),
		Sculpt:          sculpt.DefaultBrush(),
		Patterns:        pattern.DefaultCatalog(),
		Library:         DefaultLibrary(),
		LibraryCategory: "patterns",
		ClothingType:    "dress",
		Fabric:          "cotton",
		NextID:          1,
	}
}

// AddPart registers a mesh part with default material. Existing parts are
// left untouched.
func (s *State) AddPart(name string, c PartCategory) {
	if _, ok := s.Parts[name]; ok {
		return
	}
	s.Parts[name] = DefaultPartState(c)
}

// AddClassified registers every part named in the classifier.
func (s *State) AddClassified(cl *Classifier) {
	for _, name := range cl.Names() {
		s.AddPart(name, cl.Classify(name))
	}
}

// Part returns the state of a part.
func (s *State) Part(name string) (PartState, bool) {
	p, ok := s.Parts[name]
	return p, ok
}

// PartNames returns registered part names, sorted.
func (s *State) PartNames() []string {
	names := make([]string, 0, len(s.Parts))
	for name := range s.Parts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SelectBrush picks the paint colour used by Paint.
func (s *State) SelectBrush(hex string) error {
	c, err := pattern.NormalizeHex(hex)
	if err != nil {
		return err
	}
	s.Brush = c
	return nil
}

// ClearBrush drops the paint colour selection.
func (s *State) ClearBrush() {
	s.Brush = ""
}

// HasBrush reports whether a paint colour is selected.
func (s *State) HasBrush() bool {
	return s.Brush != ""
}

// Paint applies the selected brush colour to a part's base colour. It
// returns false when no brush is selected or the part is unknown.
func (s *State) Paint(name string) bool {
	if !s.HasBrush() {
		return false
	}
	p, ok := s.Parts[name]
	if !ok {
		return false
	}
	p.Color = s.Brush
	s.Parts[name] = p
	return true
}

// SetColors sets a part's base and accent colours.
func (s *State) SetColors(name, base, accent string) error {
	p, ok := s.Parts[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPart, name)
	}
	b, err := pattern.NormalizeHex(base)
	if err != nil {
		return err
	}
	a, err := pattern.NormalizeHex(accent)
	if err != nil {
		return err
	}
	p.Color, p.Accent = b, a
	s.Parts[name] = p
	return nil
}

// SetPattern assigns a catalog pattern to a part.
func (s *State) SetPattern(name, patternID string) error {
	p, ok := s.Parts[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPart, name)
	}
	if _, ok := s.FindPattern(patternID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPattern, patternID)
	}
	p.Pattern = patternID
	s.Parts[name] = p
	return nil
}

// SetVisible shows or hides a part.
func (s *State) SetVisible(name string, visible bool) error {
	p, ok := s.Parts[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPart, name)
	}
	p.Visible = visible
	s.Parts[name] = p
	return nil
}

// SetCategoryVisible shows or hides every part of a category and returns
// how many parts changed.
func (s *State) SetCategoryVisible(c PartCategory, visible bool) int {
	n := 0
	for name, p := range s.Parts {
		if p.Category == c && p.Visible != visible {
			p.Visible = visible
			s.Parts[name] = p
			n++
		}
	}
	return n
}

// FindPattern looks up a catalog entry by ID.
func (s *State) FindPattern(id string) (pattern.Entry, bool) {
	for _, e := range s.Patterns {
		if e.ID == id {
			return e, true
		}
	}
	return pattern.Entry{}, false
}

// AddImagePattern appends an uploaded image to the catalog and returns its
// entry.
func (s *State) AddImagePattern(name, source string) pattern.Entry {
	e := pattern.Entry{
		ID:     fmt.Sprintf("custom-%d", s.nextID()),
		Name:   name,
		Kind:   pattern.Image,
		Source: source,
	}
	s.Patterns = append(s.Patterns, e)
	return e
}

// SetPatternSource changes the image path of an uploaded pattern.
func (s *State) SetPatternSource(id, source string) error {
	for i := range s.Patterns {
		if s.Patterns[i].ID != id {
			continue
		}
		if s.Patterns[i].Kind != pattern.Image {
			return fmt.Errorf("%w: %s is not an image", ErrUnknownPattern, id)
		}
		s.Patterns[i].Source = source
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownPattern, id)
}

// AddLibraryCategory appends a library category, selects it and returns it.
func (s *State) AddLibraryCategory(name string) Category {
	c := Category{ID: fmt.Sprintf("cat-%d", s.nextID()), Name: name}
	s.Library = append(s.Library, c)
	s.LibraryCategory = c.ID
	return c
}

func (s *State) nextID() int {
	if s.NextID < 1 {
		s.NextID = 1
	}
	id := s.NextID
	s.NextID++
	return id
}

// Snapshot returns a deep copy that shares no maps or slices with s.
func (s *State) Snapshot() (*State, error) {
	out := &State{}
	if err := copier.CopyWithOption(out, s, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return out, nil
}
