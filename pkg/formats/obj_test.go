package formats

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/orchid-atelier/pkg/math"
)

const twoParts = `# avatar export
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
o Body
f 1 2 3 4
v 0 0 1
v 1 0 1
v 0 1 1
o Hair_Long
f 5/1/1 6/2/1 7/3/1
o Body
f -7 -5 -4
`

func TestParseOBJObjects(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(twoParts))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.VertexCount != 7 {
		t.Errorf("VertexCount = %d, want 7", m.VertexCount)
	}
	if len(m.Objects) != 2 {
		t.Fatalf("got %d objects, want 2", len(m.Objects))
	}

	body, ok := m.Object("Body")
	if !ok {
		t.Fatal("Body missing")
	}
	// Quad fans into two triangles, then the repeated object adds one more.
	if body.TriangleCount() != 3 {
		t.Errorf("Body triangles = %d, want 3", body.TriangleCount())
	}
	if len(body.Positions) != 4 {
		t.Errorf("Body has %d vertices, want 4 (shared ones reused)", len(body.Positions))
	}
	wantIdx := []uint32{0, 1, 2, 0, 2, 3, 0, 2, 3}
	for i, idx := range body.Indices {
		if idx != wantIdx[i] {
			t.Errorf("Body index %d = %d, want %d", i, idx, wantIdx[i])
		}
	}

	hair, ok := m.Object("Hair_Long")
	if !ok {
		t.Fatal("Hair_Long missing")
	}
	if len(hair.Positions) != 3 || hair.Positions[0] != (math.Vec3{Z: 1}) {
		t.Errorf("Hair positions = %v", hair.Positions)
	}
}

func TestParseOBJDefaultObject(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(m.Objects) != 1 || m.Objects[0].Name != defaultObjectName {
		t.Errorf("objects = %+v", m.Objects)
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"no faces", "v 0 0 0\n", ErrOBJNoGeometry},
		{"index range", "v 0 0 0\nv 1 0 0\nf 1 2 3\n", ErrOBJIndexRange},
		{"relative index range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -4 -2 -1\n", ErrOBJIndexRange},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ErrInvalidOBJ},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrInvalidOBJ},
		{"short vertex", "v 0 0\n", ErrInvalidOBJ},
		{"bad float", "v 0 x 0\n", ErrInvalidOBJ},
		{"bad ref", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf a 2 3\n", ErrInvalidOBJ},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseOBJ error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseOBJPolygonFan(t *testing.T) {
	data := "o Skirt\nv 0 0 0\nv 1 0 0\nv 1 1 0\nv 0.5 2 0\nv 0 1 0\nf 1/1/1 2/2/1 3/3/1 4/4/1 5/5/1\n"
	m, err := ParseOBJ(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	skirt, ok := m.Object("Skirt")
	if !ok {
		t.Fatal("Skirt missing")
	}
	if skirt.TriangleCount() != 3 {
		t.Errorf("pentagon triangles = %d, want 3", skirt.TriangleCount())
	}
	if _, ok := m.Object(defaultObjectName); ok {
		t.Error("empty default object should be dropped")
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avatar.obj")
	if err := os.WriteFile(path, []byte(twoParts), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(m.Objects) != 2 {
		t.Errorf("got %d objects", len(m.Objects))
	}
	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected error for missing file")
	}
}
