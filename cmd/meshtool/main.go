// meshtool is a CLI utility for inspecting avatar meshes and running the
// sculpt, decal and pattern solvers without a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/Faultbox/orchid-atelier/internal/avatar"
	"github.com/Faultbox/orchid-atelier/internal/decal"
	"github.com/Faultbox/orchid-atelier/internal/editor"
	"github.com/Faultbox/orchid-atelier/internal/pattern"
	"github.com/Faultbox/orchid-atelier/internal/sculpt"
	"github.com/Faultbox/orchid-atelier/internal/wardrobe"
	"github.com/Faultbox/orchid-atelier/pkg/formats"
	"github.com/Faultbox/orchid-atelier/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "influence", "inf":
		cmdInfluence(args)
	case "decal":
		cmdDecal(args)
	case "pattern":
		cmdPattern(args)
	case "parts":
		cmdParts(args)
	case "upload":
		cmdUpload(args)
	case "assign":
		cmdAssign(args)
	case "show":
		cmdVisibility(args, true)
	case "hide":
		cmdVisibility(args, false)
	case "category":
		cmdCategory(args)
	case "wardrobe":
		cmdWardrobe(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - avatar mesh utility

Usage:
  meshtool <command> [options]

Commands:
  info <file.obj>                           Show objects, vertex and face counts
  influence [-model f] [-part p] x y z      List vertices a brush at a local point moves
  decal [-model f] [-part p]                Place the default torso decal
  pattern [-kind k] [-base c] [-accent c] <out.png>
                                            Render a procedural pattern
  parts <table.yaml> [file.obj]             Check a part classification table

Wardrobe commands (all take -dir, default: the atelier config directory):
  wardrobe                                  List parts, patterns and library
  upload [-name n] [-size n] <image|->      Add an image pattern to the catalog
  assign [-base c] [-accent c] <part> <pattern>
                                            Assign a pattern and colours
  show|hide [-category c] [part...]         Change part visibility
  category <name>                           Add and select a library category

Without -model the built-in mannequin and dress are used. A pattern output
of "-" writes PNG to stdout.

Examples:
  meshtool info avatar.obj
  meshtool influence -radius 0.5 -symmetry 2 14 0
  meshtool decal -model avatar.obj -part Body
  meshtool pattern -kind plaid -base "#004080" plaid.png
  meshtool parts parts.yaml avatar.obj
  meshtool upload -name Flowers flowers.jpg
  meshtool assign -accent "#FFD700" Dress custom-1
  meshtool hide -category hair`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fail("Usage: meshtool info <file.obj>")
	}

	model, err := formats.LoadOBJ(args[0])
	if err != nil {
		fail("Error: %v", err)
	}

	fmt.Printf("File:     %s\n", args[0])
	fmt.Printf("Vertices: %d\n", model.VertexCount)
	fmt.Printf("Objects:  %d\n", len(model.Objects))
	fmt.Println()

	parts, err := avatar.FromOBJ(model)
	if err != nil {
		fail("Error: %v", err)
	}
	for _, p := range parts {
		b := p.Mesh.Bounds()
		fmt.Printf("  %-20s %6d verts %6d tris  height %.3f\n",
			p.Name, p.Mesh.VertexCount(), p.Mesh.TriangleCount(), b.Height())
	}
}

// loadPart returns the named part, or the first part when name is empty.
func loadPart(modelPath, name string) editor.Part {
	parts, err := avatar.Load(modelPath, wardrobe.Dress{})
	if err != nil {
		fail("Error: %v", err)
	}
	if len(parts) == 0 {
		fail("Error: model has no parts")
	}
	if name == "" {
		return parts[0]
	}
	for _, p := range parts {
		if p.Name == name {
			return p
		}
	}
	fail("Part not found: %s", name)
	return editor.Part{}
}

func cmdInfluence(args []string) {
	fs := flag.NewFlagSet("influence", flag.ExitOnError)
	modelPath := fs.String("model", "", "OBJ file (default: built-in avatar)")
	partName := fs.String("part", "", "Part name (default: first part)")
	radius := fs.Float64("radius", float64(sculpt.DefaultBrush().Radius), "Brush radius in local units")
	symmetry := fs.Bool("symmetry", false, "Also compute the X-mirrored set")
	limit := fs.Int("n", 20, "Limit listed vertices (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 3 {
		fail("Usage: meshtool influence [options] <x> <y> <z>")
	}
	var hit math.Vec3
	for i, dst := range []*float32{&hit.X, &hit.Y, &hit.Z} {
		v, err := strconv.ParseFloat(fs.Arg(i), 32)
		if err != nil {
			fail("Invalid coordinate %q: %v", fs.Arg(i), err)
		}
		*dst = float32(v)
	}

	brush := sculpt.BrushConfig{Radius: float32(*radius), Intensity: 1, Symmetry: *symmetry}
	if err := brush.Validate(); err != nil {
		fail("Error: %v", err)
	}

	part := loadPart(*modelPath, *partName)
	primary, mirror := sculpt.ComputeInfluences(part.Mesh, hit, brush.Radius, brush.Symmetry)

	fmt.Printf("Part:      %s (%d vertices)\n", part.Name, part.Mesh.VertexCount())
	fmt.Printf("Hit:       (%.3f, %.3f, %.3f)\n", hit.X, hit.Y, hit.Z)
	fmt.Printf("Radius:    %.3f\n", brush.Radius)
	fmt.Printf("Influence: %d vertices\n", len(primary))
	if brush.Symmetry {
		fmt.Printf("Mirror:    %d vertices\n", len(mirror))
	}
	fmt.Println()

	sorted := append([]sculpt.Influence(nil), primary...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Weight > sorted[j].Weight
	})
	for i, inf := range sorted {
		if *limit > 0 && i >= *limit {
			fmt.Fprintf(os.Stderr, "\n(showing first %d, use -n 0 for all)\n", *limit)
			break
		}
		p := part.Mesh.Position(inf.Index)
		fmt.Printf("  %6d  w=%.4f  (%.3f, %.3f, %.3f)\n", inf.Index, inf.Weight, p.X, p.Y, p.Z)
	}
}

func cmdDecal(args []string) {
	fs := flag.NewFlagSet("decal", flag.ExitOnError)
	modelPath := fs.String("model", "", "OBJ file (default: built-in avatar)")
	partName := fs.String("part", "", "Part name (default: first part)")
	chest := fs.Float64("chest", float64(decal.DefaultConfig().ChestHeight), "Probe height as a fraction of mesh height")
	fs.Parse(args)

	cfg := decal.DefaultConfig()
	cfg.ChestHeight = float32(*chest)
	if err := cfg.Validate(); err != nil {
		fail("Error: %v", err)
	}

	part := loadPart(*modelPath, *partName)
	p, ok := decal.NewSolver(cfg).PlaceDefault(part.Mesh)
	if !ok {
		fail("No torso surface found on %s", part.Name)
	}

	fmt.Printf("Part:     %s\n", part.Name)
	fmt.Printf("Face:     %d\n", p.Face)
	fmt.Printf("Position: (%.4f, %.4f, %.4f)\n", p.Position.X, p.Position.Y, p.Position.Z)
	fmt.Printf("Normal:   (%.4f, %.4f, %.4f)\n", p.Normal.X, p.Normal.Y, p.Normal.Z)
	fmt.Printf("Rotation: (%.4f, %.4f, %.4f, %.4f)\n", p.Rotation.X, p.Rotation.Y, p.Rotation.Z, p.Rotation.W)
	fmt.Printf("Scale:    (%.4f, %.4f, %.4f)\n", p.Scale.X, p.Scale.Y, p.Scale.Z)
}

func cmdPattern(args []string) {
	fs := flag.NewFlagSet("pattern", flag.ExitOnError)
	kindName := fs.String("kind", "stripes", "Pattern kind (solid, stripes, plaid, dots)")
	base := fs.String("base", wardrobe.DefaultColor, "Base colour")
	accent := fs.String("accent", wardrobe.DefaultAccent, "Accent colour")
	size := fs.Int("size", pattern.DefaultSize, "Texture size in pixels")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fail("Usage: meshtool pattern [options] <out.png|->")
	}

	kind, err := pattern.ParseKind(*kindName)
	if err != nil {
		fail("Error: %v", err)
	}
	baseColor, err := pattern.ParseHex(*base)
	if err != nil {
		fail("Error: %v", err)
	}
	accentColor, err := pattern.ParseHex(*accent)
	if err != nil {
		fail("Error: %v", err)
	}

	img, err := pattern.Render(kind, baseColor, accentColor, *size)
	if err != nil {
		fail("Error: %v", err)
	}
	if fs.Arg(0) == "-" {
		if err := pattern.Encode(os.Stdout, img); err != nil {
			fail("Error writing PNG: %v", err)
		}
		return
	}
	if err := pattern.SaveFile(fs.Arg(0), img); err != nil {
		fail("Error writing %s: %v", fs.Arg(0), err)
	}
	fmt.Printf("Rendered: %s (%s, %dx%d)\n", fs.Arg(0), kind, *size, *size)
}

func cmdParts(args []string) {
	if len(args) < 1 {
		fail("Usage: meshtool parts <table.yaml> [file.obj]")
	}

	cl, err := wardrobe.LoadClassifier(args[0])
	if err != nil {
		fail("Error: %v", err)
	}

	for _, name := range cl.Names() {
		fmt.Printf("  %-20s %s\n", name, cl.Classify(name))
	}
	fmt.Fprintf(os.Stderr, "\n(%d parts classified)\n", len(cl.Names()))

	if len(args) < 2 {
		return
	}
	model, err := formats.LoadOBJ(args[1])
	if err != nil {
		fail("Error: %v", err)
	}
	missing := 0
	for _, obj := range model.Objects {
		if cl.Classify(obj.Name) == wardrobe.Unclassified {
			fmt.Printf("unclassified: %s\n", obj.Name)
			missing++
		}
	}
	if missing == 0 {
		fmt.Fprintln(os.Stderr, "All objects classified")
	}
}
