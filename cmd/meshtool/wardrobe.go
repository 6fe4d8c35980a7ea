package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/orchid-atelier/internal/config"
	"github.com/Faultbox/orchid-atelier/internal/pattern"
	"github.com/Faultbox/orchid-atelier/internal/wardrobe"
)

// openWardrobe registers the -dir flag and returns a loader for the store
// it names.
func openWardrobe(fs *flag.FlagSet) func() (*wardrobe.Store, *wardrobe.State) {
	dir := fs.String("dir", config.ConfigDir(), "Wardrobe directory")
	return func() (*wardrobe.Store, *wardrobe.State) {
		store := wardrobe.NewStore(*dir)
		state, err := store.Load()
		if err != nil {
			fail("Error: %v", err)
		}
		return store, state
	}
}

func saveWardrobe(store *wardrobe.Store, state *wardrobe.State) {
	if err := store.Save(state); err != nil {
		fail("Error saving %s: %v", store.Path(), err)
	}
}

func cmdUpload(args []string) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	open := openWardrobe(fs)
	size := fs.Int("size", pattern.DefaultSize, "Texture size in pixels")
	name := fs.String("name", "", "Catalog name (default: file name)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fail("Usage: meshtool upload [options] <image|->")
	}
	src := fs.Arg(0)

	var (
		img *image.RGBA
		err error
	)
	if src == "-" {
		img, err = pattern.LoadImage(os.Stdin, *size)
	} else {
		img, err = pattern.LoadFile(src, *size)
	}
	if err != nil {
		fail("Error: %v", err)
	}

	label := *name
	if label == "" {
		label = filepath.Base(src)
		if src == "-" {
			label = "upload"
		}
	}

	store, state := open()
	entry := state.AddImagePattern(label, "")
	dst := store.PatternPath(entry.ID)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		fail("Error: %v", err)
	}
	if err := pattern.SaveFile(dst, img); err != nil {
		fail("Error: %v", err)
	}
	if err := state.SetPatternSource(entry.ID, dst); err != nil {
		fail("Error: %v", err)
	}
	saveWardrobe(store, state)

	b := img.Bounds()
	fmt.Printf("Pattern:  %s (%s)\n", entry.ID, label)
	fmt.Printf("Texture:  %s (%dx%d)\n", dst, b.Dx(), b.Dy())
}

func cmdAssign(args []string) {
	fs := flag.NewFlagSet("assign", flag.ExitOnError)
	open := openWardrobe(fs)
	base := fs.String("base", "", "Base colour")
	accent := fs.String("accent", "", "Accent colour")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fail("Usage: meshtool assign [options] <part> <pattern>")
	}
	part, patternID := fs.Arg(0), fs.Arg(1)

	store, state := open()
	if err := state.SetPattern(part, patternID); err != nil {
		fail("Error: %v (parts: %s)", err, strings.Join(state.PartNames(), ", "))
	}
	if *base != "" || *accent != "" {
		p, _ := state.Part(part)
		b, a := p.Color, p.Accent
		if *base != "" {
			b = *base
		}
		if *accent != "" {
			a = *accent
		}
		if err := state.SetColors(part, b, a); err != nil {
			fail("Error: %v", err)
		}
	}
	saveWardrobe(store, state)

	p, _ := state.Part(part)
	fmt.Printf("%s: pattern %s, base %s, accent %s\n", part, p.Pattern, p.Color, p.Accent)
}

func cmdVisibility(args []string, visible bool) {
	verb := "hide"
	if visible {
		verb = "show"
	}
	fs := flag.NewFlagSet(verb, flag.ExitOnError)
	open := openWardrobe(fs)
	category := fs.String("category", "", "Apply to every part of a category")
	fs.Parse(args)

	if *category == "" && fs.NArg() < 1 {
		fail("Usage: meshtool %s [options] <part>... | -category <name>", verb)
	}

	store, state := open()
	changed := 0
	if *category != "" {
		c, err := wardrobe.ParseCategory(*category)
		if err != nil {
			fail("Error: %v", err)
		}
		changed += state.SetCategoryVisible(c, visible)
	}
	for _, part := range fs.Args() {
		if err := state.SetVisible(part, visible); err != nil {
			fail("Error: %v", err)
		}
		changed++
	}
	saveWardrobe(store, state)
	fmt.Printf("%d parts updated\n", changed)
}

func cmdCategory(args []string) {
	fs := flag.NewFlagSet("category", flag.ExitOnError)
	open := openWardrobe(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fail("Usage: meshtool category [options] <name>")
	}

	store, state := open()
	c := state.AddLibraryCategory(strings.Join(fs.Args(), " "))
	saveWardrobe(store, state)
	fmt.Printf("Category: %s (%s)\n", c.ID, c.Name)
}

func cmdWardrobe(args []string) {
	fs := flag.NewFlagSet("wardrobe", flag.ExitOnError)
	open := openWardrobe(fs)
	fs.Parse(args)

	store, state := open()
	fmt.Printf("File:     %s\n", store.Path())
	fmt.Printf("Parts:    %d\n", len(state.Parts))
	fmt.Println()

	for _, name := range state.PartNames() {
		p, _ := state.Part(name)
		shown := "shown"
		if !p.Visible {
			shown = "hidden"
		}
		fmt.Printf("  %-20s %-12s %-8s %s %s  %s\n", name, p.Category, shown, p.Color, p.Accent, p.Pattern)
	}

	fmt.Println("\nPatterns:")
	for _, e := range state.Patterns {
		fmt.Printf("  %-12s %-8s %s %s\n", e.ID, e.Kind, e.Name, e.Source)
	}

	fmt.Println("\nLibrary:")
	for _, c := range state.Library {
		mark := " "
		if c.ID == state.LibraryCategory {
			mark = "*"
		}
		fmt.Printf(" %s %-12s %s\n", mark, c.ID, c.Name)
	}
}
