package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"dconn.dev/dungeon/internal/config"
	"dconn.dev/dungeon/internal/generation"
	"dconn.dev/dungeon/internal/render"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: generate <output-dir> [seed] [profile]")
		fmt.Println("       seed defaults to a random one, profile to the configured default")
		os.Exit(1)
	}

	outputDir := os.Args[1]

	seed := generation.DefaultSource().Uint64()
	if len(os.Args) > 2 {
		s, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid seed %q: %v\n", os.Args[2], err)
			os.Exit(1)
		}
		seed = s
	}

	profile := ""
	if len(os.Args) > 3 {
		profile = os.Args[3]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	gc, err := cfg.Generation(profile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid profile: %v\n", err)
		os.Exit(1)
	}
	palette, err := cfg.Palette()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid palette: %v\n", err)
		os.Exit(1)
	}

	// Ensure output directory exists
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating %s map %dx%d, seed %d...\n", gc.Profile, gc.Width, gc.Height, seed)

	gen := generation.NewGenerator(gc, seed)
	gen.Logger = log.New(os.Stdout, "  ", 0)
	res, err := gen.Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ERROR: %v\n", err)
		os.Exit(1)
	}

	// Write the document
	jsonPath := filepath.Join(outputDir, fmt.Sprintf("%d.json", seed))
	data, err := json.MarshalIndent(res.Document(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ERROR marshaling JSON: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "  ERROR writing file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  Created %s (%d rooms, %d links)\n", jsonPath, res.Stats.Rooms, res.Stats.Links)

	// Write the image
	img, err := render.Render(res.Grid, palette)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ERROR rendering: %v\n", err)
		os.Exit(1)
	}
	pngPath := filepath.Join(outputDir, fmt.Sprintf("%d.png", seed))
	f, err := os.Create(pngPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ERROR writing file: %v\n", err)
		os.Exit(1)
	}
	if err := render.EncodePNG(f, img); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "  ERROR encoding PNG: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "  ERROR writing file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  Created %s (%dx%d px)\n", pngPath, img.Bounds().Dx(), img.Bounds().Dy())

	fmt.Println("Done!")
}
