// Command countcircles runs circle detection on an image and outputs results.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"circle-counter/internal/detect"
	"circle-counter/internal/version"
)

func main() {
	imagePath := flag.String("image", "", "Path to input image (PNG, JPEG, or TIFF)")
	outPath := flag.String("out", "", "Optional path for the annotated PNG")
	minRadius := flag.Int("min-radius", 0, "Minimum circle radius in pixels (0 = default)")
	maxRadius := flag.Int("max-radius", 0, "Maximum circle radius in pixels (0 = auto)")
	noHough := flag.Bool("no-hough", false, "Disable the Hough transform generator")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if *imagePath == "" {
		fmt.Println("Usage: countcircles -image <path> [-out annotated.png] [-min-radius N] [-max-radius N]")
		os.Exit(1)
	}

	params := detect.DefaultParams()
	if *minRadius > 0 {
		params.MinRadius = *minRadius
	}
	if *maxRadius > 0 {
		params.MaxRadius = *maxRadius
	}
	if *noHough {
		params.UseHough = false
	}

	result, err := detect.DetectFromPath(*imagePath, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d circles:\n", result.Count)
	fmt.Printf("%-6s %10s %10s %8s %8s %10s\n", "Index", "X", "Y", "Radius", "Quality", "Source")
	for _, c := range result.Circles {
		fmt.Printf("%-6d %10.1f %10.1f %8d %8.2f %10s\n",
			c.Index, c.Center.X, c.Center.Y, c.Radius, c.Quality, c.Source)
	}

	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", *outPath, err)
			os.Exit(1)
		}
		defer f.Close()
		if err := png.Encode(f, result.Annotated); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *outPath, err)
			os.Exit(1)
		}
		fmt.Printf("Annotated image written to %s\n", *outPath)
	}
}
