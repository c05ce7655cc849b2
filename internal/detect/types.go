// Package detect provides multi-strategy circle detection for photographs.
//
// Several independent candidate generators (fixed-threshold, Otsu, adaptive
// threshold, and a Hough circle transform) each propose circles; a
// consolidation stage merges overlapping proposals and rejects radius
// outliers, and the survivors are numbered in reading order.
package detect

import (
	"image"

	"circle-counter/pkg/geometry"
)

// Generator identifies which candidate generator produced a detection.
type Generator int

const (
	// GeneratorFixed indicates a fixed-cutoff binarization run.
	GeneratorFixed Generator = iota
	// GeneratorOtsu indicates the automatic (Otsu) binarization run.
	GeneratorOtsu
	// GeneratorAdaptive indicates the locally adaptive binarization run.
	GeneratorAdaptive
	// GeneratorHough indicates the Hough circle transform.
	GeneratorHough
	// GeneratorManual indicates a manually placed circle (user input).
	GeneratorManual
)

func (g Generator) String() string {
	switch g {
	case GeneratorFixed:
		return "Fixed"
	case GeneratorOtsu:
		return "Otsu"
	case GeneratorAdaptive:
		return "Adaptive"
	case GeneratorHough:
		return "Hough"
	case GeneratorManual:
		return "Manual"
	default:
		return "Unknown"
	}
}

// Candidate is a raw circle proposal from a single generator run. Quality is
// the circularity score for contour-derived candidates; the Hough generator
// assigns a fixed quality since it has no native shape score.
type Candidate struct {
	Center  geometry.Point2D `json:"center"`
	Radius  int              `json:"radius"` // Radius in pixels, always > 0
	Quality float64          `json:"quality"`
	Source  Generator        `json:"source"`
}

// Circle is a candidate that survived consolidation, numbered in row-major
// reading order (1-based).
type Circle struct {
	Index   int              `json:"index"`
	Center  geometry.Point2D `json:"center"`
	Radius  int              `json:"radius"`
	Quality float64          `json:"quality"`
	Source  Generator        `json:"source"`
}

// Bounds returns the bounding rectangle for the circle.
func (c Circle) Bounds() geometry.RectInt {
	return geometry.RectInt{
		X:      int(c.Center.X) - c.Radius,
		Y:      int(c.Center.Y) - c.Radius,
		Width:  c.Radius * 2,
		Height: c.Radius * 2,
	}
}

// HitTest returns true if the point (x, y) lies within the circle.
func (c Circle) HitTest(x, y float64) bool {
	dx := x - c.Center.X
	dy := y - c.Center.Y
	r := float64(c.Radius)
	return dx*dx+dy*dy <= r*r
}

// Result holds the outcome of one detection call. It is built fresh per call;
// the caller's input image is never mutated.
type Result struct {
	Count     int         // Number of circles found
	Circles   []Circle    // Circles in reading order, Index 1..Count
	Annotated image.Image // Copy of the input with outlines and index markers
	Params    Params      // Parameters used for detection
}
