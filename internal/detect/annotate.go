package detect

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"gocv.io/x/gocv"
)

// Annotation styling. The marker disk uses a fixed radius independent of the
// detected radius so labels stay legible on small circles.
const (
	outlineThickness = 2
	markerRadius     = 9
	labelScale       = 0.32
	labelThickness   = 1
)

var (
	outlineColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	markerColor  = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	labelColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// drawNumberedCircle renders one annotation: the outline at the detected
// radius, the filled marker disk, and the index centered inside the marker.
// The same routine serves automatic detections, manual additions, and session
// replay, so all annotations look identical.
func drawNumberedCircle(mat *gocv.Mat, center image.Point, radius, index int) {
	gocv.Circle(mat, center, radius, outlineColor, outlineThickness)
	gocv.Circle(mat, center, markerRadius, markerColor, -1)

	label := strconv.Itoa(index)
	size := gocv.GetTextSize(label, gocv.FontHersheySimplex, labelScale, labelThickness)
	origin := image.Point{X: center.X - size.X/2, Y: center.Y + size.Y/2}
	gocv.PutText(mat, label, origin, gocv.FontHersheySimplex, labelScale, labelColor, labelThickness)
}

// annotate draws all circles onto a fresh copy of src and returns it. The
// caller owns the returned Mat. Single-channel input is promoted to BGR so
// the annotations keep their accent colors.
func annotate(src gocv.Mat, circles []Circle) gocv.Mat {
	var out gocv.Mat
	if src.Channels() == 1 {
		out = gocv.NewMat()
		gocv.CvtColor(src, &out, gocv.ColorGrayToBGR)
	} else {
		out = src.Clone()
	}

	for _, c := range circles {
		center := image.Point{X: int(c.Center.X + 0.5), Y: int(c.Center.Y + 0.5)}
		drawNumberedCircle(&out, center, c.Radius, c.Index)
	}
	return out
}

// AddManualCircle returns a copy of img with one additional numbered circle
// drawn in the same style as automatic detections. It is a pure function: the
// input image is never mutated and no detector state is consulted, so callers
// can replay a sequence of manual additions over a saved annotated image.
func AddManualCircle(img image.Image, x, y float64, radius, sequence int) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInput)
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInput)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %d", ErrInput, radius)
	}

	mat, err := imageToMat(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}
	defer mat.Close()

	center := image.Point{X: int(x + 0.5), Y: int(y + 0.5)}
	drawNumberedCircle(&mat, center, radius, sequence)

	out, err := matToImage(mat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	return out, nil
}
