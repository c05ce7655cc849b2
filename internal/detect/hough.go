package detect

import (
	"circle-counter/pkg/geometry"

	"gocv.io/x/gocv"
)

// houghCandidates runs the circle-accumulator transform on the enhanced
// grayscale image. It is independent of the threshold generators and catches
// rimmed or partially filled circles that binarization splits apart.
func houghCandidates(enhanced gocv.Mat, band rowBand, p Params) []Candidate {
	minRadius := p.MinRadius
	maxRadius := p.maxRadiusFor(enhanced.Rows(), enhanced.Cols())

	minDist := float64(2 * minRadius)
	if minDist < 10 {
		minDist = 10
	}

	circles := gocv.NewMat()
	defer circles.Close()
	gocv.HoughCirclesWithParams(enhanced, &circles, gocv.HoughGradient,
		p.HoughDP, minDist,
		p.HoughEdgeThreshold, p.HoughAccumThreshold,
		minRadius, maxRadius)

	if circles.Empty() || circles.Cols() == 0 {
		return nil
	}

	var candidates []Candidate
	for i := 0; i < circles.Cols(); i++ {
		x := float64(circles.GetFloatAt(0, i*3))
		y := float64(circles.GetFloatAt(0, i*3+1))
		radius := int(circles.GetFloatAt(0, i*3+2) + 0.5)
		if radius <= 0 || !band.contains(y) {
			continue
		}
		candidates = append(candidates, Candidate{
			Center: geometry.Point2D{X: x, Y: y},
			Radius: radius,
			// The accumulator yields no circularity signal; assign a fixed
			// quality so Hough detections rank below clean contour fits.
			Quality: p.HoughQuality,
			Source:  GeneratorHough,
		})
	}
	return candidates
}
