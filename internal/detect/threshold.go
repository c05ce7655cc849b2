package detect

import (
	"image"
	"math"

	"circle-counter/pkg/geometry"

	"gocv.io/x/gocv"
)

// fixedThresholdCandidates binarizes at a single fixed cutoff and scores the
// resulting contours as circle candidates.
func fixedThresholdCandidates(gray gocv.Mat, cutoff int, band rowBand, p Params) []Candidate {
	mask := gocv.NewMat()
	defer mask.Close()
	// Inverse polarity: the objects are darker than the background.
	gocv.Threshold(gray, &mask, float32(cutoff), 255, gocv.ThresholdBinaryInv)

	return circlesFromMask(mask, band, p, GeneratorFixed)
}

// otsuCandidates binarizes at the histogram-variance-maximizing cutoff.
func otsuCandidates(gray gocv.Mat, band rowBand, p Params) []Candidate {
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(gray, &mask, 0, 255, gocv.ThresholdBinaryInv|gocv.ThresholdOtsu)

	return circlesFromMask(mask, band, p, GeneratorOtsu)
}

// adaptiveCandidates binarizes against the local neighborhood mean, which
// tolerates uneven lighting that defeats any single global cutoff.
func adaptiveCandidates(gray gocv.Mat, band rowBand, p Params) []Candidate {
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.AdaptiveThreshold(gray, &mask, 255, gocv.AdaptiveThresholdMean,
		gocv.ThresholdBinaryInv, p.AdaptiveBlockSize, float32(p.AdaptiveC))

	return circlesFromMask(mask, band, p, GeneratorAdaptive)
}

// circlesFromMask cleans a binary mask morphologically, extracts external
// contours, and scores each as a circle candidate. Degenerate contours (zero
// perimeter, out-of-range area or radius, center outside the content band)
// are silently skipped.
func circlesFromMask(mask gocv.Mat, band rowBand, p Params, source Generator) []Candidate {
	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Point{X: 3, Y: 3})
	defer kernel.Close()

	// Open removes speckle noise, close fills small interior gaps without
	// merging distinct blobs.
	cleaned := gocv.NewMat()
	defer cleaned.Close()
	gocv.MorphologyEx(mask, &cleaned, gocv.MorphOpen, kernel)
	gocv.MorphologyEx(cleaned, &cleaned, gocv.MorphClose, kernel)

	contours := gocv.FindContours(cleaned, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	maxArea := p.MaxAreaFrac * float64(mask.Rows()*mask.Cols())
	maxRadius := p.maxRadiusFor(mask.Rows(), mask.Cols())

	var candidates []Candidate
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)

		area := gocv.ContourArea(contour)
		if area < p.MinArea || area > maxArea {
			continue
		}

		perimeter := gocv.ArcLength(contour, true)
		if perimeter == 0 {
			continue
		}

		x, y, r := gocv.MinEnclosingCircle(contour)
		radius := int(r + 0.5)
		if radius < p.MinRadius || radius > maxRadius {
			continue
		}
		if !band.contains(float64(y)) {
			continue
		}

		circularity := 4 * math.Pi * area / (perimeter * perimeter)
		fillRatio := area / (math.Pi * float64(r) * float64(r))

		// Permissive OR: either score clearing its bar keeps the candidate.
		// Recall is cheap here, the consolidator restores precision.
		if circularity <= p.CircularityMin && fillRatio <= p.FillRatioMin {
			continue
		}

		candidates = append(candidates, Candidate{
			Center:  geometry.Point2D{X: float64(x), Y: float64(y)},
			Radius:  radius,
			Quality: circularity,
			Source:  source,
		})
	}
	return candidates
}
