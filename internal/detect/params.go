package detect

import "fmt"

// Params holds the full numeric configuration surface of the pipeline.
// Zero values are not usable; start from DefaultParams and adjust with the
// WithX helpers.
type Params struct {
	// Binarization methods. Each enabled method is an independent generator
	// run whose candidates are pooled before consolidation.
	FixedThresholds []int // Fixed intensity cutoffs, one run per cutoff
	UseOtsu         bool  // Histogram-variance-maximizing global cutoff
	UseAdaptive     bool  // Neighborhood-mean local cutoff
	UseHough        bool  // Hough circle transform generator

	// Adaptive threshold tuning.
	AdaptiveBlockSize int     // Neighborhood size, odd and >= 3
	AdaptiveC         float64 // Constant subtracted from the neighborhood mean

	// Contour filters shared by all threshold runs.
	MinArea     float64 // Minimum contour area in pixels
	MaxAreaFrac float64 // Maximum contour area as a fraction of the image area
	MinRadius   int     // Minimum enclosing-circle radius in pixels
	MaxRadius   int     // Maximum radius; 0 means 15% of the shorter dimension

	// Shape acceptance. A contour passes if either score clears its bar —
	// deliberately permissive, the consolidator is responsible for precision.
	CircularityMin float64 // 4π·area/perimeter² lower bar
	FillRatioMin   float64 // area/(π·r²) lower bar

	// Content band: rows whose mean intensity is at or below the floor are
	// treated as letterboxing and excluded from consideration.
	ContentRowMeanMin float64 // Darkness floor on the 0-255 scale
	ContentBandMargin int     // Rows trimmed inside the detected band

	// Enhancement applied before the Hough run only.
	CLAHEClipLimit float64 // Contrast-limited equalization clip limit
	CLAHETileSize  int     // Equalization tile grid size (NxN)
	BlurKernel     int     // Gaussian kernel size, odd
	BlurSigma      float64 // Gaussian sigma

	// Hough circle transform tuning.
	HoughDP             float64 // Inverse accumulator resolution ratio
	HoughEdgeThreshold  float64 // Canny high threshold
	HoughAccumThreshold float64 // Accumulator vote threshold
	HoughQuality        float64 // Fixed quality assigned to Hough candidates

	// Consolidation.
	DuplicateDistMultiplier float64 // min center distance = median radius × this
	OutlierBandLow          float64 // Lower radius band edge, × survivor median
	OutlierBandHigh         float64 // Upper radius band edge, × survivor median

	// Ordering.
	RowBucketHeight int // Band height for row-major numbering, pixels
}

// DefaultParams returns parameters tuned for dark circular objects on a
// lighter background, photographed or scanned without per-image adjustment.
func DefaultParams() Params {
	return Params{
		FixedThresholds: []int{50, 70, 90, 110, 130},
		UseOtsu:         true,
		UseAdaptive:     true,
		UseHough:        true,

		AdaptiveBlockSize: 31,
		AdaptiveC:         5,

		MinArea:     60,
		MaxAreaFrac: 0.25,
		MinRadius:   4,
		MaxRadius:   0,

		CircularityMin: 0.40,
		FillRatioMin:   0.45,

		ContentRowMeanMin: 20,
		ContentBandMargin: 5,

		CLAHEClipLimit: 2.0,
		CLAHETileSize:  8,
		BlurKernel:     9,
		BlurSigma:      2.0,

		HoughDP:             1.2,
		HoughEdgeThreshold:  100,
		HoughAccumThreshold: 30,
		HoughQuality:        0.8,

		DuplicateDistMultiplier: 1.25,
		OutlierBandLow:          0.4,
		OutlierBandHigh:         2.2,

		RowBucketHeight: 15,
	}
}

// WithRadiusRange returns a copy of params with custom radius bounds in pixels.
func (p Params) WithRadiusRange(minRadius, maxRadius int) Params {
	p.MinRadius = minRadius
	p.MaxRadius = maxRadius
	return p
}

// WithThresholds returns a copy of params with a custom fixed-cutoff list.
func (p Params) WithThresholds(cutoffs ...int) Params {
	p.FixedThresholds = cutoffs
	return p
}

// WithOutlierBand returns a copy of params with a custom radius outlier band.
func (p Params) WithOutlierBand(low, high float64) Params {
	p.OutlierBandLow = low
	p.OutlierBandHigh = high
	return p
}

// WithGenerators returns a copy of params enabling or disabling the automatic
// generators. The fixed-cutoff runs are controlled through FixedThresholds.
func (p Params) WithGenerators(otsu, adaptive, hough bool) Params {
	p.UseOtsu = otsu
	p.UseAdaptive = adaptive
	p.UseHough = hough
	return p
}

// Validate reports the first invalid parameter as an ErrConfig.
func (p Params) Validate() error {
	if len(p.FixedThresholds) == 0 && !p.UseOtsu && !p.UseAdaptive && !p.UseHough {
		return fmt.Errorf("%w: no candidate generator enabled", ErrConfig)
	}
	for _, t := range p.FixedThresholds {
		if t <= 0 || t >= 255 {
			return fmt.Errorf("%w: fixed threshold %d outside (0, 255)", ErrConfig, t)
		}
	}
	if p.UseAdaptive && (p.AdaptiveBlockSize < 3 || p.AdaptiveBlockSize%2 == 0) {
		return fmt.Errorf("%w: adaptive block size must be odd and >= 3, got %d", ErrConfig, p.AdaptiveBlockSize)
	}
	if p.MinArea <= 0 {
		return fmt.Errorf("%w: min area must be positive, got %g", ErrConfig, p.MinArea)
	}
	if p.MaxAreaFrac <= 0 || p.MaxAreaFrac > 1 {
		return fmt.Errorf("%w: max area fraction must be in (0, 1], got %g", ErrConfig, p.MaxAreaFrac)
	}
	if p.MinRadius <= 0 {
		return fmt.Errorf("%w: min radius must be positive, got %d", ErrConfig, p.MinRadius)
	}
	if p.MaxRadius > 0 && p.MinRadius > p.MaxRadius {
		return fmt.Errorf("%w: min radius %d exceeds max radius %d", ErrConfig, p.MinRadius, p.MaxRadius)
	}
	if p.ContentBandMargin < 0 {
		return fmt.Errorf("%w: content band margin must not be negative, got %d", ErrConfig, p.ContentBandMargin)
	}
	if p.UseHough {
		if p.CLAHEClipLimit <= 0 || p.CLAHETileSize <= 0 {
			return fmt.Errorf("%w: CLAHE clip limit and tile size must be positive", ErrConfig)
		}
		if p.BlurKernel <= 0 || p.BlurKernel%2 == 0 {
			return fmt.Errorf("%w: blur kernel must be odd and positive, got %d", ErrConfig, p.BlurKernel)
		}
		if p.HoughDP <= 0 {
			return fmt.Errorf("%w: Hough dp must be positive, got %g", ErrConfig, p.HoughDP)
		}
		if p.HoughEdgeThreshold <= 0 || p.HoughAccumThreshold <= 0 {
			return fmt.Errorf("%w: Hough thresholds must be positive", ErrConfig)
		}
	}
	if p.DuplicateDistMultiplier <= 0 {
		return fmt.Errorf("%w: duplicate distance multiplier must be positive, got %g", ErrConfig, p.DuplicateDistMultiplier)
	}
	if p.OutlierBandLow <= 0 || p.OutlierBandHigh <= p.OutlierBandLow {
		return fmt.Errorf("%w: outlier band [%g, %g] is inverted or non-positive", ErrConfig, p.OutlierBandLow, p.OutlierBandHigh)
	}
	if p.RowBucketHeight <= 0 {
		return fmt.Errorf("%w: row bucket height must be positive, got %d", ErrConfig, p.RowBucketHeight)
	}
	return nil
}

// maxRadiusFor resolves the effective maximum radius for an image of the
// given size. MaxRadius of 0 scales with the shorter dimension.
func (p Params) maxRadiusFor(rows, cols int) int {
	if p.MaxRadius > 0 {
		return p.MaxRadius
	}
	short := rows
	if cols < short {
		short = cols
	}
	r := short * 15 / 100
	if r < p.MinRadius {
		r = p.MinRadius
	}
	return r
}
