package detect

import (
	"image"

	"gocv.io/x/gocv"
)

// rowBand is the inclusive range of rows considered image content. Candidates
// whose center row falls outside the band are rejected by every generator.
type rowBand struct {
	min, max int
}

func (b rowBand) contains(y float64) bool {
	iy := int(y)
	return iy >= b.min && iy <= b.max
}

// grayscale returns a single-channel copy of src. The caller owns the result.
func grayscale(src gocv.Mat) gocv.Mat {
	if src.Channels() == 1 {
		return src.Clone()
	}
	gray := gocv.NewMat()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
	return gray
}

// contentBand finds the rows of actual image content by scanning per-row mean
// intensity. Rows at or below the darkness floor are scanner letterboxing or
// black borders; the band is the first-to-last content row, shrunk by the
// configured margin.
func contentBand(gray gocv.Mat, p Params) rowBand {
	rows, cols := gray.Rows(), gray.Cols()
	band := rowBand{min: 0, max: rows - 1}
	if cols == 0 {
		return band
	}

	first, last := -1, -1
	for y := 0; y < rows; y++ {
		var sum int
		for x := 0; x < cols; x++ {
			sum += int(gray.GetUCharAt(y, x))
		}
		if float64(sum)/float64(cols) > p.ContentRowMeanMin {
			if first < 0 {
				first = y
			}
			last = y
		}
	}
	if first < 0 {
		return band
	}

	band.min = first + p.ContentBandMargin
	band.max = last - p.ContentBandMargin
	if band.min > band.max {
		band.min, band.max = first, last
	}
	return band
}

// enhanceForHough prepares the grayscale image for the circle-accumulator
// search: local contrast equalization followed by Gaussian smoothing to
// suppress small-scale noise. The caller owns the result.
func enhanceForHough(gray gocv.Mat, p Params) gocv.Mat {
	clahe := gocv.NewCLAHEWithParams(p.CLAHEClipLimit, image.Point{X: p.CLAHETileSize, Y: p.CLAHETileSize})
	defer clahe.Close()

	enhanced := gocv.NewMat()
	clahe.Apply(gray, &enhanced)

	gocv.GaussianBlur(enhanced, &enhanced,
		image.Point{X: p.BlurKernel, Y: p.BlurKernel},
		p.BlurSigma, p.BlurSigma, gocv.BorderDefault)
	return enhanced
}
