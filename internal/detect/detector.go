package detect

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"gocv.io/x/gocv"

	_ "golang.org/x/image/tiff"
)

// Detect runs the full pipeline on a Go image.Image and returns the count,
// the ordered circle list, and an annotated copy of the input.
func Detect(img image.Image, p Params) (*Result, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInput)
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInput)
	}

	mat, err := imageToMat(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}
	defer mat.Close()

	return DetectMat(mat, p)
}

// DetectFromPath loads an image from disk and runs detection on it.
func DetectFromPath(path string, p Params) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrInput, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInput, path, err)
	}
	return Detect(img, p)
}

// DetectFromBytes decodes an encoded image (PNG, JPEG, ...) from a buffer and
// runs detection on it.
func DetectFromBytes(buf []byte, p Params) (*Result, error) {
	mat, err := gocv.IMDecode(buf, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: decode buffer: %v", ErrInput, err)
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("%w: buffer is not a decodable image", ErrInput)
	}
	return DetectMat(mat, p)
}

// DetectMat runs the full pipeline on an OpenCV Mat. The input Mat is not
// modified; the annotated image in the result is a fresh copy. Each call
// allocates its own state, so concurrent calls need no synchronization.
func DetectMat(src gocv.Mat, p Params) (*Result, error) {
	if src.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInput)
	}
	if c := src.Channels(); c != 1 && c != 3 {
		return nil, fmt.Errorf("%w: unsupported channel count %d", ErrInput, c)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	gray := grayscale(src)
	defer gray.Close()
	band := contentBand(gray, p)

	// The generators are independent, so they fan out as goroutines. Each
	// writes into its own slot; pooling order stays fixed regardless of
	// completion order, keeping results deterministic.
	var runs []func() []Candidate
	for _, cutoff := range p.FixedThresholds {
		cutoff := cutoff
		runs = append(runs, func() []Candidate {
			return fixedThresholdCandidates(gray, cutoff, band, p)
		})
	}
	if p.UseOtsu {
		runs = append(runs, func() []Candidate {
			return otsuCandidates(gray, band, p)
		})
	}
	if p.UseAdaptive {
		runs = append(runs, func() []Candidate {
			return adaptiveCandidates(gray, band, p)
		})
	}
	if p.UseHough {
		runs = append(runs, func() []Candidate {
			enhanced := enhanceForHough(gray, p)
			defer enhanced.Close()
			return houghCandidates(enhanced, band, p)
		})
	}

	pooled := make([][]Candidate, len(runs))
	var wg sync.WaitGroup
	for i, run := range runs {
		wg.Add(1)
		go func(slot int, run func() []Candidate) {
			defer wg.Done()
			pooled[slot] = run()
		}(i, run)
	}
	wg.Wait()

	var candidates []Candidate
	for _, c := range pooled {
		candidates = append(candidates, c...)
	}

	circles := orderRowMajor(consolidate(candidates, p), p.RowBucketHeight)

	annotated := annotate(src, circles)
	defer annotated.Close()
	out, err := matToImage(annotated)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}

	return &Result{
		Count:     len(circles),
		Circles:   circles,
		Annotated: out,
		Params:    p,
	}, nil
}
