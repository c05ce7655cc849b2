package detect

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

// whiteMat creates a uniform white BGR test image.
func whiteMat(rows, cols int) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0),
		rows, cols, gocv.MatTypeCV8UC3)
}

// drawFilledCircle paints a solid dark circle onto the mat.
func drawFilledCircle(mat *gocv.Mat, x, y, r int) {
	gocv.Circle(mat, image.Point{X: x, Y: y}, r, color.RGBA{A: 255}, -1)
}

// whiteImage creates a uniform white Go image.
func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func TestDetectMat_RowOfFiveCircles(t *testing.T) {
	mat := whiteMat(200, 600)
	defer mat.Close()
	for i := 0; i < 5; i++ {
		drawFilledCircle(&mat, 100+i*100, 100, 20)
	}

	result, err := DetectMat(mat, DefaultParams())
	if err != nil {
		t.Fatalf("DetectMat failed: %v", err)
	}

	if result.Count != 5 {
		t.Fatalf("Count: got %d, want 5", result.Count)
	}
	for i, c := range result.Circles {
		if c.Index != i+1 {
			t.Errorf("circle %d: Index got %d, want %d", i, c.Index, i+1)
		}
		wantX := float64(100 + i*100)
		if c.Center.X < wantX-10 || c.Center.X > wantX+10 {
			t.Errorf("circle %d: X got %.1f, want ~%.1f", i, c.Center.X, wantX)
		}
		if c.Center.Y < 90 || c.Center.Y > 110 {
			t.Errorf("circle %d: Y got %.1f, want ~100", i, c.Center.Y)
		}
		if c.Radius < 15 || c.Radius > 26 {
			t.Errorf("circle %d: Radius got %d, want ~20", i, c.Radius)
		}
	}
}

func TestDetectMat_Deterministic(t *testing.T) {
	mat := whiteMat(300, 300)
	defer mat.Close()
	drawFilledCircle(&mat, 80, 80, 18)
	drawFilledCircle(&mat, 200, 90, 18)
	drawFilledCircle(&mat, 140, 220, 18)

	first, err := DetectMat(mat, DefaultParams())
	if err != nil {
		t.Fatalf("first DetectMat failed: %v", err)
	}
	second, err := DetectMat(mat, DefaultParams())
	if err != nil {
		t.Fatalf("second DetectMat failed: %v", err)
	}

	if first.Count != second.Count {
		t.Fatalf("counts differ across calls: %d vs %d", first.Count, second.Count)
	}
	for i := range first.Circles {
		a, b := first.Circles[i], second.Circles[i]
		if a.Center != b.Center || a.Radius != b.Radius || a.Index != b.Index {
			t.Errorf("circle %d differs across calls: %+v vs %+v", i, a, b)
		}
	}
}

func TestDetectMat_BoundsAndSeparationInvariants(t *testing.T) {
	mat := whiteMat(200, 600)
	defer mat.Close()
	for i := 0; i < 5; i++ {
		drawFilledCircle(&mat, 100+i*100, 100, 20)
	}

	p := DefaultParams()
	result, err := DetectMat(mat, p)
	if err != nil {
		t.Fatalf("DetectMat failed: %v", err)
	}

	w, h := float64(mat.Cols()), float64(mat.Rows())
	for _, c := range result.Circles {
		if c.Radius <= 0 {
			t.Errorf("circle %d: non-positive radius %d", c.Index, c.Radius)
		}
		if c.Center.X < 0 || c.Center.X >= w || c.Center.Y < 0 || c.Center.Y >= h {
			t.Errorf("circle %d: center (%.1f, %.1f) outside image", c.Index, c.Center.X, c.Center.Y)
		}
	}

	// All radii are near 20, so the exclusion distance is close to
	// median × multiplier regardless of which generator won each circle.
	minDist := 15.0 * p.DuplicateDistMultiplier
	for i := 0; i < len(result.Circles); i++ {
		for j := i + 1; j < len(result.Circles); j++ {
			d := result.Circles[i].Center.Distance(result.Circles[j].Center)
			if d < minDist {
				t.Errorf("circles %d and %d only %.1f apart", i+1, j+1, d)
			}
		}
	}
}

func TestDetectMat_RowMajorOrdering(t *testing.T) {
	mat := whiteMat(300, 400)
	defer mat.Close()
	// Two visual rows with slight vertical jitter inside each.
	drawFilledCircle(&mat, 300, 82, 16)
	drawFilledCircle(&mat, 100, 78, 16)
	drawFilledCircle(&mat, 200, 80, 16)
	drawFilledCircle(&mat, 250, 200, 16)
	drawFilledCircle(&mat, 90, 204, 16)

	p := DefaultParams()
	result, err := DetectMat(mat, p)
	if err != nil {
		t.Fatalf("DetectMat failed: %v", err)
	}
	if result.Count != 5 {
		t.Fatalf("Count: got %d, want 5", result.Count)
	}

	for i := 0; i < len(result.Circles)-1; i++ {
		a, b := result.Circles[i], result.Circles[i+1]
		ba := int(a.Center.Y) / p.RowBucketHeight
		bb := int(b.Center.Y) / p.RowBucketHeight
		if ba > bb {
			t.Errorf("circles %d, %d out of row order (buckets %d, %d)", a.Index, b.Index, ba, bb)
		}
		if ba == bb && a.Center.X > b.Center.X {
			t.Errorf("circles %d, %d out of x order within bucket %d", a.Index, b.Index, ba)
		}
	}
}

func TestDetect_BlankImage(t *testing.T) {
	input := whiteImage(200, 200)

	result, err := Detect(input, DefaultParams())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if result.Count != 0 {
		t.Fatalf("Count: got %d, want 0", result.Count)
	}
	if len(result.Circles) != 0 {
		t.Fatalf("Circles: got %d entries, want none", len(result.Circles))
	}

	// With nothing to draw, the annotated copy is pixel-identical.
	out, ok := result.Annotated.(*image.RGBA)
	if !ok {
		t.Fatalf("Annotated: got %T, want *image.RGBA", result.Annotated)
	}
	for i := range input.Pix {
		if input.Pix[i] != out.Pix[i] {
			t.Fatalf("annotated image differs from input at byte %d", i)
		}
	}
}

func TestDetectMat_SinglePixelSpeck(t *testing.T) {
	mat := whiteMat(100, 100)
	defer mat.Close()
	gocv.Circle(&mat, image.Point{X: 50, Y: 50}, 0, color.RGBA{A: 255}, -1)

	result, err := DetectMat(mat, DefaultParams())
	if err != nil {
		t.Fatalf("degenerate speck must not fail the call: %v", err)
	}
	if result.Count != 0 {
		t.Errorf("Count: got %d, want 0", result.Count)
	}
}

func TestDetectMat_GrayscaleInput(t *testing.T) {
	gray := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 0, 0, 0),
		200, 200, gocv.MatTypeCV8UC1)
	defer gray.Close()
	gocv.Circle(&gray, image.Point{X: 100, Y: 100}, 20, color.RGBA{A: 255}, -1)

	result, err := DetectMat(gray, DefaultParams())
	if err != nil {
		t.Fatalf("DetectMat failed on single-channel input: %v", err)
	}
	if result.Count != 1 {
		t.Errorf("Count: got %d, want 1", result.Count)
	}
}

func TestDetectMat_EmptyMat(t *testing.T) {
	mat := gocv.NewMat()
	defer mat.Close()

	_, err := DetectMat(mat, DefaultParams())
	if !errors.Is(err, ErrInput) {
		t.Fatalf("got %v, want ErrInput", err)
	}
}

func TestDetect_NilImage(t *testing.T) {
	_, err := Detect(nil, DefaultParams())
	if !errors.Is(err, ErrInput) {
		t.Fatalf("got %v, want ErrInput", err)
	}
}

func TestDetectMat_InvalidParams(t *testing.T) {
	mat := whiteMat(100, 100)
	defer mat.Close()

	p := DefaultParams().WithRadiusRange(50, 10)
	_, err := DetectMat(mat, p)
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("got %v, want ErrConfig", err)
	}
}

func TestDetectFromBytes_Garbage(t *testing.T) {
	_, err := DetectFromBytes([]byte("definitely not an image"), DefaultParams())
	if !errors.Is(err, ErrInput) {
		t.Fatalf("got %v, want ErrInput", err)
	}
}

func TestDetectFromPath_Missing(t *testing.T) {
	_, err := DetectFromPath("/nonexistent/image.png", DefaultParams())
	if !errors.Is(err, ErrInput) {
		t.Fatalf("got %v, want ErrInput", err)
	}
}
