package detect

import "testing"

func TestOrderRowMajor(t *testing.T) {
	candidates := []Candidate{
		candidateAt(300, 40, 10, 0.8),
		candidateAt(100, 38, 10, 0.8),
		candidateAt(50, 120, 10, 0.8),
		candidateAt(200, 44, 10, 0.8),
	}

	circles := orderRowMajor(candidates, 15)

	wantX := []float64{100, 200, 300, 50}
	for i, c := range circles {
		if c.Index != i+1 {
			t.Errorf("position %d: Index got %d, want %d", i, c.Index, i+1)
		}
		if c.Center.X != wantX[i] {
			t.Errorf("position %d: X got %g, want %g", i, c.Center.X, wantX[i])
		}
	}
}

func TestOrderRowMajor_VerticalJitterSameRow(t *testing.T) {
	// Centers 38 and 44 share bucket 2 with height 15; numbering must be
	// left to right despite the y difference.
	candidates := []Candidate{
		candidateAt(200, 38, 10, 0.8),
		candidateAt(100, 44, 10, 0.8),
	}

	circles := orderRowMajor(candidates, 15)
	if circles[0].Center.X != 100 || circles[1].Center.X != 200 {
		t.Errorf("jittered row ordered by y, want by x: got %g then %g",
			circles[0].Center.X, circles[1].Center.X)
	}
}

func TestOrderRowMajor_Empty(t *testing.T) {
	circles := orderRowMajor(nil, 15)
	if len(circles) != 0 {
		t.Errorf("got %d circles, want 0", len(circles))
	}
}
