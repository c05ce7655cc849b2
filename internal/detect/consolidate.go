package detect

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// consolidate merges the pooled candidates from every generator into one
// confident set: greedy quality-ordered deduplication followed by radius
// outlier rejection against the survivors' median.
func consolidate(candidates []Candidate, p Params) []Candidate {
	return rejectRadiusOutliers(dedupe(candidates, p), p)
}

// dedupe removes near-duplicate proposals by greedy spatial exclusion. The
// exclusion distance derives from the pooled median radius, so it adapts to
// the object scale in the image. Quadratic in candidate count; pooled counts
// stay in the low hundreds after per-generator filtering.
func dedupe(candidates []Candidate, p Params) []Candidate {
	if len(candidates) <= 1 {
		return candidates
	}

	minDist := medianRadius(candidates) * p.DuplicateDistMultiplier

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	// Descending quality; ties broken by position so repeated calls on the
	// same pool keep the same candidate.
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Quality != sorted[j].Quality {
			return sorted[i].Quality > sorted[j].Quality
		}
		if sorted[i].Center.Y != sorted[j].Center.Y {
			return sorted[i].Center.Y < sorted[j].Center.Y
		}
		return sorted[i].Center.X < sorted[j].Center.X
	})

	kept := make([]Candidate, 0, len(sorted))
	for _, c := range sorted {
		duplicate := false
		for i := range kept {
			if c.Center.Distance(kept[i].Center) < minDist {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, c)
		}
	}
	return kept
}

// rejectRadiusOutliers drops survivors whose radius falls outside the
// configured multiplicative band around the survivors' median radius. This
// removes tiny fragments and accidentally merged blobs that the shape filters
// let through. Small sets are left alone; the median is not meaningful there.
func rejectRadiusOutliers(candidates []Candidate, p Params) []Candidate {
	if len(candidates) <= 3 {
		return candidates
	}

	median := medianRadius(candidates)
	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		r := float64(c.Radius)
		if r > p.OutlierBandLow*median && r < p.OutlierBandHigh*median {
			kept = append(kept, c)
		}
	}
	return kept
}

// medianRadius returns the median radius across candidates.
func medianRadius(candidates []Candidate) float64 {
	radii := make([]float64, len(candidates))
	for i, c := range candidates {
		radii[i] = float64(c.Radius)
	}
	sort.Float64s(radii)
	return stat.Quantile(0.5, stat.Empirical, radii, nil)
}
