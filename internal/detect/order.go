package detect

import "sort"

// orderRowMajor sorts the consolidated candidates into reading order and
// assigns 1-based indices. Row coordinates are bucketed into fixed-height
// bands first, so circles a human would call "the same row" are numbered
// left to right even when their centers are a few pixels apart vertically.
func orderRowMajor(candidates []Candidate, bucketHeight int) []Circle {
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)

	sort.SliceStable(sorted, func(i, j int) bool {
		bi := int(sorted[i].Center.Y) / bucketHeight
		bj := int(sorted[j].Center.Y) / bucketHeight
		if bi != bj {
			return bi < bj
		}
		return sorted[i].Center.X < sorted[j].Center.X
	})

	circles := make([]Circle, len(sorted))
	for i, c := range sorted {
		circles[i] = Circle{
			Index:   i + 1,
			Center:  c.Center,
			Radius:  c.Radius,
			Quality: c.Quality,
			Source:  c.Source,
		}
	}
	return circles
}
