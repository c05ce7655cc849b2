// Package session tracks operator-added circles on top of an automatic
// detection. The detector itself is stateless; a Session is the explicit
// state value a display shell threads through its calls instead of keeping
// process-wide globals.
package session

import (
	"fmt"
	"image"

	"circle-counter/internal/detect"
	"circle-counter/pkg/geometry"
)

// ManualCircle is one operator-added circle. Index continues the automatic
// numbering and is re-derived on every removal.
type ManualCircle struct {
	Center geometry.Point2D `json:"center"`
	Radius int              `json:"radius"`
	Index  int              `json:"index"`
}

// Session holds one detection result and the manual circles added on top of
// it. The automatic result is never mutated; removals rebuild the annotated
// image by replaying the remaining manual circles over the original
// detection's annotated image, in order.
type Session struct {
	base      *detect.Result
	annotated image.Image
	manual    []ManualCircle
}

// New creates a session over a completed detection.
func New(result *detect.Result) (*Session, error) {
	if result == nil || result.Annotated == nil {
		return nil, fmt.Errorf("session requires a completed detection result")
	}
	return &Session{base: result, annotated: result.Annotated}, nil
}

// Count returns the combined automatic and manual circle count.
func (s *Session) Count() int {
	return s.base.Count + len(s.manual)
}

// Annotated returns the current annotated image.
func (s *Session) Annotated() image.Image {
	return s.annotated
}

// ManualCircles returns a copy of the manual circle list in addition order.
func (s *Session) ManualCircles() []ManualCircle {
	out := make([]ManualCircle, len(s.manual))
	copy(out, s.manual)
	return out
}

// Circles returns the automatic circles followed by the manual ones, in
// numbering order.
func (s *Session) Circles() []detect.Circle {
	out := make([]detect.Circle, 0, s.Count())
	out = append(out, s.base.Circles...)
	for _, m := range s.manual {
		out = append(out, detect.Circle{
			Index:   m.Index,
			Center:  m.Center,
			Radius:  m.Radius,
			Quality: 1.0,
			Source:  detect.GeneratorManual,
		})
	}
	return out
}

// AddCircle appends a manual circle with the next sequence number and draws
// it onto the current annotated image.
func (s *Session) AddCircle(x, y float64, radius int) (image.Image, error) {
	sequence := s.base.Count + len(s.manual) + 1
	img, err := detect.AddManualCircle(s.annotated, x, y, radius, sequence)
	if err != nil {
		return nil, err
	}
	s.manual = append(s.manual, ManualCircle{
		Center: geometry.Point2D{X: x, Y: y},
		Radius: radius,
		Index:  sequence,
	})
	s.annotated = img
	return img, nil
}

// RemoveLast removes the most recently added manual circle. Removing from an
// empty manual list is a no-op.
func (s *Session) RemoveLast() (image.Image, error) {
	if len(s.manual) == 0 {
		return s.annotated, nil
	}
	return s.RemoveAt(len(s.manual) - 1)
}

// RemoveAt removes the manual circle at position i (0-based, addition order),
// renumbers the rest, and re-derives the annotated image.
func (s *Session) RemoveAt(i int) (image.Image, error) {
	if i < 0 || i >= len(s.manual) {
		return nil, fmt.Errorf("manual circle index %d out of range [0, %d)", i, len(s.manual))
	}
	s.manual = append(s.manual[:i], s.manual[i+1:]...)
	return s.replay()
}

// replay rebuilds the annotated image from the automatic detection's
// annotated image plus all remaining manual circles, in order.
func (s *Session) replay() (image.Image, error) {
	img := s.base.Annotated
	for i := range s.manual {
		s.manual[i].Index = s.base.Count + i + 1
		next, err := detect.AddManualCircle(img,
			s.manual[i].Center.X, s.manual[i].Center.Y,
			s.manual[i].Radius, s.manual[i].Index)
		if err != nil {
			return nil, err
		}
		img = next
	}
	s.annotated = img
	return img, nil
}
