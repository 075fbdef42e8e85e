package render

import (
	"image/color"

	"github.com/pkg/errors"
	"github.com/swdee/go-poseoverlay/geometry"
	"gonum.org/v1/gonum/spatial/r2"
)

// Multi is a Surface that forwards every draw to each of its surfaces in
// order
type Multi []Surface

// Clear clears every surface
func (m Multi) Clear() {
	for _, s := range m {
		s.Clear()
	}
}

// Line draws the line on every surface
func (m Multi) Line(from, to r2.Vec, clr color.RGBA, width float64) {
	for _, s := range m {
		s.Line(from, to, clr, width)
	}
}

// Circle draws the circle on every surface
func (m Multi) Circle(center r2.Vec, radius float64, fill color.RGBA) {
	for _, s := range m {
		s.Circle(center, radius, fill)
	}
}

// Dimensions returns the size of the first surface reporting a non empty
// one, or the zero size when none do
func (m Multi) Dimensions() geometry.Dimensions {
	for _, s := range m {
		sz, ok := s.(interface{ Dimensions() geometry.Dimensions })

		if !ok {
			continue
		}

		if d := sz.Dimensions(); !d.Empty() {
			return d
		}
	}
	return geometry.Dimensions{}
}

// Flush flushes each surface that supports it, returning the first error
func (m Multi) Flush() error {
	for i, s := range m {
		f, ok := s.(interface{ Flush() error })

		if !ok {
			continue
		}

		if err := f.Flush(); err != nil {
			return errors.Wrapf(err, "surface %d", i)
		}
	}
	return nil
}
