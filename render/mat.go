package render

import (
	"image"
	"image/color"
	"math"

	"github.com/swdee/go-poseoverlay/geometry"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r2"
)

// MatSurface is a Surface that draws into a GoCV Mat
type MatSurface struct {
	img *gocv.Mat
	// background when set is copied into img on Clear so the skeleton is
	// drawn over the live video frame
	background *gocv.Mat
}

// NewMatSurface returns a surface drawing into img
func NewMatSurface(img *gocv.Mat) *MatSurface {
	return &MatSurface{
		img: img,
	}
}

// SetBackground sets the Mat copied into the surface on each Clear.  Passing
// nil clears to transparent black.
func (m *MatSurface) SetBackground(bg *gocv.Mat) {
	m.background = bg
}

// Dimensions returns the size of the underlying Mat
func (m *MatSurface) Dimensions() geometry.Dimensions {
	return geometry.Dimensions{
		Width:  float64(m.img.Cols()),
		Height: float64(m.img.Rows()),
	}
}

// Clear resets the Mat to the background frame or transparent black.  A
// background of a different size is resized to the Mat, an empty Mat takes
// the background's size.
func (m *MatSurface) Clear() {
	if m.background != nil && !m.background.Empty() {
		if m.img.Empty() || (m.img.Cols() == m.background.Cols() &&
			m.img.Rows() == m.background.Rows()) {
			m.background.CopyTo(m.img)
			return
		}

		gocv.Resize(*m.background, m.img, image.Pt(m.img.Cols(), m.img.Rows()),
			0, 0, gocv.InterpolationLinear)
		return
	}

	m.img.SetTo(gocv.NewScalar(0, 0, 0, 0))
}

// Line draws a line
func (m *MatSurface) Line(from, to r2.Vec, clr color.RGBA, width float64) {
	gocv.Line(m.img, pt(from), pt(to), clr, thickness(width))
}

// Circle draws a filled circle
func (m *MatSurface) Circle(center r2.Vec, radius float64, fill color.RGBA) {
	gocv.Circle(m.img, pt(center), int(math.Round(radius)), fill, -1)
}

func pt(v r2.Vec) image.Point {
	return image.Pt(int(math.Round(v.X)), int(math.Round(v.Y)))
}

func thickness(w float64) int {
	t := int(math.Round(w))
	if t < 1 {
		return 1
	}
	return t
}
