package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/swdee/go-poseoverlay/geometry"
	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/spatial/r2"
)

// kappa is the control point distance for approximating a quarter circle
// with a cubic Bézier curve
const kappa = 0.5522847498

// ImageSurface is a Surface that rasterizes into an in memory RGBA image
// without requiring OpenCV, used for headless snapshots
type ImageSurface struct {
	img *image.RGBA
	ras *vector.Rasterizer
}

// NewImageSurface returns a surface backed by a new transparent image of
// the given size
func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		ras: vector.NewRasterizer(width, height),
	}
}

// Image returns the underlying image
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Dimensions returns the size of the image
func (s *ImageSurface) Dimensions() geometry.Dimensions {
	b := s.img.Bounds()
	return geometry.Dimensions{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Clear resets every pixel to transparent
func (s *ImageSurface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// Line strokes the line as a filled quad of the given width
func (s *ImageSurface) Line(from, to r2.Vec, clr color.RGBA, width float64) {

	dir := r2.Sub(to, from)

	if r2.Norm(dir) == 0 {
		s.Circle(from, width/2, clr)
		return
	}

	// half width offset perpendicular to the line
	n := r2.Scale(width/2, r2.Unit(r2.Vec{X: -dir.Y, Y: dir.X}))

	s.reset()
	s.moveTo(r2.Add(from, n))
	s.lineTo(r2.Add(to, n))
	s.lineTo(r2.Sub(to, n))
	s.lineTo(r2.Sub(from, n))
	s.ras.ClosePath()
	s.fill(clr)
}

// Circle draws a filled circle from four cubic curves
func (s *ImageSurface) Circle(center r2.Vec, radius float64, fill color.RGBA) {

	if radius <= 0 {
		return
	}

	k := radius * kappa
	cx, cy := center.X, center.Y

	s.reset()
	s.moveTo(r2.Vec{X: cx + radius, Y: cy})
	s.cubeTo(cx+radius, cy+k, cx+k, cy+radius, cx, cy+radius)
	s.cubeTo(cx-k, cy+radius, cx-radius, cy+k, cx-radius, cy)
	s.cubeTo(cx-radius, cy-k, cx-k, cy-radius, cx, cy-radius)
	s.cubeTo(cx+k, cy-radius, cx+radius, cy-k, cx+radius, cy)
	s.ras.ClosePath()
	s.fill(fill)
}

func (s *ImageSurface) reset() {
	b := s.img.Bounds()
	s.ras.Reset(b.Dx(), b.Dy())
	s.ras.DrawOp = draw.Over
}

func (s *ImageSurface) moveTo(v r2.Vec) {
	s.ras.MoveTo(float32(v.X), float32(v.Y))
}

func (s *ImageSurface) lineTo(v r2.Vec) {
	s.ras.LineTo(float32(v.X), float32(v.Y))
}

func (s *ImageSurface) cubeTo(bx, by, cx, cy, dx, dy float64) {
	s.ras.CubeTo(float32(bx), float32(by), float32(cx), float32(cy),
		float32(dx), float32(dy))
}

func (s *ImageSurface) fill(clr color.RGBA) {
	s.ras.Draw(s.img, s.img.Bounds(), image.NewUniform(clr), image.Point{})
}
