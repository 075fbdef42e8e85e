package render

import (
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-poseoverlay/geometry"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestFrameClearsThenExecutes(t *testing.T) {
	rec := &Recorder{}
	rec.Line(r2.Vec{}, r2.Vec{X: 1}, Green, 1)

	cmds := []Command{
		Line(r2.Vec{X: 1, Y: 2}, r2.Vec{X: 3, Y: 4}, Green, 3),
		Circle(r2.Vec{X: 5, Y: 6}, 5, Red),
	}

	Frame(rec, cmds)

	assert.Equal(t, 1, rec.Clears)
	assert.Equal(t, cmds, rec.Commands)
}

func TestExecuteSkipsUnknownKind(t *testing.T) {
	rec := &Recorder{}

	Execute(rec, []Command{{Kind: 0}, Circle(r2.Vec{}, 1, Blue)})

	require.Len(t, rec.Commands, 1)
	assert.Equal(t, KindCircle, rec.Commands[0].Kind)
	assert.Equal(t, 0, rec.Clears)
}

func TestImageSurface(t *testing.T) {
	s := NewImageSurface(100, 60)

	assert.Equal(t, 100.0, s.Dimensions().Width)
	assert.Equal(t, 60.0, s.Dimensions().Height)

	Frame(s, []Command{
		Line(r2.Vec{X: 10, Y: 10.5}, r2.Vec{X: 90, Y: 10.5}, Green, 3),
		Circle(r2.Vec{X: 50.5, Y: 40.5}, 5, Red),
	})

	img := s.Image()

	assert.Equal(t, Green, img.RGBAAt(50, 10))
	assert.Equal(t, Red, img.RGBAAt(50, 40))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(5, 50))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(95, 30))

	s.Clear()
	assert.Equal(t, color.RGBA{}, img.RGBAAt(50, 10))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(50, 40))
}

func TestImageSurfaceDegenerateLine(t *testing.T) {
	s := NewImageSurface(20, 20)

	s.Line(r2.Vec{X: 10.5, Y: 10.5}, r2.Vec{X: 10.5, Y: 10.5}, Blue, 4)
	assert.Equal(t, Blue, s.Image().RGBAAt(10, 10))
}

func TestHexColors(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#00FF00", Green},
		{"#ff0000", Red},
		{"0000FF", Blue},
		{"#00000000", Transparent},
	}

	for _, tc := range tests {
		c, err := ParseHex(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, c)
	}

	_, err := ParseHex("#12345")
	assert.Error(t, err)

	_, err = ParseHex("#GGGGGG")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid hex color "GGGGGG"`)
	// scan failure is kept as the cause
	assert.NotEqual(t, err, errors.Cause(err))

	assert.Equal(t, "#00FF00", Hex(Green))
	assert.Equal(t, "#00000000", Hex(Transparent))
}

// flushCounter is a Recorder that counts flushes
type flushCounter struct {
	Recorder
	flushes int
	err     error
}

func (f *flushCounter) Flush() error {
	f.flushes++
	return f.err
}

func TestMulti(t *testing.T) {
	a := &Recorder{}
	b := &flushCounter{}

	m := Multi{a, b}

	Frame(m, []Command{
		Line(r2.Vec{X: 1}, r2.Vec{X: 2}, Green, 1),
		Circle(r2.Vec{X: 3}, 2, Red),
	})

	require.NoError(t, m.Flush())

	assert.Equal(t, a.Commands, b.Commands)
	assert.Len(t, a.Commands, 2)
	assert.Equal(t, 1, a.Clears)
	assert.Equal(t, 1, b.Clears)
	assert.Equal(t, 1, b.flushes)

	b.err = assert.AnError
	assert.Error(t, m.Flush())
}

// sizedRecorder is a Recorder with a fixed size
type sizedRecorder struct {
	Recorder
	size geometry.Dimensions
}

func (s *sizedRecorder) Dimensions() geometry.Dimensions {
	return s.size
}

func TestMultiDimensions(t *testing.T) {
	vga := geometry.Dimensions{Width: 640, Height: 480}

	tests := []struct {
		name string
		m    Multi
		want geometry.Dimensions
	}{
		{"no surfaces", Multi{}, geometry.Dimensions{}},
		{"unsized only", Multi{&Recorder{}}, geometry.Dimensions{}},
		{"skips unsized", Multi{&Recorder{}, &sizedRecorder{size: vga}}, vga},
		{"skips empty", Multi{&sizedRecorder{}, &sizedRecorder{size: vga}}, vga},
		{"first wins", Multi{NewImageSurface(100, 60), &sizedRecorder{size: vga}},
			geometry.Dimensions{Width: 100, Height: 60}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.m.Dimensions())
		})
	}
}
