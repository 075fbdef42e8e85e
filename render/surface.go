package render

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Surface is a 2D drawing target that draw commands are executed against
type Surface interface {
	// Clear erases everything previously drawn
	Clear()
	// Line strokes a line between two points
	Line(from, to r2.Vec, clr color.RGBA, width float64)
	// Circle draws a filled circle
	Circle(center r2.Vec, radius float64, fill color.RGBA)
}

// Execute replays the commands against the surface in order.  It does not
// clear the surface first.
func Execute(s Surface, cmds []Command) {
	for _, c := range cmds {
		switch c.Kind {
		case KindLine:
			s.Line(c.From, c.To, c.Color, c.Width)
		case KindCircle:
			s.Circle(c.Center, c.Radius, c.Color)
		}
	}
}

// Frame clears the surface then executes the commands, which is the full
// per frame draw
func Frame(s Surface, cmds []Command) {
	s.Clear()
	Execute(s, cmds)
}

// Recorder is a Surface that keeps the commands it receives instead of
// drawing them
type Recorder struct {
	// Clears counts the number of calls to Clear
	Clears   int
	Commands []Command
}

// Clear discards recorded commands
func (r *Recorder) Clear() {
	r.Clears++
	r.Commands = r.Commands[:0]
}

// Line records a line command
func (r *Recorder) Line(from, to r2.Vec, clr color.RGBA, width float64) {
	r.Commands = append(r.Commands, Line(from, to, clr, width))
}

// Circle records a circle command
func (r *Recorder) Circle(center r2.Vec, radius float64, fill color.RGBA) {
	r.Commands = append(r.Commands, Circle(center, radius, fill))
}
