package render

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Kind is the type of draw command
type Kind int

const (
	KindLine   Kind = 1
	KindCircle Kind = 2
)

// String returns the command kind name
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	}
	return "unknown"
}

// Command is a single primitive to draw on a Surface in display space
type Command struct {
	Kind Kind
	// From and To are the end points of a line
	From r2.Vec
	To   r2.Vec
	// Center and Radius define a filled circle
	Center r2.Vec
	Radius float64
	// Color is the stroke color of a line or the fill color of a circle
	Color color.RGBA
	// Width is the stroke width of a line
	Width float64
}

// Line returns a line command
func Line(from, to r2.Vec, clr color.RGBA, width float64) Command {
	return Command{Kind: KindLine, From: from, To: to, Color: clr, Width: width}
}

// Circle returns a filled circle command
func Circle(center r2.Vec, radius float64, fill color.RGBA) Command {
	return Command{Kind: KindCircle, Center: center, Radius: radius, Color: fill}
}
