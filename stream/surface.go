package stream

import (
	"encoding/json"
	"image/color"
	"sync"

	"github.com/pkg/errors"
	"github.com/swdee/go-poseoverlay/geometry"
	"github.com/swdee/go-poseoverlay/render"
	"gonum.org/v1/gonum/spatial/r2"
)

// Message is one overlay frame sent to browser clients.  Clients clear their
// canvas, size it to Width x Height and replay the commands in order.
type Message struct {
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Commands []Command `json:"commands"`
}

// Command is the wire form of a render.Command
type Command struct {
	Kind   string      `json:"kind"`
	From   *[2]float64 `json:"from,omitempty"`
	To     *[2]float64 `json:"to,omitempty"`
	Center *[2]float64 `json:"center,omitempty"`
	Radius float64     `json:"radius,omitempty"`
	Color  string      `json:"color"`
	Width  float64     `json:"width,omitempty"`
}

// Encode converts draw commands to their wire form
func Encode(cmds []render.Command) []Command {

	out := make([]Command, 0, len(cmds))

	for _, c := range cmds {
		w := Command{
			Kind:  c.Kind.String(),
			Color: render.Hex(c.Color),
		}

		switch c.Kind {
		case render.KindLine:
			w.From = vec(c.From)
			w.To = vec(c.To)
			w.Width = c.Width
		case render.KindCircle:
			w.Center = vec(c.Center)
			w.Radius = c.Radius
		default:
			continue
		}

		out = append(out, w)
	}

	return out
}

func vec(v r2.Vec) *[2]float64 {
	return &[2]float64{v.X, v.Y}
}

// Surface is a render.Surface that collects the draw commands of a frame and
// broadcasts them to the hub's clients on Flush
type Surface struct {
	hub     *Hub
	size    geometry.Dimensions
	cmds    []render.Command
	dropped int64
	mu      sync.Mutex
}

// NewSurface returns a surface of the given display size publishing to hub
func NewSurface(hub *Hub, size geometry.Dimensions) *Surface {
	return &Surface{
		hub:  hub,
		size: size,
	}
}

// SetDimensions changes the display size, such as when the remote canvas
// is resized
func (s *Surface) SetDimensions(d geometry.Dimensions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.size = d
}

// Dimensions returns the display size
func (s *Surface) Dimensions() geometry.Dimensions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Clear starts a new frame
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cmds = s.cmds[:0]
}

// Line adds a line to the frame
func (s *Surface) Line(from, to r2.Vec, clr color.RGBA, width float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cmds = append(s.cmds, render.Line(from, to, clr, width))
}

// Circle adds a circle to the frame
func (s *Surface) Circle(center r2.Vec, radius float64, fill color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cmds = append(s.cmds, render.Circle(center, radius, fill))
}

// Flush encodes the frame and queues it for broadcast.  Frames are dropped
// when clients are not keeping up.
func (s *Surface) Flush() error {

	s.mu.Lock()
	msg := Message{
		Width:    s.size.Width,
		Height:   s.size.Height,
		Commands: Encode(s.cmds),
	}
	s.mu.Unlock()

	data, err := json.Marshal(msg)

	if err != nil {
		return errors.Wrap(err, "encode frame")
	}

	if !s.hub.Broadcast(data) {
		s.mu.Lock()
		s.dropped++
		s.mu.Unlock()
	}

	return nil
}

// Dropped returns the number of frames dropped because the broadcast queue
// was full
func (s *Surface) Dropped() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}
