package capture

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/swdee/go-poseoverlay/geometry"
	"gocv.io/x/gocv"
)

var (
	// ErrDevice is returned when the capture device can not be opened or
	// configured, including when access to it is denied
	ErrDevice = errors.New("capture: device error")
	// ErrEndOfStream is returned when no more frames can be read
	ErrEndOfStream = errors.New("capture: end of stream")
)

// Frame is one captured video frame
type Frame struct {
	// Index is the sequence number of the frame from the source, starting at 0
	Index int64
	// Mat is the frame image, it may be nil for sources without pixel data.
	// It is only valid until the next Read.
	Mat *gocv.Mat
	// Video is the size of the frame as delivered by the source
	Video geometry.Dimensions
	// Display is the rendered size of the surface the frame is shown on.  A
	// zero value means the display size is not known to the source.
	Display geometry.Dimensions
}

// Source delivers video frames one at a time
type Source interface {
	// Read blocks until the next frame is available
	Read(ctx context.Context) (Frame, error)
	Close() error
}

// Camera is a Source reading from a GoCV video capture device, file or
// stream URL
type Camera struct {
	vc      *gocv.VideoCapture
	img     gocv.Mat
	index   int64
	display geometry.Dimensions
	mu      sync.Mutex
}

// OpenCamera opens the capture device and requests the given frame size.  A
// width or height of zero keeps the device default.
func OpenCamera(device string, width, height int) (*Camera, error) {

	vc, err := gocv.OpenVideoCapture(device)

	if err != nil {
		if vc != nil {
			vc.Close()
		}
		return nil, errors.Wrapf(ErrDevice, "open %s: %v", device, err)
	}

	if !vc.IsOpened() {
		vc.Close()
		return nil, errors.Wrapf(ErrDevice, "open %s", device)
	}

	if width > 0 && height > 0 {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(width))
		vc.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}

	return &Camera{
		vc:  vc,
		img: gocv.NewMat(),
	}, nil
}

// SetDisplay records the current rendered size of the surface the video is
// shown on.  Call it whenever the surface is resized.
func (c *Camera) SetDisplay(d geometry.Dimensions) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.display = d
}

// Display returns the last recorded display size
func (c *Camera) Display() geometry.Dimensions {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.display
}

// Frame returns the Mat every frame is read into.  The pointer is stable
// for the life of the Camera.
func (c *Camera) Frame() *gocv.Mat {
	return &c.img
}

// Read grabs the next frame from the device
func (c *Camera) Read(ctx context.Context) (Frame, error) {

	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}

	if ok := c.vc.Read(&c.img); !ok {
		return Frame{}, errors.Wrapf(ErrEndOfStream, "frame %d", c.index)
	}

	if c.img.Empty() {
		return Frame{}, errors.Wrapf(ErrEndOfStream, "empty frame %d", c.index)
	}

	f := Frame{
		Index: c.index,
		Mat:   &c.img,
		Video: geometry.Dimensions{
			Width:  float64(c.img.Cols()),
			Height: float64(c.img.Rows()),
		},
		Display: c.Display(),
	}

	c.index++

	return f, nil
}

// Close releases the device and frame buffer
func (c *Camera) Close() error {
	c.img.Close()
	return c.vc.Close()
}
