package geometry

import (
	"github.com/pkg/errors"
	"github.com/swdee/go-poseoverlay/pose"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrZeroSize is returned when a surface has no area yet, such as a display
// that has not been laid out.  The frame should be skipped.
var ErrZeroSize = errors.New("geometry: zero sized surface")

// Dimensions is the width and height of a surface in pixels
type Dimensions struct {
	Width  float64
	Height float64
}

// Empty reports if the dimensions have no area
func (d Dimensions) Empty() bool {
	return d.Width <= 0 || d.Height <= 0
}

// Transform maps points from the source video pixel space to the display
// surface, mirroring the X axis to match a front facing camera's self view
type Transform struct {
	// video is the size of the source video frames
	video Dimensions
	// display is the rendered size of the surface drawn on
	display Dimensions
	// scale is video size divided by display size on each axis
	scale r2.Vec
}

// NewTransform returns the transform between the video and display sizes.  It
// must be rebuilt whenever either size changes.
func NewTransform(video, display Dimensions) (Transform, error) {

	if display.Empty() {
		return Transform{}, errors.Wrapf(ErrZeroSize, "display %vx%v",
			display.Width, display.Height)
	}

	if video.Empty() {
		return Transform{}, errors.Wrapf(ErrZeroSize, "video %vx%v",
			video.Width, video.Height)
	}

	return Transform{
		video:   video,
		display: display,
		scale: r2.Vec{
			X: video.Width / display.Width,
			Y: video.Height / display.Height,
		},
	}, nil
}

// ScaleX returns the horizontal scale factor
func (t Transform) ScaleX() float64 {
	return t.scale.X
}

// ScaleY returns the vertical scale factor
func (t Transform) ScaleY() float64 {
	return t.scale.Y
}

// Video returns the source video dimensions
func (t Transform) Video() Dimensions {
	return t.video
}

// Display returns the display surface dimensions
func (t Transform) Display() Dimensions {
	return t.display
}

// Point maps a source pixel coordinate to display space.  Only X is mirrored.
func (t Transform) Point(x, y float64) r2.Vec {
	return r2.Vec{
		X: (t.video.Width - x) / t.scale.X,
		Y: y / t.scale.Y,
	}
}

// Map returns a new pose with every keypoint moved into display space.
// Scores are passed through unchanged and the source pose is not modified.
func (t Transform) Map(p pose.Pose) (pose.Pose, error) {

	if t.scale.X == 0 || t.scale.Y == 0 {
		// zero value Transform
		return pose.Pose{}, errors.Wrap(ErrZeroSize, "transform not initialised")
	}

	out := p.Clone()

	for i, kp := range out.Keypoints {
		pt := t.Point(kp.X, kp.Y)
		out.Keypoints[i].X = pt.X
		out.Keypoints[i].Y = pt.Y
	}

	return out, nil
}

// MapPose builds the transform and maps the pose in a single step
func MapPose(p pose.Pose, video, display Dimensions) (pose.Pose, error) {

	t, err := NewTransform(video, display)

	if err != nil {
		return pose.Pose{}, err
	}

	return t.Map(p)
}
