package render

import (
	"image/color"

	"github.com/swdee/go-poseoverlay/pose"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultThreshold is the minimum keypoint score, exclusive, for a joint
// or bone to be drawn
const DefaultThreshold = 0.3

// SkeletonStyle defines the parameters used for rendering a pose skeleton
type SkeletonStyle struct {
	// Threshold is the score a keypoint must exceed to be drawn
	Threshold float64
	BoneColor color.RGBA
	BoneWidth float64
	// JointRadius is the radius of the circle drawn at each joint
	JointRadius float64
	JointColor  color.RGBA
	// NoseColor highlights the head position with a distinct joint color
	NoseColor color.RGBA
}

// DefaultSkeletonStyle returns default skeleton style settings
func DefaultSkeletonStyle() SkeletonStyle {
	return SkeletonStyle{
		Threshold:   DefaultThreshold,
		BoneColor:   Green,
		BoneWidth:   3,
		JointRadius: 5,
		JointColor:  Blue,
		NoseColor:   Red,
	}
}

// SkeletonRenderer turns a display space pose into draw commands
type SkeletonRenderer struct {
	skeleton *pose.Skeleton
	style    SkeletonStyle
}

// NewSkeletonRenderer returns a renderer for the given skeleton and style
func NewSkeletonRenderer(skeleton *pose.Skeleton, style SkeletonStyle) *SkeletonRenderer {
	return &SkeletonRenderer{
		skeleton: skeleton,
		style:    style,
	}
}

// Style returns the style in use
func (r *SkeletonRenderer) Style() SkeletonStyle {
	return r.style
}

// Skeleton returns the skeleton in use
func (r *SkeletonRenderer) Skeleton() *pose.Skeleton {
	return r.skeleton
}

// Commands returns the draw commands for the pose.  All bone lines come
// first in connection table order followed by joint circles in joint order,
// so joints sit on top of bones.  A pose with fewer keypoints than the
// skeleton vocabulary is a configuration error.
func (r *SkeletonRenderer) Commands(p pose.Pose) ([]Command, error) {

	if err := p.Validate(r.skeleton.Joints()); err != nil {
		return nil, err
	}

	cmds := make([]Command, 0, len(r.skeleton.Connections())+r.skeleton.Joints())

	// draw skeleton lines
	for _, c := range r.skeleton.Connections() {
		start := p.Keypoint(c.Start)
		end := p.Keypoint(c.End)

		if !r.confident(start) || !r.confident(end) {
			continue
		}

		cmds = append(cmds, Line(point(start), point(end),
			r.style.BoneColor, r.style.BoneWidth))
	}

	// draw circles at skeleton joints
	for j := pose.Joint(0); int(j) < r.skeleton.Joints(); j++ {
		kp := p.Keypoint(j)

		if !r.skeleton.Visible(j) || !r.confident(kp) {
			continue
		}

		clr := r.style.JointColor

		if j == pose.Nose {
			clr = r.style.NoseColor
		}

		cmds = append(cmds, Circle(point(kp), r.style.JointRadius, clr))
	}

	return cmds, nil
}

// confident reports if the keypoint score passes the threshold
func (r *SkeletonRenderer) confident(kp pose.Keypoint) bool {
	return kp.Score > r.style.Threshold
}

func point(kp pose.Keypoint) r2.Vec {
	return r2.Vec{X: kp.X, Y: kp.Y}
}
