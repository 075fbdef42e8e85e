package poseoverlay

import (
	"github.com/swdee/go-poseoverlay/geometry"
	"github.com/swdee/go-poseoverlay/pose"
	"github.com/swdee/go-poseoverlay/render"
)

// Pipeline maps a pose into display space and produces its skeleton draw
// commands.  It holds no per frame state and is safe for concurrent use.
type Pipeline struct {
	renderer *render.SkeletonRenderer
}

// NewPipeline returns a pipeline rendering the skeleton with the given style
func NewPipeline(skeleton *pose.Skeleton, style render.SkeletonStyle) *Pipeline {
	return &Pipeline{
		renderer: render.NewSkeletonRenderer(skeleton, style),
	}
}

// DefaultPipeline returns a pipeline for the 17 joint body skeleton using the
// default style
func DefaultPipeline() *Pipeline {
	return NewPipeline(pose.DefaultSkeleton(), render.DefaultSkeletonStyle())
}

// Renderer returns the skeleton renderer
func (p *Pipeline) Renderer() *render.SkeletonRenderer {
	return p.renderer
}

// ProcessFrame maps the pose with the transform and returns the draw commands
// for it
func (p *Pipeline) ProcessFrame(ps pose.Pose, t geometry.Transform) ([]render.Command, error) {

	mapped, err := t.Map(ps)

	if err != nil {
		return nil, err
	}

	return p.renderer.Commands(mapped)
}

// DrawFrame renders the first of the detected poses onto the surface.  The
// transform is built from the given sizes on every call.  A zero sized
// display returns geometry.ErrZeroSize and the surface is left untouched so
// the frame can be skipped.  Otherwise the surface is cleared, and nothing
// more is drawn when there are no poses.  Reports if a pose was drawn.
func (p *Pipeline) DrawFrame(s render.Surface, poses []pose.Pose,
	video, display geometry.Dimensions) (bool, error) {

	t, err := geometry.NewTransform(video, display)

	if err != nil {
		return false, err
	}

	if len(poses) == 0 {
		s.Clear()
		return false, nil
	}

	cmds, err := p.ProcessFrame(poses[0], t)

	if err != nil {
		return false, err
	}

	render.Frame(s, cmds)

	return true, nil
}
