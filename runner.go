package poseoverlay

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/swdee/go-poseoverlay/capture"
	"github.com/swdee/go-poseoverlay/detector"
	"github.com/swdee/go-poseoverlay/geometry"
	"github.com/swdee/go-poseoverlay/render"
)

// UpstreamError wraps a failure of the camera source or pose detector.  It
// halts the Runner.
type UpstreamError struct {
	// Op is the collaborator that failed, "capture" or "detect"
	Op string
	// Frame is the index of the frame being processed
	Frame int64
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s frame %d: %v", e.Op, e.Frame, e.Err)
}

// Unwrap returns the collaborator's error
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Cause returns the collaborator's error for github.com/pkg/errors
func (e *UpstreamError) Cause() error {
	return e.Err
}

// Flusher is implemented by surfaces that need to publish a frame once all
// of its draw commands have been executed
type Flusher interface {
	Flush() error
}

// sizer is implemented by surfaces that know their own rendered size
type sizer interface {
	Dimensions() geometry.Dimensions
}

// Stats are the frame counters of a Runner
type Stats struct {
	// Frames is the number of frames read from the source
	Frames int64
	// Drawn is the number of frames a pose was drawn for
	Drawn int64
	// Empty is the number of frames the detector found no pose in
	Empty int64
	// Skipped is the number of frames skipped due to a zero sized display
	Skipped int64
}

// Runner drives the pipeline one frame at a time.  Each step reads a frame,
// detects poses, rebuilds the display transform from the current sizes and
// draws the first pose.  Steps never overlap.
//
// The source size is that reported by a detector.SourceDetector, otherwise
// the frame's.  The display size is the surface's Dimensions when it has a
// non empty one, otherwise the frame's.
type Runner struct {
	source   capture.Source
	detector detector.Detector
	surface  render.Surface
	pipeline *Pipeline
	// Interval is the minimum time between the start of frames, zero runs
	// as fast as frames arrive
	Interval time.Duration
	// Logger receives skipped frame notices, nil disables them
	Logger *log.Logger
	stats  Stats
	mu     sync.Mutex
}

// NewRunner returns a Runner drawing poses detected in frames from source
// onto surface
func NewRunner(source capture.Source, det detector.Detector,
	surface render.Surface, pipeline *Pipeline) *Runner {

	return &Runner{
		source:   source,
		detector: det,
		surface:  surface,
		pipeline: pipeline,
	}
}

// Run processes frames until ctx is cancelled, returning nil, or until the
// source or detector fails, returning an *UpstreamError.  Configuration
// errors also halt the loop.
func (r *Runner) Run(ctx context.Context) error {

	var tick <-chan time.Time

	if r.Interval > 0 {
		ticker := time.NewTicker(r.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		if err := r.Step(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if tick == nil {
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-tick:
		}
	}
}

// Step processes a single frame
func (r *Runner) Step(ctx context.Context) error {

	frame, err := r.source.Read(ctx)

	if err != nil {
		return &UpstreamError{Op: "capture", Frame: r.Stats().Frames, Err: err}
	}

	r.count(func(s *Stats) { s.Frames++ })

	res, err := r.detect(ctx, frame)

	if err != nil {
		return &UpstreamError{Op: "detect", Frame: frame.Index, Err: err}
	}

	// keypoints from a replayed source are relative to the recorded video
	video := frame.Video

	if !res.Video.Empty() {
		video = res.Video
	}

	display := r.display(frame)

	drawn, err := r.pipeline.DrawFrame(r.surface, res.Poses, video, display)

	if errors.Cause(err) == geometry.ErrZeroSize {
		r.count(func(s *Stats) { s.Skipped++ })

		if r.Logger != nil {
			r.Logger.Printf("skipping frame %d: %v", frame.Index, err)
		}
		return nil
	}

	if err != nil {
		return errors.Wrapf(err, "frame %d", frame.Index)
	}

	if drawn {
		r.count(func(s *Stats) { s.Drawn++ })
	} else {
		r.count(func(s *Stats) { s.Empty++ })
	}

	if f, ok := r.surface.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return errors.Wrapf(err, "flush frame %d", frame.Index)
		}
	}

	return nil
}

// detect runs the detector, asking for the source video size when the
// detector can report it
func (r *Runner) detect(ctx context.Context, frame capture.Frame) (detector.Result, error) {

	if sd, ok := r.detector.(detector.SourceDetector); ok {
		return sd.Detect(ctx, frame)
	}

	poses, err := r.detector.EstimatePoses(ctx, frame)

	return detector.Result{Poses: poses}, err
}

// display returns the current rendered size.  The surface's own size is
// preferred as it is read live, the frame's display size is the fallback.
func (r *Runner) display(frame capture.Frame) geometry.Dimensions {

	if sz, ok := r.surface.(sizer); ok {
		if d := sz.Dimensions(); !d.Empty() {
			return d
		}
	}

	return frame.Display
}

// Stats returns a copy of the frame counters
func (r *Runner) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *Runner) count(fn func(s *Stats)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.stats)
}
