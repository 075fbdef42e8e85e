package detector

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/swdee/go-poseoverlay/capture"
	"github.com/swdee/go-poseoverlay/geometry"
	"github.com/swdee/go-poseoverlay/pose"
)

var (
	// ErrModel is the cause of failures raised by a pose model
	ErrModel = errors.New("detector: model error")
	// ErrEndOfRecording is returned by a non looping Replay once every
	// recorded frame has been served
	ErrEndOfRecording = errors.New("detector: end of recording")
)

// Detector estimates the poses of the people visible in a frame
type Detector interface {
	EstimatePoses(ctx context.Context, frame capture.Frame) ([]pose.Pose, error)
}

// Result is the poses detected for a frame with the size of the video their
// keypoints are relative to
type Result struct {
	Poses []pose.Pose
	// Video is zero when the keypoints are relative to the frame itself
	Video geometry.Dimensions
}

// SourceDetector is implemented by detectors whose keypoints may be relative
// to a video size other than that of the frame passed in, such as recorded
// output replayed against a live camera
type SourceDetector interface {
	Detect(ctx context.Context, frame capture.Frame) (Result, error)
}

// Func adapts a function to the Detector interface
type Func func(ctx context.Context, frame capture.Frame) ([]pose.Pose, error)

// EstimatePoses calls f
func (f Func) EstimatePoses(ctx context.Context, frame capture.Frame) ([]pose.Pose, error) {
	return f(ctx, frame)
}

// Recording is a source of previously captured detector output
type Recording interface {
	// Count returns the number of recorded frames
	Count(ctx context.Context) (int, error)
	// Recorded returns the poses recorded at position n and the size of the
	// video they were detected on
	Recorded(ctx context.Context, n int) ([]pose.Pose, geometry.Dimensions, error)
}

// Replay is a Detector that serves recorded poses in order, one recorded
// frame per call, ignoring the frame image
type Replay struct {
	rec   Recording
	loop  bool
	next  int
	total int
	mu    sync.Mutex
}

// NewReplay returns a Replay over the recording.  When loop is true playback
// restarts from the first frame after the last.
func NewReplay(ctx context.Context, rec Recording, loop bool) (*Replay, error) {

	total, err := rec.Count(ctx)

	if err != nil {
		return nil, errors.Wrap(err, "count recorded frames")
	}

	return &Replay{
		rec:   rec,
		loop:  loop,
		total: total,
	}, nil
}

// EstimatePoses returns the next recorded poses
func (r *Replay) EstimatePoses(ctx context.Context, frame capture.Frame) ([]pose.Pose, error) {

	res, err := r.Detect(ctx, frame)

	if err != nil {
		return nil, err
	}

	return res.Poses, nil
}

// Detect returns the next recorded poses with the video size they were
// recorded against
func (r *Replay) Detect(ctx context.Context, frame capture.Frame) (Result, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.next >= r.total {
		if !r.loop || r.total == 0 {
			return Result{}, ErrEndOfRecording
		}
		r.next = 0
	}

	poses, video, err := r.rec.Recorded(ctx, r.next)

	if err != nil {
		return Result{}, errors.Wrapf(err, "recorded frame %d", r.next)
	}

	r.next++

	return Result{Poses: poses, Video: video}, nil
}

// Position returns the position of the next recorded frame to serve
func (r *Replay) Position() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next
}
