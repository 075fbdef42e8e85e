package recording

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-poseoverlay/capture"
	"github.com/swdee/go-poseoverlay/detector"
	"github.com/swdee/go-poseoverlay/geometry"
	"github.com/swdee/go-poseoverlay/pose"
)

var vga = geometry.Dimensions{Width: 640, Height: 480}

func openStore(t *testing.T) *Store {
	s, err := Open(filepath.Join(t.TempDir(), "poses.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestAppendAndFrame(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	p := pose.Pose{Keypoints: []pose.Keypoint{
		{X: 1, Y: 2, Score: 0.9, Name: "nose"},
		{X: 3, Y: 4, Score: 0.1, Name: "left_eye"},
	}, Score: 0.8}

	require.NoError(t, s.Append(ctx, Frame{Index: 7, Video: vga, Poses: []pose.Pose{p}}))
	require.NoError(t, s.Append(ctx, Frame{Index: 3, Video: vga}))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// position order follows frame index
	f, err := s.Frame(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), f.Index)
	assert.Empty(t, f.Poses)

	f, err = s.Frame(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), f.Index)
	assert.Equal(t, vga, f.Video)
	require.Len(t, f.Poses, 1)
	assert.Equal(t, 0.8, f.Poses[0].Score)
	assert.Equal(t, pose.LeftEye, f.Poses[0].Keypoints[1].Joint)
	assert.Equal(t, 3.0, f.Poses[0].Keypoints[1].X)

	_, err = s.Frame(ctx, 2)
	assert.Equal(t, ErrNotFound, errors.Cause(err))
}

func TestAppendReplaces(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	require.NoError(t, s.Append(ctx, Frame{Index: 1, Video: vga}))
	require.NoError(t, s.Append(ctx, Frame{Index: 1, Video: vga,
		Poses: []pose.Pose{{Score: 0.5}}}))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	poses, video, err := s.Recorded(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, vga, video)
	require.Len(t, poses, 1)
	assert.Equal(t, 0.5, poses[0].Score)
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	require.NoError(t, s.Append(ctx, Frame{Index: 10, Video: vga}))

	input := strings.Join([]string{
		`[{"keypoints":[{"x":100,"y":50,"score":0.9,"name":"nose"}],"score":0.9}]`,
		``,
		`[]`,
		`[{"keypoints":[],"score":0.1},{"keypoints":[],"score":0.2}]`,
	}, "\n")

	n, err := s.Import(ctx, strings.NewReader(input), vga)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	f, err := s.Frame(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(11), f.Index)
	require.Len(t, f.Poses, 1)
	assert.Equal(t, 100.0, f.Poses[0].Keypoints[0].X)

	f, err = s.Frame(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(13), f.Index)
	assert.Len(t, f.Poses, 2)
}

func TestImportBadLine(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	n, err := s.Import(ctx, strings.NewReader("[]\n{not json\n[]"), vga)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, 1, n)
}

func TestReplayFromStore(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	_, err := s.Import(ctx, strings.NewReader("[{\"keypoints\":[],\"score\":0.3}]\n[]\n"), vga)
	require.NoError(t, err)

	r, err := detector.NewReplay(ctx, s, false)
	require.NoError(t, err)

	poses, err := r.EstimatePoses(ctx, captureFrame())
	require.NoError(t, err)
	require.Len(t, poses, 1)
	assert.Equal(t, 0.3, poses[0].Score)

	poses, err = r.EstimatePoses(ctx, captureFrame())
	require.NoError(t, err)
	assert.Empty(t, poses)

	_, err = r.EstimatePoses(ctx, captureFrame())
	assert.Equal(t, detector.ErrEndOfRecording, errors.Cause(err))
}

func TestReplayKeepsRecordedSize(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	_, err := s.Import(ctx, strings.NewReader("[]\n"), vga)
	require.NoError(t, err)

	r, err := detector.NewReplay(ctx, s, false)
	require.NoError(t, err)

	hd := capture.Frame{Video: geometry.Dimensions{Width: 1280, Height: 720}}

	res, err := r.Detect(ctx, hd)
	require.NoError(t, err)
	assert.Equal(t, vga, res.Video)
}

func captureFrame() capture.Frame {
	return capture.Frame{Video: vga}
}
