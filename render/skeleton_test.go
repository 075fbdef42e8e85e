package render

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-poseoverlay/pose"
	"gonum.org/v1/gonum/spatial/r2"
)

// scoredPose returns a pose with every keypoint at the given score and a
// distinct position
func scoredPose(score float64) pose.Pose {
	p := pose.Pose{Keypoints: make([]pose.Keypoint, pose.NumJoints)}

	for i := range p.Keypoints {
		p.Keypoints[i] = pose.Keypoint{
			Joint: pose.Joint(i),
			X:     float64(10 + i*10),
			Y:     float64(5 + i*5),
			Score: score,
		}
	}

	return p
}

func countKind(cmds []Command, k Kind) int {
	n := 0
	for _, c := range cmds {
		if c.Kind == k {
			n++
		}
	}
	return n
}

func TestCommandsAllConfident(t *testing.T) {
	r := NewSkeletonRenderer(pose.DefaultSkeleton(), DefaultSkeletonStyle())

	cmds, err := r.Commands(scoredPose(0.9))
	require.NoError(t, err)

	// 12 bones then 13 joints, the 4 face joints are filtered
	assert.Equal(t, 12, countKind(cmds, KindLine))
	assert.Equal(t, 13, countKind(cmds, KindCircle))
	require.Len(t, cmds, 25)

	for i, c := range pose.DefaultConnections {
		assert.Equal(t, KindLine, cmds[i].Kind)
		assert.Equal(t, float64(10+int(c.Start)*10), cmds[i].From.X)
		assert.Equal(t, float64(10+int(c.End)*10), cmds[i].To.X)
		assert.Equal(t, Green, cmds[i].Color)
		assert.Equal(t, 3.0, cmds[i].Width)
	}

	// nose is first and highlighted
	assert.Equal(t, Red, cmds[12].Color)
	assert.Equal(t, r2.Vec{X: 10, Y: 5}, cmds[12].Center)
	assert.Equal(t, 5.0, cmds[12].Radius)

	// remaining joints in joint order from the left shoulder
	for i, c := range cmds[13:] {
		j := pose.LeftShoulder + pose.Joint(i)
		assert.Equal(t, Blue, c.Color)
		assert.Equal(t, float64(10+int(j)*10), c.Center.X)
	}
}

func TestCommandsLinesBeforeCircles(t *testing.T) {
	r := NewSkeletonRenderer(pose.DefaultSkeleton(), DefaultSkeletonStyle())

	scores := []float64{0.1, 0.3, 0.31, 0.5, 1}

	for _, s := range scores {
		p := scoredPose(s)
		// mix in some low confidence joints
		p.Keypoints[pose.LeftElbow].Score = 0.2
		p.Keypoints[pose.RightHip].Score = 0

		cmds, err := r.Commands(p)
		require.NoError(t, err)

		seenCircle := false
		for _, c := range cmds {
			if c.Kind == KindCircle {
				seenCircle = true
			}
			if c.Kind == KindLine {
				assert.False(t, seenCircle, "line after circle at score %v", s)
			}
		}
	}
}

func TestCommandsConfidenceGate(t *testing.T) {
	skel, err := pose.NewSkeleton(pose.NumJoints,
		[]pose.Connection{{pose.LeftShoulder, pose.RightShoulder}}, pose.ExcludeFaceJoints)
	require.NoError(t, err)

	r := NewSkeletonRenderer(skel, DefaultSkeletonStyle())

	tests := []struct {
		name      string
		leftScore float64
		wantLine  bool
	}{
		{"below threshold", 0.1, false},
		{"at threshold", 0.3, false},
		{"just above threshold", 0.31, true},
		{"confident", 0.9, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := scoredPose(0)
			p.Keypoints[pose.LeftShoulder].Score = tc.leftScore
			p.Keypoints[pose.RightShoulder].Score = 0.9

			cmds, err := r.Commands(p)
			require.NoError(t, err)

			if tc.wantLine {
				assert.Equal(t, 1, countKind(cmds, KindLine))
				assert.Equal(t, 2, countKind(cmds, KindCircle))
			} else {
				assert.Equal(t, 0, countKind(cmds, KindLine))
				assert.Equal(t, 1, countKind(cmds, KindCircle))
			}
		})
	}
}

func TestCommandsFaceJointsHidden(t *testing.T) {
	r := NewSkeletonRenderer(pose.DefaultSkeleton(), DefaultSkeletonStyle())

	p := scoredPose(0)
	for j := pose.LeftEye; j <= pose.RightEar; j++ {
		p.Keypoints[j].Score = 1
	}

	cmds, err := r.Commands(p)
	require.NoError(t, err)
	assert.Empty(t, cmds)
}

func TestCommandsShoulderExample(t *testing.T) {
	r := NewSkeletonRenderer(pose.DefaultSkeleton(), DefaultSkeletonStyle())

	p := scoredPose(0)
	p.Keypoints[pose.LeftShoulder] = pose.Keypoint{Joint: pose.LeftShoulder, X: 540, Y: 50, Score: 0.9}
	p.Keypoints[pose.RightShoulder] = pose.Keypoint{Joint: pose.RightShoulder, X: 440, Y: 50, Score: 0.9}

	cmds, err := r.Commands(p)
	require.NoError(t, err)
	require.Len(t, cmds, 3)

	assert.Equal(t, Line(r2.Vec{X: 540, Y: 50}, r2.Vec{X: 440, Y: 50}, Green, 3), cmds[0])
	assert.Equal(t, Circle(r2.Vec{X: 540, Y: 50}, 5, Blue), cmds[1])
	assert.Equal(t, Circle(r2.Vec{X: 440, Y: 50}, 5, Blue), cmds[2])
}

func TestCommandsShortPose(t *testing.T) {
	r := NewSkeletonRenderer(pose.DefaultSkeleton(), DefaultSkeletonStyle())

	p := scoredPose(0.9)
	p.Keypoints = p.Keypoints[:10]

	_, err := r.Commands(p)
	require.Error(t, err)
	assert.Equal(t, pose.ErrConfiguration, errors.Cause(err))
}

func TestCommandsDeterministic(t *testing.T) {
	r := NewSkeletonRenderer(pose.DefaultSkeleton(), DefaultSkeletonStyle())
	p := scoredPose(0.6)

	a, err := r.Commands(p)
	require.NoError(t, err)
	b, err := r.Commands(p)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCustomStyle(t *testing.T) {
	style := DefaultSkeletonStyle()
	style.Threshold = 0.8
	style.JointRadius = 2

	r := NewSkeletonRenderer(pose.DefaultSkeleton(), style)

	cmds, err := r.Commands(scoredPose(0.7))
	require.NoError(t, err)
	assert.Empty(t, cmds)

	cmds, err = r.Commands(scoredPose(0.81))
	require.NoError(t, err)
	require.NotEmpty(t, cmds)
	assert.Equal(t, 2.0, cmds[len(cmds)-1].Radius)
}
