package pose

import (
	"github.com/pkg/errors"
)

// ErrConfiguration is the cause of every error caused by a mismatch between a
// connection table, the joint vocabulary and the poses supplied.  These are
// setup faults and are never recovered per frame.
var ErrConfiguration = errors.New("pose configuration error")

// Keypoint is a single detected joint position with its confidence score
type Keypoint struct {
	// Joint is the index of the keypoint in the vocabulary
	Joint Joint `json:"-"`
	// X and Y are the coordinates of the joint in pixels
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// Score is the detection confidence in the range [0, 1]
	Score float64 `json:"score"`
	// Name is the optional joint name given by the detector
	Name string `json:"name,omitempty"`
}

// Pose is the ordered set of keypoints for one detected body.  The index of
// each keypoint is its Joint.
type Pose struct {
	Keypoints []Keypoint `json:"keypoints"`
	// Score is the overall pose confidence, when the detector provides one
	Score float64 `json:"score,omitempty"`
}

// Validate checks the pose has at least n keypoints
func (p Pose) Validate(n int) error {
	if len(p.Keypoints) < n {
		return errors.Wrapf(ErrConfiguration, "pose has %d keypoints, need %d",
			len(p.Keypoints), n)
	}
	return nil
}

// Keypoint returns the keypoint at joint j
func (p Pose) Keypoint(j Joint) Keypoint {
	return p.Keypoints[j]
}

// Len returns the number of keypoints
func (p Pose) Len() int {
	return len(p.Keypoints)
}

// Index assigns each keypoint its Joint from its position in the slice.  It
// is used after decoding detector output where the index is implicit.
func (p *Pose) Index() {
	for i := range p.Keypoints {
		p.Keypoints[i].Joint = Joint(i)
	}
}

// Clone returns a deep copy of the pose
func (p Pose) Clone() Pose {
	kps := make([]Keypoint, len(p.Keypoints))
	copy(kps, p.Keypoints)
	return Pose{Keypoints: kps, Score: p.Score}
}
