package pose

import (
	"github.com/pkg/errors"
)

// Connection is a bone drawn between two joints when both are visible
type Connection struct {
	Start Joint
	End   Joint
}

// VisibilityPolicy decides if a joint may be drawn as a point at all,
// independent of its per frame confidence
type VisibilityPolicy func(j Joint) bool

var (
	// DefaultConnections are the bones of the body skeleton covering shoulders,
	// arms, hips and legs.  Eye and ear connections are deliberately left out.
	DefaultConnections = []Connection{
		{LeftShoulder, RightShoulder},
		{LeftShoulder, LeftElbow},
		{LeftElbow, LeftWrist},
		{RightShoulder, RightElbow},
		{RightElbow, RightWrist},
		{LeftShoulder, LeftHip},
		{RightShoulder, RightHip},
		{LeftHip, RightHip},
		{LeftHip, LeftKnee},
		{LeftKnee, LeftAnkle},
		{RightHip, RightKnee},
		{RightKnee, RightAnkle},
	}

	// ExcludeFaceJoints keeps the nose and body joints, dropping eyes and ears
	ExcludeFaceJoints VisibilityPolicy = func(j Joint) bool {
		return j < LeftEye || j > RightEar
	}

	// AllJoints allows every joint to be drawn
	AllJoints VisibilityPolicy = func(Joint) bool { return true }
)

// Skeleton is the validated joint vocabulary size, bone table and joint
// visibility policy shared by every frame
type Skeleton struct {
	joints      int
	connections []Connection
	visible     VisibilityPolicy
}

// NewSkeleton returns a Skeleton after checking every connection references a
// joint within the vocabulary of n joints.  A nil policy allows all joints.
func NewSkeleton(n int, connections []Connection,
	visible VisibilityPolicy) (*Skeleton, error) {

	if n <= 0 {
		return nil, errors.Wrapf(ErrConfiguration, "invalid joint count %d", n)
	}

	for i, c := range connections {
		if !c.Start.Valid(n) || !c.End.Valid(n) {
			return nil, errors.Wrapf(ErrConfiguration,
				"connection %d [%d,%d] outside joint range [0,%d]",
				i, c.Start, c.End, n-1)
		}
	}

	if visible == nil {
		visible = AllJoints
	}

	conns := make([]Connection, len(connections))
	copy(conns, connections)

	return &Skeleton{
		joints:      n,
		connections: conns,
		visible:     visible,
	}, nil
}

// DefaultSkeleton returns the 17 joint body skeleton without face joints
func DefaultSkeleton() *Skeleton {
	s, err := NewSkeleton(NumJoints, DefaultConnections, ExcludeFaceJoints)
	if err != nil {
		// the default table is static
		panic(err)
	}
	return s
}

// Joints returns the size of the joint vocabulary
func (s *Skeleton) Joints() int {
	return s.joints
}

// Connections returns the bone table in declared order
func (s *Skeleton) Connections() []Connection {
	return s.connections
}

// Visible reports if joint j is eligible to be drawn as a point
func (s *Skeleton) Visible(j Joint) bool {
	return s.visible(j)
}
