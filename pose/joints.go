package pose

import "strconv"

// Joint is the index of a body joint in the COCO keypoint vocabulary used by
// single person pose detectors such as MoveNet
type Joint int

/* skeleton keypoints
0: Nose
1: Left Eye
2: Right Eye
3: Left Ear
4: Right Ear
5: Left Shoulder
6: Right Shoulder
7: Left Elbow
8: Right Elbow
9: Left Wrist
10: Right Wrist
11: Left Hip
12: Right Hip
13: Left Knee
14: Right Knee
15: Left Ankle
16: Right Ankle
*/
const (
	Nose Joint = iota
	LeftEye
	RightEye
	LeftEar
	RightEar
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle
)

// NumJoints is the number of keypoints in a pose
const NumJoints = 17

var jointNames = [NumJoints]string{
	"nose",
	"left_eye",
	"right_eye",
	"left_ear",
	"right_ear",
	"left_shoulder",
	"right_shoulder",
	"left_elbow",
	"right_elbow",
	"left_wrist",
	"right_wrist",
	"left_hip",
	"right_hip",
	"left_knee",
	"right_knee",
	"left_ankle",
	"right_ankle",
}

// String returns the joint name as used by the pose-detection output
func (j Joint) String() string {
	if !j.Valid(NumJoints) {
		return "joint(" + strconv.Itoa(int(j)) + ")"
	}
	return jointNames[j]
}

// Valid reports if the joint is within a vocabulary of n joints
func (j Joint) Valid(n int) bool {
	return j >= 0 && int(j) < n
}

// JointByName returns the joint for the given name
func JointByName(name string) (Joint, bool) {
	for i, n := range jointNames {
		if n == name {
			return Joint(i), true
		}
	}
	return 0, false
}
