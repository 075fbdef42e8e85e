/*
go-poseoverlay renders pose estimation keypoints as a mirrored skeleton
overlay on a video display surface.

Each frame is processed independently.  Keypoints produced by a pose detector
in source video pixel space are mapped to display space by a
geometry.Transform, mirroring the X axis to match a front facing camera's self
view, then a render.SkeletonRenderer turns the confident joints and bones into
line and circle draw commands which are executed against a render.Surface.

The Pipeline type wraps the two pure steps, the Runner drives the pipeline
from a capture.Source and detector.Detector one frame at a time.

See example code and usage in the examples subdirectory.
*/
package poseoverlay
