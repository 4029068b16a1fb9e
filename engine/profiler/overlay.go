package profiler

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/simulations/common"
	"github.com/go-gl/mathgl/mgl64"
)

// FPS converts one frame's elapsed seconds into whole frames per second.
// A non-positive delta reports 0.
func FPS(delta float64) int {
	if delta <= 0 {
		return 0
	}
	return int(math.Floor(1 / delta))
}

// OverlayText formats the debug line shown over the scene, with floored
// coordinates and the camera orientation in whole degrees.
//
// Parameters:
//   - fps: the frame rate to display
//   - position: the camera position
//   - pitch, yaw: the camera orientation in radians
//
// Returns:
//   - string: "FPS: n | Position: [x y z] | Rotation: [pitch yaw]"
func OverlayText(fps int, position mgl64.Vec3, pitch, yaw float64) string {
	p := common.FloorVec3(position)
	return fmt.Sprintf("FPS: %d | Position: [%d %d %d] | Rotation: [%d %d]",
		fps, p[0], p[1], p[2], common.FloorDegrees(pitch), common.FloorDegrees(yaw))
}
