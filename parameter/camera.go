package parameter

// Third-person follow camera
const (
	// CameraFollowDistance is how far behind the character the camera trails
	CameraFollowDistance = 2.0

	// CameraFollowHeight is the camera's height above the character's feet
	CameraFollowHeight = 1.6

	// CameraLookAtHeight is the aim point above the character's feet
	CameraLookAtHeight = 1.2

	// CameraFollowLerp is the per-tick fraction of the gap closed toward the trailing point
	// Exponential decay, frame-rate coupled
	CameraFollowLerp = 0.1
)

// Initial camera placement
const (
	CameraStartX = 0.0
	CameraStartY = 1.6
	CameraStartZ = 2.0
)
