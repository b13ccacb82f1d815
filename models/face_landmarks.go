package models

type FaceDetectRequest struct {
	Image string `json:"image"` // Base64 encoded image
}

// FaceLandmarks is one detected face as reported by the landmark provider:
// a bounding box in the coordinates of the submitted image, plus the gesture
// signals liveness detection consumes. Providers that cannot score a signal
// leave its pointer nil.
type FaceLandmarks struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Confidence float64 `json:"confidence"`

	LeftEyeOpen  *float64 `json:"left_eye_open,omitempty"`
	RightEyeOpen *float64 `json:"right_eye_open,omitempty"`
	Smile        *float64 `json:"smile,omitempty"`
	Yaw          float64  `json:"yaw"`
	Pitch        float64  `json:"pitch"`
	TrackingId   *int     `json:"tracking_id,omitempty"`
}
