package models

import (
	"go-identity-capture/liveness"
	"go-identity-capture/mrz"
)

type CaptureStartResponse struct {
	SessionId string           `json:"session_id"`
	Nonce     string           `json:"nonce"`
	Liveness  liveness.Session `json:"liveness"`
}

type MrzScanResponse struct {
	Found bool      `json:"found"`
	Data  *mrz.Data `json:"data,omitempty"`
}

// LivenessFrameResponse is the state snapshot returned after every frame or
// fail call. Accepted is false when the frame was dropped.
type LivenessFrameResponse struct {
	Accepted  bool                `json:"accepted"`
	State     string              `json:"state"`
	Challenge *liveness.Challenge `json:"challenge,omitempty"`
	Progress  float64             `json:"progress"`
	Result    *liveness.Result    `json:"result,omitempty"`
	Error     string              `json:"error,omitempty"`
}

type EvidenceResponse struct {
	Jwt string `json:"jwt"`
}
