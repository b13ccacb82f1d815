package models

import "go-identity-capture/liveness"

// SessionRequest is the sessionId/nonce pair every capture call repeats.
type SessionRequest struct {
	SessionId string `json:"session_id"`
	Nonce     string `json:"nonce"`
}

type MrzScanRequest struct {
	SessionId string `json:"session_id"`
	Nonce     string `json:"nonce"`
	Text      string `json:"text"` // raw OCR output, may span multiple lines
}

type DocumentQualityRequest struct {
	SessionId string `json:"session_id"`
	Nonce     string `json:"nonce"`
	Image     string `json:"image"` // Base64 encoded image
}

type SelfieQualityRequest struct {
	SessionId string         `json:"session_id"`
	Nonce     string         `json:"nonce"`
	Image     string         `json:"image"`          // Base64 encoded image
	Face      *FaceLandmarks `json:"face,omitempty"` // omit to let the landmark provider locate the face
}

type LivenessFrameRequest struct {
	SessionId   string                `json:"session_id"`
	Nonce       string                `json:"nonce"`
	Observation *liveness.Observation `json:"observation,omitempty"`
	Frame       string                `json:"frame,omitempty"` // Base64 image, routed through the landmark provider
}

// EvidenceRequest carries every capture artifact in one request; the
// liveness verdict is read from the server-side session instead.
type EvidenceRequest struct {
	SessionId     string         `json:"session_id"`
	Nonce         string         `json:"nonce"`
	MrzText       string         `json:"mrz_text"`
	DocumentImage string         `json:"document_image"` // Base64 encoded image
	SelfieImage   string         `json:"selfie_image"`   // Base64 encoded image
	Face          *FaceLandmarks `json:"face,omitempty"`
}
