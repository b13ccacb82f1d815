package models

import (
	"go-identity-capture/liveness"
	"go-identity-capture/mrz"
	"go-identity-capture/quality"
)

// CaptureEvidence is everything a signed evidence token attests to: the
// parsed travel document, both quality verdicts and the liveness result,
// all gathered under one capture session.
type CaptureEvidence struct {
	SessionId       string
	Document        *mrz.Data
	DocumentQuality quality.Result
	SelfieQuality   quality.Result
	Liveness        liveness.Result
}
