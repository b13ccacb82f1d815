package liveness

// Observation is one frame of face-landmark data from an external detector.
// Probabilities are 0-1; yaw and pitch are degrees. Optional fields that the
// active gesture needs but the detector did not supply make that frame count
// as "not detected", never as an error.
type Observation struct {
	LeftEyeOpen  *float64 `json:"left_eye_open,omitempty"`
	RightEyeOpen *float64 `json:"right_eye_open,omitempty"`
	Smile        *float64 `json:"smile,omitempty"`
	Yaw          float64  `json:"yaw"`
	Pitch        float64  `json:"pitch"`
	TrackingID   *int     `json:"tracking_id,omitempty"`
}

// DetectionResult reports one frame's contribution to the active challenge.
type DetectionResult struct {
	Detected   bool    `json:"detected"`
	Completed  bool    `json:"completed"`
	Progress   float64 `json:"progress"`
	Confidence float64 `json:"confidence"`
}

const (
	blinkClosedThreshold = 0.3
	blinkOpenThreshold   = 0.5
	smileThreshold       = 0.6
	turnThresholdDeg     = 20.0
	nodThresholdDeg      = 10.0

	// A challenge completes after this many consecutive detected frames;
	// the history buffer keeps twice that.
	consecutiveRequired = 5
	historyCap          = 2 * consecutiveRequired

	trackedConfidence   = 0.9
	untrackedConfidence = 0.7
)

type blinkPhase int

const (
	blinkOpen blinkPhase = iota
	blinkClosing
	blinkClosed
	blinkOpening
)

// Detector accumulates per-gesture state across the frames of one challenge.
// One instance serves a whole session; Reset must run when a new challenge
// starts. Not safe for concurrent use, the orchestrator serializes access.
type Detector struct {
	blink         blinkPhase
	baselineYaw   *float64
	baselinePitch *float64
	history       []bool
	progress      float64
}

func NewDetector() *Detector {
	return &Detector{}
}

// Reset clears all per-gesture state for the next challenge.
func (d *Detector) Reset() {
	d.blink = blinkOpen
	d.baselineYaw = nil
	d.baselinePitch = nil
	d.history = nil
	d.progress = 0
}

// Process evaluates one observation against the gesture under test and
// updates the completion window. Completion needs the last five frames all
// detected; progress counts detections within that window.
func (d *Detector) Process(obs Observation, challengeType ChallengeType) DetectionResult {
	detected := d.detect(obs, challengeType)

	d.history = append(d.history, detected)
	if len(d.history) > historyCap {
		d.history = d.history[len(d.history)-historyCap:]
	}

	positives := 0
	window := d.history
	if len(window) > consecutiveRequired {
		window = window[len(window)-consecutiveRequired:]
	}
	for _, hit := range window {
		if hit {
			positives++
		}
	}

	d.progress = float64(positives) / consecutiveRequired
	completed := len(d.history) >= consecutiveRequired && positives == consecutiveRequired

	confidence := untrackedConfidence
	if obs.TrackingID != nil {
		confidence = trackedConfidence
	}

	return DetectionResult{
		Detected:   detected,
		Completed:  completed,
		Progress:   d.progress,
		Confidence: confidence,
	}
}

func (d *Detector) detect(obs Observation, challengeType ChallengeType) bool {
	switch challengeType {
	case ChallengeBlink:
		return d.detectBlink(obs)
	case ChallengeSmile:
		return obs.Smile != nil && *obs.Smile > smileThreshold
	case ChallengeTurnLeft:
		return d.yawDelta(obs) > turnThresholdDeg
	case ChallengeTurnRight:
		return d.yawDelta(obs) < -turnThresholdDeg
	case ChallengeNodUp:
		return d.pitchDelta(obs) > nodThresholdDeg
	case ChallengeNodDown:
		return d.pitchDelta(obs) < -nodThresholdDeg
	}
	return false
}

// detectBlink walks a four-phase machine over the average eye-open
// probability: open, closing, closed, opening. The opening-to-open
// transition is the blink; it reports true for that frame only. A single
// low frame does not count, the eye has to stay shut for two.
func (d *Detector) detectBlink(obs Observation) bool {
	if obs.LeftEyeOpen == nil || obs.RightEyeOpen == nil {
		return false
	}
	avg := (*obs.LeftEyeOpen + *obs.RightEyeOpen) / 2

	switch d.blink {
	case blinkOpen:
		if avg < blinkClosedThreshold {
			d.blink = blinkClosing
		}
	case blinkClosing:
		if avg < blinkClosedThreshold {
			d.blink = blinkClosed
		} else {
			d.blink = blinkOpen
		}
	case blinkClosed:
		if avg > blinkClosedThreshold {
			d.blink = blinkOpening
		}
	case blinkOpening:
		if avg > blinkOpenThreshold {
			d.blink = blinkOpen
			return true
		}
		if avg < blinkClosedThreshold {
			d.blink = blinkClosed
		}
	}
	return false
}

// yawDelta returns the rotation relative to the first frame of the
// challenge. That first frame only records the baseline and reads as zero.
func (d *Detector) yawDelta(obs Observation) float64 {
	if d.baselineYaw == nil {
		yaw := obs.Yaw
		d.baselineYaw = &yaw
		return 0
	}
	return obs.Yaw - *d.baselineYaw
}

func (d *Detector) pitchDelta(obs Observation) float64 {
	if d.baselinePitch == nil {
		pitch := obs.Pitch
		d.baselinePitch = &pitch
		return 0
	}
	return obs.Pitch - *d.baselinePitch
}
