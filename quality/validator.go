package quality

import (
	"fmt"
	"log/slog"

	"go-identity-capture/pixels"
)

// Severity grades a quality issue. Errors invalidate the capture, warnings
// are surfaced to the user but let it through.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue types reported by the validator.
const (
	IssueBlur           = "blur"
	IssueUnderexposed   = "underexposed"
	IssueOverexposed    = "overexposed"
	IssueGlare          = "glare"
	IssueFaceMissing    = "face_not_detected"
	IssueFaceConfidence = "low_face_confidence"
	IssueFaceTooSmall   = "face_too_small"
	IssueFaceOffCenter  = "face_off_center"
)

// Issue is a single quality finding on a captured frame.
type Issue struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Result is the outcome of validating one frame. Every check runs and every
// finding is collected; Valid only means no error-grade issue was found.
type Result struct {
	Valid   bool    `json:"valid"`
	Issues  []Issue `json:"issues"`
	Metrics Metrics `json:"metrics"`
}

// Face is an externally detected face: bounding box in pixel coordinates of
// the analyzed frame plus detector confidence in [0, 1].
type Face struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Confidence float64 `json:"confidence"`
}

// Thresholds tune the validator. Zero values are meaningful (a
// MinBlurScore of 0 disables the blur gate), so construct from
// DefaultThresholds and override fields rather than filling in from scratch.
type Thresholds struct {
	MinBlurScore      float64 `json:"min_blur_score"`
	MinBrightness     float64 `json:"min_brightness"`
	MaxBrightness     float64 `json:"max_brightness"`
	MaxGlareRatio     float64 `json:"max_glare_ratio"`
	MinFaceRatio      float64 `json:"min_face_ratio"`
	MinFaceConfidence float64 `json:"min_face_confidence"`
	MaxCenterOffset   float64 `json:"max_center_offset"`
}

// DefaultThresholds returns the tuning used in production capture flows.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinBlurScore:      100.0,
		MinBrightness:     0.3,
		MaxBrightness:     0.85,
		MaxGlareRatio:     0.05,
		MinFaceRatio:      0.2,
		MinFaceConfidence: 0.7,
		MaxCenterOffset:   0.2,
	}
}

// Validator grades document and selfie captures against its thresholds.
type Validator struct {
	thresholds Thresholds
}

func NewValidator(thresholds Thresholds) *Validator {
	return &Validator{thresholds: thresholds}
}

// ValidateDocument grades a document capture on blur, exposure and glare.
func (v *Validator) ValidateDocument(buf *pixels.Buffer) Result {
	metrics := Compute(buf)
	issues := v.frameIssues(metrics)

	if metrics.GlareRatio > v.thresholds.MaxGlareRatio {
		issues = append(issues, Issue{
			Type:     IssueGlare,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("glare covers %.1f%% of the frame (limit %.1f%%)", metrics.GlareRatio*100, v.thresholds.MaxGlareRatio*100),
		})
	}

	return v.finish("document", metrics, issues)
}

// ValidateSelfie grades a selfie capture on blur and exposure plus the
// position, size and confidence of the externally detected face. A nil face
// means the detector found none.
func (v *Validator) ValidateSelfie(buf *pixels.Buffer, face *Face) Result {
	metrics := Compute(buf)
	issues := v.frameIssues(metrics)
	issues = append(issues, v.faceIssues(buf, face)...)

	return v.finish("selfie", metrics, issues)
}

// frameIssues runs the checks shared by document and selfie captures.
func (v *Validator) frameIssues(metrics Metrics) []Issue {
	issues := []Issue{}

	if metrics.BlurScore < v.thresholds.MinBlurScore {
		issues = append(issues, Issue{
			Type:     IssueBlur,
			Severity: SeverityError,
			Message:  fmt.Sprintf("image too blurry (score %.1f, minimum %.1f)", metrics.BlurScore, v.thresholds.MinBlurScore),
		})
	}
	if metrics.Brightness < v.thresholds.MinBrightness {
		issues = append(issues, Issue{
			Type:     IssueUnderexposed,
			Severity: SeverityError,
			Message:  fmt.Sprintf("image too dark (brightness %.2f, minimum %.2f)", metrics.Brightness, v.thresholds.MinBrightness),
		})
	}
	if metrics.Brightness > v.thresholds.MaxBrightness {
		issues = append(issues, Issue{
			Type:     IssueOverexposed,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("image too bright (brightness %.2f, maximum %.2f)", metrics.Brightness, v.thresholds.MaxBrightness),
		})
	}

	return issues
}

func (v *Validator) faceIssues(buf *pixels.Buffer, face *Face) []Issue {
	if face == nil {
		return []Issue{{
			Type:     IssueFaceMissing,
			Severity: SeverityError,
			Message:  "face not detected",
		}}
	}

	var issues []Issue

	if face.Confidence < v.thresholds.MinFaceConfidence {
		issues = append(issues, Issue{
			Type:     IssueFaceConfidence,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("face detection confidence %.2f below %.2f", face.Confidence, v.thresholds.MinFaceConfidence),
		})
	}

	imageArea := float64(buf.Width) * float64(buf.Height)
	if imageArea > 0 {
		ratio := (face.Width * face.Height) / imageArea
		if ratio < v.thresholds.MinFaceRatio {
			issues = append(issues, Issue{
				Type:     IssueFaceTooSmall,
				Severity: SeverityError,
				Message:  fmt.Sprintf("face too small (%.1f%% of frame, minimum %.1f%%)", ratio*100, v.thresholds.MinFaceRatio*100),
			})
		}

		offsetX := (face.X + face.Width/2 - float64(buf.Width)/2) / float64(buf.Width)
		offsetY := (face.Y + face.Height/2 - float64(buf.Height)/2) / float64(buf.Height)
		if abs(offsetX) > v.thresholds.MaxCenterOffset || abs(offsetY) > v.thresholds.MaxCenterOffset {
			issues = append(issues, Issue{
				Type:     IssueFaceOffCenter,
				Severity: SeverityWarning,
				Message:  "face off-center, ask the user to look straight at the camera",
			})
		}
	}

	return issues
}

func (v *Validator) finish(kind string, metrics Metrics, issues []Issue) Result {
	valid := true
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			valid = false
			break
		}
	}

	if !valid {
		slog.Debug("Capture rejected by quality checks", "kind", kind, "issues", len(issues))
	}

	return Result{Valid: valid, Issues: issues, Metrics: metrics}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
