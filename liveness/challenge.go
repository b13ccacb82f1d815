package liveness

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ChallengeType names a prompted gesture.
type ChallengeType string

const (
	ChallengeBlink     ChallengeType = "blink"
	ChallengeSmile     ChallengeType = "smile"
	ChallengeTurnLeft  ChallengeType = "turn_left"
	ChallengeTurnRight ChallengeType = "turn_right"
	ChallengeNodUp     ChallengeType = "nod_up"
	ChallengeNodDown   ChallengeType = "nod_down"
)

// AllChallengeTypes lists every supported gesture in prompt order.
var AllChallengeTypes = []ChallengeType{
	ChallengeBlink,
	ChallengeSmile,
	ChallengeTurnLeft,
	ChallengeTurnRight,
	ChallengeNodUp,
	ChallengeNodDown,
}

var instructions = map[ChallengeType]string{
	ChallengeBlink:     "Blink slowly",
	ChallengeSmile:     "Smile at the camera",
	ChallengeTurnLeft:  "Turn your head to the left",
	ChallengeTurnRight: "Turn your head to the right",
	ChallengeNodUp:     "Tilt your head up",
	ChallengeNodDown:   "Tilt your head down",
}

// Instruction returns the user-facing prompt for the gesture.
func (t ChallengeType) Instruction() string {
	return instructions[t]
}

// Known reports whether t is a supported gesture type.
func (t ChallengeType) Known() bool {
	_, ok := instructions[t]
	return ok
}

// Challenge is one prompted gesture within a liveness session.
type Challenge struct {
	ID          string        `json:"id"`
	Type        ChallengeType `json:"type"`
	Instruction string        `json:"instruction"`
	Order       int           `json:"order"`
}

// Session is an ordered run of challenges with a hard expiry. The
// orchestrator never looks at ExpiresAt; enforcing it is the caller's job.
type Session struct {
	ID         string      `json:"id"`
	Challenges []Challenge `json:"challenges"`
	ExpiresAt  time.Time   `json:"expires_at"`
}

// NewSession builds a session running the given gestures in order, each
// under a fresh challenge id.
func NewSession(id string, types []ChallengeType, ttl time.Duration) Session {
	challenges := make([]Challenge, 0, len(types))
	for i, t := range types {
		challenges = append(challenges, Challenge{
			ID:          uuid.New().String(),
			Type:        t,
			Instruction: t.Instruction(),
			Order:       i,
		})
	}
	return Session{
		ID:         id,
		Challenges: challenges,
		ExpiresAt:  time.Now().Add(ttl),
	}
}

// Expired reports whether the session passed its expiry.
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// RandomChallengeTypes picks count distinct gestures in random order, for
// callers that want an unpredictable session. Count is clamped to the number
// of supported gestures.
func RandomChallengeTypes(count int) []ChallengeType {
	if count < 1 {
		count = 1
	}
	if count > len(AllChallengeTypes) {
		count = len(AllChallengeTypes)
	}

	types := make([]ChallengeType, 0, count)
	for _, i := range rand.Perm(len(AllChallengeTypes))[:count] {
		types = append(types, AllChallengeTypes[i])
	}
	return types
}

// ChallengeResult records the outcome of a single challenge.
type ChallengeResult struct {
	Challenge  Challenge `json:"challenge"`
	Passed     bool      `json:"passed"`
	Confidence float64   `json:"confidence"`
}

// Result is the session verdict: passed only when every challenge passed.
type Result struct {
	SessionID  string            `json:"session_id"`
	Passed     bool              `json:"passed"`
	Challenges []ChallengeResult `json:"challenges"`
}
