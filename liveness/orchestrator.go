package liveness

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// State is the orchestrator's observable condition. The variants form a
// closed set; consumers type-switch over them.
type State interface {
	livenessState()
}

// StateIdle: no session running.
type StateIdle struct{}

// StateInProgress: waiting for frames of the given challenge.
type StateInProgress struct {
	Challenge Challenge `json:"challenge"`
	Progress  float64   `json:"progress"`
}

// StateChallengeComplete: a challenge just finished, pass or fail. Transient;
// the orchestrator moves straight on to the next challenge or the verdict.
type StateChallengeComplete struct {
	Challenge Challenge `json:"challenge"`
	Passed    bool      `json:"passed"`
}

// StateComplete: every challenge ran, the verdict is in.
type StateComplete struct {
	Result Result `json:"result"`
}

// StateError: the session cannot continue.
type StateError struct {
	Message string `json:"message"`
}

func (StateIdle) livenessState()              {}
func (StateInProgress) livenessState()        {}
func (StateChallengeComplete) livenessState() {}
func (StateComplete) livenessState()          {}
func (StateError) livenessState()             {}

// FrameProcessor runs the per-frame gesture test. *Detector is the
// production implementation; tests substitute their own.
type FrameProcessor interface {
	Process(obs Observation, challengeType ChallengeType) DetectionResult
	Reset()
}

const stateStreamBuffer = 16

// Orchestrator drives one liveness session through its challenges. Frames
// are processed strictly one at a time: a frame arriving while another is
// still in flight is dropped, never queued. State transitions are atomic
// and happen in frame-arrival order.
type Orchestrator struct {
	mu       sync.Mutex
	inFlight atomic.Bool

	// generation bumps on Start, Stop and every challenge advance. A
	// detection that finishes against an older generation is discarded, so
	// nothing mutates state after Stop.
	generation uint64

	detector FrameProcessor
	// detectorGen is the generation the detector state belongs to. Only
	// touched while holding the in-flight slot.
	detectorGen uint64

	session        Session
	index          int
	results        []ChallengeResult
	state          State
	lastConfidence float64

	states chan State
}

// NewOrchestrator wires an orchestrator around the given frame processor,
// typically NewDetector().
func NewOrchestrator(processor FrameProcessor) *Orchestrator {
	return &Orchestrator{
		detector: processor,
		state:    StateIdle{},
		states:   make(chan State, stateStreamBuffer),
	}
}

// Start begins a session: results cleared, detector state discarded, first
// challenge in progress. Restarting over a running session is allowed and
// invalidates any in-flight detection.
func (o *Orchestrator) Start(session Session) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.generation++
	if len(session.Challenges) == 0 {
		o.setStateLocked(StateError{Message: "session has no challenges"})
		return fmt.Errorf("session %s has no challenges", session.ID)
	}

	o.session = session
	o.index = 0
	o.results = nil
	o.lastConfidence = 0
	o.setStateLocked(StateInProgress{Challenge: session.Challenges[0]})

	slog.Debug("Liveness session started", "session_id", session.ID, "challenges", len(session.Challenges))
	return nil
}

// ProcessFrame feeds one observation to the active challenge and reports
// whether the frame was accepted. Frames are dropped when no challenge is in
// progress, when another frame is still being processed, or when the session
// was stopped or advanced while this one was in flight.
func (o *Orchestrator) ProcessFrame(obs Observation) bool {
	if !o.inFlight.CompareAndSwap(false, true) {
		return false
	}
	defer o.inFlight.Store(false)

	o.mu.Lock()
	inProgress, ok := o.state.(StateInProgress)
	if !ok {
		o.mu.Unlock()
		return false
	}
	gen := o.generation
	challenge := inProgress.Challenge
	o.mu.Unlock()

	// Detection runs outside the state lock. Stop or FailChallenge may land
	// meanwhile; the generation check below catches that.
	if o.detectorGen != gen {
		o.detector.Reset()
		o.detectorGen = gen
	}
	result := o.detector.Process(obs, challenge.Type)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.generation != gen {
		slog.Debug("Discarding stale detection result", "challenge_id", challenge.ID)
		return false
	}

	o.lastConfidence = result.Confidence
	if result.Completed {
		o.recordAndAdvanceLocked(ChallengeResult{
			Challenge:  challenge,
			Passed:     true,
			Confidence: result.Confidence,
		})
	} else {
		o.setStateLocked(StateInProgress{Challenge: challenge, Progress: result.Progress})
	}
	return true
}

// FailChallenge records the active challenge as not passed and moves on.
// The orchestrator never fails a challenge on its own; per-challenge
// timeouts and retry policy live with the caller.
func (o *Orchestrator) FailChallenge() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	inProgress, ok := o.state.(StateInProgress)
	if !ok {
		return false
	}

	o.recordAndAdvanceLocked(ChallengeResult{
		Challenge:  inProgress.Challenge,
		Passed:     false,
		Confidence: o.lastConfidence,
	})
	return true
}

// Stop discards all session state and returns to Idle. Safe in any state;
// a detection still in flight is discarded when it completes.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.generation++
	o.session = Session{}
	o.index = 0
	o.results = nil
	o.lastConfidence = 0
	o.setStateLocked(StateIdle{})
}

// State returns the current state snapshot.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Result returns the session verdict, nil unless the session completed.
func (o *Orchestrator) Result() *Result {
	o.mu.Lock()
	defer o.mu.Unlock()

	if complete, ok := o.state.(StateComplete); ok {
		result := complete.Result
		return &result
	}
	return nil
}

// States streams state transitions for UI binding. The channel is buffered;
// when a consumer falls behind, the oldest update is dropped in favor of the
// newest. State() always has the authoritative snapshot.
func (o *Orchestrator) States() <-chan State {
	return o.states
}

func (o *Orchestrator) recordAndAdvanceLocked(result ChallengeResult) {
	o.generation++
	o.results = append(o.results, result)
	o.setStateLocked(StateChallengeComplete{Challenge: result.Challenge, Passed: result.Passed})
	slog.Debug("Challenge finished",
		"session_id", o.session.ID,
		"challenge_id", result.Challenge.ID,
		"type", result.Challenge.Type,
		"passed", result.Passed)

	o.index++
	if o.index < len(o.session.Challenges) {
		o.lastConfidence = 0
		o.setStateLocked(StateInProgress{Challenge: o.session.Challenges[o.index]})
		return
	}

	passed := true
	for _, r := range o.results {
		if !r.Passed {
			passed = false
			break
		}
	}
	verdict := Result{
		SessionID:  o.session.ID,
		Passed:     passed,
		Challenges: append([]ChallengeResult(nil), o.results...),
	}
	o.setStateLocked(StateComplete{Result: verdict})
	slog.Debug("Liveness session complete", "session_id", o.session.ID, "passed", passed)
}

func (o *Orchestrator) setStateLocked(s State) {
	o.state = s
	select {
	case o.states <- s:
	default:
		// Full buffer: drop the oldest update to make room for this one.
		select {
		case <-o.states:
		default:
		}
		select {
		case o.states <- s:
		default:
		}
	}
}
