package liveness

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeProcessor returns scripted results in order and can block inside
// Process so tests can hold a frame in flight deliberately.
type fakeProcessor struct {
	mu     sync.Mutex
	queue  []DetectionResult
	calls  int
	resets int

	started chan struct{}
	release chan struct{}
}

func (f *fakeProcessor) Process(Observation, ChallengeType) DetectionResult {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.queue) == 0 {
		return DetectionResult{}
	}
	next := f.queue[0]
	f.queue = f.queue[1:]
	return next
}

func (f *fakeProcessor) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
}

func (f *fakeProcessor) counts() (calls, resets int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls, f.resets
}

func testSession(types ...ChallengeType) Session {
	return NewSession("test-session", types, time.Minute)
}

func drainStates(o *Orchestrator) []State {
	var drained []State
	for {
		select {
		case s := <-o.States():
			drained = append(drained, s)
		default:
			return drained
		}
	}
}

func TestOrchestratorHappyPath(t *testing.T) {
	fake := &fakeProcessor{queue: []DetectionResult{
		{Detected: true, Progress: 0.2, Confidence: 0.9},
		{Detected: true, Completed: true, Progress: 1, Confidence: 0.9},
		{Detected: true, Completed: true, Progress: 1, Confidence: 0.7},
	}}
	o := NewOrchestrator(fake)

	session := testSession(ChallengeBlink, ChallengeSmile)
	require.NoError(t, o.Start(session))
	require.Nil(t, o.Result())

	inProgress, ok := o.State().(StateInProgress)
	require.True(t, ok)
	require.Equal(t, session.Challenges[0].ID, inProgress.Challenge.ID)

	require.True(t, o.ProcessFrame(eyesOpen(0.9)))
	inProgress, ok = o.State().(StateInProgress)
	require.True(t, ok)
	require.InDelta(t, 0.2, inProgress.Progress, 1e-9)

	require.True(t, o.ProcessFrame(eyesOpen(0.9)))
	inProgress, ok = o.State().(StateInProgress)
	require.True(t, ok)
	require.Equal(t, session.Challenges[1].ID, inProgress.Challenge.ID)

	require.True(t, o.ProcessFrame(smiling(0.9)))
	_, ok = o.State().(StateComplete)
	require.True(t, ok)

	result := o.Result()
	require.NotNil(t, result)
	require.Equal(t, session.ID, result.SessionID)
	require.True(t, result.Passed)
	require.Len(t, result.Challenges, 2)
	require.True(t, result.Challenges[0].Passed)
	require.InDelta(t, 0.9, result.Challenges[0].Confidence, 1e-9)
	require.True(t, result.Challenges[1].Passed)
	require.InDelta(t, 0.7, result.Challenges[1].Confidence, 1e-9)

	// A frame after the verdict is dropped without reaching the detector.
	require.False(t, o.ProcessFrame(smiling(0.9)))
	calls, resets := fake.counts()
	require.Equal(t, 3, calls)
	require.Equal(t, 2, resets)

	states := drainStates(o)
	require.Len(t, states, 6)
	require.IsType(t, StateInProgress{}, states[0])
	require.IsType(t, StateInProgress{}, states[1])
	require.IsType(t, StateChallengeComplete{}, states[2])
	require.True(t, states[2].(StateChallengeComplete).Passed)
	require.IsType(t, StateInProgress{}, states[3])
	require.IsType(t, StateChallengeComplete{}, states[4])
	require.IsType(t, StateComplete{}, states[5])
}

func TestOrchestratorStartRequiresChallenges(t *testing.T) {
	fake := &fakeProcessor{}
	o := NewOrchestrator(fake)

	require.Error(t, o.Start(Session{ID: "empty"}))
	_, ok := o.State().(StateError)
	require.True(t, ok)
	require.False(t, o.ProcessFrame(eyesOpen(0.9)))
	require.Nil(t, o.Result())

	// The error is not terminal, a proper session can still start.
	require.NoError(t, o.Start(testSession(ChallengeBlink)))
	_, ok = o.State().(StateInProgress)
	require.True(t, ok)
}

func TestOrchestratorFailChallenge(t *testing.T) {
	t.Run("without frames the confidence is zero", func(t *testing.T) {
		fake := &fakeProcessor{queue: []DetectionResult{
			{Detected: true, Completed: true, Confidence: 0.9},
		}}
		o := NewOrchestrator(fake)
		session := testSession(ChallengeBlink, ChallengeSmile)
		require.NoError(t, o.Start(session))

		require.True(t, o.ProcessFrame(eyesOpen(0.9)))
		require.True(t, o.FailChallenge())

		result := o.Result()
		require.NotNil(t, result)
		require.False(t, result.Passed)
		require.True(t, result.Challenges[0].Passed)
		require.False(t, result.Challenges[1].Passed)
		require.Zero(t, result.Challenges[1].Confidence)
	})

	t.Run("keeps the confidence of the last processed frame", func(t *testing.T) {
		fake := &fakeProcessor{queue: []DetectionResult{
			{Detected: false, Confidence: 0.7},
		}}
		o := NewOrchestrator(fake)
		require.NoError(t, o.Start(testSession(ChallengeSmile)))

		require.True(t, o.ProcessFrame(smiling(0.1)))
		require.True(t, o.FailChallenge())

		result := o.Result()
		require.NotNil(t, result)
		require.False(t, result.Passed)
		require.InDelta(t, 0.7, result.Challenges[0].Confidence, 1e-9)
	})

	t.Run("no active challenge to fail", func(t *testing.T) {
		o := NewOrchestrator(&fakeProcessor{})
		require.False(t, o.FailChallenge())
	})
}

func TestOrchestratorDropsFramesOutsideSession(t *testing.T) {
	fake := &fakeProcessor{}
	o := NewOrchestrator(fake)

	require.False(t, o.ProcessFrame(eyesOpen(0.9)))

	require.NoError(t, o.Start(testSession(ChallengeBlink)))
	o.Stop()
	require.False(t, o.ProcessFrame(eyesOpen(0.9)))

	calls, _ := fake.counts()
	require.Equal(t, 0, calls)
	_, ok := o.State().(StateIdle)
	require.True(t, ok)
}

func TestOrchestratorSerializesFrames(t *testing.T) {
	fake := &fakeProcessor{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	o := NewOrchestrator(fake)
	require.NoError(t, o.Start(testSession(ChallengeBlink)))

	accepted := make(chan bool, 1)
	go func() { accepted <- o.ProcessFrame(eyesOpen(0.9)) }()
	<-fake.started

	// While the first frame is in flight every other frame bounces.
	require.False(t, o.ProcessFrame(eyesOpen(0.9)))
	require.False(t, o.ProcessFrame(eyesOpen(0.9)))

	close(fake.release)
	require.True(t, <-accepted)

	calls, _ := fake.counts()
	require.Equal(t, 1, calls)
}

func TestOrchestratorStopDiscardsInFlightDetection(t *testing.T) {
	fake := &fakeProcessor{
		queue:   []DetectionResult{{Detected: true, Completed: true, Confidence: 0.9}},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	o := NewOrchestrator(fake)
	require.NoError(t, o.Start(testSession(ChallengeBlink)))

	accepted := make(chan bool, 1)
	go func() { accepted <- o.ProcessFrame(eyesOpen(0.9)) }()
	<-fake.started

	o.Stop()
	close(fake.release)

	// The detection completed, but against a stopped session.
	require.False(t, <-accepted)
	_, ok := o.State().(StateIdle)
	require.True(t, ok)
	require.Nil(t, o.Result())
}

func TestOrchestratorFailDuringInFlightDetection(t *testing.T) {
	fake := &fakeProcessor{
		queue:   []DetectionResult{{Detected: true, Completed: true, Confidence: 0.9}},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	o := NewOrchestrator(fake)
	session := testSession(ChallengeBlink, ChallengeSmile)
	require.NoError(t, o.Start(session))

	accepted := make(chan bool, 1)
	go func() { accepted <- o.ProcessFrame(eyesOpen(0.9)) }()
	<-fake.started

	// The caller gives up on the challenge while its last frame is still
	// being processed. The explicit failure wins.
	require.True(t, o.FailChallenge())
	close(fake.release)
	require.False(t, <-accepted)

	inProgress, ok := o.State().(StateInProgress)
	require.True(t, ok)
	require.Equal(t, session.Challenges[1].ID, inProgress.Challenge.ID)

	require.True(t, o.FailChallenge())
	result := o.Result()
	require.NotNil(t, result)
	require.False(t, result.Passed)
	require.Len(t, result.Challenges, 2)
	require.False(t, result.Challenges[0].Passed)
}

func TestOrchestratorRestartClearsPreviousSession(t *testing.T) {
	fake := &fakeProcessor{queue: []DetectionResult{
		{Detected: true, Completed: true, Confidence: 0.9},
		{Detected: true, Completed: true, Confidence: 0.9},
	}}
	o := NewOrchestrator(fake)

	first := testSession(ChallengeBlink, ChallengeSmile)
	require.NoError(t, o.Start(first))
	require.True(t, o.ProcessFrame(eyesOpen(0.9)))

	second := testSession(ChallengeNodUp)
	require.NoError(t, o.Start(second))
	require.True(t, o.ProcessFrame(Observation{Pitch: 20}))

	result := o.Result()
	require.NotNil(t, result)
	require.Equal(t, second.ID, result.SessionID)
	require.Len(t, result.Challenges, 1)

	// One detector reset per fresh challenge: first session's opening
	// challenge, then the restarted session's.
	_, resets := fake.counts()
	require.Equal(t, 2, resets)
}

func TestOrchestratorStateStreamKeepsNewest(t *testing.T) {
	fake := &fakeProcessor{}
	o := NewOrchestrator(fake)
	require.NoError(t, o.Start(testSession(ChallengeBlink)))

	// Nobody reads the stream while far more transitions happen than the
	// buffer holds. Old updates go, the newest survive.
	for i := 0; i < 25; i++ {
		require.True(t, o.ProcessFrame(eyesOpen(0.9)))
	}

	states := drainStates(o)
	require.Len(t, states, stateStreamBuffer)
	for _, s := range states {
		require.IsType(t, StateInProgress{}, s)
	}
}

func TestOrchestratorStopWhenIdle(t *testing.T) {
	o := NewOrchestrator(&fakeProcessor{})
	o.Stop()

	_, ok := o.State().(StateIdle)
	require.True(t, ok)
	require.NoError(t, o.Start(testSession(ChallengeSmile)))
}
