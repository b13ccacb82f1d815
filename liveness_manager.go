package main

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go-identity-capture/liveness"
)

// LivenessManager keeps one orchestrator per capture session. The engine's
// orchestrator knows nothing about sessions expiring or being replaced;
// both policies live here.
type LivenessManager struct {
	mu             sync.Mutex
	sessions       map[string]*managedLiveness
	challengeCount int
	sessionTTL     time.Duration
}

type managedLiveness struct {
	session      liveness.Session
	orchestrator *liveness.Orchestrator
}

func NewLivenessManager(challengeCount int, sessionTTL time.Duration) *LivenessManager {
	return &LivenessManager{
		sessions:       make(map[string]*managedLiveness),
		challengeCount: challengeCount,
		sessionTTL:     sessionTTL,
	}
}

// StartSession builds a random challenge run for the capture session and
// starts an orchestrator for it.
func (m *LivenessManager) StartSession(sessionId string) (liveness.Session, error) {
	return m.StartSessionWithTypes(sessionId, liveness.RandomChallengeTypes(m.challengeCount))
}

// StartSessionWithTypes is StartSession with a fixed gesture script, for
// callers that need a predetermined run. Restarting an id replaces its
// previous orchestrator.
func (m *LivenessManager) StartSessionWithTypes(sessionId string, types []liveness.ChallengeType) (liveness.Session, error) {
	session := liveness.NewSession(sessionId, types, m.sessionTTL)
	orchestrator := liveness.NewOrchestrator(liveness.NewDetector())
	if err := orchestrator.Start(session); err != nil {
		return liveness.Session{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if previous, ok := m.sessions[sessionId]; ok {
		previous.orchestrator.Stop()
		slog.Debug("Replacing existing liveness session", "session_id", sessionId)
	}
	m.sessions[sessionId] = &managedLiveness{session: session, orchestrator: orchestrator}

	slog.Debug("Liveness session registered", "session_id", sessionId, "challenges", len(session.Challenges))
	return session, nil
}

// Orchestrator returns the running orchestrator for the session. Expired
// sessions are torn down on access and report an error.
func (m *LivenessManager) Orchestrator(sessionId string) (*liveness.Orchestrator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[sessionId]
	if !ok {
		return nil, fmt.Errorf("no liveness session for %s", sessionId)
	}
	if entry.session.Expired() {
		entry.orchestrator.Stop()
		delete(m.sessions, sessionId)
		slog.Warn("Liveness session expired", "session_id", sessionId)
		return nil, fmt.Errorf("liveness session for %s expired", sessionId)
	}
	return entry.orchestrator, nil
}

// EndSession stops and forgets the session's orchestrator. Unknown ids are
// a no-op; teardown has to be safe to repeat.
func (m *LivenessManager) EndSession(sessionId string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.sessions[sessionId]; ok {
		entry.orchestrator.Stop()
		delete(m.sessions, sessionId)
		slog.Debug("Liveness session ended", "session_id", sessionId)
	}
}
