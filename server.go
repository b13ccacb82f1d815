package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	_ "go-identity-capture/docs"
	"go-identity-capture/liveness"
	"go-identity-capture/models"
	"go-identity-capture/mrz"
	"go-identity-capture/pixels"
	"go-identity-capture/quality"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
)

const ErrorInternal = "error:internal"
const ERR_MARSHAL = "failed to marshal response message"
const ERR_NONCE_RETRIEVAL = "failed to get nonce from storage"
const ERR_NONCE_REMOVAL = "failed to remove nonce from storage"
const ERR_INVALID_NONCE_SESSION = "invalid session or nonce"
const ERR_IMAGE_DECODE = "failed to decode image"
const ERR_EVIDENCE_CREATION = "failed to create evidence jwt"
const ERR_CAPTURE_INCOMPLETE = "capture requirements not met"
const ERR_NO_LIVENESS_SESSION = "no active liveness session"

type ServerConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	UseTls         bool   `json:"use_tls,omitempty"`
	TlsPrivKeyPath string `json:"tls_priv_key_path,omitempty"`
	TlsCertPath    string `json:"tls_cert_path,omitempty"`
}

type ServerState struct {
	sessionStorage  SessionStorage
	livenessManager *LivenessManager
	landmarkClient  LandmarkClient
	evidenceSigner  EvidenceSigner
	qualityChecker  *quality.Validator
	analysisWidth   int
}

type Server struct {
	server *http.Server
	config ServerConfig
}

func (s *Server) ListenAndServe() error {
	if s.config.UseTls {
		slog.Info("Starting server with TLS", "host", s.config.Host, "port", s.config.Port, "cert", s.config.TlsCertPath, "key", s.config.TlsPrivKeyPath)
		return s.server.ListenAndServeTLS(s.config.TlsCertPath, s.config.TlsPrivKeyPath)
	} else {
		slog.Info("Starting server without TLS", "host", s.config.Host, "port", s.config.Port)
		return s.server.ListenAndServe()
	}
}

func (s *Server) Stop() error {
	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	if err != nil {
		slog.Error("Error during server shutdown", "error", err)
	} else {
		slog.Info("Server shut down successfully")
	}
	return err
}

func NewServer(state *ServerState, config ServerConfig) (*Server, error) {
	slog.Info("Creating new server", "host", config.Host, "port", config.Port, "tls", config.UseTls)
	router := mux.NewRouter()

	router.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("Health check request received")
		err := json.NewEncoder(w).Encode(map[string]bool{"ok": true})
		if err != nil {
			slog.Error("failed to write body to http response", "error", err)
		}
	})

	router.HandleFunc("/api/docs", HandleApiDocs).Methods(http.MethodGet)

	router.HandleFunc("/api/capture/start", func(w http.ResponseWriter, r *http.Request) {
		handleCaptureStart(state, w, r)
	})
	router.HandleFunc("/api/capture/mrz", func(w http.ResponseWriter, r *http.Request) {
		handleMrzScan(state, w, r)
	})
	router.HandleFunc("/api/capture/document-quality", func(w http.ResponseWriter, r *http.Request) {
		handleDocumentQuality(state, w, r)
	})
	router.HandleFunc("/api/capture/selfie-quality", func(w http.ResponseWriter, r *http.Request) {
		handleSelfieQuality(state, w, r)
	})
	router.HandleFunc("/api/capture/liveness/frame", func(w http.ResponseWriter, r *http.Request) {
		handleLivenessFrame(state, w, r)
	})
	router.HandleFunc("/api/capture/liveness/fail", func(w http.ResponseWriter, r *http.Request) {
		handleLivenessFail(state, w, r)
	})
	router.HandleFunc("/api/capture/evidence", func(w http.ResponseWriter, r *http.Request) {
		handleEvidence(state, w, r)
	})

	slog.Debug("Registered all API routes")

	addr := fmt.Sprintf("%v:%v", config.Host, config.Port)
	srv := &http.Server{
		Handler: router,
		Addr:    addr,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	slog.Info("Server created successfully", "address", addr)
	return &Server{
		server: srv,
		config: config,
	}, nil
}

func handleCaptureStart(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	slog.Info("Received request to start a capture session")

	slog.Debug("Generating session ID")
	sessionId := GenerateSessionId()
	if sessionId == "" {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, "failed to generate session ID", fmt.Errorf("failed to generate session ID"))
		return
	}
	slog.Debug("Session ID generated", "session_id", sessionId)

	// Generate an 8 byte nonce
	slog.Debug("Generating nonce", "session_id", sessionId)
	nonce, err := GenerateNonce(8)
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, "failed to generate nonce", err)
		return
	}

	// Store the nonce, it is removed again when the evidence jwt is handed out
	slog.Debug("Storing nonce in session storage", "session_id", sessionId)
	err = state.sessionStorage.StoreNonce(sessionId, nonce)
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, "failed to store nonce", err)
		return
	}

	slog.Debug("Starting liveness session", "session_id", sessionId)
	livenessSession, err := state.livenessManager.StartSession(sessionId)
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, "failed to start liveness session", err)
		return
	}

	response := models.CaptureStartResponse{
		SessionId: sessionId,
		Nonce:     nonce,
		Liveness:  livenessSession,
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
		return
	}

	slog.Info("Capture session started successfully", "session_id", sessionId, "challenges", len(livenessSession.Challenges))
}

func handleMrzScan(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	slog.Info("Received request to parse an MRZ scan")

	request, err := decodeCaptureRequest[models.MrzScanRequest](r)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid request", "failed to decode mrz scan request", err)
		return
	}

	if err := validateSession(state.sessionStorage, request.SessionId, request.Nonce); err != nil {
		respondWithErr(w, http.StatusUnauthorized, ERR_INVALID_NONCE_SESSION, ERR_INVALID_NONCE_SESSION, err)
		return
	}

	data := mrz.Parse(request.Text)
	if data == nil {
		slog.Info("No machine readable zone found in scan", "session_id", request.SessionId)
	} else {
		slog.Info("MRZ parsed", "session_id", request.SessionId, "format", data.Format, "valid", data.Valid)
	}

	response := models.MrzScanResponse{
		Found: data != nil,
		Data:  data,
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
		return
	}
}

func handleDocumentQuality(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	slog.Info("Received request to check document image quality")

	request, err := decodeCaptureRequest[models.DocumentQualityRequest](r)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid request", "failed to decode document quality request", err)
		return
	}

	if err := validateSession(state.sessionStorage, request.SessionId, request.Nonce); err != nil {
		respondWithErr(w, http.StatusUnauthorized, ERR_INVALID_NONCE_SESSION, ERR_INVALID_NONCE_SESSION, err)
		return
	}

	slog.Debug("Decoding document image", "session_id", request.SessionId)
	buf, err := pixels.DecodeBase64(request.Image, state.analysisWidth)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid image", ERR_IMAGE_DECODE, err)
		return
	}

	result := state.qualityChecker.ValidateDocument(buf)
	slog.Info("Document quality checked", "session_id", request.SessionId, "valid", result.Valid, "issues", len(result.Issues))

	if err := writeJSON(w, http.StatusOK, result); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
		return
	}
}

func handleSelfieQuality(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	slog.Info("Received request to check selfie quality")

	request, err := decodeCaptureRequest[models.SelfieQualityRequest](r)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid request", "failed to decode selfie quality request", err)
		return
	}

	if err := validateSession(state.sessionStorage, request.SessionId, request.Nonce); err != nil {
		respondWithErr(w, http.StatusUnauthorized, ERR_INVALID_NONCE_SESSION, ERR_INVALID_NONCE_SESSION, err)
		return
	}

	slog.Debug("Decoding selfie image", "session_id", request.SessionId)
	buf, scale, err := pixels.DecodeForAnalysis(request.Image, state.analysisWidth)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid image", ERR_IMAGE_DECODE, err)
		return
	}

	landmarks := request.Face
	if landmarks == nil && state.landmarkClient != nil {
		slog.Debug("No landmarks in request, querying landmark provider", "session_id", request.SessionId)
		landmarks, err = state.landmarkClient.DetectFace(request.Image)
		if err != nil {
			// A failed lookup counts as no face
			slog.Warn("Landmark provider lookup failed", "session_id", request.SessionId, "error", err)
			landmarks = nil
		}
	}

	result := state.qualityChecker.ValidateSelfie(buf, scaledFace(landmarks, scale))
	slog.Info("Selfie quality checked", "session_id", request.SessionId, "valid", result.Valid, "issues", len(result.Issues))

	if err := writeJSON(w, http.StatusOK, result); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
		return
	}
}

func handleLivenessFrame(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	slog.Info("Received request to process a liveness frame")

	request, err := decodeCaptureRequest[models.LivenessFrameRequest](r)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid request", "failed to decode liveness frame request", err)
		return
	}

	if err := validateSession(state.sessionStorage, request.SessionId, request.Nonce); err != nil {
		respondWithErr(w, http.StatusUnauthorized, ERR_INVALID_NONCE_SESSION, ERR_INVALID_NONCE_SESSION, err)
		return
	}

	orchestrator, err := state.livenessManager.Orchestrator(request.SessionId)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, ERR_NO_LIVENESS_SESSION, ERR_NO_LIVENESS_SESSION, err)
		return
	}

	observation, err := resolveObservation(state, request)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid request", "failed to resolve frame observation", err)
		return
	}

	if observation == nil {
		// No face in the frame. The orchestrator never sees it; report the
		// current state so the client keeps its prompt in sync.
		slog.Debug("No face in liveness frame", "session_id", request.SessionId)
		response := livenessSnapshot(orchestrator, false)
		response.Error = "no face detected in frame"
		if err := writeJSON(w, http.StatusOK, response); err != nil {
			respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
		}
		return
	}

	accepted := orchestrator.ProcessFrame(*observation)
	slog.Debug("Liveness frame processed", "session_id", request.SessionId, "accepted", accepted)

	if err := writeJSON(w, http.StatusOK, livenessSnapshot(orchestrator, accepted)); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
		return
	}
}

func handleLivenessFail(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	slog.Info("Received request to fail the active liveness challenge")

	request, err := decodeCaptureRequest[models.SessionRequest](r)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid request", "failed to decode liveness fail request", err)
		return
	}

	if err := validateSession(state.sessionStorage, request.SessionId, request.Nonce); err != nil {
		respondWithErr(w, http.StatusUnauthorized, ERR_INVALID_NONCE_SESSION, ERR_INVALID_NONCE_SESSION, err)
		return
	}

	orchestrator, err := state.livenessManager.Orchestrator(request.SessionId)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, ERR_NO_LIVENESS_SESSION, ERR_NO_LIVENESS_SESSION, err)
		return
	}

	failed := orchestrator.FailChallenge()
	if !failed {
		slog.Debug("No active challenge to fail", "session_id", request.SessionId)
	} else {
		slog.Info("Liveness challenge marked as failed", "session_id", request.SessionId)
	}

	if err := writeJSON(w, http.StatusOK, livenessSnapshot(orchestrator, failed)); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
		return
	}
}

func handleEvidence(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	slog.Info("Received request to issue capture evidence")

	request, err := decodeCaptureRequest[models.EvidenceRequest](r)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, "invalid request", "failed to decode evidence request", err)
		return
	}

	if err := validateSession(state.sessionStorage, request.SessionId, request.Nonce); err != nil {
		respondWithErr(w, http.StatusUnauthorized, ERR_INVALID_NONCE_SESSION, ERR_INVALID_NONCE_SESSION, err)
		return
	}

	evidence, err := AssembleEvidence(state, request)
	if err != nil {
		respondWithErr(w, http.StatusBadRequest, ERR_CAPTURE_INCOMPLETE, ERR_CAPTURE_INCOMPLETE, err)
		return
	}

	slog.Debug("Creating evidence JWT", "session_id", request.SessionId)
	jwt, err := state.evidenceSigner.CreateEvidenceJwt(*evidence)
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, ERR_EVIDENCE_CREATION, ERR_EVIDENCE_CREATION, err)
		return
	}

	response := models.EvidenceResponse{
		Jwt: jwt,
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_MARSHAL, err)
		return
	}

	slog.Info("Capture evidence issued successfully", "session_id", request.SessionId)
	removeCaptureSession(w, state, request.SessionId)

}

// AssembleEvidence re-runs every capture check on the server. The evidence
// jwt attests only to verdicts this process computed itself, never to what
// a client claims.
func AssembleEvidence(state *ServerState, request models.EvidenceRequest) (*models.CaptureEvidence, error) {
	slog.Debug("Assembling capture evidence", "session_id", request.SessionId)

	document := mrz.Parse(request.MrzText)
	if document == nil {
		return nil, fmt.Errorf("no machine readable zone in submitted text")
	}
	if !document.Valid {
		return nil, fmt.Errorf("mrz failed validation: %s", strings.Join(document.ValidationErrors, "; "))
	}

	slog.Debug("MRZ verified, checking document image", "session_id", request.SessionId)
	documentBuf, err := pixels.DecodeBase64(request.DocumentImage, state.analysisWidth)
	if err != nil {
		return nil, fmt.Errorf("document image: %w", err)
	}
	documentQuality := state.qualityChecker.ValidateDocument(documentBuf)
	if !documentQuality.Valid {
		return nil, fmt.Errorf("document image failed quality checks: %s", issueSummary(documentQuality))
	}

	slog.Debug("Document image verified, checking selfie", "session_id", request.SessionId)
	selfieBuf, scale, err := pixels.DecodeForAnalysis(request.SelfieImage, state.analysisWidth)
	if err != nil {
		return nil, fmt.Errorf("selfie image: %w", err)
	}

	landmarks := request.Face
	if landmarks == nil && state.landmarkClient != nil {
		if landmarks, err = state.landmarkClient.DetectFace(request.SelfieImage); err != nil {
			return nil, fmt.Errorf("landmark lookup: %w", err)
		}
	}
	selfieQuality := state.qualityChecker.ValidateSelfie(selfieBuf, scaledFace(landmarks, scale))
	if !selfieQuality.Valid {
		return nil, fmt.Errorf("selfie failed quality checks: %s", issueSummary(selfieQuality))
	}

	slog.Debug("Selfie verified, checking liveness verdict", "session_id", request.SessionId)
	orchestrator, err := state.livenessManager.Orchestrator(request.SessionId)
	if err != nil {
		return nil, err
	}
	livenessResult := orchestrator.Result()
	if livenessResult == nil {
		return nil, fmt.Errorf("liveness session has not finished")
	}
	if !livenessResult.Passed {
		return nil, fmt.Errorf("liveness check failed")
	}

	slog.Debug("All capture checks passed", "session_id", request.SessionId)
	return &models.CaptureEvidence{
		SessionId:       request.SessionId,
		Document:        document,
		DocumentQuality: documentQuality,
		SelfieQuality:   selfieQuality,
		Liveness:        *livenessResult,
	}, nil
}

func issueSummary(result quality.Result) string {
	types := make([]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		types = append(types, issue.Type)
	}
	return strings.Join(types, ", ")
}

// -----------------------------------------------------------------------------------

// validateSession validates session and nonce
func validateSession(storage SessionStorage, sessionId, nonce string) error {
	slog.Debug("Validating session and nonce", "session_id", sessionId)
	storedNonce, err := storage.RetrieveNonce(sessionId)
	if err != nil {
		slog.Warn("Failed to retrieve nonce from storage", "session_id", sessionId, "error", err)
		return fmt.Errorf("%s: %w", ERR_NONCE_RETRIEVAL, err)
	}

	if storedNonce == "" || storedNonce != nonce {
		slog.Warn("Invalid nonce or session", "session_id", sessionId, "nonce_empty", storedNonce == "", "nonce_match", storedNonce == nonce)
		return fmt.Errorf("%s", ERR_INVALID_NONCE_SESSION)
	}

	slog.Debug("Session validation successful", "session_id", sessionId)
	return nil
}

// removeCaptureSession drops the nonce and tears down the liveness session
// once a capture flow is finished
func removeCaptureSession(w http.ResponseWriter, state *ServerState, sessionId string) {
	slog.Debug("Removing capture session", "session_id", sessionId)
	state.livenessManager.EndSession(sessionId)
	if err := state.sessionStorage.RemoveNonce(sessionId); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, ERR_NONCE_REMOVAL, err)
	} else {
		slog.Debug("Capture session removed successfully", "session_id", sessionId)
	}
}

// decodeCaptureRequest decodes the request body
func decodeCaptureRequest[T any](r *http.Request) (T, error) {
	slog.Debug("Decoding capture request body")
	var request T
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		slog.Warn("Failed to decode capture request", "error", err)
		return request, fmt.Errorf("decode request body: %w", err)
	}
	return request, nil
}

func HandleApiDocs(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Serving OpenAPI document")
	doc, err := swag.ReadDoc()
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, ErrorInternal, "failed to read OpenAPI document", err)
		return
	}
	writeStaticJSON(w, []byte(doc))
}

func GenerateSessionId() string {
	sessionId := make([]byte, 16)
	if _, err := rand.Read(sessionId); err != nil {
		slog.Error("failed to generate session ID", "error", err)
		return ""
	}
	hexId := fmt.Sprintf("%x", sessionId)
	slog.Debug("Session ID generated successfully", "session_id", hexId)
	return hexId
}

// GenerateNonce Generates a random nonce
func GenerateNonce(i int) (string, error) {
	nonce := make([]byte, i)
	if _, err := rand.Read(nonce); err != nil {
		slog.Error("failed to generate nonce", "error", err)
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	hexString := hex.EncodeToString(nonce)
	slog.Debug("Nonce generated successfully", "length", i)
	return hexString, nil
}

func respondWithErr(w http.ResponseWriter, code int, responseBody string, logMsg string, e error) {
	slog.Error(logMsg, "error", e, "status_code", code, "response_body", responseBody)
	w.WriteHeader(code)
	if _, err := w.Write([]byte(responseBody)); err != nil {
		slog.Error("failed to write body to http response", "error", err)
	}
}

// helpers ------------

func writeStaticJSON(w http.ResponseWriter, b []byte) {
	slog.Debug("Writing static JSON", "size", len(b))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, err := w.Write(b); err != nil {
		slog.Error("failed to write body to http response", "error", err)
	} else {
		slog.Debug("Static JSON written successfully", "size", len(b))
	}
}

func closeRequestBody(r *http.Request) {
	if err := r.Body.Close(); err != nil {
		slog.Error("failed to close request body", "error", err)
	}

}

func requirePOST(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		slog.Debug("Non-POST request rejected", "method", r.Method, "path", r.URL.Path)
		respondWithErr(w, http.StatusMethodNotAllowed, "method not allowed", "invalid method", nil)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	slog.Debug("Writing JSON response", "status_code", status)
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to marshal JSON payload", "error", err)
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(payload)
	if err != nil {
		slog.Error("failed to write body to http response", "error", err)
	} else {
		slog.Debug("JSON response written successfully", "status_code", status, "payload_size", len(payload))
	}
	return nil
}

// Landmark conversion helpers

// resolveObservation picks the gesture observation for a liveness frame.
// Clients either send landmarks they extracted on-device, or a raw frame
// for the landmark provider to analyze. A nil observation with a nil error
// means the frame holds no face.
func resolveObservation(state *ServerState, request models.LivenessFrameRequest) (*liveness.Observation, error) {
	if request.Observation != nil {
		return request.Observation, nil
	}

	if request.Frame == "" {
		return nil, fmt.Errorf("frame carries neither an observation nor an image")
	}
	if state.landmarkClient == nil {
		return nil, fmt.Errorf("no landmark provider configured to analyze raw frames")
	}

	slog.Debug("Extracting landmarks from raw frame")
	landmarks, err := state.landmarkClient.DetectFace(request.Frame)
	if err != nil {
		// A failed lookup counts as no face
		slog.Warn("Landmark provider lookup failed for liveness frame", "error", err)
		return nil, nil
	}
	if landmarks == nil {
		return nil, nil
	}

	observation := observationFromLandmarks(landmarks)
	return &observation, nil
}

// scaledFace maps a provider face box from submitted-image coordinates into
// the analysis buffer's coordinate system.
func scaledFace(landmarks *models.FaceLandmarks, scale float64) *quality.Face {
	if landmarks == nil {
		return nil
	}
	return &quality.Face{
		X:          landmarks.X * scale,
		Y:          landmarks.Y * scale,
		Width:      landmarks.Width * scale,
		Height:     landmarks.Height * scale,
		Confidence: landmarks.Confidence,
	}
}

func observationFromLandmarks(landmarks *models.FaceLandmarks) liveness.Observation {
	return liveness.Observation{
		LeftEyeOpen:  landmarks.LeftEyeOpen,
		RightEyeOpen: landmarks.RightEyeOpen,
		Smile:        landmarks.Smile,
		Yaw:          landmarks.Yaw,
		Pitch:        landmarks.Pitch,
		TrackingID:   landmarks.TrackingId,
	}
}

// livenessSnapshot flattens the orchestrator state for the wire
func livenessSnapshot(orchestrator *liveness.Orchestrator, accepted bool) models.LivenessFrameResponse {
	response := models.LivenessFrameResponse{Accepted: accepted}

	switch state := orchestrator.State().(type) {
	case liveness.StateIdle:
		response.State = "idle"
	case liveness.StateInProgress:
		response.State = "in_progress"
		challenge := state.Challenge
		response.Challenge = &challenge
		response.Progress = state.Progress
	case liveness.StateChallengeComplete:
		response.State = "challenge_complete"
		challenge := state.Challenge
		response.Challenge = &challenge
	case liveness.StateComplete:
		response.State = "complete"
		result := state.Result
		response.Result = &result
		response.Progress = 1
	case liveness.StateError:
		response.State = "error"
		response.Error = state.Message
	}

	return response
}
