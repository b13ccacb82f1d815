package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"testing"
	"time"

	"go-identity-capture/liveness"
	"go-identity-capture/models"
	"go-identity-capture/quality"

	"github.com/stretchr/testify/require"
)

var testConfig = ServerConfig{
	Host:           "localhost",
	Port:           8081,
	UseTls:         false,
	TlsCertPath:    "",
	TlsPrivKeyPath: "",
}

func newTestState(storage SessionStorage) *ServerState {
	return &ServerState{
		sessionStorage:  storage,
		livenessManager: NewLivenessManager(2, time.Minute),
		evidenceSigner:  fakeEvidenceSigner{jwt: "test-jwt"},
		qualityChecker:  quality.NewValidator(quality.DefaultThresholds()),
	}
}

func startTestServer(t *testing.T, state *ServerState) *Server {
	t.Helper()

	srv, err := NewServer(state, testConfig)
	require.NoError(t, err)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("server error: %v", err)
		}
	}()

	waitUntilHealthy(t, "http://localhost:8081/api/health")
	t.Cleanup(func() {
		if err := srv.Stop(); err != nil {
			t.Logf("error shutting down server: %v", err)
		}
	})
	return srv
}

func waitUntilHealthy(t *testing.T, url string) {
	t.Helper()
	const maxAttempts = 50
	for i := 0; i < maxAttempts; i++ {
		if resp, err := http.Get(url); err == nil {
			_ = resp.Body.Close()
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("server did not start in time")
}

func postJSON[T any](t *testing.T, url string, payload any) (*http.Response, []byte, *T) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(b)
	}
	resp, err := http.Post(url, "application/json", body)
	require.NoError(t, err)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded *T
	var v T
	_ = json.Unmarshal(respBody, &v)
	decoded = &v

	return resp, respBody, decoded
}

func mustStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	require.Equalf(t, want, resp.StatusCode, "body: %s", body)
}

// capture-session bootstrap
func startCapture(t *testing.T) (sessionId, nonce string) {
	t.Helper()
	resp, body, sr := postJSON[models.CaptureStartResponse](t, "http://localhost:8081/api/capture/start", nil)
	mustStatus(t, resp, http.StatusOK, body)
	require.NotEmpty(t, sr.SessionId)
	require.NotEmpty(t, sr.Nonce)
	return sr.SessionId, sr.Nonce
}

// A parseable TD3 zone with real check digits. A full 88 character zone
// would fall into the TD1 length window, so the specimen stops after the
// personal number field like a typical partial scan.
const testMrz = "P<NLDVERMEULEN<<SANNE<MARIE<<<<<<<<<<<<<<<<<\nXD12345E83NLD8507136F3301052123456789Z<<<<2"

// Image builders

func encodeImageBase64(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// sharpImage renders a checkerboard: high contrast, mid brightness, no
// glare. Passes every frame-level quality check.
func sharpImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := uint8(40)
			if (x+y)%2 == 0 {
				v = 200
			}
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// flatImage renders a uniform mid-gray frame. Zero Laplacian variance, so
// the blur check always flags it.
func flatImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}
	return img
}

// centeredLandmarks is a well-placed face covering half of a 64x64 frame.
func centeredLandmarks() *models.FaceLandmarks {
	return &models.FaceLandmarks{X: 16, Y: 16, Width: 32, Height: 32, Confidence: 0.95}
}

func smileObservation() *liveness.Observation {
	smile := 0.9
	tracked := 7
	return &liveness.Observation{Smile: &smile, TrackingID: &tracked}
}

// test doubles

type fakeEvidenceSigner struct{ jwt string }

func (f fakeEvidenceSigner) CreateEvidenceJwt(models.CaptureEvidence) (string, error) {
	return f.jwt, nil
}

type fakeLandmarkClient struct {
	landmarks *models.FaceLandmarks
	err       error
	calls     int
}

func (f *fakeLandmarkClient) DetectFace(string) (*models.FaceLandmarks, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.landmarks, nil
}

func (f *fakeLandmarkClient) HealthCheck() error {
	return f.err
}

var testNonce, _ = GenerateNonce(8)

const testSessionId = "s12345"
