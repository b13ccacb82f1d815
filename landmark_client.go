package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go-identity-capture/models"
)

// LandmarkClient defines the interface to the external face landmark
// provider. The capture engine itself never talks to it; handlers do, when a
// request carries a raw image instead of precomputed landmarks.
type LandmarkClient interface {
	// DetectFace locates the most prominent face in a base64-encoded image.
	// A clean image without any face yields (nil, nil).
	DetectFace(imageBase64 string) (*models.FaceLandmarks, error)

	// HealthCheck verifies the landmark provider service is available
	HealthCheck() error
}

// HTTPLandmarkClient implements the LandmarkClient interface
type HTTPLandmarkClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPLandmarkClient creates a new instance of HTTPLandmarkClient
func NewHTTPLandmarkClient(baseURL string) *HTTPLandmarkClient {
	return &HTTPLandmarkClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// DetectFace posts the image to the provider's detect endpoint and returns
// the highest-confidence face.
func (c *HTTPLandmarkClient) DetectFace(imageBase64 string) (*models.FaceLandmarks, error) {
	url := fmt.Sprintf("%s/api/detect", c.baseURL)

	jsonData, err := json.Marshal(models.FaceDetectRequest{Image: imageBase64})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal detect request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create detect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute detect request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("face detection failed with status %d: %s", resp.StatusCode, string(body))
	}

	var detectResponse struct {
		Faces []models.FaceLandmarks `json:"faces"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&detectResponse); err != nil {
		return nil, fmt.Errorf("failed to decode detect response: %w", err)
	}

	if len(detectResponse.Faces) == 0 {
		slog.Debug("Landmark provider found no face")
		return nil, nil
	}

	best := detectResponse.Faces[0]
	for _, face := range detectResponse.Faces[1:] {
		if face.Confidence > best.Confidence {
			best = face
		}
	}

	slog.Debug("Face detected", "confidence", best.Confidence, "faces", len(detectResponse.Faces))
	return &best, nil
}

// HealthCheck verifies the landmark provider service is available
func (c *HTTPLandmarkClient) HealthCheck() error {
	url := fmt.Sprintf("%s/api/healthz", c.baseURL)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute health check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("health check failed with status %d: %s", resp.StatusCode, string(body))
	}

	slog.Info("Landmark provider health check passed")
	return nil
}
