package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-identity-capture/models"
)

func TestHTTPLandmarkClient_HealthCheck(t *testing.T) {
	// Create a mock server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/healthz" {
			t.Errorf("Expected path /api/healthz, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewHTTPLandmarkClient(server.URL)
	err := client.HealthCheck()
	if err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}
}

func TestHTTPLandmarkClient_HealthCheck_Error(t *testing.T) {
	// Create a mock server that reports itself unhealthy
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("starting up"))
	}))
	defer server.Close()

	client := NewHTTPLandmarkClient(server.URL)
	err := client.HealthCheck()

	if err == nil {
		t.Error("Expected error but got none")
	}
}

func TestHTTPLandmarkClient_DetectFace_Success(t *testing.T) {
	// Create a mock server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/detect" {
			t.Errorf("Expected path /api/detect, got %s", r.URL.Path)
		}

		if r.Method != http.MethodPost {
			t.Errorf("Expected POST method, got %s", r.Method)
		}

		var request models.FaceDetectRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		if request.Image != "imagebase64" {
			t.Errorf("Expected image imagebase64, got %s", request.Image)
		}

		response := map[string]interface{}{
			"faces": []map[string]interface{}{
				{
					"x":          10.0,
					"y":          12.0,
					"width":      80.0,
					"height":     90.0,
					"confidence": 0.82,
				},
				{
					"x":          120.0,
					"y":          40.0,
					"width":      100.0,
					"height":     110.0,
					"confidence": 0.95,
					"smile":      0.7,
				},
			},
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := NewHTTPLandmarkClient(server.URL)
	face, err := client.DetectFace("imagebase64")

	if err != nil {
		t.Errorf("DetectFace failed: %v", err)
	}

	if face == nil {
		t.Fatal("Expected a face but got none")
	}

	// The highest-confidence face wins
	if face.Confidence != 0.95 {
		t.Errorf("Expected confidence 0.95, got %f", face.Confidence)
	}

	if face.X != 120.0 {
		t.Errorf("Expected x 120, got %f", face.X)
	}

	if face.Smile == nil || *face.Smile != 0.7 {
		t.Errorf("Expected smile 0.7, got %v", face.Smile)
	}
}

func TestHTTPLandmarkClient_DetectFace_NoFace(t *testing.T) {
	// Create a mock server that finds nothing
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{
			"faces": []map[string]interface{}{},
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := NewHTTPLandmarkClient(server.URL)
	face, err := client.DetectFace("imagebase64")

	if err != nil {
		t.Errorf("DetectFace failed: %v", err)
	}

	if face != nil {
		t.Errorf("Expected no face, got %+v", face)
	}
}

func TestHTTPLandmarkClient_DetectFace_Error(t *testing.T) {
	// Create a mock server that returns an error
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("invalid image"))
	}))
	defer server.Close()

	client := NewHTTPLandmarkClient(server.URL)
	_, err := client.DetectFace("not-an-image")

	if err == nil {
		t.Error("Expected error but got none")
	}
}

func TestNewHTTPLandmarkClient(t *testing.T) {
	baseURL := "http://localhost:41101"
	client := NewHTTPLandmarkClient(baseURL)

	if client == nil {
		t.Error("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected httpClient to be initialized")
	}
}
