package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-identity-capture/liveness"
	"go-identity-capture/models"
	"go-identity-capture/mrz"
	"go-identity-capture/quality"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

func writeTestKey(t *testing.T) (string, *rsa.PrivateKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pemBytes := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	path := filepath.Join(t.TempDir(), "priv.pem")
	require.NoError(t, os.WriteFile(path, pemBytes, 0600))
	return path, key
}

func specimenEvidence() models.CaptureEvidence {
	return models.CaptureEvidence{
		SessionId: "abc123",
		Document: &mrz.Data{
			Format:         mrz.TD3,
			DocumentCode:   "P<",
			IssuingState:   "NLD",
			LastName:       "VERMEULEN",
			FirstName:      "SANNE MARIE",
			DocumentNumber: "XD12345E8",
			Nationality:    "NLD",
			DateOfBirth:    "850713",
			Sex:            "F",
			DateOfExpiry:   "330105",
			Valid:          true,
		},
		DocumentQuality: quality.Result{Valid: true, Metrics: quality.Metrics{BlurScore: 250}},
		SelfieQuality:   quality.Result{Valid: true, Metrics: quality.Metrics{BlurScore: 180}},
		Liveness: liveness.Result{
			SessionID: "abc123",
			Passed:    true,
			Challenges: []liveness.ChallengeResult{
				{Challenge: liveness.Challenge{Type: liveness.ChallengeSmile}, Passed: true, Confidence: 0.9},
				{Challenge: liveness.Challenge{Type: liveness.ChallengeTurnLeft}, Passed: true, Confidence: 0.9},
			},
		},
	}
}

func evidenceKeyFunc(key *rsa.PrivateKey) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		// Ensure the signing method is RS256
		if token.Method.Alg() != jwt.SigningMethodRS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Header["alg"])
		}
		return &key.PublicKey, nil
	}
}

func TestCreateEvidenceJwt(t *testing.T) {
	path, key := writeTestKey(t)

	signer, err := NewRS256EvidenceSigner(path, "capture_service", 15*time.Minute)
	require.NoError(t, err)

	tokenString, err := signer.CreateEvidenceJwt(specimenEvidence())
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	parsed, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, evidenceKeyFunc(key))
	require.NoError(t, err)
	require.NotNil(t, parsed)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)

	require.Equal(t, "capture_service", claims["iss"])
	require.Equal(t, "abc123", claims["sub"])

	require.Equal(t, true, claims["mrz_valid"])
	require.Equal(t, true, claims["document_quality_valid"])
	require.Equal(t, true, claims["selfie_quality_valid"])
	require.Equal(t, true, claims["liveness_passed"])
	require.Equal(t, "smile,turn_left", claims["liveness_gestures"])

	require.Equal(t, "P<", claims["document_type"])
	require.Equal(t, "XD12345E8", claims["document_number"])
	require.Equal(t, "NLD", claims["issuing_state"])
	require.Equal(t, "NLD", claims["nationality"])
	require.Equal(t, "SANNE MARIE", claims["first_name"])
	require.Equal(t, "VERMEULEN", claims["last_name"])
	require.Equal(t, "F", claims["sex"])

	require.Equal(t, "1985-07-13", claims["date_of_birth"])
	require.Equal(t, "1985", claims["year_of_birth"])
	require.Equal(t, "2033-01-05", claims["date_of_expiry"])
	require.Equal(t, false, claims["document_expired"])

	require.Equal(t, true, claims["over_12"])
	require.Equal(t, true, claims["over_16"])
	require.Equal(t, true, claims["over_18"])
	require.Equal(t, true, claims["over_21"])
	require.Equal(t, false, claims["over_65"])

	require.InDelta(t, 250.0, claims["document_blur_score"], 1e-9)
	require.InDelta(t, 180.0, claims["selfie_blur_score"], 1e-9)
}

func TestCreateEvidenceJwt_ExpiryClaims(t *testing.T) {
	path, key := writeTestKey(t)

	signer, err := NewRS256EvidenceSigner(path, "capture_service", time.Minute)
	require.NoError(t, err)

	before := time.Now()
	tokenString, err := signer.CreateEvidenceJwt(specimenEvidence())
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, evidenceKeyFunc(key))
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)

	iat := int64(claims["iat"].(float64))
	exp := int64(claims["exp"].(float64))
	require.GreaterOrEqual(t, iat, before.Unix())
	require.Equal(t, int64(60), exp-iat)
}

func TestCreateEvidenceJwt_FailedChecksStayInClaims(t *testing.T) {
	path, key := writeTestKey(t)

	signer, err := NewRS256EvidenceSigner(path, "capture_service", time.Minute)
	require.NoError(t, err)

	evidence := specimenEvidence()
	evidence.SelfieQuality.Valid = false
	evidence.Liveness.Passed = false

	tokenString, err := signer.CreateEvidenceJwt(evidence)
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, evidenceKeyFunc(key))
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, false, claims["selfie_quality_valid"])
	require.Equal(t, false, claims["liveness_passed"])
}

func TestCreateEvidenceJwt_UnreadableDatesDropClaims(t *testing.T) {
	path, key := writeTestKey(t)

	signer, err := NewRS256EvidenceSigner(path, "capture_service", time.Minute)
	require.NoError(t, err)

	evidence := specimenEvidence()
	// A tolerated truncation can leave partial date fields behind
	evidence.Document.DateOfBirth = "8507"
	evidence.Document.DateOfExpiry = "33<105"

	tokenString, err := signer.CreateEvidenceJwt(evidence)
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, evidenceKeyFunc(key))
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)

	_, hasBirth := claims["date_of_birth"]
	require.False(t, hasBirth)
	_, hasExpiry := claims["date_of_expiry"]
	require.False(t, hasExpiry)
	_, hasOver18 := claims["over_18"]
	require.False(t, hasOver18)

	// Identity fields survive even without readable dates
	require.Equal(t, "XD12345E8", claims["document_number"])
}

func TestNewRS256EvidenceSigner_ErrorCases(t *testing.T) {
	t.Run("file not found", func(t *testing.T) {
		_, err := NewRS256EvidenceSigner("./nonexistent.pem", "issuer", time.Minute)
		require.Error(t, err)
	})

	t.Run("invalid PEM format", func(t *testing.T) {
		// Create a temporary invalid PEM file
		tmpFile, err := os.CreateTemp("", "invalid-*.pem")
		require.NoError(t, err)
		defer func() { _ = os.Remove(tmpFile.Name()) }()

		_, err = tmpFile.Write([]byte("this is not a valid PEM file"))
		require.NoError(t, err)
		require.NoError(t, tmpFile.Close())

		_, err = NewRS256EvidenceSigner(tmpFile.Name(), "issuer", time.Minute)
		require.Error(t, err)
	})
}
