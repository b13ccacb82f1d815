package main

import (
	"crypto/rsa"
	"log/slog"
	"os"
	"strings"
	"time"

	"go-identity-capture/models"
	"go-identity-capture/mrz"

	"github.com/golang-jwt/jwt/v4"
)

type EvidenceSigner interface {
	CreateEvidenceJwt(evidence models.CaptureEvidence) (jwt string, err error)
}

func NewRS256EvidenceSigner(privateKeyPath string,
	issuer string,
	validity time.Duration,
) (*DefaultEvidenceSigner, error) {
	keyBytes, err := os.ReadFile(privateKeyPath)

	if err != nil {
		return nil, err
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyBytes)

	if err != nil {
		return nil, err
	}

	return &DefaultEvidenceSigner{
		issuer:     issuer,
		privateKey: privateKey,
		validity:   validity,
	}, nil
}

type DefaultEvidenceSigner struct {
	privateKey *rsa.PrivateKey
	issuer     string
	validity   time.Duration
}

func (s *DefaultEvidenceSigner) CreateEvidenceJwt(evidence models.CaptureEvidence) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, s.buildClaims(evidence))
	return token.SignedString(s.privateKey)
}

// buildClaims flattens the capture verdicts into JWT claims. Document dates
// that cannot be read (filler in a tolerated check position) drop their
// claims instead of failing the whole token.
func (s *DefaultEvidenceSigner) buildClaims(evidence models.CaptureEvidence) jwt.MapClaims {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": evidence.SessionId,
		"iat": now.Unix(),
		"exp": now.Add(s.validity).Unix(),

		"mrz_valid":              evidence.Document != nil && evidence.Document.Valid,
		"document_quality_valid": evidence.DocumentQuality.Valid,
		"selfie_quality_valid":   evidence.SelfieQuality.Valid,
		"liveness_passed":        evidence.Liveness.Passed,

		"document_blur_score": evidence.DocumentQuality.Metrics.BlurScore,
		"selfie_blur_score":   evidence.SelfieQuality.Metrics.BlurScore,
	}

	gestures := make([]string, 0, len(evidence.Liveness.Challenges))
	for _, challenge := range evidence.Liveness.Challenges {
		gestures = append(gestures, string(challenge.Challenge.Type))
	}
	claims["liveness_gestures"] = strings.Join(gestures, ",")

	doc := evidence.Document
	if doc == nil {
		return claims
	}

	claims["document_type"] = doc.DocumentCode
	claims["document_number"] = doc.DocumentNumber
	claims["issuing_state"] = doc.IssuingState
	claims["nationality"] = doc.Nationality
	claims["first_name"] = doc.FirstName
	claims["last_name"] = doc.LastName
	claims["sex"] = doc.Sex

	if birth, err := mrz.FormatDate(doc.DateOfBirth); err == nil {
		claims["date_of_birth"] = birth
		claims["year_of_birth"] = birth[:4]
	} else {
		slog.Warn("Evidence issued without a readable birth date", "error", err)
	}
	if expiry, err := mrz.ParseExpiryDate(doc.DateOfExpiry); err == nil {
		claims["date_of_expiry"] = expiry.Format("2006-01-02")
		claims["document_expired"] = expiry.Before(now)
	} else {
		slog.Warn("Evidence issued without a readable expiry date", "error", err)
	}

	if born, err := mrz.ParseDateOfBirth(doc.DateOfBirth); err == nil {
		claims["over_12"] = ageAtLeast(born, now, 12)
		claims["over_16"] = ageAtLeast(born, now, 16)
		claims["over_18"] = ageAtLeast(born, now, 18)
		claims["over_21"] = ageAtLeast(born, now, 21)
		claims["over_65"] = ageAtLeast(born, now, 65)
	}

	return claims
}

// ageAtLeast reports whether someone born on the given day has had their
// years-th birthday by now.
func ageAtLeast(born, now time.Time, years int) bool {
	return !now.Before(born.AddDate(years, 0, 0))
}
