package jwttoken

import (
	"errors"
	"time"

	id "campusvote/pkg/domain"
	dErrors "campusvote/pkg/domain-errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token purposes. An enrollment token only unlocks fingerprint enrollment
// and is never accepted as an access token.
const (
	PurposeAccess = "access"
	PurposeEnroll = "enroll"
)

// Claims represents the JWT claims for voter tokens.
type Claims struct {
	VoterID string `json:"voter_id"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// JWTService handles JWT creation and validation
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
	now        func() time.Time
}

func NewJWTService(signingKey string, issuer string, audience string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
		now:        time.Now,
	}
}

// GenerateAccessToken issues a token for a voter who passed biometric
// sign-in. Admin status is not carried in the token; it is read from the
// voter profile on every privileged request.
func (s *JWTService) GenerateAccessToken(voterID id.VoterID, expiresIn time.Duration) (string, error) {
	return s.generate(voterID, PurposeAccess, expiresIn)
}

// GenerateEnrollmentToken is handed out at registration so that only the
// session that created the profile can enroll its fingerprint.
func (s *JWTService) GenerateEnrollmentToken(voterID id.VoterID, expiresIn time.Duration) (string, error) {
	return s.generate(voterID, PurposeEnroll, expiresIn)
}

// ValidateEnrollmentToken returns the voter an enrollment token was issued
// for. Access tokens are refused.
func (s *JWTService) ValidateEnrollmentToken(tokenString string) (id.VoterID, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return id.VoterID{}, err
	}
	if claims.Purpose != PurposeEnroll {
		return id.VoterID{}, dErrors.New(dErrors.CodeUnauthorized, "not an enrollment token")
	}
	voterID, err := id.ParseVoterID(claims.VoterID)
	if err != nil {
		return id.VoterID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return voterID, nil
}

func (s *JWTService) generate(voterID id.VoterID, purpose string, expiresIn time.Duration) (string, error) {
	now := s.now()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		VoterID: voterID.String(),
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   voterID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithAudience(s.audience), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}
