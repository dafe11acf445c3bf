package jwttoken

import (
	id "campusvote/pkg/domain"
	dErrors "campusvote/pkg/domain-errors"
	authmw "campusvote/pkg/platform/middleware/auth"
)

// JWTServiceAdapter exposes JWTService through the auth middleware's
// validator interface.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*authmw.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != PurposeAccess {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "not an access token")
	}
	voterID, err := id.ParseVoterID(claims.VoterID)
	if err != nil {
		return nil, err
	}
	return &authmw.JWTClaims{VoterID: voterID, JTI: claims.ID}, nil
}
