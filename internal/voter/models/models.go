package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	id "campusvote/pkg/domain"
	dErrors "campusvote/pkg/domain-errors"
)

// Voter is a registered profile. IsAdmin is the only source of admin
// authority.
type Voter struct {
	ProfileID  uuid.UUID  `json:"-"`
	ID         id.VoterID `json:"voter_id"`
	FullName   string     `json:"full_name"`
	RollNumber string     `json:"roll_number"`
	IsAdmin    bool       `json:"is_admin"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewVoter validates and builds a non-admin voter.
func NewVoter(fullName, rollNumber string, now time.Time) (*Voter, error) {
	fullName = strings.TrimSpace(fullName)
	rollNumber = NormalizeRollNumber(rollNumber)
	if fullName == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "full name is required")
	}
	if rollNumber == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "roll number is required")
	}
	if len(fullName) > 200 || len(rollNumber) > 64 {
		return nil, dErrors.New(dErrors.CodeValidation, "full name or roll number is too long")
	}
	return &Voter{
		ProfileID:  uuid.New(),
		ID:         id.NewVoterID(),
		FullName:   fullName,
		RollNumber: rollNumber,
		CreatedAt:  now,
	}, nil
}

// NormalizeRollNumber makes roll numbers comparable: trimmed, upper case.
func NormalizeRollNumber(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// RegisterRequest creates a voter profile.
type RegisterRequest struct {
	FullName   string `json:"full_name"`
	RollNumber string `json:"roll_number"`
}

// ProofPayload carries a client-produced WebAuthn assertion. Byte fields are
// base64 in JSON. Both are empty when the server-side agent does the scan.
type ProofPayload struct {
	AuthenticatorData []byte `json:"authenticator_data,omitempty"`
	ClientDataJSON    []byte `json:"client_data_json,omitempty"`
}

// RegisterResult is the new profile plus the enrollment token that lets the
// registering session enroll the voter's fingerprint.
type RegisterResult struct {
	Voter
	EnrollmentToken     string `json:"enrollment_token"`
	EnrollmentExpiresIn int    `json:"enrollment_expires_in"`
}

// EnrollRequest enrolls the first and only credential of a voter. The token
// must have been issued for VoterID.
type EnrollRequest struct {
	VoterID         id.VoterID   `json:"voter_id"`
	EnrollmentToken string       `json:"enrollment_token"`
	Proof           ProofPayload `json:"proof"`
}

// SignInRequest identifies the voter by roll number and proves presence with
// a fingerprint.
type SignInRequest struct {
	RollNumber string       `json:"roll_number"`
	Proof      ProofPayload `json:"proof"`
}

// SignInResult is returned after a successful biometric sign-in.
type SignInResult struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int        `json:"expires_in"`
	VoterID     id.VoterID `json:"voter_id"`
	IsAdmin     bool       `json:"is_admin"`
}

// EnrollResult confirms an enrollment without echoing the digest.
type EnrollResult struct {
	VoterID id.VoterID `json:"voter_id"`
	Device  string     `json:"device"`
}
