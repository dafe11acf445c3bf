// Package domain holds value types shared by every module.
//
// Identifiers are distinct named UUID types so a VoterID can never be passed
// where an ElectionID is expected. Parse functions are the only way to build
// an identifier from untrusted input.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "campusvote/pkg/domain-errors"
)

type (
	VoterID      uuid.UUID
	ElectionID   uuid.UUID
	CandidateID  uuid.UUID
	VoteID       uuid.UUID
	AuditEventID uuid.UUID
)

// maxIDLength bounds input before it reaches the UUID parser.
const maxIDLength = 64

func parseUUID(kind, s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	if len(s) > maxIDLength {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	return u, nil
}

func ParseVoterID(s string) (VoterID, error) {
	u, err := parseUUID("voter id", s)
	return VoterID(u), err
}

func ParseElectionID(s string) (ElectionID, error) {
	u, err := parseUUID("election id", s)
	return ElectionID(u), err
}

func ParseCandidateID(s string) (CandidateID, error) {
	u, err := parseUUID("candidate id", s)
	return CandidateID(u), err
}

func ParseVoteID(s string) (VoteID, error) {
	u, err := parseUUID("vote id", s)
	return VoteID(u), err
}

func (id VoterID) String() string      { return uuid.UUID(id).String() }
func (id ElectionID) String() string   { return uuid.UUID(id).String() }
func (id CandidateID) String() string  { return uuid.UUID(id).String() }
func (id VoteID) String() string       { return uuid.UUID(id).String() }
func (id AuditEventID) String() string { return uuid.UUID(id).String() }

func (id VoterID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id ElectionID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id CandidateID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id VoteID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id AuditEventID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets identifiers appear as plain strings in JSON bodies and as
// map keys.
func (id VoterID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id ElectionID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id CandidateID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id VoteID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }

func (id *VoterID) UnmarshalText(b []byte) error {
	parsed, err := ParseVoterID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ElectionID) UnmarshalText(b []byte) error {
	parsed, err := ParseElectionID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *CandidateID) UnmarshalText(b []byte) error {
	parsed, err := ParseCandidateID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *VoteID) UnmarshalText(b []byte) error {
	parsed, err := ParseVoteID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func NewVoterID() VoterID         { return VoterID(uuid.New()) }
func NewElectionID() ElectionID   { return ElectionID(uuid.New()) }
func NewCandidateID() CandidateID { return CandidateID(uuid.New()) }
func NewVoteID() VoteID           { return VoteID(uuid.New()) }
func NewAuditEventID() AuditEventID {
	return AuditEventID(uuid.New())
}
