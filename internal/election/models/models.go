package models

import (
	"strings"
	"time"

	id "campusvote/pkg/domain"
	dErrors "campusvote/pkg/domain-errors"
)

const maxNameLength = 200

type Election struct {
	ID        id.ElectionID `json:"id"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"created_at"`
	CreatedBy id.VoterID    `json:"created_by"`
}

type Candidate struct {
	ID         id.CandidateID `json:"id"`
	Name       string         `json:"name"`
	ElectionID id.ElectionID  `json:"election_id"`
}

// ElectionSummary is an election with its candidates, as listed to voters.
type ElectionSummary struct {
	Election
	Candidates []Candidate `json:"candidates"`
}

func NewElection(name string, createdBy id.VoterID, now time.Time) (*Election, error) {
	name, err := validName("election", name)
	if err != nil {
		return nil, err
	}
	if createdBy.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "election creator is required")
	}
	return &Election{
		ID:        id.NewElectionID(),
		Name:      name,
		CreatedAt: now,
		CreatedBy: createdBy,
	}, nil
}

func NewCandidate(name string, electionID id.ElectionID) (*Candidate, error) {
	name, err := validName("candidate", name)
	if err != nil {
		return nil, err
	}
	return &Candidate{ID: id.NewCandidateID(), Name: name, ElectionID: electionID}, nil
}

func validName(kind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", dErrors.New(dErrors.CodeValidation, kind+" name is required")
	}
	if len(name) > maxNameLength {
		return "", dErrors.New(dErrors.CodeValidation, kind+" name is too long")
	}
	return name, nil
}

type CreateElectionRequest struct {
	Name string `json:"name"`
}

type AddCandidateRequest struct {
	Name string `json:"name"`
}
