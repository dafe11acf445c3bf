package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"campusvote/internal/election/adapters"
	emodels "campusvote/internal/election/models"
	estore "campusvote/internal/election/store/memory"
	lmodels "campusvote/internal/ledger/models"
	lservice "campusvote/internal/ledger/service"
	lstore "campusvote/internal/ledger/store/memory"
	vmodels "campusvote/internal/voter/models"
	vstore "campusvote/internal/voter/store/memory"
	id "campusvote/pkg/domain"
	"campusvote/pkg/platform/audit"
	"campusvote/pkg/platform/audit/publisher"
	auditmemory "campusvote/pkg/platform/audit/store/memory"
)

type LedgerctlSuite struct {
	suite.Suite
	ctx       context.Context
	elections *estore.InMemoryStore
	records   *lstore.InMemoryStore
	ledger    *lservice.Service
	election  *emodels.Election
	alice     *emodels.Candidate
	bob       *emodels.Candidate
}

func TestLedgerctlSuite(t *testing.T) {
	suite.Run(t, new(LedgerctlSuite))
}

func (s *LedgerctlSuite) SetupTest() {
	s.ctx = context.Background()
	s.elections = estore.New()
	s.records = lstore.New()
	s.ledger = lservice.New(s.records, lservice.NewLockedSequencer(s.records, time.Second),
		lservice.WithCandidateDirectory(adapters.NewCandidateDirectory(s.elections)))

	var err error
	s.election, err = emodels.NewElection("Council", id.NewVoterID(), time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.elections.CreateElection(s.ctx, s.election))
	s.alice = s.candidate("Alice")
	s.bob = s.candidate("Bob")
}

func (s *LedgerctlSuite) candidate(name string) *emodels.Candidate {
	c, err := emodels.NewCandidate(name, s.election.ID)
	s.Require().NoError(err)
	s.Require().NoError(s.elections.AddCandidate(s.ctx, c))
	return c
}

func (s *LedgerctlSuite) vote(candidate *emodels.Candidate, n int) {
	for i := 0; i < n; i++ {
		_, err := s.ledger.AppendVote(s.ctx, id.NewVoterID(), candidate.ID, s.election.ID)
		s.Require().NoError(err)
	}
}

func (s *LedgerctlSuite) TestVerify() {
	s.Run("empty ledger is intact", func() {
		var out bytes.Buffer
		report, err := verifyChain(s.ctx, s.records, &out, true)
		s.Require().NoError(err)
		s.True(report.Valid)
		s.Zero(report.Length)
		s.NoError(printChainReport(&out, report))
	})

	s.Run("intact chain prints its tail", func() {
		s.vote(s.alice, 3)
		var out bytes.Buffer
		report, err := verifyChain(s.ctx, s.records, &out, false)
		s.Require().NoError(err)
		s.True(report.Valid)
		s.Equal(3, report.Length)

		s.NoError(printChainReport(&out, report))
		s.Contains(out.String(), report.TailHash)
		s.Contains(out.String(), "chain is intact")
	})

	s.Run("tampered record exits with status 2", func() {
		s.records.Tamper(1, func(rec *lmodels.VoteRecord) {
			rec.CandidateID = s.bob.ID
		})
		var out bytes.Buffer
		report, err := verifyChain(s.ctx, s.records, &out, true)
		s.Require().NoError(err)
		s.False(report.Valid)
		s.Equal(2, report.Position)
		s.Equal(lmodels.ReasonHashMismatch, report.Reason)

		err = printChainReport(&out, report)
		var coded interface{ ExitCode() int }
		s.Require().True(errors.As(err, &coded))
		s.Equal(2, coded.ExitCode())
		s.Contains(err.Error(), "position 2")
	})
}

func (s *LedgerctlSuite) TestTally() {
	s.vote(s.alice, 2)
	s.vote(s.bob, 1)

	var out bytes.Buffer
	s.Require().NoError(printTallies(s.ctx, s.elections, s.ledger, &out))
	s.Contains(out.String(), "Council")
	s.Contains(out.String(), "3")
	s.Regexp(`Alice\s+2`, out.String())
	s.Regexp(`Bob\s+1`, out.String())
}

type unreachableAudit struct{}

func (unreachableAudit) Emit(context.Context, audit.Event) error {
	return errors.New("audit_logs unavailable")
}

func (s *LedgerctlSuite) TestGrantAdmin() {
	voters := vstore.New()
	voter, err := vmodels.NewVoter("Ravi Kumar", "21CS042", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(voters.Create(s.ctx, voter))
	trail := auditmemory.NewInMemoryStore()
	auditor := publisher.NewPublisher(trail)

	actions := func() []audit.Event {
		events, err := trail.ListByUser(s.ctx, voter.ID)
		s.Require().NoError(err)
		return events
	}

	s.Run("grant", func() {
		var out bytes.Buffer
		s.Require().NoError(grantAdmin(s.ctx, voters, auditor, " 21CS042 ", true, &out))
		got, err := voters.FindByRollNumber(s.ctx, "21CS042")
		s.Require().NoError(err)
		s.True(got.IsAdmin)
		s.Contains(out.String(), "admin granted")

		events := actions()
		s.Require().Len(events, 1)
		s.Equal(string(audit.EventAdminGranted), events[0].Action)
		s.Equal(audit.CategorySecurity, events[0].Category)
		s.Equal("granted", events[0].Decision)
		s.Equal("21CS042", events[0].Details["roll_number"])
		s.Equal("ledgerctl", events[0].Details["source"])
	})

	s.Run("granting twice changes nothing", func() {
		var out bytes.Buffer
		s.Require().NoError(grantAdmin(s.ctx, voters, auditor, "21CS042", true, &out))
		s.Contains(out.String(), "unchanged")
		s.Len(actions(), 1)
	})

	s.Run("revoke", func() {
		var out bytes.Buffer
		s.Require().NoError(grantAdmin(s.ctx, voters, auditor, "21CS042", false, &out))
		got, err := voters.FindByRollNumber(s.ctx, "21CS042")
		s.Require().NoError(err)
		s.False(got.IsAdmin)

		events := actions()
		s.Require().Len(events, 2)
		s.Equal(string(audit.EventAdminRevoked), events[1].Action)
		s.Equal("revoked", events[1].Decision)
	})

	s.Run("an unrecorded change fails the command", func() {
		var out bytes.Buffer
		err := grantAdmin(s.ctx, voters, unreachableAudit{}, "21CS042", true, &out)
		s.ErrorContains(err, "record admin change")
		s.Empty(out.String())
	})

	s.Run("unknown roll number", func() {
		err := grantAdmin(s.ctx, voters, auditor, "99XX000", true, &bytes.Buffer{})
		s.ErrorContains(err, "no voter")
	})

	s.Run("missing roll number", func() {
		s.Error(grantAdmin(s.ctx, voters, auditor, "  ", true, &bytes.Buffer{}))
	})
}
