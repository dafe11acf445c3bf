package service_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"campusvote/internal/ledger"
	"campusvote/internal/ledger/models"
	"campusvote/internal/ledger/service"
	"campusvote/internal/ledger/store/memory"
	id "campusvote/pkg/domain"
	dErrors "campusvote/pkg/domain-errors"
)

type LedgerServiceSuite struct {
	suite.Suite
	store   *memory.InMemoryStore
	service *service.Service
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceSuite))
}

func (s *LedgerServiceSuite) SetupTest() {
	s.store = memory.New()
	s.service = service.New(s.store, service.NewLockedSequencer(s.store, time.Second))
}

func (s *LedgerServiceSuite) TestAppendVote() {
	ctx := context.Background()
	v1 := id.NewVoterID()
	c1 := id.NewCandidateID()
	e1 := id.NewElectionID()

	s.Run("first vote ever links to genesis", func() {
		rec, err := s.service.AppendVote(ctx, v1, c1, e1)
		s.Require().NoError(err)

		s.Equal(ledger.GenesisHash, rec.PreviousHash)
		s.Equal(ledger.VoteDigest(v1.String(), c1.String(), e1.String(), rec.Timestamp), rec.VoteHash)
		s.Equal(time.UTC, rec.Timestamp.Location())
	})

	s.Run("second vote in the same election is a duplicate and writes nothing", func() {
		before, err := s.service.CountVotes(ctx, e1)
		s.Require().NoError(err)

		rec, err := s.service.AppendVote(ctx, v1, id.NewCandidateID(), e1)
		s.Nil(rec)
		s.True(dErrors.HasCode(err, dErrors.CodeDuplicateVote))
		s.Equal("you have already voted in this election", dErrors.MessageOf(err))

		n, err := s.store.Count(ctx)
		s.Require().NoError(err)
		s.Equal(1, n)

		after, err := s.service.CountVotes(ctx, e1)
		s.Require().NoError(err)
		s.Equal(before, after)
	})

	s.Run("same voter may vote in another election and the chain continues", func() {
		tail, err := s.store.Tail(ctx)
		s.Require().NoError(err)

		rec, err := s.service.AppendVote(ctx, v1, c1, id.NewElectionID())
		s.Require().NoError(err)
		s.Equal(tail.VoteHash, rec.PreviousHash)
		s.True(rec.Timestamp.After(tail.Timestamp))
	})
}

func (s *LedgerServiceSuite) TestHasVoted() {
	ctx := context.Background()
	voter := id.NewVoterID()
	election := id.NewElectionID()

	voted, err := s.service.HasVoted(ctx, voter, election)
	s.Require().NoError(err)
	s.False(voted)

	_, err = s.service.AppendVote(ctx, voter, id.NewCandidateID(), election)
	s.Require().NoError(err)

	voted, err = s.service.HasVoted(ctx, voter, election)
	s.Require().NoError(err)
	s.True(voted)
}

func (s *LedgerServiceSuite) TestTimestampsStrictlyIncreaseWhenClockStalls() {
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := service.New(s.store, service.NewLockedSequencer(s.store, time.Second),
		service.WithClock(func() time.Time { return fixed }))

	var last time.Time
	for i := 0; i < 5; i++ {
		rec, err := svc.AppendVote(ctx, id.NewVoterID(), id.NewCandidateID(), id.NewElectionID())
		s.Require().NoError(err)
		s.True(rec.Timestamp.After(last), "timestamp %d did not advance", i)
		last = rec.Timestamp
	}
	s.Equal(fixed.Add(4*time.Microsecond), last)

	report, err := svc.VerifyChain(ctx)
	s.Require().NoError(err)
	s.True(report.Valid)
}

func (s *LedgerServiceSuite) TestConcurrentAppendSameVoter() {
	ctx := context.Background()
	voter := id.NewVoterID()
	election := id.NewElectionID()
	const attempts = 20

	var (
		wg         sync.WaitGroup
		successes  atomic.Int32
		duplicates atomic.Int32
		other      atomic.Int32
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.AppendVote(ctx, voter, id.NewCandidateID(), election)
			switch {
			case err == nil:
				successes.Add(1)
			case dErrors.HasCode(err, dErrors.CodeDuplicateVote):
				duplicates.Add(1)
			default:
				other.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successes.Load())
	s.Equal(int32(attempts-1), duplicates.Load())
	s.Zero(other.Load())

	n, err := s.store.Count(ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *LedgerServiceSuite) TestConcurrentAppendDistinctVotersFormOneChain() {
	ctx := context.Background()
	election := id.NewElectionID()
	candidates := []id.CandidateID{id.NewCandidateID(), id.NewCandidateID(), id.NewCandidateID()}
	const voters = 50

	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.service.AppendVote(ctx, id.NewVoterID(), candidates[i%len(candidates)], election); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.NoError(err)
	}

	report, err := s.service.VerifyChain(ctx)
	s.Require().NoError(err)
	s.True(report.Valid)
	s.Equal(voters, report.Length)

	// No two records share a predecessor.
	seen := make(map[string]bool)
	err = s.store.Walk(ctx, func(rec models.VoteRecord) bool {
		s.False(seen[rec.PreviousHash], "fork at %s", rec.ID)
		seen[rec.PreviousHash] = true
		return true
	})
	s.Require().NoError(err)

	tally, err := s.service.CountVotes(ctx, election)
	s.Require().NoError(err)
	sum := 0
	for _, t := range tally {
		sum += t.VoteCount
	}
	s.Equal(voters, sum)
}

func (s *LedgerServiceSuite) TestVerifyChain() {
	ctx := context.Background()

	s.Run("empty ledger is valid", func() {
		report, err := s.service.VerifyChain(ctx)
		s.Require().NoError(err)
		s.True(report.Valid)
		s.Zero(report.Length)
		s.Equal(ledger.GenesisHash, report.TailHash)
	})

	var third *models.VoteRecord
	for i := 0; i < 5; i++ {
		rec, err := s.service.AppendVote(ctx, id.NewVoterID(), id.NewCandidateID(), id.NewElectionID())
		s.Require().NoError(err)
		if i == 2 {
			third = rec
		}
	}

	s.Run("intact chain is valid", func() {
		report, err := s.service.VerifyChain(ctx)
		s.Require().NoError(err)
		s.True(report.Valid)
		s.Equal(5, report.Length)
		s.Nil(report.BrokenAt)
		s.NoError(s.service.RequireValidChain(ctx))
	})

	s.Run("altered previous hash on record 3 is reported at record 3", func() {
		s.store.Tamper(2, func(rec *models.VoteRecord) {
			rec.PreviousHash = "forged"
		})

		report, err := s.service.VerifyChain(ctx)
		s.Require().NoError(err)
		s.False(report.Valid)
		s.Require().NotNil(report.BrokenAt)
		s.Equal(third.ID, *report.BrokenAt)
		s.Equal(3, report.Position)
		s.Equal(models.ReasonPreviousMismatch, report.Reason)
		s.Equal("forged", report.Found)

		err = s.service.RequireValidChain(ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeLedgerIntegrity))
	})
}

func (s *LedgerServiceSuite) TestVerifyChainDetectsRewrittenBallot() {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := s.service.AppendVote(ctx, id.NewVoterID(), id.NewCandidateID(), id.NewElectionID())
		s.Require().NoError(err)
	}
	s.store.Tamper(1, func(rec *models.VoteRecord) {
		rec.CandidateID = id.NewCandidateID()
	})

	report, err := s.service.VerifyChain(ctx)
	s.Require().NoError(err)
	s.False(report.Valid)
	s.Equal(2, report.Position)
	s.Equal(models.ReasonHashMismatch, report.Reason)
}

func (s *LedgerServiceSuite) TestVerifyChainDetectsForgedGenesis() {
	ctx := context.Background()
	_, err := s.service.AppendVote(ctx, id.NewVoterID(), id.NewCandidateID(), id.NewElectionID())
	s.Require().NoError(err)
	s.store.Tamper(0, func(rec *models.VoteRecord) {
		rec.PreviousHash = "1"
	})

	report, err := s.service.VerifyChain(ctx)
	s.Require().NoError(err)
	s.False(report.Valid)
	s.Equal(1, report.Position)
	s.Equal(models.ReasonGenesisMismatch, report.Reason)
}

func (s *LedgerServiceSuite) TestCountVotes() {
	ctx := context.Background()
	election := id.NewElectionID()
	alice := models.Candidate{ID: id.NewCandidateID(), Name: "Alice"}
	bob := models.Candidate{ID: id.NewCandidateID(), Name: "Bob"}
	carol := models.Candidate{ID: id.NewCandidateID(), Name: "Carol"}
	dropped := id.NewCandidateID()

	svc := service.New(s.store, service.NewLockedSequencer(s.store, time.Second),
		service.WithCandidateDirectory(staticDirectory{election: {alice, bob, carol}}))

	for _, c := range []id.CandidateID{bob.ID, alice.ID, bob.ID, dropped} {
		_, err := svc.AppendVote(ctx, id.NewVoterID(), c, election)
		s.Require().NoError(err)
	}
	// A vote in another election must not leak into this tally.
	_, err := svc.AppendVote(ctx, id.NewVoterID(), alice.ID, id.NewElectionID())
	s.Require().NoError(err)

	tally, err := svc.CountVotes(ctx, election)
	s.Require().NoError(err)
	s.Require().Len(tally, 4)

	s.Equal(models.CandidateTally{CandidateID: bob.ID, CandidateName: "Bob", VoteCount: 2}, tally[0])
	// Ties break by name; the unlisted placeholder sorts before letters.
	s.Equal(dropped, tally[1].CandidateID)
	s.Equal("(unlisted candidate)", tally[1].CandidateName)
	s.Equal(1, tally[1].VoteCount)
	s.Equal("Alice", tally[2].CandidateName)
	s.Equal(1, tally[2].VoteCount)
	s.Equal(models.CandidateTally{CandidateID: carol.ID, CandidateName: "Carol", VoteCount: 0}, tally[3])

	recorded, err := s.store.CountForElection(ctx, election)
	s.Require().NoError(err)
	sum := 0
	for _, t := range tally {
		sum += t.VoteCount
	}
	s.Equal(recorded, sum)
}

func (s *LedgerServiceSuite) TestStorageFailureLeavesNoTrace() {
	ctx := context.Background()
	failing := &failingSequencer{err: errors.New("connection reset")}
	svc := service.New(s.store, failing)

	rec, err := svc.AppendVote(ctx, id.NewVoterID(), id.NewCandidateID(), id.NewElectionID())
	s.Nil(rec)
	s.True(dErrors.HasCode(err, dErrors.CodeStorage))

	n, err := s.store.Count(ctx)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *LedgerServiceSuite) TestCancelledContextIsStorageError() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.service.AppendVote(ctx, id.NewVoterID(), id.NewCandidateID(), id.NewElectionID())
	s.True(dErrors.HasCode(err, dErrors.CodeStorage))
}

type staticDirectory map[id.ElectionID][]models.Candidate

func (d staticDirectory) ListCandidates(_ context.Context, electionID id.ElectionID) ([]models.Candidate, error) {
	return d[electionID], nil
}

type failingSequencer struct {
	err error
}

func (f *failingSequencer) RunInTx(_ context.Context, _ func(store service.Store) error) error {
	return f.err
}
