package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvote/internal/ledger"
	id "campusvote/pkg/domain"
)

func buildChain(n int) []VoteRecord {
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	previous := ledger.GenesisHash
	out := make([]VoteRecord, n)
	for i := range out {
		rec := VoteRecord{
			ID:           id.NewVoteID(),
			VoterID:      id.NewVoterID(),
			CandidateID:  id.NewCandidateID(),
			ElectionID:   id.NewElectionID(),
			PreviousHash: previous,
			Timestamp:    base.Add(time.Duration(i) * time.Microsecond),
		}
		rec.VoteHash = ledger.VoteDigest(rec.VoterID.String(), rec.CandidateID.String(), rec.ElectionID.String(), rec.Timestamp)
		previous = rec.VoteHash
		out[i] = rec
	}
	return out
}

func TestChainVerifier(t *testing.T) {
	now := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

	t.Run("valid chain reports tail hash", func(t *testing.T) {
		chain := buildChain(4)
		v := NewChainVerifier()
		for _, rec := range chain {
			require.True(t, v.Next(rec))
		}
		report := v.Report(now)
		assert.True(t, report.Valid)
		assert.Equal(t, 4, report.Length)
		assert.Equal(t, chain[3].VoteHash, report.TailHash)
		assert.Equal(t, now, report.VerifiedAt)
	})

	t.Run("stops at first break and ignores the rest", func(t *testing.T) {
		chain := buildChain(5)
		chain[1].PreviousHash = "x"
		chain[3].PreviousHash = "y"

		v := NewChainVerifier()
		for _, rec := range chain {
			v.Next(rec)
		}
		report := v.Report(now)
		assert.False(t, report.Valid)
		assert.Equal(t, 2, report.Position)
		assert.Equal(t, chain[1].ID, *report.BrokenAt)
		assert.Equal(t, chain[0].VoteHash, report.Expected)
		assert.Equal(t, "x", report.Found)
	})

	t.Run("timestamp change breaks the recomputed hash", func(t *testing.T) {
		chain := buildChain(2)
		chain[1].Timestamp = chain[1].Timestamp.Add(time.Second)

		v := NewChainVerifier()
		v.Next(chain[0])
		assert.False(t, v.Next(chain[1]))
		assert.Equal(t, ReasonHashMismatch, v.Report(now).Reason)
	})
}
