package models

import (
	"time"

	"campusvote/internal/ledger"
	id "campusvote/pkg/domain"
)

// ChainVerifier replays records one at a time, in timestamp order, and stops
// at the first break. It holds only the previous hash, so ledgers of any
// length verify in constant memory.
type ChainVerifier struct {
	report   ChainReport
	previous string
	done     bool
}

func NewChainVerifier() *ChainVerifier {
	return &ChainVerifier{
		report:   ChainReport{Valid: true, TailHash: ledger.GenesisHash},
		previous: ledger.GenesisHash,
	}
}

// Next checks rec against its predecessor and recomputes its vote hash. It
// returns false once the chain is broken; later records are ignored.
func (v *ChainVerifier) Next(rec VoteRecord) bool {
	if v.done {
		return false
	}
	v.report.Length++

	if rec.PreviousHash != v.previous {
		reason := ReasonPreviousMismatch
		if v.report.Length == 1 {
			reason = ReasonGenesisMismatch
		}
		return v.fail(rec.ID, reason, v.previous, rec.PreviousHash)
	}
	computed := ledger.VoteDigest(rec.VoterID.String(), rec.CandidateID.String(), rec.ElectionID.String(), rec.Timestamp)
	if computed != rec.VoteHash {
		return v.fail(rec.ID, ReasonHashMismatch, computed, rec.VoteHash)
	}

	v.previous = rec.VoteHash
	v.report.TailHash = rec.VoteHash
	return true
}

func (v *ChainVerifier) fail(voteID id.VoteID, reason, expected, found string) bool {
	v.done = true
	v.report.Valid = false
	v.report.BrokenAt = &voteID
	v.report.Position = v.report.Length
	v.report.Reason = reason
	v.report.Expected = expected
	v.report.Found = found
	return false
}

// Report returns the verification result so far.
func (v *ChainVerifier) Report(now time.Time) ChainReport {
	r := v.report
	r.VerifiedAt = now
	return r
}
