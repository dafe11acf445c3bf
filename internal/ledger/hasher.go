// Package ledger holds the content hashing shared by the vote ledger and its
// verifiers. Field order and encoding are part of the stored data: changing
// either invalidates every existing vote_hash.
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// GenesisHash is the previous_hash of the first record in the ledger.
const GenesisHash = "0"

// TimestampLayout renders vote timestamps for hashing: UTC, fixed
// microsecond precision. PostgreSQL stores microseconds, so a record read
// back hashes to the same value.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Digest returns the lowercase hex SHA-256 of the fields encoded as a JSON
// array of strings. The encoding is unambiguous: ("ab","c") and ("a","bc")
// hash differently.
func Digest(fields ...string) string {
	if fields == nil {
		fields = []string{}
	}
	// Marshalling a []string cannot fail.
	payload, _ := json.Marshal(fields)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// VoteDigest hashes a vote in the fixed order voter, candidate, election,
// timestamp.
func VoteDigest(voterID, candidateID, electionID string, ts time.Time) string {
	return Digest(voterID, candidateID, electionID, FormatTimestamp(ts))
}

// FormatTimestamp renders ts with TimestampLayout.
func FormatTimestamp(ts time.Time) string {
	return ts.UTC().Truncate(time.Microsecond).Format(TimestampLayout)
}
