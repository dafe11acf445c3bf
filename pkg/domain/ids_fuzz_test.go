//go:build go1.18

package domain

import (
	"testing"
)

// FuzzParseVoterID checks that parsing never panics on arbitrary input and
// always returns either a valid ID or an error.
func FuzzParseVoterID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add("'; DROP TABLE votes;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("550e8400-e29b-41d4-a716-446655440000\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseVoterID(input)
		if err != nil {
			if !id.IsNil() {
				t.Errorf("returned non-nil ID %v alongside error %v", id, err)
			}
			return
		}
		if id.IsNil() {
			t.Errorf("returned nil ID without error for input %q", input)
		}
		reparsed, err := ParseVoterID(id.String())
		if err != nil || reparsed != id {
			t.Errorf("canonical form %q did not round-trip", id.String())
		}
	})
}
