package lockout

import "time"

// Record tracks failed fingerprint matches for one voter within the current
// window.
type Record struct {
	Key         string     `json:"key"`
	Failures    int        `json:"failures"`
	WindowStart time.Time  `json:"window_start"`
	LockedUntil *time.Time `json:"locked_until,omitempty"`
}

// IsLockedAt reports whether the lock is still in force at now.
func (r *Record) IsLockedAt(now time.Time) bool {
	return r != nil && r.LockedUntil != nil && now.Before(*r.LockedUntil)
}
