// Package frecency scores a visit count against its recency. The score is
// the stored rank boosted or damped by how recently the path was visited,
// so a heavily used directory from last month can lose to a lightly used
// one from ten minutes ago.
package frecency

// Tier boundaries in seconds. A visit inside a tier picks up that tier's
// multiplier.
const (
	Hour = 3600
	Day  = 86400
	Week = 604800
)

// Score combines rank and recency into a single comparable value.
// lastAccess and now are Unix seconds. The age is clamped to zero, so a
// last-access in the future counts as just visited. The function is pure:
// callers supply the clock.
func Score(rank float64, lastAccess, now int64) float64 {
	dx := now - lastAccess
	if dx < 0 {
		dx = 0
	}
	switch {
	case dx < Hour:
		return rank * 4
	case dx < Day:
		return rank * 2
	case dx < Week:
		return rank / 2
	default:
		return rank / 4
	}
}
