package services

import "time"

// EffectiveAttempts returns how many failed login attempts still count
// against a user at the given instant. The counter expires as a whole once
// the window has passed since the last recorded attempt.
func EffectiveAttempts(attempts int, lastAttempt, now time.Time, window time.Duration) int {
	if attempts <= 0 || lastAttempt.IsZero() {
		return 0
	}
	if now.Sub(lastAttempt) >= window {
		return 0
	}
	return attempts
}
