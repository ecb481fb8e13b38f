// Package models defines the data structures shared across the gateway
package models

// CachedToken holds the single in-process copy of the upstream bearer token.
// It is superseded on each successful exchange and never explicitly deleted;
// a stale value is simply refreshed on the next read.
type CachedToken struct {
	Value                 string
	ExpiresAtEpochSeconds int64
}

// Valid reports whether the token can be served without a network call.
func (t *CachedToken) Valid(nowEpochSeconds int64) bool {
	return t.Value != "" && nowEpochSeconds < t.ExpiresAtEpochSeconds
}
