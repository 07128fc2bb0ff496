package repositories

import (
	"context"
	"time"
)

// RevokedTokenRepository is a deny list of access token IDs that were logged out
// before they expired.
type RevokedTokenRepository interface {
	// RevokeToken marks the token ID as revoked for the given duration.
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsTokenRevoked reports whether the token ID is on the deny list.
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}
