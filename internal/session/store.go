// Package session tracks each player's pending question across messages.
// Entries expire after a TTL so an abandoned quiz does not pin memory for
// the process lifetime; an expired entry just means the player re-enters a
// question code.
package session

import "context"

// Store holds the pending question code per player. Implementations must be
// safe for concurrent use; webhook events for the same player can race, and
// last write wins.
type Store interface {
	// Get returns the player's pending question code, or "" if none is set
	// or the entry has expired.
	Get(ctx context.Context, playerID string) (string, error)

	// Set records the pending question code, overwriting any prior value
	// and resetting the TTL.
	Set(ctx context.Context, playerID, questionCode string) error

	// Clear removes the player's pending question. Clearing an absent entry
	// is not an error.
	Clear(ctx context.Context, playerID string) error
}
