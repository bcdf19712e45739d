// Package characters persists the character aggregate.
package characters

import (
	"context"

	"github.com/veilwright/wod-chargen/internal/domain/character"
)

// Repository stores characters. Update is guarded by the character's
// Revision: a stale write returns a Conflict error and the caller reloads
// and retries. That keeps step submission and point spending atomic per
// character even with concurrent writers.
type Repository interface {
	// Create stores a new character. The ID must be unused.
	Create(ctx context.Context, char *character.Character) error

	// Get retrieves a character by ID.
	Get(ctx context.Context, id string) (*character.Character, error)

	// GetByOwner retrieves all characters belonging to a player.
	GetByOwner(ctx context.Context, ownerID string) ([]*character.Character, error)

	// GetByChronicle retrieves all characters in a chronicle.
	GetByChronicle(ctx context.Context, chronicleID string) ([]*character.Character, error)

	// Update saves a modified character. The stored revision must equal
	// char.Revision; on success the revision increments.
	Update(ctx context.Context, char *character.Character) error

	// Delete removes a character and its index entries.
	Delete(ctx context.Context, id string) error
}
