package characters

import (
	"context"
	"sync"

	"github.com/veilwright/wod-chargen/internal/domain/character"
	wcerr "github.com/veilwright/wod-chargen/internal/errors"
)

// inMemoryRepo is a thread-safe in-memory Repository for tests and local
// development.
type inMemoryRepo struct {
	mu    sync.RWMutex
	chars map[string]*character.Character
}

// NewInMemoryRepository creates an empty in-memory character repository.
func NewInMemoryRepository() Repository {
	return &inMemoryRepo{
		chars: make(map[string]*character.Character),
	}
}

func (r *inMemoryRepo) Create(_ context.Context, char *character.Character) error {
	if char == nil {
		return wcerr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return wcerr.InvalidArgument("character ID is required")
	}
	if char.OwnerID == "" {
		return wcerr.InvalidArgument("character owner ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.chars[char.ID]; exists {
		return wcerr.AlreadyExistsf("character with ID '%s' already exists", char.ID).
			WithMeta("character_id", char.ID)
	}

	r.chars[char.ID] = char.Clone()
	return nil
}

func (r *inMemoryRepo) Get(_ context.Context, id string) (*character.Character, error) {
	if id == "" {
		return nil, wcerr.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	char, ok := r.chars[id]
	if !ok {
		return nil, wcerr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	return char.Clone(), nil
}

func (r *inMemoryRepo) GetByOwner(_ context.Context, ownerID string) ([]*character.Character, error) {
	if ownerID == "" {
		return nil, wcerr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*character.Character
	for _, char := range r.chars {
		if char.OwnerID == ownerID {
			out = append(out, char.Clone())
		}
	}
	return out, nil
}

func (r *inMemoryRepo) GetByChronicle(_ context.Context, chronicleID string) ([]*character.Character, error) {
	if chronicleID == "" {
		return nil, wcerr.InvalidArgument("chronicle ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*character.Character
	for _, char := range r.chars {
		if char.ChronicleID == chronicleID {
			out = append(out, char.Clone())
		}
	}
	return out, nil
}

func (r *inMemoryRepo) Update(_ context.Context, char *character.Character) error {
	if char == nil {
		return wcerr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return wcerr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.chars[char.ID]
	if !ok {
		return wcerr.NotFoundf("character with ID '%s' not found", char.ID).
			WithMeta("character_id", char.ID)
	}
	if existing.Revision != char.Revision {
		return wcerr.Conflictf("character '%s' was modified concurrently", char.ID).
			WithMeta("character_id", char.ID)
	}

	char.Revision++
	r.chars[char.ID] = char.Clone()
	return nil
}

func (r *inMemoryRepo) Delete(_ context.Context, id string) error {
	if id == "" {
		return wcerr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.chars[id]; !ok {
		return wcerr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	delete(r.chars, id)
	return nil
}
