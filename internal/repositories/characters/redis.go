package characters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veilwright/wod-chargen/internal/domain/character"
	wcerr "github.com/veilwright/wod-chargen/internal/errors"
)

// CharacterData is the serialized form of a character in Redis.
type CharacterData struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	ChronicleID string `json:"chronicle_id"`
	Name        string `json:"name"`
	Concept     string `json:"concept,omitempty"`

	Archetype string                   `json:"archetype"`
	StepIndex int                      `json:"step_index"`
	Lifecycle character.LifecycleState `json:"lifecycle"`

	Freebies        int  `json:"freebies"`
	FreebiesAwarded bool `json:"freebies_awarded,omitempty"`
	Experience      int  `json:"experience"`

	Traits      map[string]int                        `json:"traits,omitempty"`
	MeritsFlaws map[string]int                        `json:"merits_flaws,omitempty"`
	Backgrounds []*character.BackgroundRating         `json:"backgrounds,omitempty"`
	Relations   map[character.RelationKind]string     `json:"relations,omitempty"`
	Specialties []string                              `json:"specialties,omitempty"`
	Languages   []string                              `json:"languages,omitempty"`
	Details     map[string]string                     `json:"details,omitempty"`

	SpendRecords []character.SpendRecord `json:"spend_records,omitempty"`

	Revision  int64     `json:"revision"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RedisRepoConfig holds configuration for the Redis repository.
type RedisRepoConfig struct {
	Client redis.UniversalClient

	// UnfinishedTTL bounds how long an abandoned creation lingers.
	// Submitted and approved characters never expire.
	UnfinishedTTL time.Duration
}

type redisRepo struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisRepository creates a Redis-backed character repository.
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	ttl := cfg.UnfinishedTTL
	if ttl == 0 {
		ttl = 30 * 24 * time.Hour
	}

	return &redisRepo{
		client: cfg.Client,
		ttl:    ttl,
	}
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

func (r *redisRepo) ownerKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:characters", ownerID)
}

func (r *redisRepo) chronicleKey(chronicleID string) string {
	return fmt.Sprintf("chronicle:%s:characters", chronicleID)
}

func toCharacterData(char *character.Character) *CharacterData {
	return &CharacterData{
		ID:              char.ID,
		OwnerID:         char.OwnerID,
		ChronicleID:     char.ChronicleID,
		Name:            char.Name,
		Concept:         char.Concept,
		Archetype:       char.Archetype,
		StepIndex:       char.StepIndex,
		Lifecycle:       char.Lifecycle,
		Freebies:        char.Freebies,
		FreebiesAwarded: char.FreebiesAwarded,
		Experience:      char.Experience,
		Traits:          char.Traits,
		MeritsFlaws:     char.MeritsFlaws,
		Backgrounds:     char.Backgrounds,
		Relations:       char.Relations,
		Specialties:     char.Specialties,
		Languages:       char.Languages,
		Details:         char.Details,
		SpendRecords:    char.SpendRecords,
		Revision:        char.Revision,
	}
}

func fromCharacterData(data *CharacterData) *character.Character {
	char := &character.Character{
		ID:              data.ID,
		OwnerID:         data.OwnerID,
		ChronicleID:     data.ChronicleID,
		Name:            data.Name,
		Concept:         data.Concept,
		Archetype:       data.Archetype,
		StepIndex:       data.StepIndex,
		Lifecycle:       data.Lifecycle,
		Freebies:        data.Freebies,
		FreebiesAwarded: data.FreebiesAwarded,
		Experience:      data.Experience,
		Traits:          data.Traits,
		MeritsFlaws:     data.MeritsFlaws,
		Backgrounds:     data.Backgrounds,
		Relations:       data.Relations,
		Specialties:     data.Specialties,
		Languages:       data.Languages,
		Details:         data.Details,
		SpendRecords:    data.SpendRecords,
		Revision:        data.Revision,
	}
	if char.Traits == nil {
		char.Traits = make(map[string]int)
	}
	if char.MeritsFlaws == nil {
		char.MeritsFlaws = make(map[string]int)
	}
	if char.Relations == nil {
		char.Relations = make(map[character.RelationKind]string)
	}
	if char.Details == nil {
		char.Details = make(map[string]string)
	}
	return char
}

// expiration returns the key TTL for a lifecycle state. Zero disables
// expiry.
func (r *redisRepo) expiration(state character.LifecycleState) time.Duration {
	if state == character.StateUnfinished {
		return r.ttl
	}
	return 0
}

func (r *redisRepo) Create(ctx context.Context, char *character.Character) error {
	if char == nil {
		return wcerr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return wcerr.InvalidArgument("character ID is required")
	}
	if char.OwnerID == "" {
		return wcerr.InvalidArgument("character owner ID is required")
	}

	exists, err := r.client.Exists(ctx, r.key(char.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check character existence: %w", err)
	}
	if exists > 0 {
		return wcerr.AlreadyExistsf("character with ID '%s' already exists", char.ID).
			WithMeta("character_id", char.ID)
	}

	data := toCharacterData(char)
	data.CreatedAt = time.Now().UTC()
	data.UpdatedAt = data.CreatedAt

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(char.ID), string(jsonData), r.expiration(char.Lifecycle))
	pipe.SAdd(ctx, r.ownerKey(char.OwnerID), char.ID)
	if char.ChronicleID != "" {
		pipe.SAdd(ctx, r.chronicleKey(char.ChronicleID), char.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}
	return nil
}

func (r *redisRepo) Get(ctx context.Context, id string) (*character.Character, error) {
	if id == "" {
		return nil, wcerr.InvalidArgument("character ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, wcerr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	var data CharacterData
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &data); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", unmarshalErr)
	}
	return fromCharacterData(&data), nil
}

func (r *redisRepo) GetByOwner(ctx context.Context, ownerID string) ([]*character.Character, error) {
	if ownerID == "" {
		return nil, wcerr.InvalidArgument("owner ID is required")
	}
	return r.getSet(ctx, r.ownerKey(ownerID))
}

func (r *redisRepo) GetByChronicle(ctx context.Context, chronicleID string) ([]*character.Character, error) {
	if chronicleID == "" {
		return nil, wcerr.InvalidArgument("chronicle ID is required")
	}
	return r.getSet(ctx, r.chronicleKey(chronicleID))
}

func (r *redisRepo) getSet(ctx context.Context, setKey string) ([]*character.Character, error) {
	ids, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list character IDs: %w", err)
	}

	chars := make([]*character.Character, 0, len(ids))
	for _, id := range ids {
		char, err := r.Get(ctx, id)
		if err != nil {
			// Expired or missing entries stay in the index; skip them.
			continue
		}
		chars = append(chars, char)
	}
	return chars, nil
}

// Update saves under WATCH so the revision check and the write are one
// atomic unit. A concurrent writer aborts the transaction and the caller
// sees a Conflict either way.
func (r *redisRepo) Update(ctx context.Context, char *character.Character) error {
	if char == nil {
		return wcerr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return wcerr.InvalidArgument("character ID is required")
	}

	key := r.key(char.ID)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		jsonData, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return wcerr.NotFoundf("character with ID '%s' not found", char.ID).
				WithMeta("character_id", char.ID)
		}
		if err != nil {
			return fmt.Errorf("failed to get character: %w", err)
		}

		var existing CharacterData
		if unmarshalErr := json.Unmarshal([]byte(jsonData), &existing); unmarshalErr != nil {
			return fmt.Errorf("failed to unmarshal character: %w", unmarshalErr)
		}
		if existing.Revision != char.Revision {
			return wcerr.Conflictf("character '%s' was modified concurrently", char.ID).
				WithMeta("character_id", char.ID)
		}

		data := toCharacterData(char)
		data.Revision = char.Revision + 1
		data.CreatedAt = existing.CreatedAt
		data.UpdatedAt = time.Now().UTC()

		out, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal character: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, string(out), r.expiration(char.Lifecycle))
			return nil
		})
		return err
	}, key)

	if err == redis.TxFailedErr {
		return wcerr.Conflictf("character '%s' was modified concurrently", char.ID).
			WithMeta("character_id", char.ID)
	}
	if err != nil {
		return err
	}

	char.Revision++
	return nil
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return wcerr.InvalidArgument("character ID is required")
	}

	char, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.ownerKey(char.OwnerID), id)
	if char.ChronicleID != "" {
		pipe.SRem(ctx, r.chronicleKey(char.ChronicleID), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return nil
}
