// Package character holds the mutable aggregate under construction: the
// character sheet, its creation progress, and its spending history.
package character

import (
	"time"
)

// LifecycleState tracks where a character is in its review lifecycle.
type LifecycleState string

const (
	// StateUnfinished means creation steps are still in progress.
	StateUnfinished LifecycleState = "unfinished"
	// StateSubmitted means the final creation step completed and the
	// character awaits storyteller review.
	StateSubmitted LifecycleState = "submitted"
	// StateApproved means a storyteller accepted the character for play.
	StateApproved LifecycleState = "approved"
)

// Currency distinguishes the two spendable point pools.
type Currency string

const (
	// CurrencyFreebie is the one-time creation pool.
	CurrencyFreebie Currency = "freebie"
	// CurrencyExperience is earned during play and spent post-approval.
	CurrencyExperience Currency = "experience"
)

// RelationKind names a defining relation that drives eligibility: which
// clan embraced a vampire, which vampire dominates a ghoul, and so on.
type RelationKind string

const (
	RelationClan           RelationKind = "clan"
	RelationDomitorClan    RelationKind = "domitor_clan"
	RelationBreed          RelationKind = "breed"
	RelationAuspice        RelationKind = "auspice"
	RelationTribe          RelationKind = "tribe"
	RelationHouse          RelationKind = "house"
	RelationGuild          RelationKind = "guild"
	RelationKith           RelationKind = "kith"
	RelationPath           RelationKind = "path"
	RelationAffinitySphere RelationKind = "affinity_sphere"
)

// BackgroundRating is one background held by a character. A background may
// appear more than once with distinct notes (two separate Allies, say), and
// pooled backgrounds are jointly funded by the character's group.
type BackgroundRating struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Note   string `json:"note,omitempty"`
	Pooled bool   `json:"pooled,omitempty"`
}

// Key identifies the rating within the character's background list.
func (b *BackgroundRating) Key() string {
	if b.Note == "" {
		return b.Name
	}
	return b.Name + " (" + b.Note + ")"
}

// SpendRecord is one audit-trail entry for a currency spend. Append-only:
// a record is never mutated after creation except to mark denial, which
// pairs with a refund.
type SpendRecord struct {
	Category     string    `json:"category"`
	Example      string    `json:"example"`
	Currency     Currency  `json:"currency"`
	Cost         int       `json:"cost"`
	PrevValue    int       `json:"prev_value"`
	NewValue     int       `json:"new_value"`
	BalanceAfter int       `json:"balance_after"`
	Denied       bool      `json:"denied,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Character is the aggregate under construction. StepIndex and the two
// currency balances are the contended fields; the repository guarantees
// their read-modify-write cycle is atomic per character.
type Character struct {
	ID          string
	OwnerID     string
	ChronicleID string
	Name        string
	Concept     string

	Archetype string
	StepIndex int
	Lifecycle LifecycleState

	Freebies        int
	FreebiesAwarded bool // one-time backstory bonus already granted
	Experience      int

	// Traits maps stat name to rating: attributes, abilities, powers,
	// willpower, humanity, and the rest of the dot-rated sheet.
	Traits map[string]int

	// MeritsFlaws maps merit/flaw name to rating; flaws are negative.
	MeritsFlaws map[string]int

	Backgrounds []*BackgroundRating

	// Relations are the defining relations eligibility keys off.
	Relations map[RelationKind]string

	Specialties []string
	Languages   []string
	Details     map[string]string

	SpendRecords []SpendRecord

	// Revision supports optimistic locking at the persistence boundary.
	Revision int64
}

// New creates an unfinished character at step zero.
func New(id, ownerID, chronicleID, name, archetype string, freebies int) *Character {
	return &Character{
		ID:          id,
		OwnerID:     ownerID,
		ChronicleID: chronicleID,
		Name:        name,
		Archetype:   archetype,
		StepIndex:   0,
		Lifecycle:   StateUnfinished,
		Freebies:    freebies,
		Traits:      make(map[string]int),
		MeritsFlaws: make(map[string]int),
		Relations:   make(map[RelationKind]string),
		Details:     make(map[string]string),
	}
}

// Trait returns the rating for a stat, zero when unset.
func (c *Character) Trait(name string) int {
	return c.Traits[name]
}

// SetTrait sets a stat rating, dropping zero entries to keep the map lean.
func (c *Character) SetTrait(name string, rating int) {
	if c.Traits == nil {
		c.Traits = make(map[string]int)
	}
	if rating == 0 {
		delete(c.Traits, name)
		return
	}
	c.Traits[name] = rating
}

// Relation returns a defining relation's value, empty when unset.
func (c *Character) Relation(kind RelationKind) string {
	return c.Relations[kind]
}

// SetRelation records a defining relation. Resetting dependent trait
// ratings when a relation changes is the caller's job; see
// creation.Service.ChangeRelation.
func (c *Character) SetRelation(kind RelationKind, value string) {
	if c.Relations == nil {
		c.Relations = make(map[RelationKind]string)
	}
	if value == "" {
		delete(c.Relations, kind)
		return
	}
	c.Relations[kind] = value
}

// Balance returns the remaining points for a currency.
func (c *Character) Balance(currency Currency) int {
	if currency == CurrencyExperience {
		return c.Experience
	}
	return c.Freebies
}

// Debit removes amount from a currency balance. A negative amount credits
// (flaws refund freebies). The caller has already verified affordability;
// Debit never lets a balance go negative.
func (c *Character) Debit(currency Currency, amount int) bool {
	balance := c.Balance(currency)
	if balance-amount < 0 {
		return false
	}
	if currency == CurrencyExperience {
		c.Experience = balance - amount
	} else {
		c.Freebies = balance - amount
	}
	return true
}

// Background finds a background rating by key, nil when absent.
func (c *Character) Background(key string) *BackgroundRating {
	for _, bg := range c.Backgrounds {
		if bg.Key() == key {
			return bg
		}
	}
	return nil
}

// AddBackground appends a background rating.
func (c *Character) AddBackground(bg *BackgroundRating) {
	c.Backgrounds = append(c.Backgrounds, bg)
}

// TotalFlaws sums the negative merit/flaw ratings. The total may not drop
// below -7 during creation.
func (c *Character) TotalFlaws() int {
	total := 0
	for _, rating := range c.MeritsFlaws {
		if rating < 0 {
			total += rating
		}
	}
	return total
}

// AddSpendRecord appends an audit entry.
func (c *Character) AddSpendRecord(rec SpendRecord) {
	c.SpendRecords = append(c.SpendRecords, rec)
}

// Clone deep-copies the character. Step handlers mutate a clone so a
// failed step leaves the persisted aggregate untouched.
func (c *Character) Clone() *Character {
	clone := *c

	clone.Traits = make(map[string]int, len(c.Traits))
	for k, v := range c.Traits {
		clone.Traits[k] = v
	}

	clone.MeritsFlaws = make(map[string]int, len(c.MeritsFlaws))
	for k, v := range c.MeritsFlaws {
		clone.MeritsFlaws[k] = v
	}

	clone.Relations = make(map[RelationKind]string, len(c.Relations))
	for k, v := range c.Relations {
		clone.Relations[k] = v
	}

	clone.Details = make(map[string]string, len(c.Details))
	for k, v := range c.Details {
		clone.Details[k] = v
	}

	clone.Backgrounds = make([]*BackgroundRating, len(c.Backgrounds))
	for i, bg := range c.Backgrounds {
		cp := *bg
		clone.Backgrounds[i] = &cp
	}

	clone.Specialties = append([]string(nil), c.Specialties...)
	clone.Languages = append([]string(nil), c.Languages...)
	clone.SpendRecords = append([]SpendRecord(nil), c.SpendRecords...)

	return &clone
}
