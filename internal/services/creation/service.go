// Package creation drives the step-by-step character creation workflow:
// sequencing, access control, and the post-creation storyteller
// operations.
package creation

import (
	"context"

	"github.com/veilwright/wod-chargen/internal/clients/catalog"
	"github.com/veilwright/wod-chargen/internal/domain/character"
	"github.com/veilwright/wod-chargen/internal/domain/rulebook"
	"github.com/veilwright/wod-chargen/internal/errors"
	"github.com/veilwright/wod-chargen/internal/repositories/characters"
	"github.com/veilwright/wod-chargen/internal/services/eligibility"
	"github.com/veilwright/wod-chargen/internal/services/ledger"
	"github.com/veilwright/wod-chargen/internal/uuid"
)

// CreateCharacterInput starts a new character.
type CreateCharacterInput struct {
	OwnerID     string
	ChronicleID string
	Name        string
	Archetype   string
}

// SubmitStepInput submits one creation step.
type SubmitStepInput struct {
	CharacterID string
	StepIndex   int
	Payload     *StepPayload
}

// Service is the character creation and review workflow.
type Service interface {
	// CreateCharacter starts a fresh character at the first step.
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*character.Character, error)

	// GetCharacter fetches a character the actor may view.
	GetCharacter(ctx context.Context, actor character.Actor, id string) (*character.Character, error)

	// ListByOwner returns the actor's own characters.
	ListByOwner(ctx context.Context, ownerID string) ([]*character.Character, error)

	// SubmitStep validates and applies one step. The step sequence
	// advances only when the submitted step is the character's current
	// one; completing the final step submits the character for review.
	SubmitStep(ctx context.Context, actor character.Actor, input *SubmitStepInput) (*StepResult, error)

	// ChangeRelation updates a defining relation and atomically resets
	// every trait rating stranded by the change, refunding freebie
	// spends made on them.
	ChangeRelation(ctx context.Context, actor character.Actor, id string, kind character.RelationKind, value string) (*character.Character, error)

	// Approve moves a submitted character into play.
	Approve(ctx context.Context, actor character.Actor, id string) (*character.Character, error)

	// DenySpend marks a spend record denied, refunds its cost, and
	// reverts the trait to its prior rating.
	DenySpend(ctx context.Context, actor character.Actor, id string, recordIndex int) (*character.Character, error)

	// AwardBackstoryFreebies grants the one-time storyteller bonus for
	// a submitted backstory.
	AwardBackstoryFreebies(ctx context.Context, actor character.Actor, id string, amount int) (*character.Character, error)

	// AwardExperience grants experience points.
	AwardExperience(ctx context.Context, actor character.Actor, id string, amount int) (*character.Character, error)

	// SpendExperience spends earned experience on an approved
	// character, all-or-nothing.
	SpendExperience(ctx context.Context, actor character.Actor, id string, reqs []ledger.SpendRequest) (*StepResult, error)
}

// ServiceConfig holds the service dependencies.
type ServiceConfig struct {
	Repository  characters.Repository
	Registry    *rulebook.Registry
	Catalog     catalog.Client
	Eligibility eligibility.Service
	Ledger      ledger.Service
	IDGenerator uuid.Generator
}

type service struct {
	repo        characters.Repository
	registry    *rulebook.Registry
	eligibility eligibility.Service
	ledger      ledger.Service
	idgen       uuid.Generator
	gate        StepGate
	handlers    map[rulebook.StepID]stepHandler
}

// NewService creates the creation workflow service.
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Repository == nil {
		return nil, errors.InvalidArgument("repository cannot be nil")
	}
	if cfg.Registry == nil {
		return nil, errors.InvalidArgument("registry cannot be nil")
	}
	if cfg.Catalog == nil {
		return nil, errors.InvalidArgument("catalog client cannot be nil")
	}
	if cfg.Eligibility == nil {
		return nil, errors.InvalidArgument("eligibility service cannot be nil")
	}
	if cfg.Ledger == nil {
		return nil, errors.InvalidArgument("ledger service cannot be nil")
	}

	idgen := cfg.IDGenerator
	if idgen == nil {
		idgen = uuid.NewPrefixed("char")
	}

	return &service{
		repo:        cfg.Repository,
		registry:    cfg.Registry,
		eligibility: cfg.Eligibility,
		ledger:      cfg.Ledger,
		idgen:       idgen,
		handlers: newHandlers(handlerDeps{
			catalog:     cfg.Catalog,
			eligibility: cfg.Eligibility,
			ledger:      cfg.Ledger,
		}),
	}, nil
}

func (s *service) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*character.Character, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	cfg, err := s.registry.Get(input.Archetype)
	if err != nil {
		return nil, err
	}

	char := character.New(s.idgen.New(), input.OwnerID, input.ChronicleID, input.Name, cfg.Archetype, cfg.Freebies)
	for name, rating := range cfg.BaseTraits {
		char.SetTrait(name, rating)
	}

	if err := s.repo.Create(ctx, char); err != nil {
		return nil, err
	}
	return char, nil
}

func (s *service) GetCharacter(ctx context.Context, actor character.Actor, id string) (*character.Character, error) {
	char, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanView(char) {
		return nil, errors.PermissionDenied("not your character").
			WithMeta("character_id", id)
	}
	return char, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]*character.Character, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

func (s *service) SubmitStep(ctx context.Context, actor character.Actor, input *SubmitStepInput) (*StepResult, error) {
	if input == nil || input.Payload == nil {
		return nil, errors.InvalidArgument("a step payload is required")
	}

	char, err := s.repo.Get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.registry.Get(char.Archetype)
	if err != nil {
		return nil, err
	}
	if err := s.gate.CanAccess(actor, char, cfg, input.StepIndex); err != nil {
		return nil, err
	}

	stepID := cfg.Steps[input.StepIndex]
	handler, ok := s.handlers[stepID]
	if !ok {
		return nil, errors.Internalf("no handler for step %q", stepID)
	}

	// The handler works on a clone; a rejected submission leaves the
	// stored character untouched.
	work := char.Clone()
	violations, err := handler.Apply(ctx, work, cfg, input.Payload)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return &StepResult{
			Character: char,
			Errors:    violations,
			StepIndex: char.StepIndex,
		}, nil
	}

	if input.StepIndex == work.StepIndex && work.Lifecycle == character.StateUnfinished {
		s.advance(work, cfg)
	}

	if err := s.repo.Update(ctx, work); err != nil {
		return nil, err
	}
	return &StepResult{
		Character: work,
		StepIndex: work.StepIndex,
		Submitted: work.Lifecycle == character.StateSubmitted,
	}, nil
}

// advance moves past the completed current step, skipping steps that do
// not apply. Running out of steps submits the character for review.
func (s *service) advance(char *character.Character, cfg *rulebook.Config) {
	next := char.StepIndex + 1
	for next < len(cfg.Steps) {
		handler := s.handlers[cfg.Steps[next]]
		if handler == nil || !handler.Skip(char, cfg) {
			break
		}
		next++
	}
	char.StepIndex = next
	if next >= len(cfg.Steps) {
		char.Lifecycle = character.StateSubmitted
	}
}

func (s *service) ChangeRelation(ctx context.Context, actor character.Actor, id string, kind character.RelationKind, value string) (*character.Character, error) {
	char, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(char) && !actor.Oversees(char) {
		return nil, errors.PermissionDenied("not your character").WithMeta("character_id", id)
	}
	if char.Lifecycle != character.StateUnfinished && !actor.Oversees(char) {
		return nil, errors.PermissionDenied("relations are fixed after submission").
			WithMeta("character_id", id)
	}

	cfg, err := s.registry.Get(char.Archetype)
	if err != nil {
		return nil, err
	}

	stranded, err := s.eligibility.InvalidatedTraits(ctx, char, cfg, kind, value)
	if err != nil {
		return nil, err
	}

	work := char.Clone()
	work.SetRelation(kind, value)

	// Every stranded rating resets; freebie spends made on them refund.
	for _, name := range stranded {
		work.SetTrait(name, 0)
		for i := range work.SpendRecords {
			rec := &work.SpendRecords[i]
			if rec.Example != name || rec.Denied || rec.Currency != character.CurrencyFreebie {
				continue
			}
			rec.Denied = true
			work.Debit(rec.Currency, -rec.Cost)
		}
	}

	// A path change swaps the virtue spread; the old virtues and their
	// derived traits reset with it.
	if kind == character.RelationPath && cfg.Virtues != nil && len(cfg.Virtues.PathAlt) > 0 {
		for _, name := range append(append([]string{}, cfg.Virtues.Standard...), cfg.Virtues.PathAlt...) {
			work.SetTrait(name, 0)
		}
		work.SetTrait(rulebook.TraitWillpower, 0)
		work.SetTrait(rulebook.TraitHumanity, 0)
		work.SetTrait(rulebook.TraitPathRating, 0)
		s.rewindTo(work, cfg, rulebook.StepVirtues)
	}
	if len(stranded) > 0 {
		s.rewindTo(work, cfg, rulebook.StepPowers)
	}

	if err := s.repo.Update(ctx, work); err != nil {
		return nil, err
	}
	return work, nil
}

// rewindTo moves an unfinished character back to a step it must redo.
func (s *service) rewindTo(char *character.Character, cfg *rulebook.Config, stepID rulebook.StepID) {
	if char.Lifecycle != character.StateUnfinished {
		return
	}
	for i, step := range cfg.Steps {
		if step == stepID {
			if i < char.StepIndex {
				char.StepIndex = i
			}
			return
		}
	}
}

func (s *service) Approve(ctx context.Context, actor character.Actor, id string) (*character.Character, error) {
	char, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Oversees(char) {
		return nil, errors.PermissionDenied("only a storyteller may approve characters").
			WithMeta("character_id", id)
	}
	if char.Lifecycle != character.StateSubmitted {
		return nil, errors.InvalidArgumentf("character is %s, not awaiting review", char.Lifecycle)
	}

	char.Lifecycle = character.StateApproved
	if err := s.repo.Update(ctx, char); err != nil {
		return nil, err
	}
	return char, nil
}

func (s *service) DenySpend(ctx context.Context, actor character.Actor, id string, recordIndex int) (*character.Character, error) {
	char, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Oversees(char) {
		return nil, errors.PermissionDenied("only a storyteller may deny spends").
			WithMeta("character_id", id)
	}
	if recordIndex < 0 || recordIndex >= len(char.SpendRecords) {
		return nil, errors.InvalidArgumentf("no spend record %d", recordIndex)
	}

	rec := &char.SpendRecords[recordIndex]
	if rec.Denied {
		return nil, errors.InvalidArgument("spend is already denied")
	}

	rec.Denied = true
	char.Debit(rec.Currency, -rec.Cost)

	switch rec.Category {
	case "background":
		if bg := char.Background(rec.Example); bg != nil {
			bg.Rating = rec.PrevValue
		}
	case "meritflaw":
		if rec.PrevValue == 0 {
			delete(char.MeritsFlaws, rec.Example)
		} else {
			char.MeritsFlaws[rec.Example] = rec.PrevValue
		}
	default:
		char.SetTrait(rec.Example, rec.PrevValue)
	}

	if err := s.repo.Update(ctx, char); err != nil {
		return nil, err
	}
	return char, nil
}

func (s *service) AwardBackstoryFreebies(ctx context.Context, actor character.Actor, id string, amount int) (*character.Character, error) {
	if amount <= 0 {
		return nil, errors.InvalidArgument("award must be positive")
	}

	char, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Oversees(char) {
		return nil, errors.PermissionDenied("only a storyteller may award freebies").
			WithMeta("character_id", id)
	}
	if char.FreebiesAwarded {
		return nil, errors.AlreadyExists("backstory freebies were already awarded").
			WithMeta("character_id", id)
	}

	char.Freebies += amount
	char.FreebiesAwarded = true
	if err := s.repo.Update(ctx, char); err != nil {
		return nil, err
	}
	return char, nil
}

func (s *service) AwardExperience(ctx context.Context, actor character.Actor, id string, amount int) (*character.Character, error) {
	if amount <= 0 {
		return nil, errors.InvalidArgument("award must be positive")
	}

	char, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Oversees(char) {
		return nil, errors.PermissionDenied("only a storyteller may award experience").
			WithMeta("character_id", id)
	}

	char.Experience += amount
	if err := s.repo.Update(ctx, char); err != nil {
		return nil, err
	}
	return char, nil
}

func (s *service) SpendExperience(ctx context.Context, actor character.Actor, id string, reqs []ledger.SpendRequest) (*StepResult, error) {
	char, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(char) && !actor.Oversees(char) {
		return nil, errors.PermissionDenied("not your character").WithMeta("character_id", id)
	}
	if char.Lifecycle != character.StateApproved {
		return nil, errors.InvalidArgument("experience is spent on approved characters only")
	}

	cfg, err := s.registry.Get(char.Archetype)
	if err != nil {
		return nil, err
	}

	forced := make([]ledger.SpendRequest, len(reqs))
	for i, req := range reqs {
		req.Currency = character.CurrencyExperience
		forced[i] = req
	}

	violations, err := s.ledger.Spend(ctx, char, cfg, forced)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return &StepResult{Character: char, Errors: violations, StepIndex: char.StepIndex}, nil
	}

	if err := s.repo.Update(ctx, char); err != nil {
		return nil, err
	}
	return &StepResult{Character: char, StepIndex: char.StepIndex}, nil
}
