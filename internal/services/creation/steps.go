package creation

import (
	"context"
	"strings"

	"github.com/veilwright/wod-chargen/internal/clients/catalog"
	"github.com/veilwright/wod-chargen/internal/domain/budget"
	"github.com/veilwright/wod-chargen/internal/domain/character"
	"github.com/veilwright/wod-chargen/internal/domain/rulebook"
	"github.com/veilwright/wod-chargen/internal/errors"
	"github.com/veilwright/wod-chargen/internal/services/eligibility"
	"github.com/veilwright/wod-chargen/internal/services/ledger"
)

// stepHandler applies one creation step to a working copy of the
// character. Violations mean the submission is rejected wholesale; an
// error means a dependency failed.
type stepHandler interface {
	Apply(ctx context.Context, char *character.Character, cfg *rulebook.Config, payload *StepPayload) ([]budget.Violation, error)

	// Skip reports whether the sequencer should pass over this step for
	// the character's current state.
	Skip(char *character.Character, cfg *rulebook.Config) bool
}

type handlerDeps struct {
	catalog     catalog.Client
	eligibility eligibility.Service
	ledger      ledger.Service
}

func newHandlers(deps handlerDeps) map[rulebook.StepID]stepHandler {
	return map[rulebook.StepID]stepHandler{
		rulebook.StepBasics:      &basicsStep{},
		rulebook.StepAttributes:  &attributesStep{deps},
		rulebook.StepAbilities:   &abilitiesStep{deps},
		rulebook.StepBackgrounds: &backgroundsStep{deps},
		rulebook.StepPowers:      &powersStep{deps},
		rulebook.StepVirtues:     &virtuesStep{},
		rulebook.StepExtras:      &extrasStep{deps},
		rulebook.StepFreebies:    &freebiesStep{deps},
		rulebook.StepLanguages:   &languagesStep{},
		rulebook.StepSpecialties: &specialtiesStep{},
		rulebook.StepHistory:     &historyStep{},
	}
}

// basicsStep records name, concept, and the defining relations.
type basicsStep struct{}

func (*basicsStep) Skip(*character.Character, *rulebook.Config) bool { return false }

func (*basicsStep) Apply(_ context.Context, char *character.Character, cfg *rulebook.Config, payload *StepPayload) ([]budget.Violation, error) {
	var violations []budget.Violation

	if name := payload.Details["name"]; name != "" {
		char.Name = name
	}
	if char.Name == "" {
		violations = append(violations, budget.Violation{
			Field: "name", Code: CodeMissingField, Message: "a character needs a name",
		})
	}
	if concept := payload.Details["concept"]; concept != "" {
		char.Concept = concept
	}

	for _, req := range cfg.Relations {
		value, given := payload.Relations[req.Kind]
		if given {
			char.SetRelation(req.Kind, value)
		}
		if !req.Optional && char.Relation(req.Kind) == "" {
			violations = append(violations, budget.Violation{
				Field:   string(req.Kind),
				Code:    CodeMissingField,
				Message: string(req.Kind) + " must be chosen",
			})
		}
	}
	return violations, nil
}

// attributesStep checks the 7/5/3 (or 6/4/3) spread. Every attribute
// starts at one free dot; the triple counts only the dots placed on top.
type attributesStep struct{ deps handlerDeps }

func (*attributesStep) Skip(*character.Character, *rulebook.Config) bool { return false }

func (h *attributesStep) Apply(ctx context.Context, char *character.Character, cfg *rulebook.Config, payload *StepPayload) ([]budget.Violation, error) {
	groups, allowed, err := groupedNames(ctx, h.deps.catalog, "attribute", catalog.TagPhysical, catalog.TagSocial, catalog.TagMental)
	if err != nil {
		return nil, err
	}

	values := make(map[string]int, len(allowed))
	for name := range allowed {
		values[name] = cfg.AttributeBound.Min
	}
	for name, rating := range payload.Ratings {
		values[name] = rating
	}

	var violations []budget.Violation
	violations = append(violations, budget.CheckMembership(payload.Ratings, allowed)...)
	violations = append(violations, budget.CheckTriple(values, groups, cfg.AttributeTriple, cfg.AttributeBound, cfg.AttributeBound.Min)...)
	if len(violations) > 0 {
		return violations, nil
	}

	for name, rating := range values {
		char.SetTrait(name, rating)
	}
	return nil, nil
}

// abilitiesStep checks the talent/skill/knowledge spread. Abilities start
// at zero and cap at three until freebie points raise them.
type abilitiesStep struct{ deps handlerDeps }

func (*abilitiesStep) Skip(*character.Character, *rulebook.Config) bool { return false }

func (h *abilitiesStep) Apply(ctx context.Context, char *character.Character, cfg *rulebook.Config, payload *StepPayload) ([]budget.Violation, error) {
	groups, allowed, err := groupedNames(ctx, h.deps.catalog, "ability", catalog.TagTalent, catalog.TagSkill, catalog.TagKnowledge)
	if err != nil {
		return nil, err
	}

	bound := budget.Bound{Min: 0, Max: cfg.AbilityCap}

	var violations []budget.Violation
	violations = append(violations, budget.CheckMembership(payload.Ratings, allowed)...)
	violations = append(violations, budget.CheckTriple(payload.Ratings, groups, cfg.AbilityTriple, bound, 0)...)
	if len(violations) > 0 {
		return violations, nil
	}

	// Resubmission replaces the whole spread.
	for name := range allowed {
		char.SetTrait(name, payload.Ratings[name])
	}
	return nil, nil
}

// backgroundsStep spends the free background dots.
type backgroundsStep struct{ deps handlerDeps }

func (*backgroundsStep) Skip(*character.Character, *rulebook.Config) bool { return false }

func (h *backgroundsStep) Apply(ctx context.Context, char *character.Character, cfg *rulebook.Config, payload *StepPayload) ([]budget.Violation, error) {
	examples, err := h.deps.catalog.ListExamples(ctx, "background")
	if err != nil {
		return nil, err
	}
	pooled := make(map[string]bool, len(examples))
	allowed := make(map[string]struct{}, len(examples))
	for _, example := range examples {
		allowed[example.Name] = struct{}{}
		pooled[example.Name] = example.HasTag(catalog.TagPooled)
	}

	values := make(map[string]int, len(payload.Backgrounds))
	byName := make(map[string]int, len(payload.Backgrounds))
	for _, input := range payload.Backgrounds {
		key := input.Name
		if input.Note != "" {
			key = input.Name + " (" + input.Note + ")"
		}
		values[key] = input.Rating
		byName[input.Name] += input.Rating
	}

	var violations []budget.Violation
	for name := range byName {
		if _, ok := allowed[name]; !ok {
			violations = append(violations, budget.Violation{
				Field:   name,
				Code:    budget.CodeIneligibleKey,
				Message: name + " is not a known background",
			})
		}
	}
	violations = append(violations, budget.CheckSum(values, cfg.BackgroundPoints, budget.Bound{Min: 0, Max: 5})...)
	if len(violations) > 0 {
		return violations, nil
	}

	char.Backgrounds = nil
	for _, input := range payload.Backgrounds {
		char.AddBackground(&character.BackgroundRating{
			Name:   input.Name,
			Rating: input.Rating,
			Note:   input.Note,
			Pooled: pooled[input.Name],
		})
	}
	return nil, nil
}

// powersStep grants the archetype's creation powers: free-form dots for
// disciplines, spheres, and the like; fixed-level picks for gifts.
type powersStep struct{ deps handlerDeps }

func (*powersStep) Skip(_ *character.Character, cfg *rulebook.Config) bool {
	return len(cfg.Powers) == 0
}

func (h *powersStep) Apply(ctx context.Context, char *character.Character, cfg *rulebook.Config, payload *StepPayload) ([]budget.Violation, error) {
	var violations []budget.Violation
	for i := range cfg.Powers {
		alloc := &cfg.Powers[i]
		var v []budget.Violation
		var err error
		if alloc.Picks > 0 {
			v, err = h.applyPicks(ctx, char, cfg, alloc, payload)
		} else {
			v, err = h.applyDots(ctx, char, cfg, alloc, payload)
		}
		if err != nil {
			return nil, err
		}
		violations = append(violations, v...)
	}
	return violations, nil
}

func (h *powersStep) applyPicks(ctx context.Context, char *character.Character, cfg *rulebook.Config, alloc *rulebook.PowerAllocation, payload *StepPayload) ([]budget.Violation, error) {
	var violations []budget.Violation

	picked := make([]rulebook.Example, 0, len(payload.Selections))
	for _, name := range payload.Selections {
		example, err := h.deps.catalog.GetExample(ctx, alloc.Category, name)
		if err != nil {
			if errors.IsNotFound(err) {
				violations = append(violations, budget.Violation{
					Field: name, Code: budget.CodeIneligibleKey,
					Message: name + " is not a known " + alloc.Category,
				})
				continue
			}
			return nil, err
		}
		if example.Level != alloc.Level {
			violations = append(violations, budget.Violation{
				Field: name, Code: CodeBadSelection,
				Message: name + " is not available at creation",
			})
			continue
		}
		ok, err := h.deps.eligibility.IsEligible(ctx, char, cfg, alloc.Category, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			violations = append(violations, budget.Violation{
				Field: name, Code: budget.CodeIneligibleKey,
				Message: name + " is not available to this character",
			})
			continue
		}
		picked = append(picked, *example)
	}

	if len(payload.Selections) != alloc.Picks {
		violations = append(violations, budget.Violation{
			Field: alloc.Category, Code: budget.CodeSumMismatch,
			Message: "exactly the allotted picks must be chosen",
		})
	}

	// One pick per required source relation.
	for _, kind := range alloc.EachRelation {
		value := char.Relation(kind)
		found := false
		for _, example := range picked {
			if example.HasTag(value) {
				found = true
				break
			}
		}
		if value == "" || !found {
			violations = append(violations, budget.Violation{
				Field: string(kind), Code: CodeBadSelection,
				Message: "one pick must come from the character's " + string(kind),
			})
		}
	}

	if len(violations) > 0 {
		return violations, nil
	}
	for _, example := range picked {
		char.SetTrait(example.Name, alloc.Level)
	}
	return nil, nil
}

func (h *powersStep) applyDots(ctx context.Context, char *character.Character, cfg *rulebook.Config, alloc *rulebook.PowerAllocation, payload *StepPayload) ([]budget.Violation, error) {
	var violations []budget.Violation

	// Only ratings naming this category's examples belong to this
	// allocation; a changeling submits arts and realms together.
	values := make(map[string]int)
	for name, rating := range payload.Ratings {
		if _, err := h.deps.catalog.GetExample(ctx, alloc.Category, name); err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		values[name] = rating
	}

	// Fixed grants come first and do not consume the allocation.
	spent := 0
	for name, rating := range values {
		final := rating + alloc.Fixed[name]
		if !alloc.Bound.Contains(final) {
			violations = append(violations, budget.Violation{
				Field: name, Code: budget.CodeOutOfBounds,
				Message: name + " is outside the allowed range",
			})
		}
		ok, err := h.deps.eligibility.IsEligible(ctx, char, cfg, alloc.Category, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			violations = append(violations, budget.Violation{
				Field: name, Code: budget.CodeIneligibleKey,
				Message: name + " is not available to this character",
			})
		}
		spent += rating
	}

	if spent > alloc.Dots || (alloc.Exact && spent != alloc.Dots) {
		violations = append(violations, budget.Violation{
			Field: alloc.Category, Code: budget.CodeSumMismatch,
			Message: "the allocation must be spent exactly",
		})
	}

	if alloc.RelationMinimum != "" {
		target := char.Relation(alloc.RelationMinimum)
		if target == "" || values[target]+alloc.Fixed[target] < 1 {
			violations = append(violations, budget.Violation{
				Field: string(alloc.RelationMinimum), Code: CodeBadSelection,
				Message: "at least one dot must go to the " + string(alloc.RelationMinimum),
			})
		}
	}

	if len(violations) > 0 {
		return violations, nil
	}

	// Resubmission replaces the category's spread.
	examples, err := h.deps.catalog.ListExamples(ctx, alloc.Category)
	if err != nil {
		return nil, err
	}
	for _, example := range examples {
		char.SetTrait(example.Name, values[example.Name]+alloc.Fixed[example.Name])
	}
	return nil, nil
}

// virtuesStep distributes the virtue dots and derives the morality
// traits: Willpower from Courage, Humanity from Conscience and
// Self-Control, a path rating from Conviction and Instinct.
type virtuesStep struct{}

func (*virtuesStep) Skip(_ *character.Character, cfg *rulebook.Config) bool {
	return cfg.Virtues == nil
}

func (*virtuesStep) Apply(_ context.Context, char *character.Character, cfg *rulebook.Config, payload *StepPayload) ([]budget.Violation, error) {
	names := cfg.VirtueNames(char)
	allowed := make(map[string]struct{}, len(names))
	for _, name := range names {
		allowed[name] = struct{}{}
	}

	values := make(map[string]int, len(names))
	for _, name := range names {
		values[name] = cfg.Virtues.Bound.Min
	}
	for name, rating := range payload.Ratings {
		values[name] = rating
	}

	var violations []budget.Violation
	violations = append(violations, budget.CheckMembership(payload.Ratings, allowed)...)
	// Each virtue starts at one dot; the pool buys the rest.
	required := cfg.Virtues.Total + len(names)*cfg.Virtues.Bound.Min
	violations = append(violations, budget.CheckSum(values, required, cfg.Virtues.Bound)...)
	if len(violations) > 0 {
		return violations, nil
	}

	// Clear both spreads before applying; a path change swaps the names.
	for _, name := range cfg.Virtues.Standard {
		char.SetTrait(name, 0)
	}
	for _, name := range cfg.Virtues.PathAlt {
		char.SetTrait(name, 0)
	}
	for name, rating := range values {
		char.SetTrait(name, rating)
	}

	char.SetTrait(rulebook.TraitWillpower, values[rulebook.VirtueCourage])
	if conscience, ok := values[rulebook.VirtueConscience]; ok {
		char.SetTrait(rulebook.TraitHumanity, conscience+values[rulebook.VirtueSelfControl])
		char.SetTrait(rulebook.TraitPathRating, 0)
	} else {
		char.SetTrait(rulebook.TraitPathRating, values[rulebook.VirtueConviction]+values[rulebook.VirtueInstinct])
		char.SetTrait(rulebook.TraitHumanity, 0)
	}
	return nil, nil
}

// extrasStep takes merits and flaws through the ledger, so flaws credit
// the freebie pool immediately and the flaw floor is enforced.
type extrasStep struct{ deps handlerDeps }

func (*extrasStep) Skip(*character.Character, *rulebook.Config) bool { return false }

func (h *extrasStep) Apply(ctx context.Context, char *character.Character, cfg *rulebook.Config, payload *StepPayload) ([]budget.Violation, error) {
	reqs := make([]ledger.SpendRequest, 0, len(payload.Spends))
	for _, req := range payload.Spends {
		if req.Category != "meritflaw" {
			return []budget.Violation{{
				Field: req.Category, Code: CodeBadSelection,
				Message: "only merits and flaws are taken at this stage",
			}}, nil
		}
		req.Currency = character.CurrencyFreebie
		reqs = append(reqs, req)
	}
	return h.deps.ledger.Spend(ctx, char, cfg, reqs)
}

// freebiesStep spends the remaining freebie pool. The step only passes
// with a zero balance: leftover points are a rejection, not a waste.
type freebiesStep struct{ deps handlerDeps }

func (*freebiesStep) Skip(*character.Character, *rulebook.Config) bool { return false }

func (h *freebiesStep) Apply(ctx context.Context, char *character.Character, cfg *rulebook.Config, payload *StepPayload) ([]budget.Violation, error) {
	reqs := make([]ledger.SpendRequest, 0, len(payload.Spends))
	for _, req := range payload.Spends {
		req.Currency = character.CurrencyFreebie
		reqs = append(reqs, req)
	}

	violations, err := h.deps.ledger.Spend(ctx, char, cfg, reqs)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return violations, nil
	}

	if balance := char.Balance(character.CurrencyFreebie); balance != 0 {
		return []budget.Violation{{
			Field:   "freebies",
			Code:    CodeUnspentPoints,
			Message: "all freebie points must be spent before finishing",
		}}, nil
	}
	return nil, nil
}

// languagesStep records bonus languages granted by the Language merit.
type languagesStep struct{}

func (*languagesStep) Skip(char *character.Character, _ *rulebook.Config) bool {
	return char.MeritsFlaws["Language"] <= 0
}

func (*languagesStep) Apply(_ context.Context, char *character.Character, _ *rulebook.Config, payload *StepPayload) ([]budget.Violation, error) {
	slots := char.MeritsFlaws["Language"]
	if len(payload.Selections) == 0 || len(payload.Selections) > slots {
		return []budget.Violation{{
			Field: "languages", Code: CodeBadSelection,
			Message: "choose between one language and the merit rating",
		}}, nil
	}
	char.Languages = append([]string(nil), payload.Selections...)
	return nil, nil
}

// specialtiesStep records specialties for traits rated four or higher,
// formatted "Trait: specialty".
type specialtiesStep struct{}

func (*specialtiesStep) Skip(char *character.Character, _ *rulebook.Config) bool {
	for _, rating := range char.Traits {
		if rating >= 4 {
			return false
		}
	}
	return true
}

func (*specialtiesStep) Apply(_ context.Context, char *character.Character, _ *rulebook.Config, payload *StepPayload) ([]budget.Violation, error) {
	var violations []budget.Violation
	for _, entry := range payload.Selections {
		trait, _, found := strings.Cut(entry, ":")
		trait = strings.TrimSpace(trait)
		if !found || trait == "" {
			violations = append(violations, budget.Violation{
				Field: entry, Code: CodeBadSelection,
				Message: "specialties are written as \"Trait: focus\"",
			})
			continue
		}
		if char.Trait(trait) < 4 {
			violations = append(violations, budget.Violation{
				Field: trait, Code: CodeBadSelection,
				Message: trait + " needs four dots to take a specialty",
			})
		}
	}
	if len(violations) > 0 {
		return violations, nil
	}
	char.Specialties = append([]string(nil), payload.Selections...)
	return nil, nil
}

// historyStep stores the free-form backstory fields.
type historyStep struct{}

func (*historyStep) Skip(*character.Character, *rulebook.Config) bool { return false }

func (*historyStep) Apply(_ context.Context, char *character.Character, _ *rulebook.Config, payload *StepPayload) ([]budget.Violation, error) {
	for key, value := range payload.Details {
		if value == "" {
			delete(char.Details, key)
			continue
		}
		char.Details[key] = value
	}
	return nil, nil
}

// groupedNames loads a category and splits it into the three named tag
// groups, also returning the full membership set.
func groupedNames(ctx context.Context, client catalog.Client, category string, tags ...string) ([3][]string, map[string]struct{}, error) {
	var groups [3][]string
	allowed := make(map[string]struct{})

	examples, err := client.ListExamples(ctx, category)
	if err != nil {
		return groups, nil, err
	}
	for _, example := range examples {
		allowed[example.Name] = struct{}{}
		for i, tag := range tags {
			if example.HasTag(tag) {
				groups[i] = append(groups[i], example.Name)
			}
		}
	}
	return groups, allowed, nil
}
