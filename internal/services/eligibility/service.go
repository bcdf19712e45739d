// Package eligibility filters the trait catalog down to what a character
// may actually buy. Access keys off defining relations, never off the
// character's concrete type: a discipline is available because the buyer's
// clan appears in its tags, not because the buyer is a vampire.
package eligibility

import (
	"context"

	"github.com/veilwright/wod-chargen/internal/clients/catalog"
	"github.com/veilwright/wod-chargen/internal/domain/character"
	"github.com/veilwright/wod-chargen/internal/domain/rulebook"
	"github.com/veilwright/wod-chargen/internal/errors"
)

// Service answers which catalog examples a character qualifies for.
type Service interface {
	// Eligible lists the examples of a category the character may buy.
	Eligible(ctx context.Context, char *character.Character, cfg *rulebook.Config, category string) ([]rulebook.Example, error)

	// IsEligible reports whether one named example qualifies.
	IsEligible(ctx context.Context, char *character.Character, cfg *rulebook.Config, category, name string) (bool, error)

	// InvalidatedTraits lists the trait names a character holds that
	// changing the given relation to newValue would strand: ratings in a
	// category whose rule resets on that relation and that no longer
	// qualify once the new value is in place. Still-eligible ratings
	// survive the change.
	InvalidatedTraits(ctx context.Context, char *character.Character, cfg *rulebook.Config, kind character.RelationKind, newValue string) ([]string, error)
}

// ServiceConfig holds the service dependencies.
type ServiceConfig struct {
	Catalog catalog.Client
}

type service struct {
	catalog catalog.Client
}

// NewService creates an eligibility service.
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Catalog == nil {
		return nil, errors.InvalidArgument("catalog client cannot be nil")
	}
	return &service{catalog: cfg.Catalog}, nil
}

func (s *service) Eligible(ctx context.Context, char *character.Character, cfg *rulebook.Config, category string) ([]rulebook.Example, error) {
	examples, err := s.catalog.ListExamples(ctx, category)
	if err != nil {
		return nil, err
	}

	rule := cfg.EligibilityFor(category)
	if rule.Open {
		return examples, nil
	}

	values := relationValues(char, rule)

	// Nothing to key on and no fallback: the whole category stays open.
	// A clanless vampire picks disciplines freely and pays for it at
	// advancement time.
	if len(values) == 0 && len(rule.FallbackTags) == 0 {
		return examples, nil
	}

	out := make([]rulebook.Example, 0, len(examples))
	for _, example := range examples {
		if admits(rule, values, example) {
			out = append(out, example)
		}
	}
	return out, nil
}

func (s *service) IsEligible(ctx context.Context, char *character.Character, cfg *rulebook.Config, category, name string) (bool, error) {
	example, err := s.catalog.GetExample(ctx, category, name)
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	rule := cfg.EligibilityFor(category)
	if rule.Open {
		return true, nil
	}

	values := relationValues(char, rule)
	if len(values) == 0 && len(rule.FallbackTags) == 0 {
		return true, nil
	}
	return admits(rule, values, *example), nil
}

func (s *service) InvalidatedTraits(ctx context.Context, char *character.Character, cfg *rulebook.Config, kind character.RelationKind, newValue string) ([]string, error) {
	var stranded []string
	for category, rule := range cfg.Eligibility {
		if !resetsOn(rule, kind) || rule.Open {
			continue
		}

		// Relation values as they will stand after the change.
		var values []string
		for _, k := range rule.Relations {
			v := char.Relation(k)
			if k == kind {
				v = newValue
			}
			if v != "" {
				values = append(values, v)
			}
		}
		// No values and no fallback leaves the category open, so nothing
		// is stranded.
		if len(values) == 0 && len(rule.FallbackTags) == 0 {
			continue
		}

		examples, err := s.catalog.ListExamples(ctx, category)
		if err != nil {
			return nil, err
		}
		for _, example := range examples {
			if char.Trait(example.Name) > 0 && !admits(rule, values, example) {
				stranded = append(stranded, example.Name)
			}
		}
	}
	return stranded, nil
}

// relationValues collects the character's values for the rule's relations.
func relationValues(char *character.Character, rule rulebook.EligibilityRule) []string {
	var values []string
	for _, kind := range rule.Relations {
		if v := char.Relation(kind); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// admits reports whether an example qualifies under the collected relation
// values or the rule's fallback tags. A relation value matches by tag, or
// by the example's own name for relations that point directly at a trait
// (a mage's affinity sphere).
func admits(rule rulebook.EligibilityRule, values []string, example rulebook.Example) bool {
	for _, value := range values {
		if example.Name == value || example.HasTag(value) {
			return true
		}
	}
	for _, tag := range rule.FallbackTags {
		if example.HasTag(tag) {
			return true
		}
	}
	return false
}

func resetsOn(rule rulebook.EligibilityRule, kind character.RelationKind) bool {
	for _, k := range rule.ResetOn {
		if k == kind {
			return true
		}
	}
	return false
}
