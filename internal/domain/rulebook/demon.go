package rulebook

import (
	"github.com/veilwright/wod-chargen/internal/domain/budget"
	"github.com/veilwright/wod-chargen/internal/domain/character"
)

// demonConfig: three lore dots weighted toward the Fallen's House. Lores
// from other Houses cost more to advance.
func demonConfig() *Config {
	return &Config{
		Archetype:        "demon",
		DisplayName:      "Demon",
		Freebies:         15,
		BackgroundPoints: 5,
		AttributeTriple:  supernaturalAttributes,
		AbilityTriple:    supernaturalAbilities,
		AttributeBound:   defaultAttributeBound,
		AbilityCap:       3,
		MaxFlawPoints:    -7,
		Steps:            garouSteps,
		Relations: []RelationRequirement{
			{Kind: character.RelationHouse},
		},
		Powers: []PowerAllocation{
			{
				Category: "lore",
				Dots:     3,
				Exact:    true,
				Bound:    budget.Bound{Min: 0, Max: 3},
			},
		},
		BaseTraits: map[string]int{"Faith": 3, "Torment": 3, TraitWillpower: 5},
		Costs:      pick(withUniversal("lore", "faith"), nil),
		Eligibility: map[string]EligibilityRule{
			"lore": {
				Relations:    []character.RelationKind{character.RelationHouse},
				FallbackTags: []string{"common"},
				ResetOn:      []character.RelationKind{character.RelationHouse},
			},
		},
	}
}

func dtfHumanConfig() *Config {
	return &Config{
		Archetype:        "dtf_human",
		DisplayName:      "Mortal (Demon)",
		Freebies:         15,
		BackgroundPoints: 5,
		AttributeTriple:  mortalAttributes,
		AbilityTriple:    mortalAbilities,
		AttributeBound:   defaultAttributeBound,
		AbilityCap:       3,
		MaxFlawPoints:    -7,
		Steps:            plainMortalSteps,
		BaseTraits:       map[string]int{TraitWillpower: 5},
		Costs:            pick(withUniversal(), nil),
	}
}

// thrallConfig: a mortal pacted to one of the Fallen. The pact grants
// faith potential rather than a power list.
func thrallConfig() *Config {
	return &Config{
		Archetype:        "thrall",
		DisplayName:      "Thrall",
		Freebies:         15,
		BackgroundPoints: 5,
		AttributeTriple:  mortalAttributes,
		AbilityTriple:    mortalAbilities,
		AttributeBound:   defaultAttributeBound,
		AbilityCap:       3,
		MaxFlawPoints:    -7,
		Steps:            plainMortalSteps,
		BaseTraits:       map[string]int{"Faith Potential": 1, TraitWillpower: 3},
		Costs:            pick(withUniversal("faith_potential"), nil),
	}
}
