package rulebook

import (
	"github.com/veilwright/wod-chargen/internal/domain/budget"
	"github.com/veilwright/wod-chargen/internal/domain/character"
)

// mageConfig: six sphere dots with at least one in the affinity sphere,
// which also earns the cheaper advancement rate.
func mageConfig() *Config {
	return &Config{
		Archetype:        "mage",
		DisplayName:      "Mage",
		Freebies:         15,
		BackgroundPoints: 5,
		AttributeTriple:  supernaturalAttributes,
		AbilityTriple:    supernaturalAbilities,
		AttributeBound:   defaultAttributeBound,
		AbilityCap:       3,
		MaxFlawPoints:    -7,
		Steps:            garouSteps,
		Relations: []RelationRequirement{
			{Kind: character.RelationAffinitySphere},
		},
		Powers: []PowerAllocation{
			{
				Category:        "sphere",
				Dots:            6,
				Exact:           true,
				Bound:           budget.Bound{Min: 0, Max: 3},
				RelationMinimum: character.RelationAffinitySphere,
			},
		},
		BaseTraits: map[string]int{"Arete": 1, TraitWillpower: 5},
		Costs:      pick(withUniversal("sphere", "arete", "quintessence", "resonance"), nil),
		Eligibility: map[string]EligibilityRule{
			// Every sphere is learnable; the affinity relation still
			// drives pricing and reset semantics.
			"sphere": {
				Open:      true,
				Relations: []character.RelationKind{character.RelationAffinitySphere},
				ResetOn:   []character.RelationKind{character.RelationAffinitySphere},
			},
		},
	}
}

func mtaHumanConfig() *Config {
	return &Config{
		Archetype:        "mta_human",
		DisplayName:      "Mortal (Mage)",
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

// sorcererConfig: linear magic. Five path dots, no affinity mechanics.
func sorcererConfig() *Config {
	return &Config{
		Archetype:        "sorcerer",
		DisplayName:      "Sorcerer",
		Freebies:         15,
		BackgroundPoints: 5,
		AttributeTriple:  mortalAttributes,
		AbilityTriple:    mortalAbilities,
		AttributeBound:   defaultAttributeBound,
		AbilityCap:       3,
		MaxFlawPoints:    -7,
		Steps:            garouSteps,
		Powers: []PowerAllocation{
			{
				Category: "path",
				Dots:     5,
				Exact:    true,
				Bound:    budget.Bound{Min: 0, Max: 3},
			},
		},
		BaseTraits: map[string]int{TraitWillpower: 5},
		Costs:      pick(withUniversal("path", "ritual"), nil),
	}
}

// companionConfig: familiars and other allied beings, statted with
// advantages instead of a power list.
func companionConfig() *Config {
	return &Config{
		Archetype:        "companion",
		DisplayName:      "Companion",
		Freebies:         15,
		BackgroundPoints: 5,
		AttributeTriple:  mortalAttributes,
		AbilityTriple:    mortalAbilities,
		AttributeBound:   defaultAttributeBound,
		AbilityCap:       3,
		MaxFlawPoints:    -7,
		Steps:            garouSteps,
		Powers: []PowerAllocation{
			{
				Category: "advantage",
				Dots:     5,
				Bound:    budget.Bound{Min: 0, Max: 5},
			},
		},
		BaseTraits: map[string]int{TraitWillpower: 4},
		Costs:      pick(withUniversal("advantage", "charm"), nil),
	}
}
