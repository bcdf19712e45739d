package rulebook

import (
	"github.com/veilwright/wod-chargen/internal/domain/budget"
	"github.com/veilwright/wod-chargen/internal/domain/character"
)

// wraithConfig: five arcanos dots, guild membership optional. Willpower
// costs double for the Restless.
func wraithConfig() *Config {
	return &Config{
		Archetype:        "wraith",
		DisplayName:      "Wraith",
		Freebies:         15,
		BackgroundPoints: 5,
		AttributeTriple:  supernaturalAttributes,
		AbilityTriple:    supernaturalAbilities,
		AttributeBound:   defaultAttributeBound,
		AbilityCap:       3,
		MaxFlawPoints:    -7,
		Steps:            garouSteps,
		Relations: []RelationRequirement{
			{Kind: character.RelationGuild, Optional: true},
		},
		Powers: []PowerAllocation{
			{
				Category: "arcanos",
				Dots:     5,
				Exact:    true,
				Bound:    budget.Bound{Min: 0, Max: 3},
			},
		},
		BaseTraits: map[string]int{"Corpus": 10, "Pathos": 5, TraitWillpower: 5},
		Costs: pick(withUniversal("arcanos", "pathos", "passion", "fetter"), CostTable{
			"willpower": {Freebie: 2, XPMult: 1, Max: 10},
		}),
		Eligibility: map[string]EligibilityRule{
			"arcanos": {Open: true},
		},
	}
}

func wtoHumanConfig() *Config {
	return &Config{
		Archetype:        "wto_human",
		DisplayName:      "Mortal (Wraith)",
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
