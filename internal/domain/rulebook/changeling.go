package rulebook

import (
	"github.com/veilwright/wod-chargen/internal/domain/budget"
	"github.com/veilwright/wod-chargen/internal/domain/character"
)

// changelingConfig: three art dots and five realm dots, spent separately.
// Willpower advancement costs double for the Kithain.
func changelingConfig() *Config {
	return &Config{
		Archetype:        "changeling",
		DisplayName:      "Changeling",
		Freebies:         15,
		BackgroundPoints: 5,
		AttributeTriple:  supernaturalAttributes,
		AbilityTriple:    supernaturalAbilities,
		AttributeBound:   defaultAttributeBound,
		AbilityCap:       3,
		MaxFlawPoints:    -7,
		Steps:            garouSteps,
		Relations: []RelationRequirement{
			{Kind: character.RelationKith},
		},
		Powers: []PowerAllocation{
			{
				Category: "art",
				Dots:     3,
				Exact:    true,
				Bound:    budget.Bound{Min: 0, Max: 3},
			},
			{
				Category: "realm",
				Dots:     5,
				Exact:    true,
				Bound:    budget.Bound{Min: 0, Max: 3},
			},
		},
		BaseTraits: map[string]int{"Glamour": 4, "Banality": 3, TraitWillpower: 4},
		Costs: pick(withUniversal("art", "realm", "glamour", "banality"), CostTable{
			"willpower": {Freebie: 1, XPMult: 2, Max: 10},
		}),
	}
}

func ctdHumanConfig() *Config {
	return &Config{
		Archetype:        "ctd_human",
		DisplayName:      "Mortal (Changeling)",
		Freebies:         15,
		BackgroundPoints: 5,
		AttributeTriple:  mortalAttributes,
		AbilityTriple:    mortalAbilities,
		AttributeBound:   defaultAttributeBound,
		AbilityCap:       3,
		MaxFlawPoints:    -7,
		Steps:            plainMortalSteps,
		BaseTraits:       map[string]int{TraitWillpower: 4},
		Costs:            pick(withUniversal(), nil),
	}
}
