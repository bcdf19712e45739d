package rulebook

import (
	"github.com/veilwright/wod-chargen/internal/domain/budget"
	"github.com/veilwright/wod-chargen/internal/domain/character"
)

// garouSteps has no virtues stage; tempers come from breed, auspice, and
// tribe instead.
var garouSteps = []StepID{
	StepBasics,
	StepAttributes,
	StepAbilities,
	StepBackgrounds,
	StepPowers,
	StepExtras,
	StepFreebies,
	StepLanguages,
	StepSpecialties,
	StepHistory,
}

var plainMortalSteps = []StepID{
	StepBasics,
	StepAttributes,
	StepAbilities,
	StepBackgrounds,
	StepExtras,
	StepFreebies,
	StepLanguages,
	StepSpecialties,
	StepHistory,
}

var garouGiftSources = []character.RelationKind{
	character.RelationBreed,
	character.RelationAuspice,
	character.RelationTribe,
}

// werewolfConfig: three Rank One gifts, one each from breed, auspice, and
// tribe.
func werewolfConfig() *Config {
	return &Config{
		Archetype:        "werewolf",
		DisplayName:      "Garou",
		Freebies:         15,
		BackgroundPoints: 5,
		AttributeTriple:  supernaturalAttributes,
		AbilityTriple:    supernaturalAbilities,
		AttributeBound:   defaultAttributeBound,
		AbilityCap:       3,
		MaxFlawPoints:    -7,
		Steps:            garouSteps,
		Relations: []RelationRequirement{
			{Kind: character.RelationBreed},
			{Kind: character.RelationAuspice},
			{Kind: character.RelationTribe},
		},
		Powers: []PowerAllocation{
			{
				Category:     "gift",
				Picks:        3,
				Level:        1,
				Bound:        budget.Bound{Min: 1, Max: 1},
				EachRelation: garouGiftSources,
			},
		},
		BaseTraits: map[string]int{"Rage": 1, "Gnosis": 1, TraitWillpower: 3},
		Costs:      pick(withUniversal("gift", "rite", "rage", "gnosis"), nil),
		Eligibility: map[string]EligibilityRule{
			"gift": {
				Relations: garouGiftSources,
				ResetOn:   garouGiftSources,
			},
		},
	}
}

// feraConfig covers the changing breeds besides the Garou. Same gift
// structure keyed on the same relations; the catalog carries fera-tagged
// gifts.
func feraConfig() *Config {
	cfg := werewolfConfig()
	cfg.Archetype = "fera"
	cfg.DisplayName = "Fera"
	return cfg
}

func wtaHumanConfig() *Config {
	return &Config{
		Archetype:        "wta_human",
		DisplayName:      "Mortal (Werewolf)",
		Freebies:         15,
		BackgroundPoints: 5,
		AttributeTriple:  mortalAttributes,
		AbilityTriple:    mortalAbilities,
		AttributeBound:   defaultAttributeBound,
		AbilityCap:       3,
		MaxFlawPoints:    -7,
		Steps:            plainMortalSteps,
		BaseTraits:       map[string]int{TraitWillpower: 3},
		Costs:            pick(withUniversal(), nil),
	}
}

// kinfolkConfig: mortal relatives of the Garou. The tribe relation is
// recorded for story purposes but grants no powers.
func kinfolkConfig() *Config {
	return &Config{
		Archetype:        "kinfolk",
		DisplayName:      "Kinfolk",
		Freebies:         15,
		BackgroundPoints: 5,
		AttributeTriple:  mortalAttributes,
		AbilityTriple:    mortalAbilities,
		AttributeBound:   defaultAttributeBound,
		AbilityCap:       3,
		MaxFlawPoints:    -7,
		Steps:            plainMortalSteps,
		Relations: []RelationRequirement{
			{Kind: character.RelationTribe, Optional: true},
		},
		BaseTraits: map[string]int{TraitWillpower: 3},
		Costs:      pick(withUniversal(), nil),
	}
}

// fomorConfig: mortals warped by Wyrm taint, with up to three powers.
func fomorConfig() *Config {
	return &Config{
		Archetype:        "fomor",
		DisplayName:      "Fomor",
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
				Category: "power",
				Picks:    3,
				Level:    1,
				Bound:    budget.Bound{Min: 1, Max: 1},
			},
		},
		BaseTraits: map[string]int{TraitWillpower: 3},
		Costs:      pick(withUniversal("power"), nil),
	}
}
