package rulebook

import (
	"github.com/veilwright/wod-chargen/internal/domain/budget"
	"github.com/veilwright/wod-chargen/internal/domain/character"
)

// Supernaturals spread 7/5/3 attribute and 13/9/5 ability dots; mortals
// get 6/4/3 and 11/7/4. Triples compare order-independently, so the
// groups here are just the canonical presentation.
var (
	supernaturalAttributes = budget.Triple{7, 5, 3}
	supernaturalAbilities  = budget.Triple{13, 9, 5}
	mortalAttributes       = budget.Triple{6, 4, 3}
	mortalAbilities        = budget.Triple{11, 7, 4}

	defaultAttributeBound = budget.Bound{Min: 1, Max: 5}
)

var standardSteps = []StepID{
	StepBasics,
	StepAttributes,
	StepAbilities,
	StepBackgrounds,
	StepPowers,
	StepVirtues,
	StepExtras,
	StepFreebies,
	StepLanguages,
	StepSpecialties,
	StepHistory,
}

// mortalSteps drops the powers stage.
var mortalSteps = []StepID{
	StepBasics,
	StepAttributes,
	StepAbilities,
	StepBackgrounds,
	StepVirtues,
	StepExtras,
	StepFreebies,
	StepLanguages,
	StepSpecialties,
	StepHistory,
}

var vampireVirtues = &VirtueRule{
	Standard: []string{VirtueConscience, VirtueSelfControl, VirtueCourage},
	PathAlt:  []string{VirtueConviction, VirtueInstinct, VirtueCourage},
	Total:    7,
	Bound:    budget.Bound{Min: 1, Max: 5},
}

var mortalVirtues = &VirtueRule{
	Standard: []string{VirtueConscience, VirtueSelfControl, VirtueCourage},
	Total:    7,
	Bound:    budget.Bound{Min: 1, Max: 5},
}

// vampireConfig: the Embrace grants three discipline dots, all from the
// sire's clan. Virtues follow Humanity or a Path of Enlightenment.
func vampireConfig() *Config {
	return &Config{
		Archetype:        "vampire",
		DisplayName:      "Vampire",
		Freebies:         15,
		BackgroundPoints: 5,
		AttributeTriple:  supernaturalAttributes,
		AbilityTriple:    supernaturalAbilities,
		AttributeBound:   defaultAttributeBound,
		AbilityCap:       3,
		MaxFlawPoints:    -7,
		Steps:            standardSteps,
		// Clan is optional: the Caitiff have none, pay the higher
		// advancement rate, and pick disciplines freely.
		Relations: []RelationRequirement{
			{Kind: character.RelationClan, Optional: true},
			{Kind: character.RelationPath, Optional: true},
		},
		Powers: []PowerAllocation{
			{
				Category: "discipline",
				Dots:     3,
				Exact:    true,
				Bound:    budget.Bound{Min: 0, Max: 3},
			},
		},
		Virtues:    vampireVirtues,
		BaseTraits: map[string]int{"Blood Pool": 10},
		Costs:      pick(withUniversal("discipline", "virtue", "humanity", "path_rating"), nil),
		Eligibility: map[string]EligibilityRule{
			// No fallback tags: with the clan relation unset (the
			// Caitiff) the category goes fully open rather than
			// narrowing to a thin-blood list. The tabletop rule leaves
			// Caitiff disciplines to storyteller approval, and the
			// higher clanless advancement rate already prices the
			// freedom.
			"discipline": {
				Relations: []character.RelationKind{character.RelationClan},
				ResetOn:   []character.RelationKind{character.RelationClan},
			},
		},
	}
}

// vtmHumanConfig: a mortal in vampire chronicles. Same virtue spread as
// the Kindred, no powers.
func vtmHumanConfig() *Config {
	return &Config{
		Archetype:        "vtm_human",
		DisplayName:      "Mortal (Vampire)",
		Freebies:         15,
		BackgroundPoints: 5,
		AttributeTriple:  mortalAttributes,
		AbilityTriple:    mortalAbilities,
		AttributeBound:   defaultAttributeBound,
		AbilityCap:       3,
		MaxFlawPoints:    -7,
		Steps:            mortalSteps,
		Virtues:          mortalVirtues,
		Costs:            pick(withUniversal("virtue", "humanity"), nil),
	}
}

// ghoulConfig: Potence comes free with the first draught. The remaining
// two dots follow the domitor's clan, with the physical disciplines as
// the fallback for any ghoul.
func ghoulConfig() *Config {
	return &Config{
		Archetype:        "ghoul",
		DisplayName:      "Ghoul",
		Freebies:         15,
		BackgroundPoints: 5,
		AttributeTriple:  mortalAttributes,
		AbilityTriple:    mortalAbilities,
		AttributeBound:   defaultAttributeBound,
		AbilityCap:       3,
		MaxFlawPoints:    -7,
		Steps:            standardSteps,
		Relations: []RelationRequirement{
			{Kind: character.RelationDomitorClan, Optional: true},
		},
		Powers: []PowerAllocation{
			{
				Category: "discipline",
				Dots:     2,
				Exact:    true,
				Bound:    budget.Bound{Min: 0, Max: 3},
				Fixed:    map[string]int{"Potence": 1},
			},
		},
		Virtues: mortalVirtues,
		Costs:   pick(withUniversal("discipline", "virtue", "humanity"), nil),
		Eligibility: map[string]EligibilityRule{
			"discipline": {
				Relations:    []character.RelationKind{character.RelationDomitorClan},
				FallbackTags: []string{"physical"},
				ResetOn:      []character.RelationKind{character.RelationDomitorClan},
			},
		},
	}
}
