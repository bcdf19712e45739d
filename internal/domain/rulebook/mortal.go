package rulebook

// humanConfig: the gameline-agnostic mortal.
func humanConfig() *Config {
	return &Config{
		Archetype:        "human",
		DisplayName:      "Human",
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
