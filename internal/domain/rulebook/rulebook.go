// Package rulebook is the static rules data: per-archetype creation
// configurations, trait cost tables, and eligibility rules. Everything here
// is immutable after NewRegistry returns.
package rulebook

import (
	"github.com/veilwright/wod-chargen/internal/domain/budget"
	"github.com/veilwright/wod-chargen/internal/domain/character"
)

// StepID names one stage of the creation sequence.
type StepID string

const (
	StepBasics      StepID = "basics"
	StepAttributes  StepID = "attributes"
	StepAbilities   StepID = "abilities"
	StepBackgrounds StepID = "backgrounds"
	StepPowers      StepID = "powers"
	StepVirtues     StepID = "virtues"
	StepExtras      StepID = "extras"
	StepFreebies    StepID = "freebies"
	StepLanguages   StepID = "languages"
	StepSpecialties StepID = "specialties"
	StepHistory     StepID = "history"
)

// KnownSteps is the set of step IDs the sequencer has handlers for. A
// config naming anything else fails registry validation.
var KnownSteps = map[StepID]struct{}{
	StepBasics:      {},
	StepAttributes:  {},
	StepAbilities:   {},
	StepBackgrounds: {},
	StepPowers:      {},
	StepVirtues:     {},
	StepExtras:      {},
	StepFreebies:    {},
	StepLanguages:   {},
	StepSpecialties: {},
	StepHistory:     {},
}

// Example is one purchasable trait from the catalog: a named discipline,
// gift, sphere, and so on. Tags key eligibility: a discipline carries the
// clans it is native to, a gift carries its breed/auspice/tribe.
type Example struct {
	Name     string
	Category string
	Level    int
	Tags     []string

	// Multiplier scales the per-dot cost of expensive backgrounds.
	// Zero means unscaled.
	Multiplier int
}

// CostMultiplier returns the example's cost scale, never below one.
func (e Example) CostMultiplier() int {
	if e.Multiplier < 1 {
		return 1
	}
	return e.Multiplier
}

// HasTag reports whether the example carries the tag. Matching is exact;
// catalog data and relation values share one vocabulary.
func (e Example) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// EligibilityRule decides which catalog examples of a category a character
// may buy. An example qualifies when any listed relation's current value
// appears among its tags, or when it carries one of the fallback tags.
type EligibilityRule struct {
	// Relations are the defining relations whose values gate access.
	Relations []character.RelationKind

	// FallbackTags are always permitted regardless of relations. Ghouls
	// may always learn physical disciplines.
	FallbackTags []string

	// Open admits every example in the category.
	Open bool

	// ResetOn lists relations whose change invalidates ratings bought
	// under the old value.
	ResetOn []character.RelationKind
}

// PowerAllocation is one creation-time grant of power dots.
type PowerAllocation struct {
	// Category is the cost-table and catalog category ("discipline",
	// "gift", "sphere", ...).
	Category string

	// Dots to distribute. Exact requires spending all of them.
	Dots  int
	Exact bool

	// Picks, when set, grants that many distinct powers at Level each
	// instead of free-form dots.
	Picks int
	Level int

	// Bound limits the per-power rating.
	Bound budget.Bound

	// Fixed pre-spends dots on named powers before the player chooses.
	Fixed map[string]int

	// EachRelation requires at least one pick matching each listed
	// relation. Garou take one gift each from breed, auspice, and tribe.
	EachRelation []character.RelationKind

	// RelationMinimum requires at least one dot in the power named by
	// the relation's value. A mage's affinity sphere may not be empty.
	RelationMinimum character.RelationKind
}

// VirtueRule describes the virtue spread and its derived morality traits.
type VirtueRule struct {
	// Standard virtue names, one base dot each.
	Standard []string

	// PathAlt replaces the first two standard virtues when the
	// character follows an alternate moral path.
	PathAlt []string

	// Total dots to distribute on top of the base dots.
	Total int

	Bound budget.Bound
}

// RelationRequirement names a defining relation the basics step collects.
type RelationRequirement struct {
	Kind     character.RelationKind
	Optional bool
}

// Config is the full creation configuration for one archetype.
type Config struct {
	Archetype   string
	DisplayName string

	// Freebies is the starting freebie pool; BackgroundPoints the free
	// background dots.
	Freebies         int
	BackgroundPoints int

	// Attribute and ability spreads, compared order-independently.
	AttributeTriple budget.Triple
	AbilityTriple   budget.Triple
	AttributeBound  budget.Bound
	AbilityCap      int

	// MaxFlawPoints is the deepest the flaw total may go during
	// creation, expressed as a negative number.
	MaxFlawPoints int

	Steps []StepID

	Relations []RelationRequirement

	Powers []PowerAllocation

	Virtues *VirtueRule

	// BaseTraits are granted at creation before any spending.
	BaseTraits map[string]int

	// Costs is this archetype's slice of the master cost tables.
	Costs CostTable

	// Eligibility keys category name to its access rule. Categories
	// absent here are open.
	Eligibility map[string]EligibilityRule
}

// PowerFor returns the allocation for a category, nil when the archetype
// has none.
func (c *Config) PowerFor(category string) *PowerAllocation {
	for i := range c.Powers {
		if c.Powers[i].Category == category {
			return &c.Powers[i]
		}
	}
	return nil
}

// EligibilityFor returns the rule for a category. Unlisted categories are
// open to everyone.
func (c *Config) EligibilityFor(category string) EligibilityRule {
	if rule, ok := c.Eligibility[category]; ok {
		return rule
	}
	return EligibilityRule{Open: true}
}

// HasStep reports whether the step appears in this archetype's sequence.
func (c *Config) HasStep(id StepID) bool {
	for _, s := range c.Steps {
		if s == id {
			return true
		}
	}
	return false
}

// VirtueNames returns the virtue names in play for the character's current
// moral path: the alternates when a path relation is set to something other
// than Humanity, the standard spread otherwise.
func (c *Config) VirtueNames(char *character.Character) []string {
	if c.Virtues == nil {
		return nil
	}
	path := char.Relation(character.RelationPath)
	if len(c.Virtues.PathAlt) > 0 && path != "" && path != "Humanity" {
		return c.Virtues.PathAlt
	}
	return c.Virtues.Standard
}

// Morality names the derived traits for the vampiric virtue spreads.
// Willpower always mirrors Courage. Humanity sums Conscience and
// Self-Control; a path rating sums Conviction and Instinct.
const (
	VirtueConscience  = "Conscience"
	VirtueSelfControl = "Self-Control"
	VirtueCourage     = "Courage"
	VirtueConviction  = "Conviction"
	VirtueInstinct    = "Instinct"

	TraitWillpower  = "Willpower"
	TraitHumanity   = "Humanity"
	TraitPathRating = "Path Rating"
)
