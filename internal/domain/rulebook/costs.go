package rulebook

// CostRule prices one trait category in both currencies.
//
// Freebie spending during creation is flat per dot. Experience spending
// during play scales with the current rating unless a flag below says
// otherwise. Group discounts key off a defining relation: a discipline
// native to the buyer's clan uses XPMult, a foreign one XPOutOfGroupMult,
// and a clanless buyer XPNoRelationMult.
type CostRule struct {
	// Freebie is the flat per-dot cost during creation.
	Freebie int

	// FreebieDotsPerPoint inverts the rate for cheap pools: one freebie
	// buys this many dots (quintessence, pathos).
	FreebieDotsPerPoint int

	// FreebieIsRating prices a merit or flaw at its rating. Flaws are
	// negative ratings and credit the pool.
	FreebieIsRating bool

	// XPMult is the per-current-dot multiplier, or the in-group rate
	// when the group multipliers below are set.
	XPMult int

	// XPOutOfGroupMult prices traits outside the buyer's relation group.
	XPOutOfGroupMult int

	// XPNoRelationMult prices traits when the buyer has no group at all
	// (a Caitiff has no clan).
	XPNoRelationMult int

	// XPNewFlat is the flat cost for the first dot of a new trait.
	XPNewFlat int

	// XPDeltaMult prices rating changes at mult per point of difference.
	XPDeltaMult int

	// XPLevelBased multiplies by the trait's level instead of the
	// current rating. Gifts are bought whole at level x rate.
	XPLevelBased bool

	// Max caps the rating; zero means uncapped here.
	Max int

	// CreationMax caps the rating during creation when lower than Max.
	CreationMax int
}

// CostTable maps trait category to its rule.
type CostTable map[string]CostRule

// Rule returns the rule for a category and whether one exists.
func (t CostTable) Rule(category string) (CostRule, bool) {
	r, ok := t[category]
	return r, ok
}

// masterCosts is the superset table all archetypes draw from. An archetype
// config picks its categories with pick, optionally overriding entries for
// gameline-specific rates.
var masterCosts = CostTable{
	// Universal
	"attribute":  {Freebie: 5, XPMult: 4, Max: 5},
	"ability":    {Freebie: 2, XPMult: 2, XPNewFlat: 3, Max: 5},
	"background": {Freebie: 1, XPMult: 3, XPNewFlat: 5, Max: 5},
	"willpower":  {Freebie: 1, XPMult: 1, Max: 10},
	"meritflaw":  {FreebieIsRating: true, XPDeltaMult: 3},

	// Vampire
	"discipline":  {Freebie: 7, XPMult: 5, XPOutOfGroupMult: 7, XPNoRelationMult: 6, XPNewFlat: 10, Max: 5},
	"virtue":      {Freebie: 2, XPMult: 2, Max: 5},
	"humanity":    {Freebie: 2, XPMult: 2, Max: 10},
	"path_rating": {Freebie: 2, XPMult: 2, Max: 10},

	// Werewolf
	"gift":   {Freebie: 7, XPMult: 3, XPOutOfGroupMult: 5, XPLevelBased: true, Max: 5},
	"rite":   {Freebie: 1, XPMult: 1, XPLevelBased: true, Max: 5},
	"rage":   {Freebie: 1, XPMult: 1, Max: 10},
	"gnosis": {Freebie: 2, XPMult: 2, Max: 10},

	// Mage
	"sphere":       {Freebie: 7, XPMult: 7, XPOutOfGroupMult: 8, XPNewFlat: 10, Max: 5, CreationMax: 3},
	"arete":        {Freebie: 4, XPMult: 8, Max: 10, CreationMax: 3},
	"quintessence": {FreebieDotsPerPoint: 4, Max: 20},
	"resonance":    {Freebie: 3, XPMult: 3, XPNewFlat: 5, Max: 5},

	// Sorcerer
	"path":   {Freebie: 7, XPMult: 7, XPNewFlat: 10, Max: 5},
	"ritual": {Freebie: 3, XPMult: 2, XPLevelBased: true, Max: 5},

	// Wraith
	"arcanos": {Freebie: 5, XPMult: 3, XPNewFlat: 7, Max: 5},
	"pathos":  {FreebieDotsPerPoint: 2, XPMult: 2, Max: 10},
	"passion": {Freebie: 2, Max: 5},
	"fetter":  {Freebie: 1, Max: 5},

	// Changeling
	"art":      {Freebie: 5, XPMult: 4, XPNewFlat: 7, Max: 5},
	"realm":    {Freebie: 2, XPMult: 3, XPNewFlat: 5, Max: 5},
	"glamour":  {Freebie: 3, XPMult: 3, Max: 10},
	"banality": {Freebie: 2, XPDeltaMult: 2, Max: 10},

	// Demon
	"lore":  {Freebie: 7, XPMult: 5, XPOutOfGroupMult: 7, XPNewFlat: 7, Max: 5},
	"faith": {Freebie: 6, XPMult: 7, Max: 10},

	// Thrall
	"faith_potential": {Freebie: 7, XPMult: 10, Max: 10},

	// Fomor
	"power": {Freebie: 7, XPMult: 5, XPNewFlat: 10, Max: 5},

	// Companion
	"advantage": {Freebie: 3, XPDeltaMult: 3, Max: 5},
	"charm":     {Freebie: 5, XPNewFlat: 5, Max: 1},
}

// pick builds an archetype cost table from the master, then applies
// overrides for gameline-specific rates. Picking an unknown category
// panics; that is a programming error caught by the registry tests.
func pick(categories []string, overrides CostTable) CostTable {
	table := make(CostTable, len(categories)+len(overrides))
	for _, cat := range categories {
		rule, ok := masterCosts[cat]
		if !ok {
			panic("rulebook: unknown cost category " + cat)
		}
		table[cat] = rule
	}
	for cat, rule := range overrides {
		table[cat] = rule
	}
	return table
}

// universal is the cost slice every archetype carries.
var universal = []string{"attribute", "ability", "background", "willpower", "meritflaw"}

func withUniversal(categories ...string) []string {
	return append(append([]string{}, universal...), categories...)
}
