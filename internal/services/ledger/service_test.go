package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilwright/wod-chargen/internal/clients/catalog"
	"github.com/veilwright/wod-chargen/internal/domain/budget"
	"github.com/veilwright/wod-chargen/internal/domain/character"
	"github.com/veilwright/wod-chargen/internal/domain/rulebook"
	"github.com/veilwright/wod-chargen/internal/services/eligibility"
	"github.com/veilwright/wod-chargen/internal/services/ledger"
)

func newService(t *testing.T) (ledger.Service, *rulebook.Registry) {
	t.Helper()

	cat := catalog.NewStatic()
	elig, err := eligibility.NewService(&eligibility.ServiceConfig{Catalog: cat})
	require.NoError(t, err)

	svc, err := ledger.NewService(&ledger.ServiceConfig{
		Catalog:     cat,
		Eligibility: elig,
	})
	require.NoError(t, err)

	reg, err := rulebook.NewRegistry()
	require.NoError(t, err)

	return svc, reg
}

func newVampire(t *testing.T, reg *rulebook.Registry) (*character.Character, *rulebook.Config) {
	t.Helper()

	cfg, err := reg.Get("vampire")
	require.NoError(t, err)

	char := character.New("c1", "u1", "chron_1", "Lucien", "vampire", cfg.Freebies)
	char.SetRelation(character.RelationClan, "Gangrel")
	char.SetTrait("Strength", 2)
	char.SetTrait("Brawl", 2)
	char.SetTrait("Protean", 1)
	return char, cfg
}

func TestCost_Freebie(t *testing.T) {
	svc, reg := newService(t)
	char, cfg := newVampire(t, reg)
	ctx := context.Background()

	tests := []struct {
		name string
		req  ledger.SpendRequest
		want int
	}{
		{
			name: "attribute dot",
			req:  ledger.SpendRequest{Category: "attribute", Name: "Strength", NewValue: 3, Currency: character.CurrencyFreebie},
			want: 5,
		},
		{
			name: "two ability dots",
			req:  ledger.SpendRequest{Category: "ability", Name: "Brawl", NewValue: 4, Currency: character.CurrencyFreebie},
			want: 4,
		},
		{
			name: "discipline dot",
			req:  ledger.SpendRequest{Category: "discipline", Name: "Protean", NewValue: 2, Currency: character.CurrencyFreebie},
			want: 7,
		},
		{
			name: "merit costs its rating",
			req:  ledger.SpendRequest{Category: "meritflaw", Name: "Iron Will", NewValue: 3, Currency: character.CurrencyFreebie},
			want: 3,
		},
		{
			name: "flaw credits its rating",
			req:  ledger.SpendRequest{Category: "meritflaw", Name: "Hunted", NewValue: -4, Currency: character.CurrencyFreebie},
			want: -4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Cost(ctx, char, cfg, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCost_ExperienceClanRates(t *testing.T) {
	svc, reg := newService(t)
	char, cfg := newVampire(t, reg)
	char.Lifecycle = character.StateApproved
	ctx := context.Background()

	// In-clan: Protean 1 -> 2 at current x 5.
	cost, err := svc.Cost(ctx, char, cfg, ledger.SpendRequest{
		Category: "discipline", Name: "Protean", NewValue: 2, Currency: character.CurrencyExperience,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, cost)

	// Out-of-clan new discipline: flat 10 for the first dot, then
	// current x 7.
	char.SetTrait("Dominate", 1)
	cost, err = svc.Cost(ctx, char, cfg, ledger.SpendRequest{
		Category: "discipline", Name: "Dominate", NewValue: 3, Currency: character.CurrencyExperience,
	})
	require.NoError(t, err)
	assert.Equal(t, 7+14, cost)

	// Clanless: every discipline at current x 6.
	char.SetRelation(character.RelationClan, "")
	cost, err = svc.Cost(ctx, char, cfg, ledger.SpendRequest{
		Category: "discipline", Name: "Protean", NewValue: 2, Currency: character.CurrencyExperience,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, cost)

	// New trait flat cost.
	cost, err = svc.Cost(ctx, char, cfg, ledger.SpendRequest{
		Category: "discipline", Name: "Obfuscate", NewValue: 1, Currency: character.CurrencyExperience,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, cost)

	// Attributes: current x 4 per dot.
	cost, err = svc.Cost(ctx, char, cfg, ledger.SpendRequest{
		Category: "attribute", Name: "Strength", NewValue: 4, Currency: character.CurrencyExperience,
	})
	require.NoError(t, err)
	assert.Equal(t, 2*4+3*4, cost)
}

func TestCost_BackgroundMultiplier(t *testing.T) {
	svc, reg := newService(t)
	cfg, err := reg.Get("werewolf")
	require.NoError(t, err)

	char := character.New("c1", "u1", "", "Cries-at-Dawn", "werewolf", 15)
	ctx := context.Background()

	// Totem dots cost double in every currency.
	cost, err := svc.Cost(ctx, char, cfg, ledger.SpendRequest{
		Category: "background", Name: "Totem", NewValue: 2, Currency: character.CurrencyFreebie,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, cost)

	cost, err = svc.Cost(ctx, char, cfg, ledger.SpendRequest{
		Category: "background", Name: "Totem", NewValue: 1, Currency: character.CurrencyExperience,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, cost, "new background flat price doubles")

	char.AddBackground(&character.BackgroundRating{Name: "Totem", Rating: 2})
	cost, err = svc.Cost(ctx, char, cfg, ledger.SpendRequest{
		Category: "background", Name: "Totem", NewValue: 3, Currency: character.CurrencyExperience,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, cost, "current x 3, doubled")

	// Ordinary backgrounds keep the flat rate.
	cost, err = svc.Cost(ctx, char, cfg, ledger.SpendRequest{
		Category: "background", Name: "Allies", NewValue: 2, Currency: character.CurrencyFreebie,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, cost)
}

func TestCost_GiftLevelBased(t *testing.T) {
	svc, reg := newService(t)
	cfg, err := reg.Get("werewolf")
	require.NoError(t, err)

	char := character.New("c1", "u1", "", "Cries-at-Dawn", "werewolf", cfg.Freebies)
	char.SetRelation(character.RelationBreed, "Lupus")
	char.SetRelation(character.RelationAuspice, "Theurge")
	char.SetRelation(character.RelationTribe, "Uktena")
	ctx := context.Background()

	// Source gift: level x 3.
	cost, err := svc.Cost(ctx, char, cfg, ledger.SpendRequest{
		Category: "gift", Name: "Spirit Speech", NewValue: 1, Currency: character.CurrencyExperience,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, cost)

	// Outside breed, auspice, and tribe: level x 5.
	cost, err = svc.Cost(ctx, char, cfg, ledger.SpendRequest{
		Category: "gift", Name: "Razor Claws", NewValue: 1, Currency: character.CurrencyExperience,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}

func TestCost_AffinitySphere(t *testing.T) {
	svc, reg := newService(t)
	cfg, err := reg.Get("mage")
	require.NoError(t, err)

	char := character.New("c1", "u1", "", "Iris", "mage", cfg.Freebies)
	char.SetRelation(character.RelationAffinitySphere, "Forces")
	char.SetTrait("Forces", 1)
	char.SetTrait("Matter", 1)
	char.Lifecycle = character.StateApproved
	ctx := context.Background()

	cost, err := svc.Cost(ctx, char, cfg, ledger.SpendRequest{
		Category: "sphere", Name: "Forces", NewValue: 2, Currency: character.CurrencyExperience,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, cost)

	cost, err = svc.Cost(ctx, char, cfg, ledger.SpendRequest{
		Category: "sphere", Name: "Matter", NewValue: 2, Currency: character.CurrencyExperience,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, cost)
}

func TestSpend_Batch(t *testing.T) {
	svc, reg := newService(t)
	char, cfg := newVampire(t, reg)
	ctx := context.Background()

	violations, err := svc.Spend(ctx, char, cfg, []ledger.SpendRequest{
		{Category: "attribute", Name: "Strength", NewValue: 3, Currency: character.CurrencyFreebie},
		{Category: "ability", Name: "Brawl", NewValue: 3, Currency: character.CurrencyFreebie},
		{Category: "meritflaw", Name: "Hunted", NewValue: -4, Currency: character.CurrencyFreebie},
		{Category: "discipline", Name: "Protean", NewValue: 2, Currency: character.CurrencyFreebie},
	})
	require.NoError(t, err)
	assert.Empty(t, violations)

	// 15 - 5 - 2 + 4 - 7 = 5
	assert.Equal(t, 5, char.Freebies)
	assert.Equal(t, 3, char.Trait("Strength"))
	assert.Equal(t, 3, char.Trait("Brawl"))
	assert.Equal(t, 2, char.Trait("Protean"))
	assert.Equal(t, -4, char.MeritsFlaws["Hunted"])
	assert.Len(t, char.SpendRecords, 4)

	last := char.SpendRecords[3]
	assert.Equal(t, "discipline", last.Category)
	assert.Equal(t, 1, last.PrevValue)
	assert.Equal(t, 2, last.NewValue)
	assert.Equal(t, 5, last.BalanceAfter)
}

func TestSpend_AllOrNothing(t *testing.T) {
	svc, reg := newService(t)
	char, cfg := newVampire(t, reg)
	ctx := context.Background()

	violations, err := svc.Spend(ctx, char, cfg, []ledger.SpendRequest{
		{Category: "attribute", Name: "Strength", NewValue: 3, Currency: character.CurrencyFreebie},
		// Vicissitude is not a Gangrel discipline.
		{Category: "discipline", Name: "Vicissitude", NewValue: 1, Currency: character.CurrencyFreebie},
	})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, budget.CodeIneligibleKey, violations[0].Code)

	// The valid first request must not have applied either.
	assert.Equal(t, 2, char.Trait("Strength"))
	assert.Equal(t, 15, char.Freebies)
	assert.Empty(t, char.SpendRecords)
}

func TestSpend_InsufficientFunds(t *testing.T) {
	svc, reg := newService(t)
	char, cfg := newVampire(t, reg)
	char.Freebies = 4
	ctx := context.Background()

	violations, err := svc.Spend(ctx, char, cfg, []ledger.SpendRequest{
		{Category: "attribute", Name: "Strength", NewValue: 3, Currency: character.CurrencyFreebie},
	})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, ledger.CodeInsufficientFunds, violations[0].Code)
	assert.Equal(t, 4, char.Freebies)
}

func TestSpend_FlawFloor(t *testing.T) {
	svc, reg := newService(t)
	char, cfg := newVampire(t, reg)
	ctx := context.Background()

	violations, err := svc.Spend(ctx, char, cfg, []ledger.SpendRequest{
		{Category: "meritflaw", Name: "Hunted", NewValue: -4, Currency: character.CurrencyFreebie},
		{Category: "meritflaw", Name: "Enemy", NewValue: -3, Currency: character.CurrencyFreebie},
		{Category: "meritflaw", Name: "Dark Secret", NewValue: -1, Currency: character.CurrencyFreebie},
	})
	require.NoError(t, err)
	require.NotEmpty(t, violations)
	assert.Equal(t, ledger.CodeFlawFloor, violations[0].Code)
	assert.Empty(t, char.MeritsFlaws)
	assert.Equal(t, 15, char.Freebies)
}

func TestSpend_CreationCaps(t *testing.T) {
	svc, reg := newService(t)
	cfg, err := reg.Get("mage")
	require.NoError(t, err)

	char := character.New("c1", "u1", "", "Iris", "mage", 50)
	char.SetRelation(character.RelationAffinitySphere, "Forces")
	char.SetTrait("Forces", 3)
	ctx := context.Background()

	// Spheres cap at 3 during creation even with points to burn.
	violations, err := svc.Spend(ctx, char, cfg, []ledger.SpendRequest{
		{Category: "sphere", Name: "Forces", NewValue: 4, Currency: character.CurrencyFreebie},
	})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, budget.CodeOutOfBounds, violations[0].Code)

	// After approval the cap lifts to the trait maximum.
	char.Lifecycle = character.StateApproved
	char.Experience = 50
	violations, err = svc.Spend(ctx, char, cfg, []ledger.SpendRequest{
		{Category: "sphere", Name: "Forces", NewValue: 4, Currency: character.CurrencyExperience},
	})
	require.NoError(t, err)
	assert.Empty(t, violations)
	assert.Equal(t, 4, char.Trait("Forces"))
}

func TestSpend_PooledBackgroundExceedsCap(t *testing.T) {
	svc, reg := newService(t)
	cfg, err := reg.Get("werewolf")
	require.NoError(t, err)

	char := character.New("c1", "u1", "", "Cries-at-Dawn", "werewolf", 15)
	char.AddBackground(&character.BackgroundRating{Name: "Totem", Rating: 5, Pooled: true})
	ctx := context.Background()

	violations, err := svc.Spend(ctx, char, cfg, []ledger.SpendRequest{
		{Category: "background", Name: "Totem", NewValue: 6, Currency: character.CurrencyFreebie, Pooled: true},
	})
	require.NoError(t, err)
	assert.Empty(t, violations)
	assert.Equal(t, 6, char.Background("Totem").Rating)
	assert.Equal(t, 13, char.Freebies, "the pooled dot still pays the doubled rate")
}

func TestSpend_RejectsLoweringAndRepeats(t *testing.T) {
	svc, reg := newService(t)
	char, cfg := newVampire(t, reg)
	ctx := context.Background()

	violations, err := svc.Spend(ctx, char, cfg, []ledger.SpendRequest{
		{Category: "attribute", Name: "Strength", NewValue: 1, Currency: character.CurrencyFreebie},
	})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, ledger.CodeInvalidChange, violations[0].Code)

	violations, err = svc.Spend(ctx, char, cfg, []ledger.SpendRequest{
		{Category: "attribute", Name: "Strength", NewValue: 2, Currency: character.CurrencyFreebie},
	})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, ledger.CodeInvalidChange, violations[0].Code)
}

func TestSpend_UnknownCategory(t *testing.T) {
	svc, reg := newService(t)
	char, cfg := newVampire(t, reg)

	violations, err := svc.Spend(context.Background(), char, cfg, []ledger.SpendRequest{
		{Category: "sphere", Name: "Forces", NewValue: 1, Currency: character.CurrencyFreebie},
	})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, ledger.CodeUnknownCategory, violations[0].Code)
}

func TestAffordableCategories(t *testing.T) {
	svc, reg := newService(t)
	char, cfg := newVampire(t, reg)
	ctx := context.Background()

	affordable, err := svc.AffordableCategories(ctx, char, cfg, character.CurrencyFreebie)
	require.NoError(t, err)
	assert.Contains(t, affordable, "attribute")
	assert.Contains(t, affordable, "discipline")
	assert.Contains(t, affordable, "meritflaw")

	// Shrinks as the pool drains.
	char.Freebies = 3
	affordable, err = svc.AffordableCategories(ctx, char, cfg, character.CurrencyFreebie)
	require.NoError(t, err)
	assert.NotContains(t, affordable, "attribute")
	assert.NotContains(t, affordable, "discipline")
	assert.Contains(t, affordable, "ability")
	assert.Contains(t, affordable, "willpower")

	// Flaws remain available at zero: they credit the pool.
	char.Freebies = 0
	affordable, err = svc.AffordableCategories(ctx, char, cfg, character.CurrencyFreebie)
	require.NoError(t, err)
	assert.Equal(t, []string{"meritflaw"}, affordable)
}

func TestAffordableCategories_FreebieOnlyTraits(t *testing.T) {
	svc, reg := newService(t)
	cfg, err := reg.Get("wraith")
	require.NoError(t, err)

	char := character.New("c1", "u1", "", "Orpheus", "wraith", 15)
	char.Lifecycle = character.StateApproved
	char.Experience = 50
	ctx := context.Background()

	// Passions and fetters have no experience pricing, so a fat
	// experience pool still cannot buy them.
	affordable, err := svc.AffordableCategories(ctx, char, cfg, character.CurrencyExperience)
	require.NoError(t, err)
	assert.Contains(t, affordable, "arcanos")
	assert.Contains(t, affordable, "pathos")
	assert.NotContains(t, affordable, "passion")
	assert.NotContains(t, affordable, "fetter")

	// With freebies they come right back.
	affordable, err = svc.AffordableCategories(ctx, char, cfg, character.CurrencyFreebie)
	require.NoError(t, err)
	assert.Contains(t, affordable, "passion")
	assert.Contains(t, affordable, "fetter")
}
