package creation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilwright/wod-chargen/internal/clients/catalog"
	"github.com/veilwright/wod-chargen/internal/domain/budget"
	"github.com/veilwright/wod-chargen/internal/domain/character"
	"github.com/veilwright/wod-chargen/internal/domain/rulebook"
	"github.com/veilwright/wod-chargen/internal/errors"
	"github.com/veilwright/wod-chargen/internal/repositories/characters"
	"github.com/veilwright/wod-chargen/internal/services/creation"
	"github.com/veilwright/wod-chargen/internal/services/eligibility"
	"github.com/veilwright/wod-chargen/internal/services/ledger"
)

var (
	player      = character.Actor{ID: "user_1"}
	storyteller = character.Actor{ID: "user_st", StorytellerChronicles: []string{"chron_1"}}
	stranger    = character.Actor{ID: "user_x"}
)

func newService(t *testing.T) creation.Service {
	t.Helper()

	cat := catalog.NewStatic()
	elig, err := eligibility.NewService(&eligibility.ServiceConfig{Catalog: cat})
	require.NoError(t, err)

	led, err := ledger.NewService(&ledger.ServiceConfig{Catalog: cat, Eligibility: elig})
	require.NoError(t, err)

	reg, err := rulebook.NewRegistry()
	require.NoError(t, err)

	svc, err := creation.NewService(&creation.ServiceConfig{
		Repository:  characters.NewInMemoryRepository(),
		Registry:    reg,
		Catalog:     cat,
		Eligibility: elig,
		Ledger:      led,
	})
	require.NoError(t, err)
	return svc
}

func createVampire(t *testing.T, svc creation.Service) *character.Character {
	t.Helper()

	char, err := svc.CreateCharacter(context.Background(), &creation.CreateCharacterInput{
		OwnerID:     "user_1",
		ChronicleID: "chron_1",
		Name:        "Lucien",
		Archetype:   "vampire",
	})
	require.NoError(t, err)
	return char
}

func submit(t *testing.T, svc creation.Service, actor character.Actor, id string, step int, payload *creation.StepPayload) *creation.StepResult {
	t.Helper()

	result, err := svc.SubmitStep(context.Background(), actor, &creation.SubmitStepInput{
		CharacterID: id,
		StepIndex:   step,
		Payload:     payload,
	})
	require.NoError(t, err)
	return result
}

func TestCreateCharacter(t *testing.T) {
	svc := newService(t)
	char := createVampire(t, svc)

	assert.NotEmpty(t, char.ID)
	assert.Equal(t, 0, char.StepIndex)
	assert.Equal(t, character.StateUnfinished, char.Lifecycle)
	assert.Equal(t, 15, char.Freebies)
	assert.Equal(t, 10, char.Trait("Blood Pool"), "base traits applied at creation")

	_, err := svc.CreateCharacter(context.Background(), &creation.CreateCharacterInput{
		OwnerID:   "user_1",
		Archetype: "lich",
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestSubmitStep_GateRules(t *testing.T) {
	svc := newService(t)
	char := createVampire(t, svc)
	ctx := context.Background()

	// Owner cannot jump ahead.
	_, err := svc.SubmitStep(ctx, player, &creation.SubmitStepInput{
		CharacterID: char.ID,
		StepIndex:   3,
		Payload:     &creation.StepPayload{},
	})
	require.Error(t, err)
	assert.True(t, errors.IsPermissionDenied(err))

	// Strangers cannot touch the character at all.
	_, err = svc.SubmitStep(ctx, stranger, &creation.SubmitStepInput{
		CharacterID: char.ID,
		StepIndex:   0,
		Payload:     &creation.StepPayload{},
	})
	require.Error(t, err)
	assert.True(t, errors.IsPermissionDenied(err))

	// Nonexistent step index.
	_, err = svc.SubmitStep(ctx, player, &creation.SubmitStepInput{
		CharacterID: char.ID,
		StepIndex:   40,
		Payload:     &creation.StepPayload{},
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	// The storyteller may work on any step.
	result := submit(t, svc, storyteller, char.ID, 3, &creation.StepPayload{
		Backgrounds: []creation.BackgroundInput{
			{Name: "Allies", Rating: 3},
			{Name: "Resources", Rating: 2},
		},
	})
	assert.Empty(t, result.Errors)
	// Working ahead of the current step does not advance the sequence.
	assert.Equal(t, 0, result.StepIndex)
}

func TestSubmitStep_CompletedStepLocked(t *testing.T) {
	svc := newService(t)
	char := createVampire(t, svc)
	ctx := context.Background()

	result := submit(t, svc, player, char.ID, 0, &creation.StepPayload{
		Relations: map[character.RelationKind]string{character.RelationClan: "Gangrel"},
	})
	require.Empty(t, result.Errors)
	assert.Equal(t, 1, result.StepIndex)

	// Completed steps reopen only through an explicit rewind; the owner
	// cannot quietly redo the clan choice.
	_, err := svc.SubmitStep(ctx, player, &creation.SubmitStepInput{
		CharacterID: char.ID,
		StepIndex:   0,
		Payload: &creation.StepPayload{
			Relations: map[character.RelationKind]string{character.RelationClan: "Tremere"},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.IsPermissionDenied(err))

	got, err := svc.GetCharacter(ctx, player, char.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gangrel", got.Relation(character.RelationClan))
	assert.Equal(t, 1, got.StepIndex)
}

func TestSubmitStep_FailedStepLeavesCharacterUntouched(t *testing.T) {
	svc := newService(t)
	char := createVampire(t, svc)
	ctx := context.Background()

	submit(t, svc, player, char.ID, 0, &creation.StepPayload{
		Relations: map[character.RelationKind]string{character.RelationClan: "Gangrel"},
	})

	// 8/4/3 is not a legal spread even though it sums to 15.
	result := submit(t, svc, player, char.ID, 1, &creation.StepPayload{
		Ratings: map[string]int{
			"Strength": 5, "Dexterity": 3, "Stamina": 3,
			"Charisma": 3, "Manipulation": 2, "Appearance": 2,
			"Perception": 2, "Intelligence": 2, "Wits": 2,
		},
	})
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, budget.CodeDistributionMismatch, result.Errors[0].Code)

	got, err := svc.GetCharacter(ctx, player, char.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.StepIndex, "still on the attributes step")
	assert.Equal(t, 0, got.Trait("Strength"), "no partial application")
}

func TestVampireCreation_FullWalkthrough(t *testing.T) {
	svc := newService(t)
	char := createVampire(t, svc)
	ctx := context.Background()

	// Step 0: basics.
	result := submit(t, svc, player, char.ID, 0, &creation.StepPayload{
		Details: map[string]string{"concept": "disgraced poacher"},
		Relations: map[character.RelationKind]string{
			character.RelationClan: "Gangrel",
		},
	})
	require.Empty(t, result.Errors)
	assert.Equal(t, 1, result.StepIndex)

	// Step 1: attributes, 7/5/3 over base dots.
	result = submit(t, svc, player, char.ID, 1, &creation.StepPayload{
		Ratings: map[string]int{
			"Strength": 4, "Dexterity": 3, "Stamina": 3,
			"Charisma": 3, "Manipulation": 2, "Appearance": 3,
			"Perception": 2, "Intelligence": 2, "Wits": 2,
		},
	})
	require.Empty(t, result.Errors)

	// Step 2: abilities, 13/9/5 capped at three.
	result = submit(t, svc, player, char.ID, 2, &creation.StepPayload{
		Ratings: map[string]int{
			"Alertness": 3, "Athletics": 3, "Brawl": 3, "Empathy": 2, "Intimidation": 2,
			"Animal Ken": 3, "Drive": 2, "Stealth": 2, "Survival": 2,
			"Occult": 3, "Investigation": 2,
		},
	})
	require.Empty(t, result.Errors)

	// Step 3: backgrounds.
	result = submit(t, svc, player, char.ID, 3, &creation.StepPayload{
		Backgrounds: []creation.BackgroundInput{
			{Name: "Allies", Rating: 2},
			{Name: "Resources", Rating: 2},
			{Name: "Herd", Rating: 1},
		},
	})
	require.Empty(t, result.Errors)

	// Step 4: three discipline dots, all in-clan.
	result = submit(t, svc, player, char.ID, 4, &creation.StepPayload{
		Ratings: map[string]int{"Protean": 2, "Animalism": 1},
	})
	require.Empty(t, result.Errors)

	// Step 5: virtues; morality derives from them.
	result = submit(t, svc, player, char.ID, 5, &creation.StepPayload{
		Ratings: map[string]int{
			rulebook.VirtueConscience:  3,
			rulebook.VirtueSelfControl: 2,
			rulebook.VirtueCourage:     5,
		},
	})
	require.Empty(t, result.Errors)

	mid := result.Character
	assert.Equal(t, 5, mid.Trait(rulebook.TraitWillpower))
	assert.Equal(t, 5, mid.Trait(rulebook.TraitHumanity))

	// Step 6: a merit and a flaw; the flaw credits the pool.
	result = submit(t, svc, player, char.ID, 6, &creation.StepPayload{
		Spends: []ledger.SpendRequest{
			{Category: "meritflaw", Name: "Acute Senses", NewValue: 1},
			{Category: "meritflaw", Name: "Hunted", NewValue: -4},
		},
	})
	require.Empty(t, result.Errors)
	assert.Equal(t, 18, result.Character.Freebies)

	// Step 7: freebies must land on exactly zero.
	short := submit(t, svc, player, char.ID, 7, &creation.StepPayload{
		Spends: []ledger.SpendRequest{
			{Category: "attribute", Name: "Strength", NewValue: 5},
		},
	})
	require.NotEmpty(t, short.Errors)
	assert.Equal(t, creation.CodeUnspentPoints, short.Errors[0].Code)

	result = submit(t, svc, player, char.ID, 7, &creation.StepPayload{
		Spends: []ledger.SpendRequest{
			{Category: "attribute", Name: "Strength", NewValue: 5},
			{Category: "discipline", Name: "Protean", NewValue: 3},
			{Category: "ability", Name: "Occult", NewValue: 4},
			{Category: "willpower", Name: rulebook.TraitWillpower, NewValue: 6},
			{Category: "humanity", Name: rulebook.TraitHumanity, NewValue: 6},
			{Category: "background", Name: "Herd", NewValue: 2},
		},
	})
	require.Empty(t, result.Errors)
	assert.Equal(t, 0, result.Character.Freebies)

	// No Language merit: the languages step is skipped. Strength 5
	// keeps the specialties step live.
	assert.Equal(t, 9, result.StepIndex)

	result = submit(t, svc, player, char.ID, 9, &creation.StepPayload{
		Selections: []string{"Strength: grappling"},
	})
	require.Empty(t, result.Errors)
	assert.Equal(t, 10, result.StepIndex)

	// Step 10: history; finishing it submits for review.
	result = submit(t, svc, player, char.ID, 10, &creation.StepPayload{
		Details: map[string]string{"history": "Turned in the pine barrens, 1924."},
	})
	require.Empty(t, result.Errors)
	assert.True(t, result.Submitted)
	assert.Equal(t, character.StateSubmitted, result.Character.Lifecycle)

	// Closed to the owner once submitted.
	_, err := svc.SubmitStep(ctx, player, &creation.SubmitStepInput{
		CharacterID: char.ID,
		StepIndex:   1,
		Payload:     &creation.StepPayload{},
	})
	require.Error(t, err)
	assert.True(t, errors.IsPermissionDenied(err))

	// Approval and play.
	approved, err := svc.Approve(ctx, storyteller, char.ID)
	require.NoError(t, err)
	assert.Equal(t, character.StateApproved, approved.Lifecycle)

	_, err = svc.AwardExperience(ctx, storyteller, char.ID, 20)
	require.NoError(t, err)

	spent, err := svc.SpendExperience(ctx, player, char.ID, []ledger.SpendRequest{
		{Category: "discipline", Name: "Protean", NewValue: 4},
	})
	require.NoError(t, err)
	require.Empty(t, spent.Errors)
	assert.Equal(t, 5, spent.Character.Experience, "3 x 5 in-clan dots")
	assert.Equal(t, 4, spent.Character.Trait("Protean"))
}

func TestSubmitStep_LanguagesStepAppearsWithMerit(t *testing.T) {
	svc := newService(t)
	char := createVampire(t, svc)

	submit(t, svc, player, char.ID, 0, &creation.StepPayload{
		Relations: map[character.RelationKind]string{character.RelationClan: "Toreador"},
	})

	// Jump the flow forward with the storyteller acting on the extras
	// step; advancement still only happens on the current step, so walk
	// there with minimal valid submissions first.
	steps := []*creation.StepPayload{
		{Ratings: map[string]int{
			"Strength": 3, "Dexterity": 4, "Stamina": 3,
			"Charisma": 3, "Manipulation": 3, "Appearance": 2,
			"Perception": 2, "Intelligence": 2, "Wits": 2,
		}},
		{Ratings: map[string]int{
			"Expression": 3, "Empathy": 3, "Subterfuge": 3, "Alertness": 2, "Streetwise": 2,
			"Performance": 3, "Etiquette": 3, "Crafts": 3,
			"Academics": 3, "Politics": 2,
		}},
		{Backgrounds: []creation.BackgroundInput{
			{Name: "Fame", Rating: 3},
			{Name: "Resources", Rating: 2},
		}},
		{Ratings: map[string]int{"Auspex": 2, "Presence": 1}},
		{Ratings: map[string]int{
			rulebook.VirtueConscience:  4,
			rulebook.VirtueSelfControl: 3,
			rulebook.VirtueCourage:     3,
		}},
	}
	for i, payload := range steps {
		result := submit(t, svc, player, char.ID, i+1, payload)
		require.Empty(t, result.Errors, "step %d", i+1)
	}

	// Extras: the Language merit keeps the languages step alive.
	result := submit(t, svc, player, char.ID, 6, &creation.StepPayload{
		Spends: []ledger.SpendRequest{
			{Category: "meritflaw", Name: "Language", NewValue: 1},
			{Category: "meritflaw", Name: "Dark Secret", NewValue: -1},
		},
	})
	require.Empty(t, result.Errors)
	assert.Equal(t, 15, result.Character.Freebies)

	result = submit(t, svc, player, char.ID, 7, &creation.StepPayload{
		Spends: []ledger.SpendRequest{
			{Category: "attribute", Name: "Wits", NewValue: 3},
			{Category: "discipline", Name: "Presence", NewValue: 2},
			{Category: "ability", Name: "Empathy", NewValue: 4},
			{Category: "willpower", Name: rulebook.TraitWillpower, NewValue: 4},
		},
	})
	require.Empty(t, result.Errors)
	assert.Equal(t, 8, result.StepIndex, "languages step is live")

	tooMany := submit(t, svc, player, char.ID, 8, &creation.StepPayload{
		Selections: []string{"French", "Latin"},
	})
	require.NotEmpty(t, tooMany.Errors)
	assert.Equal(t, creation.CodeBadSelection, tooMany.Errors[0].Code)

	result = submit(t, svc, player, char.ID, 8, &creation.StepPayload{
		Selections: []string{"French"},
	})
	require.Empty(t, result.Errors)
	assert.Equal(t, []string{"French"}, result.Character.Languages)

	// Dexterity 4 and Empathy 4 keep specialties live next.
	assert.Equal(t, 9, result.StepIndex)
}

func TestChangeRelation_ResetsStrandedDisciplines(t *testing.T) {
	svc := newService(t)
	char := createVampire(t, svc)
	ctx := context.Background()

	submit(t, svc, player, char.ID, 0, &creation.StepPayload{
		Relations: map[character.RelationKind]string{character.RelationClan: "Gangrel"},
	})
	submit(t, svc, player, char.ID, 1, &creation.StepPayload{
		Ratings: map[string]int{
			"Strength": 4, "Dexterity": 3, "Stamina": 3,
			"Charisma": 3, "Manipulation": 2, "Appearance": 3,
			"Perception": 2, "Intelligence": 2, "Wits": 2,
		},
	})
	submit(t, svc, player, char.ID, 2, &creation.StepPayload{
		Ratings: map[string]int{
			"Alertness": 3, "Athletics": 3, "Brawl": 3, "Empathy": 2, "Intimidation": 2,
			"Animal Ken": 3, "Drive": 2, "Stealth": 2, "Survival": 2,
			"Occult": 3, "Investigation": 2,
		},
	})
	submit(t, svc, player, char.ID, 3, &creation.StepPayload{
		Backgrounds: []creation.BackgroundInput{{Name: "Allies", Rating: 5}},
	})
	result := submit(t, svc, player, char.ID, 4, &creation.StepPayload{
		Ratings: map[string]int{"Protean": 2, "Animalism": 1},
	})
	require.Empty(t, result.Errors)
	assert.Equal(t, 5, result.StepIndex)

	// Re-sired: the Tremere childe loses the Gangrel disciplines and
	// returns to the powers step.
	got, err := svc.ChangeRelation(ctx, player, char.ID, character.RelationClan, "Tremere")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Trait("Protean"))
	assert.Equal(t, 0, got.Trait("Animalism"))
	assert.Equal(t, 4, got.StepIndex)
	assert.Equal(t, "Tremere", got.Relation(character.RelationClan))
	assert.Equal(t, 4, got.Trait("Strength"), "attributes are untouched")
}

func TestChangeRelation_KeepsSharedDisciplines(t *testing.T) {
	svc := newService(t)
	char := createVampire(t, svc)
	ctx := context.Background()

	submit(t, svc, player, char.ID, 0, &creation.StepPayload{
		Relations: map[character.RelationKind]string{character.RelationClan: "Brujah"},
	})
	submit(t, svc, player, char.ID, 1, &creation.StepPayload{
		Ratings: map[string]int{
			"Strength": 4, "Dexterity": 3, "Stamina": 3,
			"Charisma": 3, "Manipulation": 2, "Appearance": 3,
			"Perception": 2, "Intelligence": 2, "Wits": 2,
		},
	})
	submit(t, svc, player, char.ID, 2, &creation.StepPayload{
		Ratings: map[string]int{
			"Alertness": 3, "Athletics": 3, "Brawl": 3, "Empathy": 2, "Intimidation": 2,
			"Animal Ken": 3, "Drive": 2, "Stealth": 2, "Survival": 2,
			"Occult": 3, "Investigation": 2,
		},
	})
	submit(t, svc, player, char.ID, 3, &creation.StepPayload{
		Backgrounds: []creation.BackgroundInput{{Name: "Allies", Rating: 5}},
	})
	result := submit(t, svc, player, char.ID, 4, &creation.StepPayload{
		Ratings: map[string]int{"Celerity": 2, "Presence": 1},
	})
	require.Empty(t, result.Errors)

	// Celerity and Presence are Toreador disciplines too, so the
	// re-sired childe keeps them and stays on the current step.
	got, err := svc.ChangeRelation(ctx, player, char.ID, character.RelationClan, "Toreador")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Trait("Celerity"))
	assert.Equal(t, 1, got.Trait("Presence"))
	assert.Equal(t, 5, got.StepIndex, "no rewind when nothing is stranded")
	assert.Equal(t, "Toreador", got.Relation(character.RelationClan))
}

func TestChangeRelation_RefundsFreebieSpends(t *testing.T) {
	svc := newService(t)
	char := createVampire(t, svc)
	ctx := context.Background()

	steps := []*creation.StepPayload{
		{Relations: map[character.RelationKind]string{character.RelationClan: "Gangrel"}},
		{Ratings: map[string]int{
			"Strength": 4, "Dexterity": 3, "Stamina": 3,
			"Charisma": 3, "Manipulation": 2, "Appearance": 3,
			"Perception": 2, "Intelligence": 2, "Wits": 2,
		}},
		{Ratings: map[string]int{
			"Alertness": 3, "Athletics": 3, "Brawl": 3, "Empathy": 2, "Intimidation": 2,
			"Animal Ken": 3, "Drive": 2, "Stealth": 2, "Survival": 2,
			"Occult": 3, "Investigation": 2,
		}},
		{Backgrounds: []creation.BackgroundInput{{Name: "Allies", Rating: 5}}},
		{Ratings: map[string]int{"Protean": 2, "Animalism": 1}},
		{Ratings: map[string]int{
			rulebook.VirtueConscience:  3,
			rulebook.VirtueSelfControl: 2,
			rulebook.VirtueCourage:     5,
		}},
		{Spends: []ledger.SpendRequest{
			{Category: "meritflaw", Name: "Acute Senses", NewValue: 1},
		}},
		{Spends: []ledger.SpendRequest{
			{Category: "discipline", Name: "Protean", NewValue: 3},
			{Category: "attribute", Name: "Strength", NewValue: 5},
			{Category: "willpower", Name: rulebook.TraitWillpower, NewValue: 7},
		}},
	}
	for i, payload := range steps {
		result := submit(t, svc, player, char.ID, i, payload)
		require.Empty(t, result.Errors, "step %d", i)
	}

	// Re-siring strands the disciplines: the seven freebie points sunk
	// into Protean come back, the unrelated spends do not.
	got, err := svc.ChangeRelation(ctx, player, char.ID, character.RelationClan, "Tremere")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Trait("Protean"))
	assert.Equal(t, 7, got.Freebies)
	assert.Equal(t, 5, got.Trait("Strength"), "attribute spend is unrelated to the clan change")
	assert.Equal(t, 1, got.MeritsFlaws["Acute Senses"])

	denied := 0
	for _, rec := range got.SpendRecords {
		if rec.Denied {
			denied++
			assert.Equal(t, "Protean", rec.Example)
		}
	}
	assert.Equal(t, 1, denied)
}

func TestApprove_RequiresSubmission(t *testing.T) {
	svc := newService(t)
	char := createVampire(t, svc)
	ctx := context.Background()

	_, err := svc.Approve(ctx, storyteller, char.ID)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = svc.Approve(ctx, player, char.ID)
	require.Error(t, err)
	assert.True(t, errors.IsPermissionDenied(err))
}

func TestDenySpend_RefundsAndReverts(t *testing.T) {
	svc := newService(t)
	char := createVampire(t, svc)
	ctx := context.Background()

	submit(t, svc, player, char.ID, 0, &creation.StepPayload{
		Relations: map[character.RelationKind]string{character.RelationClan: "Gangrel"},
	})
	result := submit(t, svc, storyteller, char.ID, 6, &creation.StepPayload{
		Spends: []ledger.SpendRequest{
			{Category: "meritflaw", Name: "Hunted", NewValue: -4},
		},
	})
	require.Empty(t, result.Errors)
	assert.Equal(t, 19, result.Character.Freebies)

	got, err := svc.DenySpend(ctx, storyteller, char.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Freebies, "the flaw credit is clawed back")
	assert.NotContains(t, got.MeritsFlaws, "Hunted")
	assert.True(t, got.SpendRecords[0].Denied)

	_, err = svc.DenySpend(ctx, storyteller, char.ID, 0)
	require.Error(t, err, "a spend cannot be denied twice")

	_, err = svc.DenySpend(ctx, player, char.ID, 0)
	require.Error(t, err)
	assert.True(t, errors.IsPermissionDenied(err))
}

func TestAwardBackstoryFreebies_OnceOnly(t *testing.T) {
	svc := newService(t)
	char := createVampire(t, svc)
	ctx := context.Background()

	got, err := svc.AwardBackstoryFreebies(ctx, storyteller, char.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 18, got.Freebies)

	_, err = svc.AwardBackstoryFreebies(ctx, storyteller, char.ID, 3)
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))

	_, err = svc.AwardBackstoryFreebies(ctx, player, char.ID, 3)
	require.Error(t, err)
	assert.True(t, errors.IsPermissionDenied(err))
}

func TestSpendExperience_ApprovedOnly(t *testing.T) {
	svc := newService(t)
	char := createVampire(t, svc)

	_, err := svc.SpendExperience(context.Background(), player, char.ID, []ledger.SpendRequest{
		{Category: "attribute", Name: "Strength", NewValue: 2},
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestGetCharacter_Visibility(t *testing.T) {
	svc := newService(t)
	char := createVampire(t, svc)
	ctx := context.Background()

	_, err := svc.GetCharacter(ctx, player, char.ID)
	require.NoError(t, err)

	_, err = svc.GetCharacter(ctx, storyteller, char.ID)
	require.NoError(t, err)

	_, err = svc.GetCharacter(ctx, stranger, char.ID)
	require.Error(t, err)
	assert.True(t, errors.IsPermissionDenied(err))
}
