package creation

import (
	"github.com/veilwright/wod-chargen/internal/domain/budget"
	"github.com/veilwright/wod-chargen/internal/domain/character"
	"github.com/veilwright/wod-chargen/internal/services/ledger"
)

// Violation codes the creation flow adds on top of the budget and ledger
// packages'.
const (
	CodeMissingField  = "missing_field"
	CodeUnspentPoints = "unspent_points"
	CodeBadSelection  = "bad_selection"
)

// BackgroundInput is one background entry in the backgrounds step.
type BackgroundInput struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Note   string `json:"note,omitempty"`
}

// StepPayload carries the player's input for one creation step. Which
// fields a step reads depends on the step: budget steps read Ratings,
// pick steps read Selections, the freebie step reads Spends.
type StepPayload struct {
	// Details holds free-form text fields (name, concept, history).
	Details map[string]string `json:"details,omitempty"`

	// Relations holds defining-relation choices for the basics step.
	Relations map[character.RelationKind]string `json:"relations,omitempty"`

	// Ratings maps trait name to target rating.
	Ratings map[string]int `json:"ratings,omitempty"`

	// Selections holds picks: gift names, languages, specialties.
	Selections []string `json:"selections,omitempty"`

	// Backgrounds holds the backgrounds step entries.
	Backgrounds []BackgroundInput `json:"backgrounds,omitempty"`

	// Spends holds ledger requests for the extras and freebie steps.
	Spends []ledger.SpendRequest `json:"spends,omitempty"`
}

// StepResult reports the outcome of a step submission. An empty Errors
// slice means the step applied and was saved; otherwise nothing changed.
type StepResult struct {
	Character *character.Character
	Errors    []budget.Violation

	// StepIndex is the character's step position after the submission.
	StepIndex int

	// Submitted is true once the final step completed and the character
	// moved to storyteller review.
	Submitted bool
}
