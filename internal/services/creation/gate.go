package creation

import (
	"github.com/veilwright/wod-chargen/internal/domain/character"
	"github.com/veilwright/wod-chargen/internal/domain/rulebook"
	"github.com/veilwright/wod-chargen/internal/errors"
)

// StepGate decides whether an actor may work on a given step. Owners may
// submit only the character's current step; completed steps reopen solely
// through an explicit rewind. Storytellers and admins may reach any step
// of a character they oversee, regardless of its position.
type StepGate struct{}

// CanAccess returns nil when the actor may submit the step.
func (StepGate) CanAccess(actor character.Actor, char *character.Character, cfg *rulebook.Config, stepIndex int) error {
	if stepIndex < 0 || stepIndex >= len(cfg.Steps) {
		return errors.InvalidArgumentf("step %d does not exist for archetype %q", stepIndex, cfg.Archetype)
	}

	if actor.Oversees(char) {
		return nil
	}
	if !actor.Owns(char) {
		return errors.PermissionDenied("only the owner or a storyteller may edit this character").
			WithMeta("character_id", char.ID)
	}

	if char.Lifecycle != character.StateUnfinished {
		return errors.PermissionDeniedf("character is %s; creation steps are closed", char.Lifecycle).
			WithMeta("character_id", char.ID)
	}
	if stepIndex != char.StepIndex {
		return errors.PermissionDeniedf("step %d is not the character's current step", stepIndex).
			WithMeta("character_id", char.ID).
			WithMeta("current_step", char.StepIndex)
	}
	return nil
}
