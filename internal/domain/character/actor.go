package character

// Actor is the authenticated party performing an operation. Authority
// checks work off the character's chronicle, not which step is live.
type Actor struct {
	ID    string
	Admin bool

	// StorytellerChronicles lists the chronicle IDs this actor runs.
	StorytellerChronicles []string
}

// Owns reports whether the actor is the character's player.
func (a Actor) Owns(c *Character) bool {
	return a.ID != "" && a.ID == c.OwnerID
}

// Oversees reports whether the actor may override the step sequence and
// review the character: admins always, storytellers for characters in
// their chronicles.
func (a Actor) Oversees(c *Character) bool {
	if a.Admin {
		return true
	}
	for _, id := range a.StorytellerChronicles {
		if id != "" && id == c.ChronicleID {
			return true
		}
	}
	return false
}

// CanView reports whether the actor may read the character at all.
func (a Actor) CanView(c *Character) bool {
	return a.Owns(c) || a.Oversees(c)
}
