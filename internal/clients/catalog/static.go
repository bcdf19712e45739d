package catalog

import (
	"context"
	"sort"

	"github.com/veilwright/wod-chargen/internal/domain/rulebook"
	"github.com/veilwright/wod-chargen/internal/errors"
)

// Static serves the built-in compendium. Data is immutable after
// construction, so lookups need no locking.
type Static struct {
	byCategory map[string][]rulebook.Example
}

// NewStatic builds the compendium from the seed tables below.
func NewStatic() *Static {
	s := &Static{byCategory: make(map[string][]rulebook.Example)}
	for _, ex := range seedExamples {
		s.byCategory[ex.Category] = append(s.byCategory[ex.Category], ex)
	}
	for _, list := range s.byCategory {
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	}
	return s
}

func (s *Static) ListExamples(_ context.Context, category string) ([]rulebook.Example, error) {
	list, ok := s.byCategory[category]
	if !ok {
		return nil, errors.NotFoundf("unknown catalog category %q", category)
	}
	out := make([]rulebook.Example, len(list))
	copy(out, list)
	return out, nil
}

func (s *Static) GetExample(_ context.Context, category, name string) (*rulebook.Example, error) {
	for _, ex := range s.byCategory[category] {
		if ex.Name == name {
			cp := ex
			return &cp, nil
		}
	}
	return nil, errors.NotFoundf("no %s named %q", category, name)
}

func ex(category, name string, level int, tags ...string) rulebook.Example {
	return rulebook.Example{Name: name, Category: category, Level: level, Tags: tags}
}

// exMult covers the expensive backgrounds whose dots cost double.
func exMult(category, name string, multiplier int, tags ...string) rulebook.Example {
	return rulebook.Example{Name: name, Category: category, Multiplier: multiplier, Tags: tags}
}

// Group tags used by the attribute and ability spreads.
const (
	TagPhysical = "physical"
	TagSocial   = "social"
	TagMental   = "mental"

	TagTalent    = "talent"
	TagSkill     = "skill"
	TagKnowledge = "knowledge"

	// TagPooled marks backgrounds funded jointly by a character group.
	TagPooled = "pooled"
)

var seedExamples = []rulebook.Example{
	// Attributes
	ex("attribute", "Strength", 0, TagPhysical),
	ex("attribute", "Dexterity", 0, TagPhysical),
	ex("attribute", "Stamina", 0, TagPhysical),
	ex("attribute", "Charisma", 0, TagSocial),
	ex("attribute", "Manipulation", 0, TagSocial),
	ex("attribute", "Appearance", 0, TagSocial),
	ex("attribute", "Perception", 0, TagMental),
	ex("attribute", "Intelligence", 0, TagMental),
	ex("attribute", "Wits", 0, TagMental),

	// Abilities
	ex("ability", "Alertness", 0, TagTalent),
	ex("ability", "Athletics", 0, TagTalent),
	ex("ability", "Awareness", 0, TagTalent),
	ex("ability", "Brawl", 0, TagTalent),
	ex("ability", "Empathy", 0, TagTalent),
	ex("ability", "Expression", 0, TagTalent),
	ex("ability", "Intimidation", 0, TagTalent),
	ex("ability", "Leadership", 0, TagTalent),
	ex("ability", "Streetwise", 0, TagTalent),
	ex("ability", "Subterfuge", 0, TagTalent),
	ex("ability", "Animal Ken", 0, TagSkill),
	ex("ability", "Crafts", 0, TagSkill),
	ex("ability", "Drive", 0, TagSkill),
	ex("ability", "Etiquette", 0, TagSkill),
	ex("ability", "Firearms", 0, TagSkill),
	ex("ability", "Larceny", 0, TagSkill),
	ex("ability", "Melee", 0, TagSkill),
	ex("ability", "Performance", 0, TagSkill),
	ex("ability", "Stealth", 0, TagSkill),
	ex("ability", "Survival", 0, TagSkill),
	ex("ability", "Academics", 0, TagKnowledge),
	ex("ability", "Computer", 0, TagKnowledge),
	ex("ability", "Finance", 0, TagKnowledge),
	ex("ability", "Investigation", 0, TagKnowledge),
	ex("ability", "Law", 0, TagKnowledge),
	ex("ability", "Medicine", 0, TagKnowledge),
	ex("ability", "Occult", 0, TagKnowledge),
	ex("ability", "Politics", 0, TagKnowledge),
	ex("ability", "Science", 0, TagKnowledge),
	ex("ability", "Technology", 0, TagKnowledge),

	// Backgrounds
	ex("background", "Allies", 0),
	ex("background", "Contacts", 0),
	ex("background", "Fame", 0),
	ex("background", "Generation", 0),
	ex("background", "Herd", 0),
	ex("background", "Influence", 0),
	ex("background", "Mentor", 0),
	ex("background", "Resources", 0),
	ex("background", "Retainers", 0),
	ex("background", "Status", 0),
	ex("background", "Kinfolk", 0),
	ex("background", "Pure Breed", 0),
	exMult("background", "Totem", 2, TagPooled),
	ex("background", "Avatar", 0),
	exMult("background", "Enhancement", 2),
	exMult("background", "Sanctum", 2),
	ex("background", "Node", 0, TagPooled),
	ex("background", "Chimera", 0),
	ex("background", "Eidolon", 0),
	ex("background", "Haunt", 0, TagPooled),
	ex("background", "Memoriam", 0),
	ex("background", "Pact", 0),

	// Merits and flaws; level is the rating, negative for flaws.
	ex("meritflaw", "Acute Senses", 1),
	ex("meritflaw", "Ambidextrous", 1),
	ex("meritflaw", "Language", 1),
	ex("meritflaw", "Code of Honor", 2),
	ex("meritflaw", "Eidetic Memory", 2),
	ex("meritflaw", "Iron Will", 3),
	ex("meritflaw", "Lucky", 3),
	ex("meritflaw", "Dark Secret", -1),
	ex("meritflaw", "Nightmares", -1),
	ex("meritflaw", "Illiterate", -1),
	ex("meritflaw", "Phobia", -2),
	ex("meritflaw", "One Eye", -2),
	ex("meritflaw", "Amnesia", -2),
	ex("meritflaw", "Enemy", -3),
	ex("meritflaw", "Haunted", -3),
	ex("meritflaw", "Hunted", -4),

	// Disciplines, tagged with their native clans. The physical trio
	// additionally carries the tag every ghoul may learn from.
	ex("discipline", "Celerity", 0, "Brujah", "Toreador", "Assamite", TagPhysical),
	ex("discipline", "Potence", 0, "Brujah", "Nosferatu", "Lasombra", TagPhysical),
	ex("discipline", "Fortitude", 0, "Gangrel", "Ventrue", TagPhysical),
	ex("discipline", "Presence", 0, "Brujah", "Toreador", "Ventrue", "Followers of Set"),
	ex("discipline", "Dominate", 0, "Ventrue", "Tremere", "Lasombra", "Giovanni"),
	ex("discipline", "Auspex", 0, "Toreador", "Tremere", "Malkavian", "Tzimisce"),
	ex("discipline", "Obfuscate", 0, "Nosferatu", "Malkavian", "Assamite", "Followers of Set"),
	ex("discipline", "Animalism", 0, "Gangrel", "Nosferatu", "Ravnos", "Tzimisce"),
	ex("discipline", "Protean", 0, "Gangrel"),
	ex("discipline", "Dementation", 0, "Malkavian"),
	ex("discipline", "Thaumaturgy", 0, "Tremere"),
	ex("discipline", "Necromancy", 0, "Giovanni"),
	ex("discipline", "Obtenebration", 0, "Lasombra"),
	ex("discipline", "Serpentis", 0, "Followers of Set"),
	ex("discipline", "Vicissitude", 0, "Tzimisce"),
	ex("discipline", "Chimerstry", 0, "Ravnos"),
	ex("discipline", "Quietus", 0, "Assamite"),

	// Rank One gifts, tagged with breed, auspice, and tribe sources.
	ex("gift", "Master of Fire", 1, "Homid"),
	ex("gift", "Persuasion", 1, "Homid", "Bone Gnawers"),
	ex("gift", "Smell of Man", 1, "Homid"),
	ex("gift", "Sense Wyrm", 1, "Metis", "Theurge", "Shadow Lords", "Uktena"),
	ex("gift", "Create Element", 1, "Metis", "Wendigo"),
	ex("gift", "Heightened Senses", 1, "Lupus", "Black Furies"),
	ex("gift", "Hare's Leap", 1, "Lupus"),
	ex("gift", "Blur of the Milky Eye", 1, "Ragabash"),
	ex("gift", "Open Seal", 1, "Ragabash"),
	ex("gift", "Spirit Speech", 1, "Theurge"),
	ex("gift", "Resist Pain", 1, "Philodox", "Children of Gaia"),
	ex("gift", "Truth of Gaia", 1, "Philodox"),
	ex("gift", "Beast Speech", 1, "Galliard", "Red Talons"),
	ex("gift", "Call of the Wyld", 1, "Galliard"),
	ex("gift", "Razor Claws", 1, "Ahroun", "Get of Fenris"),
	ex("gift", "Inspiration", 1, "Ahroun", "Silver Fangs"),
	ex("gift", "Mother's Touch", 1, "Theurge", "Children of Gaia"),
	ex("gift", "Faerie Light", 1, "Fianna"),
	ex("gift", "Control Simple Machine", 1, "Glass Walkers"),
	ex("gift", "Falcon's Grasp", 1, "Silver Fangs"),
	ex("gift", "Speed of Thought", 1, "Silent Striders"),
	ex("gift", "Aura of Confidence", 1, "Shadow Lords"),
	ex("gift", "Call the Breeze", 1, "Wendigo"),
	ex("gift", "Sense Magic", 1, "Uktena", "Black Furies"),
	ex("gift", "Scent of Sweet Honey", 1, "Bone Gnawers"),
	ex("gift", "Resist Toxin", 1, "Fianna", "Bone Gnawers"),

	// Spheres
	ex("sphere", "Correspondence", 0),
	ex("sphere", "Entropy", 0),
	ex("sphere", "Forces", 0),
	ex("sphere", "Life", 0),
	ex("sphere", "Matter", 0),
	ex("sphere", "Mind", 0),
	ex("sphere", "Prime", 0),
	ex("sphere", "Spirit", 0),
	ex("sphere", "Time", 0),

	// Sorcerous paths
	ex("path", "Alchemy", 0),
	ex("path", "Conjuration", 0),
	ex("path", "Divination", 0),
	ex("path", "Enchantment", 0),
	ex("path", "Healing", 0),
	ex("path", "Hellfire", 0),
	ex("path", "Summoning", 0),

	// Arcanoi
	ex("arcanos", "Argos", 0),
	ex("arcanos", "Castigate", 0),
	ex("arcanos", "Embody", 0),
	ex("arcanos", "Fatalism", 0),
	ex("arcanos", "Inhabit", 0),
	ex("arcanos", "Keening", 0),
	ex("arcanos", "Lifeweb", 0),
	ex("arcanos", "Moliate", 0),
	ex("arcanos", "Outrage", 0),
	ex("arcanos", "Pandemonium", 0),
	ex("arcanos", "Phantasm", 0),
	ex("arcanos", "Usury", 0),

	// Arts and realms
	ex("art", "Chicanery", 0),
	ex("art", "Legerdemain", 0),
	ex("art", "Primal", 0),
	ex("art", "Soothsay", 0),
	ex("art", "Sovereign", 0),
	ex("art", "Wayfare", 0),
	ex("realm", "Actor", 0),
	ex("realm", "Fae", 0),
	ex("realm", "Nature", 0),
	ex("realm", "Prop", 0),
	ex("realm", "Scene", 0),
	ex("realm", "Time", 0),

	// Lores, tagged by House; two are common to all the Fallen.
	ex("lore", "Lore of the Fundament", 0, "common"),
	ex("lore", "Lore of Humanity", 0, "common"),
	ex("lore", "Lore of the Celestials", 0, "Devil"),
	ex("lore", "Lore of Flame", 0, "Devil"),
	ex("lore", "Lore of Awakening", 0, "Scourge"),
	ex("lore", "Lore of the Firmament", 0, "Scourge"),
	ex("lore", "Lore of the Forge", 0, "Malefactor"),
	ex("lore", "Lore of Paths", 0, "Malefactor"),
	ex("lore", "Lore of Patterns", 0, "Fiend"),
	ex("lore", "Lore of Portals", 0, "Fiend"),
	ex("lore", "Lore of Longing", 0, "Defiler"),
	ex("lore", "Lore of Storms", 0, "Defiler"),
	ex("lore", "Lore of the Beast", 0, "Devourer"),
	ex("lore", "Lore of the Wild", 0, "Devourer"),
	ex("lore", "Lore of Death", 0, "Slayer"),
	ex("lore", "Lore of the Spirit", 0, "Slayer"),

	// Fomori powers
	ex("power", "Armored Hide", 1),
	ex("power", "Berserker", 1),
	ex("power", "Extra Limbs", 1),
	ex("power", "Mega-Strength", 1),
	ex("power", "Toxic Secretions", 1),

	// Companion advantages and charms
	ex("advantage", "Alacrity", 0),
	ex("advantage", "Armor", 0),
	ex("advantage", "Ferocity", 0),
	ex("advantage", "Regeneration", 0),
	ex("advantage", "Wings", 0),
	ex("charm", "Airt Sense", 1),
	ex("charm", "Blast", 1),
	ex("charm", "Cleanse the Blight", 1),
}
