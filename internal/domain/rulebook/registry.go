package rulebook

import (
	"fmt"
	"sort"

	"github.com/veilwright/wod-chargen/internal/errors"
)

// Registry holds every archetype configuration, validated on construction.
// Configuration mistakes fail here, at startup, not mid-creation.
type Registry struct {
	configs map[string]*Config
}

// NewRegistry builds and validates the full archetype set.
func NewRegistry() (*Registry, error) {
	configs := []*Config{
		humanConfig(),

		vampireConfig(),
		vtmHumanConfig(),
		ghoulConfig(),

		werewolfConfig(),
		feraConfig(),
		wtaHumanConfig(),
		kinfolkConfig(),
		fomorConfig(),

		mageConfig(),
		mtaHumanConfig(),
		sorcererConfig(),
		companionConfig(),

		wraithConfig(),
		wtoHumanConfig(),

		changelingConfig(),
		ctdHumanConfig(),

		demonConfig(),
		dtfHumanConfig(),
		thrallConfig(),
	}

	r := &Registry{configs: make(map[string]*Config, len(configs))}
	for _, cfg := range configs {
		if err := validate(cfg); err != nil {
			return nil, errors.Wrapf(err, "archetype %q", cfg.Archetype)
		}
		if _, dup := r.configs[cfg.Archetype]; dup {
			return nil, errors.Internalf("duplicate archetype %q", cfg.Archetype)
		}
		r.configs[cfg.Archetype] = cfg
	}
	return r, nil
}

// Get returns the configuration for an archetype.
func (r *Registry) Get(archetype string) (*Config, error) {
	cfg, ok := r.configs[archetype]
	if !ok {
		return nil, errors.NotFoundf("unknown archetype %q", archetype)
	}
	return cfg, nil
}

// Archetypes lists the registered archetype names, sorted.
func (r *Registry) Archetypes() []string {
	names := make([]string, 0, len(r.configs))
	for name := range r.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validate(cfg *Config) error {
	if cfg.Archetype == "" {
		return fmt.Errorf("missing archetype name")
	}
	if cfg.Freebies <= 0 {
		return fmt.Errorf("freebie pool must be positive, got %d", cfg.Freebies)
	}
	if len(cfg.Steps) == 0 {
		return fmt.Errorf("no creation steps")
	}

	seen := make(map[StepID]struct{}, len(cfg.Steps))
	for _, step := range cfg.Steps {
		if _, known := KnownSteps[step]; !known {
			return fmt.Errorf("unknown step %q", step)
		}
		if _, dup := seen[step]; dup {
			return fmt.Errorf("duplicate step %q", step)
		}
		seen[step] = struct{}{}
	}

	if cfg.HasStep(StepPowers) != (len(cfg.Powers) > 0) {
		return fmt.Errorf("powers step and power allocations must agree")
	}
	if cfg.HasStep(StepVirtues) != (cfg.Virtues != nil) {
		return fmt.Errorf("virtues step and virtue rule must agree")
	}
	if cfg.Virtues != nil && len(cfg.Virtues.Standard) == 0 {
		return fmt.Errorf("virtue rule has no virtue names")
	}

	for _, alloc := range cfg.Powers {
		if alloc.Category == "" {
			return fmt.Errorf("power allocation missing category")
		}
		if alloc.Dots <= 0 && alloc.Picks <= 0 {
			return fmt.Errorf("power allocation %q grants nothing", alloc.Category)
		}
		if alloc.Picks > 0 && alloc.Level <= 0 {
			return fmt.Errorf("power allocation %q has picks without a level", alloc.Category)
		}
		if _, ok := cfg.Costs.Rule(alloc.Category); !ok {
			return fmt.Errorf("power category %q has no cost rule", alloc.Category)
		}
		for name, dots := range alloc.Fixed {
			if !alloc.Bound.Contains(dots) {
				return fmt.Errorf("fixed power %q rating %d outside bound", name, dots)
			}
		}
	}

	for category := range cfg.Eligibility {
		if _, ok := cfg.Costs.Rule(category); !ok {
			return fmt.Errorf("eligibility category %q has no cost rule", category)
		}
	}

	for _, cat := range universal {
		if _, ok := cfg.Costs.Rule(cat); !ok {
			return fmt.Errorf("missing universal cost rule %q", cat)
		}
	}

	return nil
}
