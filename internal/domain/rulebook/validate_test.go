package rulebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := vampireConfig()
	cfg.Archetype = "test"
	return cfg
}

func TestValidate(t *testing.T) {
	require.NoError(t, validate(validConfig()))

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing archetype",
			mutate:  func(cfg *Config) { cfg.Archetype = "" },
			wantErr: "missing archetype",
		},
		{
			name:    "zero freebies",
			mutate:  func(cfg *Config) { cfg.Freebies = 0 },
			wantErr: "freebie pool",
		},
		{
			name:    "no steps",
			mutate:  func(cfg *Config) { cfg.Steps = nil },
			wantErr: "no creation steps",
		},
		{
			name: "unknown step",
			mutate: func(cfg *Config) {
				cfg.Steps = append([]StepID{}, cfg.Steps...)
				cfg.Steps[0] = StepID("prelude")
			},
			wantErr: "unknown step",
		},
		{
			name: "duplicate step",
			mutate: func(cfg *Config) {
				cfg.Steps = append(append([]StepID{}, cfg.Steps...), StepBasics)
			},
			wantErr: "duplicate step",
		},
		{
			name:    "powers step without allocations",
			mutate:  func(cfg *Config) { cfg.Powers = nil },
			wantErr: "must agree",
		},
		{
			name: "allocation grants nothing",
			mutate: func(cfg *Config) {
				cfg.Powers = []PowerAllocation{{Category: "discipline"}}
			},
			wantErr: "grants nothing",
		},
		{
			name: "unpriced power category",
			mutate: func(cfg *Config) {
				cfg.Powers = []PowerAllocation{{Category: "gift", Dots: 3}}
			},
			wantErr: "no cost rule",
		},
		{
			name: "fixed grant outside bound",
			mutate: func(cfg *Config) {
				cfg.Powers[0].Fixed = map[string]int{"Potence": 9}
			},
			wantErr: "outside bound",
		},
		{
			name:    "virtues step without rule",
			mutate:  func(cfg *Config) { cfg.Virtues = nil },
			wantErr: "must agree",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
