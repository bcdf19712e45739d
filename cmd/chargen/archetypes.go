package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var archetypesCmd = &cobra.Command{
	Use:   "archetypes",
	Short: "List the playable archetypes",
	RunE:  runArchetypes,
}

func runArchetypes(_ *cobra.Command, _ []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.Close()

	for _, archetype := range rt.Registry.Archetypes() {
		cfg, err := rt.Registry.Get(archetype)
		if err != nil {
			return err
		}
		fmt.Printf("%-12s %s\n", archetype, cfg.DisplayName)
	}
	return nil
}
