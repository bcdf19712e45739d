package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/veilwright/wod-chargen/internal/domain/character"
)

var showCmd = &cobra.Command{
	Use:   "show <character-id>",
	Short: "Show a character sheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your characters",
	RunE:  runList,
}

func runShow(_ *cobra.Command, args []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.Close()

	char, err := rt.Creation.GetCharacter(context.Background(), actor(), args[0])
	if err != nil {
		return err
	}
	printCharacter(char, rt)
	return nil
}

func runList(_ *cobra.Command, _ []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.Close()

	chars, err := rt.Creation.ListByOwner(context.Background(), actorID)
	if err != nil {
		return err
	}
	if len(chars) == 0 {
		fmt.Println("No characters.")
		return nil
	}
	for _, char := range chars {
		fmt.Printf("%-24s %-12s %-10s %s\n", char.ID, char.Archetype, char.Lifecycle, char.Name)
	}
	return nil
}

func printCharacter(char *character.Character, rt *runtime) {
	fmt.Printf("\n%s (%s, %s)\n", char.Name, char.Archetype, char.Lifecycle)
	if char.Concept != "" {
		fmt.Printf("Concept: %s\n", char.Concept)
	}
	for kind, value := range char.Relations {
		fmt.Printf("%s: %s\n", kind, value)
	}

	if cfg, err := rt.Registry.Get(char.Archetype); err == nil && char.Lifecycle == character.StateUnfinished {
		step := "done"
		if char.StepIndex < len(cfg.Steps) {
			step = string(cfg.Steps[char.StepIndex])
		}
		fmt.Printf("Current step: %s (%d of %d)\n", step, char.StepIndex+1, len(cfg.Steps))
	}

	names := make([]string, 0, len(char.Traits))
	for name := range char.Traits {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-20s %d\n", name, char.Traits[name])
	}

	for _, bg := range char.Backgrounds {
		fmt.Printf("  %-20s %d (background)\n", bg.Key(), bg.Rating)
	}
	for name, rating := range char.MeritsFlaws {
		fmt.Printf("  %-20s %d (merit/flaw)\n", name, rating)
	}
	if len(char.Specialties) > 0 {
		fmt.Printf("Specialties: %v\n", char.Specialties)
	}
	if len(char.Languages) > 0 {
		fmt.Printf("Languages: %v\n", char.Languages)
	}
	fmt.Printf("Freebies: %d  Experience: %d\n", char.Freebies, char.Experience)
}
