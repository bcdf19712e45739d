package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veilwright/wod-chargen/internal/services/creation"
)

var (
	createChronicle string
	createName      string
	createArchetype string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Start a new character",
	RunE:  runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createChronicle, "chronicle", "", "chronicle ID (optional)")
	createCmd.Flags().StringVar(&createName, "name", "", "character name")
	createCmd.Flags().StringVar(&createArchetype, "archetype", "", "archetype (required)")
	_ = createCmd.MarkFlagRequired("archetype") // nolint:errcheck // safe to ignore in init
}

func runCreate(_ *cobra.Command, _ []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.Close()

	char, err := rt.Creation.CreateCharacter(context.Background(), &creation.CreateCharacterInput{
		OwnerID:     actorID,
		ChronicleID: createChronicle,
		Name:        createName,
		Archetype:   createArchetype,
	})
	if err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}

	fmt.Printf("Created %s character %s\n", char.Archetype, char.ID)
	printCharacter(char, rt)
	return nil
}
