// Package main is the entry point for the chargen CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/veilwright/wod-chargen/internal/domain/character"
)

var (
	actorID          string
	actorAdmin       bool
	actorStoryteller []string
)

var rootCmd = &cobra.Command{
	Use:   "chargen",
	Short: "World of Darkness character creation",
	Long:  `Chargen walks characters through archetype-specific creation steps and tracks their freebie and experience spending.`,
}

func main() {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&actorID, "actor", "", "acting user ID")
	rootCmd.PersistentFlags().BoolVar(&actorAdmin, "admin", false, "act with admin rights")
	rootCmd.PersistentFlags().StringSliceVar(&actorStoryteller, "storyteller", nil, "chronicle IDs the actor runs")

	rootCmd.AddCommand(archetypesCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(stepCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(awardCmd)
	rootCmd.AddCommand(spendCmd)
}

func actor() character.Actor {
	return character.Actor{
		ID:                    actorID,
		Admin:                 actorAdmin,
		StorytellerChronicles: actorStoryteller,
	}
}
