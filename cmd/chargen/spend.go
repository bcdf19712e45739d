package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veilwright/wod-chargen/internal/services/ledger"
)

var (
	spendCategory string
	spendName     string
	spendValue    int
	spendNote     string
)

var spendCmd = &cobra.Command{
	Use:   "spend <character-id>",
	Short: "Spend experience on an approved character",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpend,
}

func init() {
	spendCmd.Flags().StringVar(&spendCategory, "category", "", "trait category (required)")
	spendCmd.Flags().StringVar(&spendName, "name", "", "trait name (required)")
	spendCmd.Flags().IntVar(&spendValue, "value", 0, "target rating (required)")
	spendCmd.Flags().StringVar(&spendNote, "note", "", "background note")
	_ = spendCmd.MarkFlagRequired("category") // nolint:errcheck // safe to ignore in init
	_ = spendCmd.MarkFlagRequired("name")     // nolint:errcheck // safe to ignore in init
	_ = spendCmd.MarkFlagRequired("value")    // nolint:errcheck // safe to ignore in init
}

func runSpend(_ *cobra.Command, args []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.Creation.SpendExperience(context.Background(), actor(), args[0], []ledger.SpendRequest{{
		Category: spendCategory,
		Name:     spendName,
		NewValue: spendValue,
		Note:     spendNote,
	}})
	if err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		fmt.Println("Spend rejected:")
		for _, violation := range result.Errors {
			fmt.Printf("  [%s] %s\n", violation.Code, violation.Error())
		}
		return nil
	}

	fmt.Printf("%s is now %d; %d experience remains.\n",
		spendName, result.Character.Trait(spendName), result.Character.Experience)
	return nil
}
