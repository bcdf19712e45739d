package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	awardAmount   int
	awardFreebies bool
)

var approveCmd = &cobra.Command{
	Use:   "approve <character-id>",
	Short: "Approve a submitted character for play",
	Args:  cobra.ExactArgs(1),
	RunE:  runApprove,
}

var awardCmd = &cobra.Command{
	Use:   "award <character-id>",
	Short: "Award experience or backstory freebies",
	Args:  cobra.ExactArgs(1),
	RunE:  runAward,
}

func init() {
	awardCmd.Flags().IntVar(&awardAmount, "amount", 0, "points to award (required)")
	awardCmd.Flags().BoolVar(&awardFreebies, "freebies", false, "award the one-time backstory freebies instead of experience")
	_ = awardCmd.MarkFlagRequired("amount") // nolint:errcheck // safe to ignore in init
}

func runApprove(_ *cobra.Command, args []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.Close()

	char, err := rt.Creation.Approve(context.Background(), actor(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s is approved for play.\n", char.Name)
	return nil
}

func runAward(_ *cobra.Command, args []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := context.Background()
	if awardFreebies {
		char, err := rt.Creation.AwardBackstoryFreebies(ctx, actor(), args[0], awardAmount)
		if err != nil {
			return err
		}
		fmt.Printf("%s now has %d freebie points.\n", char.Name, char.Freebies)
		return nil
	}

	char, err := rt.Creation.AwardExperience(ctx, actor(), args[0], awardAmount)
	if err != nil {
		return err
	}
	fmt.Printf("%s now has %d experience points.\n", char.Name, char.Experience)
	return nil
}
