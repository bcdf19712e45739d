package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veilwright/wod-chargen/internal/services/creation"
)

var (
	stepIndex       int
	stepPayloadJSON string
	stepPayloadFile string
)

var stepCmd = &cobra.Command{
	Use:   "step <character-id>",
	Short: "Submit a creation step",
	Long: `Submit one creation step. The payload is a JSON document with the
step's details, ratings, selections, backgrounds, or spends, for example:

  chargen step char_123 --index 1 --payload '{"ratings":{"Strength":4,"Dexterity":3}}'`,
	Args: cobra.ExactArgs(1),
	RunE: runStep,
}

func init() {
	stepCmd.Flags().IntVar(&stepIndex, "index", 0, "step index to submit")
	stepCmd.Flags().StringVar(&stepPayloadJSON, "payload", "", "step payload as JSON")
	stepCmd.Flags().StringVar(&stepPayloadFile, "payload-file", "", "step payload JSON file")
}

func runStep(_ *cobra.Command, args []string) error {
	payload, err := loadPayload()
	if err != nil {
		return err
	}

	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.Creation.SubmitStep(context.Background(), actor(), &creation.SubmitStepInput{
		CharacterID: args[0],
		StepIndex:   stepIndex,
		Payload:     payload,
	})
	if err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		fmt.Println("Step rejected:")
		for _, violation := range result.Errors {
			fmt.Printf("  [%s] %s\n", violation.Code, violation.Error())
		}
		return nil
	}

	if result.Submitted {
		fmt.Println("Creation complete: the character awaits storyteller review.")
	}
	printCharacter(result.Character, rt)
	return nil
}

func loadPayload() (*creation.StepPayload, error) {
	raw := []byte(stepPayloadJSON)
	if stepPayloadFile != "" {
		data, err := os.ReadFile(stepPayloadFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload file: %w", err)
		}
		raw = data
	}
	if len(raw) == 0 {
		return &creation.StepPayload{}, nil
	}

	var payload creation.StepPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("invalid step payload: %w", err)
	}
	return &payload, nil
}
