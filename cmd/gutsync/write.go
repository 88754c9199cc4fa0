package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Synchronize one entity from a YAML file",
	Long: `Translate a domain entity into platform records and write them as
one atomic batch.

Examples:
  # Write a logged meal
  gutsync write -f meal.yaml

  # Write a symptom entry
  gutsync write -f symptom.yaml`,
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().StringP("file", "f", "", "YAML file with the entity (required)")
	_ = writeCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(writeCmd)
}

// entityFile is the on-disk envelope: a kind plus the entity spec.
type entityFile struct {
	Kind string    `yaml:"kind"`
	Spec yaml.Node `yaml:"spec"`
}

func runWrite(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("file")

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	var file entityFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	var entity types.Entity
	switch file.Kind {
	case "Meal":
		var m types.Meal
		if err := file.Spec.Decode(&m); err != nil {
			return fmt.Errorf("failed to decode meal: %w", err)
		}
		entity = m
	case "Symptom":
		var s types.Symptom
		if err := file.Spec.Decode(&s); err != nil {
			return fmt.Errorf("failed to decode symptom: %w", err)
		}
		entity = s
	case "WaterIntake":
		var w types.WaterIntake
		if err := file.Spec.Decode(&w); err != nil {
			return fmt.Errorf("failed to decode water intake: %w", err)
		}
		entity = w
	default:
		return fmt.Errorf("unsupported entity kind: %s", file.Kind)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, plat, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer plat.Close()

	outcome, err := eng.Write(context.Background(), entity)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Entity %s synchronized\n", outcome.EntityID)
	fmt.Printf("  Records written: %d\n", outcome.Written)
	for _, c := range outcome.Skipped {
		fmt.Printf("  Skipped (not authorized): %s\n", c)
	}
	return nil
}
