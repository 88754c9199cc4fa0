package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/platform"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

// Simulation commands feed the local platform store the way other apps,
// devices and clinician systems would feed the real one. A running serve
// process sees the resulting change notifications.

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Feed the platform store as an external source would",
}

var simulateSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Store one sample for a read category",
	RunE:  runSimulateSample,
}

var simulateMedicationCmd = &cobra.Command{
	Use:   "medication NAME",
	Short: "Store one medication record",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulateMedication,
}

var simulateProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Store the profile characteristics",
	RunE:  runSimulateProfile,
}

func init() {
	simulateSampleCmd.Flags().String("category", "", "Sample category (required)")
	simulateSampleCmd.Flags().Float64("value", 0, "Sample value (required)")
	simulateSampleCmd.Flags().String("unit", "", "Sample unit (defaults to the category's canonical unit)")
	_ = simulateSampleCmd.MarkFlagRequired("category")
	_ = simulateSampleCmd.MarkFlagRequired("value")

	simulateMedicationCmd.Flags().String("dosage", "", "Dosage text")
	simulateMedicationCmd.Flags().String("start", "", "Start date (YYYY-MM-DD, defaults to today)")
	simulateMedicationCmd.Flags().String("end", "", "End date (YYYY-MM-DD, empty means ongoing)")

	simulateProfileCmd.Flags().String("dob", "", "Date of birth (YYYY-MM-DD)")
	simulateProfileCmd.Flags().String("sex", "", "Biological sex")

	simulateCmd.AddCommand(simulateSampleCmd)
	simulateCmd.AddCommand(simulateMedicationCmd)
	simulateCmd.AddCommand(simulateProfileCmd)
	rootCmd.AddCommand(simulateCmd)
}

func openPlatform(cmd *cobra.Command) (*platform.BoltPlatform, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	_, plat, err := openEngine(cfg)
	return plat, err
}

func runSimulateSample(cmd *cobra.Command, args []string) error {
	plat, err := openPlatform(cmd)
	if err != nil {
		return err
	}
	defer plat.Close()

	raw, _ := cmd.Flags().GetString("category")
	category := types.Category(raw)
	value, _ := cmd.Flags().GetFloat64("value")
	unit, _ := cmd.Flags().GetString("unit")
	if unit == "" {
		unit = category.Unit()
	}

	now := time.Now()
	if err := plat.AddSample(platform.Sample{
		Category: category,
		Value:    value,
		Unit:     unit,
		Start:    now,
		End:      now,
	}); err != nil {
		return err
	}
	fmt.Printf("✓ Stored %s = %v %s\n", category, value, unit)
	return nil
}

func runSimulateMedication(cmd *cobra.Command, args []string) error {
	plat, err := openPlatform(cmd)
	if err != nil {
		return err
	}
	defer plat.Close()

	med := platform.RawMedication{Name: args[0], Start: time.Now()}
	med.Dosage, _ = cmd.Flags().GetString("dosage")
	if s, _ := cmd.Flags().GetString("start"); s != "" {
		if med.Start, err = time.Parse("2006-01-02", s); err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
	}
	if s, _ := cmd.Flags().GetString("end"); s != "" {
		if med.End, err = time.Parse("2006-01-02", s); err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
	}

	if err := plat.AddMedication(med); err != nil {
		return err
	}
	fmt.Printf("✓ Stored medication %s\n", med.Name)
	return nil
}

func runSimulateProfile(cmd *cobra.Command, args []string) error {
	plat, err := openPlatform(cmd)
	if err != nil {
		return err
	}
	defer plat.Close()

	var ch platform.Characteristics
	if s, _ := cmd.Flags().GetString("dob"); s != "" {
		dob, err := time.Parse("2006-01-02", s)
		if err != nil {
			return fmt.Errorf("invalid date of birth: %w", err)
		}
		ch.DateOfBirth = &dob
	}
	ch.BiologicalSex, _ = cmd.Flags().GetString("sex")

	if err := plat.SetCharacteristics(ch); err != nil {
		return err
	}
	fmt.Println("✓ Profile stored")
	return nil
}
