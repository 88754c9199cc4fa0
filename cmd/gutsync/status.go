package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authorization state and the current snapshot",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, plat, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer plat.Close()

	fmt.Println("Authorization")
	fmt.Printf("  %-36s %-15s %s\n", "CATEGORY", "READ", "WRITE")
	for _, c := range types.WriteCategories {
		fmt.Printf("  %-36s %-15s %s\n", c, "-",
			eng.AuthorizationStatus(c, types.DirectionWrite))
	}
	for _, c := range types.ReadCategories {
		fmt.Printf("  %-36s %-15s %s\n", c,
			eng.AuthorizationStatus(c, types.DirectionRead), "-")
	}
	if denied := eng.DeniedCategories(); len(denied) > 0 {
		fmt.Printf("\n  %d categories denied; fix in the platform settings surface\n", len(denied))
	}

	snapshot := eng.RefreshSnapshot(context.Background())
	fmt.Printf("\nSnapshot (captured %s)\n", snapshot.CapturedAt.Format("2006-01-02 15:04:05"))
	for _, m := range []types.Metric{
		types.MetricHeartRate,
		types.MetricRestingHeartRate,
		types.MetricRespiratoryRate,
		types.MetricOxygenSaturation,
		types.MetricBloodGlucose,
		types.MetricBloodPressureSystolic,
		types.MetricBloodPressureDiastolic,
		types.MetricBodyMass,
		types.MetricHeight,
		types.MetricStepCount,
		types.MetricActiveEnergy,
		types.MetricSleepHours,
	} {
		if v, ok := snapshot.Value(m); ok {
			fmt.Printf("  %-28s %.1f\n", m, v)
		} else {
			fmt.Printf("  %-28s (no data)\n", m)
		}
	}
	if snapshot.BiologicalSex != "" {
		fmt.Printf("  %-28s %s\n", "biological_sex", snapshot.BiologicalSex)
	}
	if snapshot.DateOfBirth != nil {
		fmt.Printf("  %-28s %s\n", "date_of_birth", snapshot.DateOfBirth.Format("2006-01-02"))
	}
	return nil
}
