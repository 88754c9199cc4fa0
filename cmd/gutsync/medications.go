package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var medicationsCmd = &cobra.Command{
	Use:   "medications",
	Short: "List medications from the platform",
	Long: `List medications fetched from the platform over the trailing
three-month window. By default only active medications are shown;
--all includes ended ones.`,
	RunE: runMedications,
}

func init() {
	medicationsCmd.Flags().Bool("all", false, "Include ended medications")
	rootCmd.AddCommand(medicationsCmd)
}

func runMedications(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, plat, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer plat.Close()

	eng.RefreshSnapshot(context.Background())

	all, _ := cmd.Flags().GetBool("all")
	meds := eng.ActiveMedications()
	if all {
		meds = eng.MedicationHistory()
	}
	if len(meds) == 0 {
		fmt.Println("No medications found.")
		return nil
	}

	fmt.Printf("%-24s %-12s %-12s %-12s %s\n", "NAME", "DOSAGE", "START", "END", "ACTIVE")
	for _, m := range meds {
		end := "-"
		if m.EndDate != nil {
			end = m.EndDate.Format("2006-01-02")
		}
		fmt.Printf("%-24s %-12s %-12s %-12s %v\n",
			m.Name, m.Dosage, m.StartDate.Format("2006-01-02"), end, m.IsActive)
	}
	return nil
}
