package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

var authorizeCmd = &cobra.Command{
	Use:   "authorize",
	Short: "Run the authorization prompt against the platform store",
	Long: `Run the combined read/write authorization prompt. The simulated
platform grants every undecided pair and keeps prior decisions.

--deny marks categories explicitly denied first, standing in for the
user declining them in the platform's settings surface.`,
	RunE: runAuthorize,
}

func init() {
	authorizeCmd.Flags().StringSlice("deny", nil, "Categories to mark denied before prompting")
	rootCmd.AddCommand(authorizeCmd)
}

func runAuthorize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, plat, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer plat.Close()

	deny, _ := cmd.Flags().GetStringSlice("deny")
	for _, raw := range deny {
		category := types.Category(raw)
		if !category.Valid() {
			return fmt.Errorf("unknown category: %s", raw)
		}
		for _, dir := range []types.Direction{types.DirectionRead, types.DirectionWrite} {
			if err := plat.SetAuthorization(category, dir, types.AuthorizationDenied); err != nil {
				return err
			}
		}
		fmt.Printf("✗ Denied %s\n", category)
	}

	if err := eng.RequestAuthorization(context.Background()); err != nil {
		return err
	}

	fmt.Println("✓ Authorization prompt completed")
	if eng.NeedsAttention() {
		fmt.Println("  Some write categories remain unauthorized")
	}
	if denied := eng.DeniedCategories(); len(denied) > 0 {
		fmt.Printf("  %d categories denied; fix in the platform settings surface\n", len(denied))
	}
	return nil
}
