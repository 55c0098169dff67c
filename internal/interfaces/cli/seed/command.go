package seed

import (
	"fmt"

	"github.com/spf13/cobra"

	infraSeed "mealplan/internal/infrastructure/seed"
	"mealplan/internal/interfaces/cli/cliutil"
)

func NewCommand(flags *cliutil.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference and sample data",
	}

	cmd.AddCommand(
		newCatalogCommand(flags),
		newSamplesCommand(flags),
	)

	return cmd
}

func newCatalogCommand(flags *cliutil.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Upsert the CACFP rule catalog",
		Long:  `Write the embedded age groups, component types and portion rules. Safe to run repeatedly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := cliutil.Bootstrap(*flags, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			result, err := infraSeed.NewSeeder(rt.DB, rt.Log).SeedCatalog(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to seed catalog: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Catalog seeded: %d age groups, %d component types, %d portion rules\n",
				result.AgeGroups, result.ComponentTypes, result.PortionRules)
			return nil
		},
	}
}

func newSamplesCommand(flags *cliutil.Flags) *cobra.Command {
	var tenantID string
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Create sample foods and meals for a tenant",
		Long:  `Create the sample food components and meal items a tenant is missing. Existing records with the same name are left alone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := cliutil.Bootstrap(*flags, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			result, err := infraSeed.NewSeeder(rt.DB, rt.Log).SeedSamples(cmd.Context(), tenantID)
			if err != nil {
				return fmt.Errorf("failed to seed samples: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Samples seeded for %s: %d foods, %d meals\n",
				tenantID, result.Foods, result.Meals)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tenantID, "tenant", "t", "", "Tenant to seed (required)")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}
