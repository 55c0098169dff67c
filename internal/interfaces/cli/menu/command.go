package menu

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	menudto "mealplan/internal/application/menu/dto"
	"mealplan/internal/application/menu/usecases"
	"mealplan/internal/domain/cacfp"
	"mealplan/internal/interfaces/cli/cliutil"
	httpRouter "mealplan/internal/interfaces/http"
	"mealplan/internal/shared/biztime"
)

var title = cases.Title(language.English)

func NewCommand(flags *cliutil.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Generate and manage monthly menus",
	}

	cmd.AddCommand(
		newGenerateCommand(flags),
		newFinalizeCommand(flags),
		newIngredientsCommand(flags),
	)

	return cmd
}

// withContainer bootstraps, wires the use cases and runs fn.
func withContainer(flags *cliutil.Flags, fn func(ucs *httpRouter.UseCases) error) error {
	rt, err := cliutil.Bootstrap(*flags, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	container, err := httpRouter.NewContainer(rt.DB, rt.Config, rt.Log)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}
	defer func() {
		if err := container.Shutdown(); err != nil {
			rt.Log.Warnw("failed to release container resources", "error", err)
		}
	}()

	return fn(container.UseCases())
}

func newGenerateCommand(flags *cliutil.Flags) *cobra.Command {
	var (
		tenantID  string
		programID string
		year      int
		month     int
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the monthly menu for one program or every active program",
		Long: `Generate a draft monthly menu. Without --program every active program of
the tenant is generated. Year and month default to next month.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			y, m := resolveMonth(year, month)
			out := cmd.OutOrStdout()

			return withContainer(flags, func(ucs *httpRouter.UseCases) error {
				if programID != "" {
					result, err := ucs.GenerateMonthlyMenu.Execute(cmd.Context(), usecases.GenerateMonthlyMenuCommand{
						TenantID:  tenantID,
						ProgramID: programID,
						Year:      y,
						Month:     m,
					})
					if err != nil {
						return err
					}
					printGeneration(out, programID, result)
					return nil
				}

				result, err := ucs.GenerateTenantMenus.Execute(cmd.Context(), usecases.GenerateTenantMenusCommand{
					TenantID: tenantID,
					Year:     y,
					Month:    m,
				})
				if err != nil {
					return err
				}
				for _, o := range result.Outcomes {
					if o.Error != nil {
						fmt.Fprintf(out, "%s (%s): FAILED %v\n\n", o.ProgramName, o.ProgramID, o.Error)
						continue
					}
					printGeneration(out, o.ProgramName, o.Result)
				}
				fmt.Fprintf(out, "%d succeeded, %d failed\n", result.Succeeded, result.Failed)
				if result.Failed > 0 {
					return fmt.Errorf("%d program(s) failed", result.Failed)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tenantID, "tenant", "t", "", "Tenant id (required)")
	cmd.Flags().StringVarP(&programID, "program", "p", "", "Program id; all active programs when empty")
	cmd.Flags().IntVar(&year, "year", 0, "Year (default: next month's year)")
	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 (default: next month)")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}

func newFinalizeCommand(flags *cliutil.Flags) *cobra.Command {
	var tenantID, menuID string
	cmd := &cobra.Command{
		Use:   "finalize",
		Short: "Finalize a draft monthly menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(flags, func(ucs *httpRouter.UseCases) error {
				result, err := ucs.FinalizeMonthlyMenu.Execute(cmd.Context(), usecases.FinalizeMonthlyMenuCommand{
					TenantID: tenantID,
					MenuID:   menuID,
				})
				if err != nil {
					return err
				}
				if result.AlreadyFinalized {
					fmt.Fprintf(cmd.OutOrStdout(), "Menu %s was already finalized\n", menuID)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Menu %s finalized\n", menuID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tenantID, "tenant", "t", "", "Tenant id (required)")
	cmd.Flags().StringVarP(&menuID, "menu", "m", "", "Monthly menu id (required)")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("menu")

	return cmd
}

func newIngredientsCommand(flags *cliutil.Flags) *cobra.Command {
	var tenantID, menuID string
	cmd := &cobra.Command{
		Use:   "ingredients",
		Short: "Print the weekly ingredient list of a menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(flags, func(ucs *httpRouter.UseCases) error {
				result, err := ucs.WeeklyIngredients.Execute(cmd.Context(), usecases.WeeklyIngredientsQuery{
					TenantID: tenantID,
					MenuID:   menuID,
				})
				if err != nil {
					return err
				}
				printIngredients(cmd.OutOrStdout(), result.Weeks)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tenantID, "tenant", "t", "", "Tenant id (required)")
	cmd.Flags().StringVarP(&menuID, "menu", "m", "", "Monthly menu id (required)")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("menu")

	return cmd
}

// resolveMonth fills unset flags with next month in the business timezone.
func resolveMonth(year, month int) (int, time.Month) {
	today := biztime.SystemClock().Today()
	next := biztime.Date(today.Year(), today.Month()+1, 1)
	if year == 0 {
		year = next.Year()
	}
	if month == 0 {
		month = int(next.Month())
	}
	return year, time.Month(month)
}

func printGeneration(w io.Writer, label string, r *usecases.GenerateMonthlyMenuResult) {
	m := r.Menu
	fmt.Fprintf(w, "%s: menu %s for %04d-%02d (%s, %d days)\n", label, m.ID, m.Year, m.Month, m.Status, len(m.Days))
	for _, d := range m.Days {
		fmt.Fprintf(w, "  %s %-9s %s\n", d.Date, d.Weekday, formatMeals(d))
	}
	for _, f := range r.Failures {
		fmt.Fprintf(w, "  ! %s %s: %s\n", f.Date, f.MealType, f.Reason)
	}
	fmt.Fprintln(w)
}

func formatMeals(d menudto.MenuDayDTO) string {
	parts := make([]string, 0, len(d.Meals))
	for _, mt := range cacfp.MealTypes() {
		a, ok := d.Meals[mt.String()]
		if !ok {
			continue
		}
		name := a.MealName
		if a.UsedVeganAlternative {
			name += " (vegan)"
		}
		parts = append(parts, title.String(mt.String())+": "+name)
	}
	return strings.Join(parts, " | ")
}

func printIngredients(w io.Writer, weeks []menudto.WeekIngredientsDTO) {
	for _, wk := range weeks {
		fmt.Fprintf(w, "Week of %s (%d service days)\n", wk.WeekStart, len(wk.Dates))
		for _, name := range wk.Ingredients {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}
}
