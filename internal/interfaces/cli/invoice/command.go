package invoice

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	invoicedto "mealplan/internal/application/invoice/dto"
	"mealplan/internal/application/invoice/usecases"
	"mealplan/internal/interfaces/cli/cliutil"
	httpRouter "mealplan/internal/interfaces/http"
	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/utils"
)

func NewCommand(flags *cliutil.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Generate and inspect program invoices",
	}

	cmd.AddCommand(
		newGenerateCommand(flags),
		newMenuCommand(flags),
		newListCommand(flags),
		newStatusCommand(flags, "finalize", "Finalize a draft invoice",
			func(ucs *httpRouter.UseCases) usecases.InvoiceStatusExecutor { return ucs.FinalizeInvoice }),
		newStatusCommand(flags, "send", "Mark a finalized invoice as sent",
			func(ucs *httpRouter.UseCases) usecases.InvoiceStatusExecutor { return ucs.MarkInvoiceSent }),
	)

	return cmd
}

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
	var tenantID, programID, from, to string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Invoice a program for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := biztime.ParseDate(from)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			end, err := biztime.ParseDate(to)
			if err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}

			return withContainer(flags, func(ucs *httpRouter.UseCases) error {
				result, err := ucs.GenerateInvoice.Execute(cmd.Context(), usecases.GenerateInvoiceCommand{
					TenantID:    tenantID,
					ProgramID:   programID,
					PeriodStart: start,
					PeriodEnd:   end,
				})
				if err != nil {
					return err
				}
				printInvoice(cmd.OutOrStdout(), result.Invoice, true)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tenantID, "tenant", "t", "", "Tenant id (required)")
	cmd.Flags().StringVarP(&programID, "program", "p", "", "Program id (required)")
	cmd.Flags().StringVar(&from, "from", "", "First service date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&to, "to", "", "Last service date, YYYY-MM-DD (required)")
	for _, f := range []string{"tenant", "program", "from", "to"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

func newMenuCommand(flags *cliutil.Flags) *cobra.Command {
	var tenantID, menuID, grouping string
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Invoice every uninvoiced period of a finalized menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(flags, func(ucs *httpRouter.UseCases) error {
				result, err := ucs.GenerateInvoicesForMenu.Execute(cmd.Context(), usecases.GenerateInvoicesForMenuCommand{
					TenantID: tenantID,
					MenuID:   menuID,
					Grouping: grouping,
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, inv := range result.Invoices {
					printInvoice(out, inv, false)
				}
				for _, p := range result.Skipped {
					fmt.Fprintf(out, "skipped %s..%s: already invoiced\n", p.Start, p.End)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tenantID, "tenant", "t", "", "Tenant id (required)")
	cmd.Flags().StringVarP(&menuID, "menu", "m", "", "Monthly menu id (required)")
	cmd.Flags().StringVarP(&grouping, "grouping", "g", "month", "Invoice grouping: month, week or day")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("menu")

	return cmd
}

func newListCommand(flags *cliutil.Flags) *cobra.Command {
	var (
		tenantID, programID string
		page, pageSize      int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a program's invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := utils.NewPagination(page, pageSize)
			return withContainer(flags, func(ucs *httpRouter.UseCases) error {
				result, err := ucs.ListProgramInvoices.Execute(cmd.Context(), usecases.ListProgramInvoicesQuery{
					TenantID:  tenantID,
					ProgramID: programID,
					Offset:    p.Offset(),
					Limit:     p.PageSize,
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, inv := range result.Invoices {
					printInvoice(out, inv, false)
				}
				fmt.Fprintf(out, "page %d of %d (%d invoices)\n",
					p.Page, utils.TotalPages(result.Total, p.PageSize), result.Total)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tenantID, "tenant", "t", "", "Tenant id (required)")
	cmd.Flags().StringVarP(&programID, "program", "p", "", "Program id (required)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "Invoices per page")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("program")

	return cmd
}

func newStatusCommand(flags *cliutil.Flags, use, short string,
	pick func(ucs *httpRouter.UseCases) usecases.InvoiceStatusExecutor) *cobra.Command {

	var tenantID, invoiceID string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(flags, func(ucs *httpRouter.UseCases) error {
				result, err := pick(ucs).Execute(cmd.Context(), usecases.InvoiceStatusCommand{
					TenantID:  tenantID,
					InvoiceID: invoiceID,
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if result.Unchanged {
					fmt.Fprintf(out, "invoice %s is already %s\n", result.Invoice.Number, result.Invoice.Status)
				}
				printInvoice(out, result.Invoice, false)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tenantID, "tenant", "t", "", "Tenant id (required)")
	cmd.Flags().StringVarP(&invoiceID, "invoice", "i", "", "Invoice id (required)")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("invoice")

	return cmd
}

var printer = message.NewPrinter(language.AmericanEnglish)

// formatMoney renders a fixed-point amount with the currency symbol and
// grouping separators of US English.
func formatMoney(amount, iso string) string {
	unit, err := currency.ParseISO(iso)
	if err != nil {
		unit = currency.USD
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return amount + " " + iso
	}
	return printer.Sprint(currency.Symbol(unit.Amount(d.InexactFloat64())))
}

func printInvoice(w io.Writer, inv *invoicedto.InvoiceDTO, withLines bool) {
	fmt.Fprintf(w, "%s  %s..%s  %d meals  %s  [%s]\n",
		inv.Number, inv.PeriodStart, inv.PeriodEnd, inv.MealCount,
		formatMoney(inv.Total, inv.Currency), inv.Status)
	if !withLines {
		return
	}
	for _, l := range inv.Lines {
		fmt.Fprintf(w, "    %s  %4d x %s = %s\n",
			l.ServiceDate, l.MealCount,
			formatMoney(l.UnitPrice, inv.Currency), formatMoney(l.Amount, inv.Currency))
	}
}
