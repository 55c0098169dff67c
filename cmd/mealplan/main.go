package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mealplan/internal/interfaces/cli/cliutil"
	"mealplan/internal/interfaces/cli/invoice"
	"mealplan/internal/interfaces/cli/menu"
	"mealplan/internal/interfaces/cli/migrate"
	"mealplan/internal/interfaces/cli/seed"
	"mealplan/internal/interfaces/cli/server"
)

func main() {
	flags := &cliutil.Flags{}
	rootCmd := &cobra.Command{
		Use:          "mealplan",
		Short:        "CACFP menu planning and invoicing",
		Long:         `mealplan generates CACFP-compliant monthly menus for catering programs and bills them with sequential invoice numbers.`,
		SilenceUsage: true,
	}
	flags.Register(rootCmd)

	rootCmd.AddCommand(
		server.NewCommand(flags),
		migrate.NewCommand(flags),
		seed.NewCommand(flags),
		menu.NewCommand(flags),
		invoice.NewCommand(flags),
	)

	// The server installs its own signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
