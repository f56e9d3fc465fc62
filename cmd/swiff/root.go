package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swiffapp/swiff/internal/money"
)

type rootFlags struct {
	Currency string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "swiff",
		Short:         "swiff splits bills and works out who owes whom",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags.Currency = money.NormalizeCurrency(flags.Currency)
			if !money.IsSupported(flags.Currency) {
				return fmt.Errorf("unsupported currency %q", flags.Currency)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.Currency, "currency", money.DefaultCurrency, "currency used to format amounts")

	rootCmd.AddCommand(newSplitCmd(flags))
	rootCmd.AddCommand(newSimplifyCmd(flags))
	rootCmd.AddCommand(newCurrenciesCmd())

	return rootCmd
}

// parseAssignment splits "name=value" into its parts.
func parseAssignment(arg string) (string, string, error) {
	name, value, ok := strings.Cut(arg, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("expected name=value, got %q", arg)
	}
	return name, strings.TrimSpace(value), nil
}
