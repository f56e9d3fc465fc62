package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/swiffapp/swiff/internal/calculator"
	"github.com/swiffapp/swiff/internal/money"
)

type simplifyFlags struct {
	Payer string
	Paid  []string
}

type simplifyRunner struct {
	root  *rootFlags
	flags *simplifyFlags
	cmd   *cobra.Command
}

func newSimplifyCmd(root *rootFlags) *cobra.Command {
	flags := &simplifyFlags{}

	cmd := &cobra.Command{
		Use:   "simplify <name=share>...",
		Short: "Work out who pays whom to settle a bill",
		Long: `Work out the transfers that settle a bill.

	Each argument is a participant's share. Amounts actually paid are given
	with --paid; without any, --payer is taken to have paid the whole bill.

	Examples:
	swiff simplify --payer carol alice=30 bob=30 carol=30
	swiff simplify alice=30 bob=30 --paid alice=60`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &simplifyRunner{
				root:  root,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run(args)
		},
	}

	cmd.Flags().StringVarP(&flags.Payer, "payer", "p", "", "who paid the bill when no --paid amounts are given")
	cmd.Flags().StringArrayVar(&flags.Paid, "paid", nil, "amount a participant paid, as name=amount (repeatable)")
	return cmd
}

func (r *simplifyRunner) Run(args []string) error {
	contribs := make([]calculator.Contribution, 0, len(args))
	index := make(map[string]int, len(args))
	for _, arg := range args {
		name, value, err := parseAssignment(arg)
		if err != nil {
			return err
		}
		share, err := money.ParseOrZero(value)
		if err != nil {
			return fmt.Errorf("invalid share for %s: %w", name, err)
		}
		index[name] = len(contribs)
		contribs = append(contribs, calculator.Contribution{ID: name, Share: share})
	}

	for _, arg := range r.flags.Paid {
		name, value, err := parseAssignment(arg)
		if err != nil {
			return err
		}
		paid, err := money.Parse(value)
		if err != nil {
			return fmt.Errorf("invalid paid amount for %s: %w", name, err)
		}
		i, ok := index[name]
		if !ok {
			i = len(contribs)
			index[name] = i
			contribs = append(contribs, calculator.Contribution{ID: name})
		}
		contribs[i].Paid += paid
	}

	if r.flags.Payer == "" && len(r.flags.Paid) == 0 {
		return fmt.Errorf("either --payer or --paid is required")
	}

	transfers := calculator.CalculateBalances(contribs, r.flags.Payer)
	r.display(transfers)
	return nil
}

func (r *simplifyRunner) display(transfers []calculator.Transfer) {
	out := r.cmd.OutOrStdout()
	if len(transfers) == 0 {
		fmt.Fprintln(out, "Everyone is settled up.")
		return
	}

	tableData := pterm.TableData{{"From", "To", "Amount"}}
	for _, t := range transfers {
		tableData = append(tableData, []string{t.From, t.To, t.Amount.Format(r.root.Currency)})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Srender()
	if err != nil {
		pterm.Warning.Println(err)
		return
	}
	fmt.Fprintln(out, table)
	fmt.Fprintf(out, "%d transfer(s)\n", len(transfers))
}

func newCurrenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List supported currencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tableData := pterm.TableData{{"Code", "Symbol", "Name"}}
			for _, c := range money.Currencies {
				tableData = append(tableData, []string{c.Code, c.Symbol, c.Name})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}
