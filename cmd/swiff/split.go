package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/swiffapp/swiff/internal/calculator"
	"github.com/swiffapp/swiff/internal/money"
)

type splitFlags struct {
	Total string
}

type splitRunner struct {
	root   *rootFlags
	flags  *splitFlags
	cmd    *cobra.Command
	method calculator.Method
}

func newSplitCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a bill between participants",
		Long: `Split a bill total between participants.

	Examples:
	swiff split equal --total 100 alice bob carol
	swiff split custom --total 100 alice=60 bob=40
	swiff split percent --total 100 alice=33.33 bob=33.33 carol=33.34`,
	}

	cmd.AddCommand(newSplitMethodCmd(root, calculator.MethodEqual, "equal <name>...", "Split the total evenly"))
	cmd.AddCommand(newSplitMethodCmd(root, calculator.MethodCustom, "custom <name=amount>...", "Assign each participant an amount"))
	cmd.AddCommand(newSplitMethodCmd(root, calculator.MethodPercentage, "percent <name=percent>...", "Assign each participant a percentage"))
	return cmd
}

func newSplitMethodCmd(root *rootFlags, method calculator.Method, use, short string) *cobra.Command {
	flags := &splitFlags{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &splitRunner{
				root:   root,
				flags:  flags,
				cmd:    cmd,
				method: method,
			}
			return runner.Run(args)
		},
	}

	cmd.Flags().StringVarP(&flags.Total, "total", "t", "", "bill total, e.g. 42.50")
	cmd.MarkFlagRequired("total")
	return cmd
}

func (r *splitRunner) Run(args []string) error {
	total, err := money.Parse(r.flags.Total)
	if err != nil {
		return fmt.Errorf("invalid total: %w", err)
	}

	ids, policy, err := r.policy(args)
	if err != nil {
		return err
	}

	shares, err := calculator.Split(total, ids, policy)
	if err != nil {
		return err
	}

	r.display(total, shares)
	return nil
}

func (r *splitRunner) policy(args []string) ([]string, calculator.Policy, error) {
	ids := make([]string, len(args))

	switch r.method {
	case calculator.MethodCustom:
		entries := make([]calculator.CustomEntry, len(args))
		for i, arg := range args {
			name, value, err := parseAssignment(arg)
			if err != nil {
				return nil, nil, err
			}
			amount, err := money.ParseOrZero(value)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid amount for %s: %w", name, err)
			}
			ids[i] = name
			entries[i] = calculator.CustomEntry{ParticipantID: name, Amount: amount}
		}
		return ids, calculator.Custom{Amounts: entries}, nil

	case calculator.MethodPercentage:
		entries := make([]calculator.PercentageEntry, len(args))
		for i, arg := range args {
			name, value, err := parseAssignment(arg)
			if err != nil {
				return nil, nil, err
			}
			pct, err := money.ParsePercent(value)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid percentage for %s: %w", name, err)
			}
			ids[i] = name
			entries[i] = calculator.PercentageEntry{ParticipantID: name, Percentage: pct}
		}
		return ids, calculator.Percentage{Percentages: entries}, nil

	default:
		copy(ids, args)
		return ids, calculator.Equal{}, nil
	}
}

func (r *splitRunner) display(total money.Money, shares []calculator.Share) {
	out := r.cmd.OutOrStdout()

	headers := []string{"Participant", "Share"}
	if r.method == calculator.MethodPercentage {
		headers = append(headers, "Percent")
	}
	tableData := pterm.TableData{headers}
	for _, s := range shares {
		row := []string{s.ParticipantID, s.Amount.Format(r.root.Currency)}
		if r.method == calculator.MethodPercentage {
			row = append(row, s.Percentage.StringFixed(2)+"%")
		}
		tableData = append(tableData, row)
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Srender()
	if err != nil {
		pterm.Warning.Println(err)
		return
	}
	fmt.Fprintln(out, calculator.MethodSummary(r.method, len(shares)))
	fmt.Fprintln(out, table)
	fmt.Fprintf(out, "Total: %s\n", total.Format(r.root.Currency))
}
