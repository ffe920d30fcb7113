package cli

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/exp/slices"

	"github.com/mverbeek/saldo/account"
	"github.com/mverbeek/saldo/table"
	"github.com/mverbeek/saldo/trialbalance"
	"github.com/mverbeek/saldo/workbook"
)

type ValidateCmd struct {
	Transactions  string `type:"existingfile" help:"Transaction dump workbook (defaults to the configured path)."`
	TrialBalances string `type:"existingfile" help:"Trial-balance workbook (defaults to the configured path)."`
}

// Run checks that every account code appearing in the transaction dump
// also appears in the trial-balance workbook. Codes without a trial
// balance break the combined reporting joins, so their presence fails
// validation; trial-balance codes without transactions are merely
// informational.
func (cmd *ValidateCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := LoadConfig(globals.Config)
	if err != nil {
		return err
	}

	transactions := cmd.Transactions
	if transactions == "" {
		transactions = cfg.Paths.TransactionsWorkbook
	}
	trialBalances := cmd.TrialBalances
	if trialBalances == "" {
		trialBalances = cfg.Paths.TrialBalanceWorkbook
	}

	transactionCodes, err := readAccountCodes(transactions)
	if err != nil {
		return err
	}
	printInfof(ctx.Stdout, "%d unique account codes in %s", len(transactionCodes), transactions)

	trialBalanceCodes, err := readAccountCodes(trialBalances)
	if err != nil {
		return err
	}
	printInfof(ctx.Stdout, "%d unique account codes in %s", len(trialBalanceCodes), trialBalances)

	missing := difference(transactionCodes, trialBalanceCodes)
	extra := difference(trialBalanceCodes, transactionCodes)

	if len(extra) > 0 {
		printInfof(ctx.Stdout, "%d code(s) only in trial balances: %v", len(extra), extra)
	}

	if len(missing) > 0 {
		for _, code := range missing {
			printWarning(ctx.Stderr, fmt.Sprintf("account code %s has transactions but no trial balance", code))
		}
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d account code(s) missing from trial balances", len(missing)))
		os.Exit(1)
	}

	printSuccess(ctx.Stdout, "All transaction account codes are covered by trial balances")
	return nil
}

// readAccountCodes loads a workbook and returns the set of padded
// account codes in its account column.
func readAccountCodes(path string) (map[string]bool, error) {
	src, err := workbook.Read(path)
	if err != nil {
		return nil, err
	}
	if !src.HasColumn(trialbalance.ColAccount) {
		return nil, fmt.Errorf("%s: missing required column %q", path, trialbalance.ColAccount)
	}

	codes := make(map[string]bool)
	for i := 0; i < src.Len(); i++ {
		cell := src.Cell(i, trialbalance.ColAccount)
		switch cell.Kind() {
		case table.KindText:
			s, _ := cell.Text()
			codes[account.Pad(s)] = true
		case table.KindNumber:
			d, _ := cell.Number()
			codes[account.Pad(d.Truncate(0).String())] = true
		}
	}
	return codes, nil
}

// difference returns the sorted codes present in a but not in b.
func difference(a, b map[string]bool) []string {
	var out []string
	for code := range a {
		if !b[code] {
			out = append(out, code)
		}
	}
	slices.Sort(out)
	return out
}
