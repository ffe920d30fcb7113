package cli

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mverbeek/saldo/store"
)

type CombineCmd struct {
	Transactions  string `type:"existingfile" help:"Transactions store (defaults to the configured path)."`
	TrialBalances string `type:"existingfile" help:"Trial-balance store (defaults to the configured path)."`
	Output        string `short:"o" help:"Combined store (defaults to the configured path)."`
	Force         bool   `help:"Overwrite an existing combined store without asking."`
}

func (cmd *CombineCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := LoadConfig(globals.Config)
	if err != nil {
		return err
	}

	transactions := cmd.Transactions
	if transactions == "" {
		transactions = cfg.Paths.TransactionsStore
	}
	trialBalances := cmd.TrialBalances
	if trialBalances == "" {
		trialBalances = cfg.Paths.TrialBalanceStore
	}
	output := cmd.Output
	if output == "" {
		output = cfg.Paths.CombinedStore
	}

	if _, err := os.Stat(output); err == nil {
		if !cmd.Force {
			overwrite, err := promptYesNo(fmt.Sprintf("Overwrite existing store %s?", output))
			if err != nil {
				return err
			}
			if !overwrite {
				printInfof(ctx.Stdout, "Keeping %s, nothing combined", output)
				return nil
			}
		}
		if err := os.Remove(output); err != nil {
			return fmt.Errorf("remove existing store: %w", err)
		}
	}

	results, err := store.Combine(output,
		store.Source{Path: transactions, Table: cfg.Tables.Transactions},
		store.Source{Path: trialBalances, Table: cfg.Tables.TrialBalances},
	)
	if err != nil {
		return err
	}

	total := 0
	for _, r := range results {
		printInfof(ctx.Stdout, "Copied %d rows into table %q", r.Rows, r.Table)
		total += r.Rows
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Combined store created at %s (%d tables, %d rows)", output, len(results), total))
	return nil
}

// promptYesNo asks a yes/no question. When stdin is not a terminal the
// answer defaults to no, so scripted runs never overwrite silently.
func promptYesNo(question string) (bool, error) {
	if !isTerminal() {
		return false, nil
	}

	var confirm bool

	form := huh.NewConfirm().
		Title(question).
		WithButtonAlignment(lipgloss.Left).
		Value(&confirm)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	return confirm, nil
}
