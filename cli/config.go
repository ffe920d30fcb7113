package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/mverbeek/saldo/dump"
	"github.com/mverbeek/saldo/trialbalance"
)

// Config holds the pipeline's file locations and table names. Flags and
// positional arguments override whatever the file says; with no config
// file at all, the defaults target the conventional import/ and export/
// directories.
type Config struct {
	Paths  PathsConfig  `toml:"paths"`
	Tables TablesConfig `toml:"tables"`
}

// PathsConfig locates the workbooks and stores.
type PathsConfig struct {
	TransactionsWorkbook string `toml:"transactions_workbook"`
	TrialBalanceWorkbook string `toml:"trialbalance_workbook"`
	TransactionsStore    string `toml:"transactions_store"`
	TrialBalanceStore    string `toml:"trialbalance_store"`
	CombinedStore        string `toml:"combined_store"`
}

// TablesConfig names the persisted tables.
type TablesConfig struct {
	Transactions  string `toml:"transactions"`
	TrialBalances string `toml:"trial_balances"`
}

// DefaultConfig returns the conventional pipeline layout.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			TransactionsWorkbook: "import/transactions.xlsx",
			TrialBalanceWorkbook: "import/trial_balances.xlsx",
			TransactionsStore:    "export/transactions.db",
			TrialBalanceStore:    "export/trial_balances.db",
			CombinedStore:        "export/combined.db",
		},
		Tables: TablesConfig{
			Transactions:  dump.Table,
			TrialBalances: trialbalance.FactTable,
		},
	}
}

// LoadConfig reads a TOML config file over the defaults. An empty path
// returns the defaults unchanged. Keys missing from the file keep their
// default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
