package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "fct_TrialBalances", cfg.Tables.TrialBalances)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saldo.toml")
	assert.NoError(t, os.WriteFile(path, []byte(`
[paths]
trialbalance_workbook = "data/saldi.xlsx"
combined_store = "out/alles.db"

[tables]
transactions = "boekingen"
`), 0o644))

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)

	assert.Equal(t, "data/saldi.xlsx", cfg.Paths.TrialBalanceWorkbook)
	assert.Equal(t, "out/alles.db", cfg.Paths.CombinedStore)
	assert.Equal(t, "boekingen", cfg.Tables.Transactions)

	// Keys the file does not mention keep their defaults.
	assert.Equal(t, "import/transactions.xlsx", cfg.Paths.TransactionsWorkbook)
	assert.Equal(t, "fct_TrialBalances", cfg.Tables.TrialBalances)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	assert.NoError(t, os.WriteFile(path, []byte(`paths = not valid`), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
