// Package cli implements the saldo command-line interface: the
// transform, dump, combine, validate and inspect commands plus their
// shared output helpers and pipeline configuration.
package cli

var (
	// Version contains the application version number. It's set via
	// ldflags when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application
	// was built against. It's set via ldflags when building.
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Config    string `help:"Pipeline configuration file (TOML)." type:"existingfile" optional:""`
	Telemetry bool   `help:"Show timing telemetry for operations."`
}

// Commands is the root of the saldo command tree.
type Commands struct {
	Globals

	Transform TransformCmd `cmd:"" help:"Transform a trial-balance workbook into the fact-table store."`
	Dump      DumpCmd      `cmd:"" help:"Process a transaction dump workbook into the transactions store."`
	Combine   CombineCmd   `cmd:"" help:"Merge the transactions and trial-balance stores into one database."`
	Validate  ValidateCmd  `cmd:"" help:"Check account-code consistency between the two workbooks."`
	Inspect   InspectCmd   `cmd:"" help:"List tables and sample rows of a store."`
}
