package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/mverbeek/saldo/dump"
	"github.com/mverbeek/saldo/store"
	"github.com/mverbeek/saldo/telemetry"
	"github.com/mverbeek/saldo/workbook"
)

type DumpCmd struct {
	File   string `arg:"" optional:"" type:"existingfile" help:"Transaction dump workbook (defaults to the configured path)."`
	Output string `short:"o" help:"Output store (defaults to the configured path)."`
}

func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := LoadConfig(globals.Config)
	if err != nil {
		return err
	}

	file := cmd.File
	if file == "" {
		file = cfg.Paths.TransactionsWorkbook
	}
	output := cmd.Output
	if output == "" {
		output = cfg.Paths.TransactionsStore
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		rootTimer := collector.Start(fmt.Sprintf("dump %s", filepath.Base(file)))
		defer func() {
			rootTimer.End()
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr)
		}()
	}
	tel := telemetry.FromContext(runCtx)

	timer := tel.Start("load workbook")
	src, err := workbook.Read(file)
	timer.End()
	if err != nil {
		return err
	}
	printInfof(ctx.Stdout, "Loaded %d rows with %d columns from %s", src.Len(), len(src.Columns()), file)

	result, err := dump.Transform(runCtx, src)
	if err != nil {
		return err
	}
	printWarnings(ctx.Stderr, result.Warnings)

	db, err := store.Open(output)
	if err != nil {
		return err
	}
	defer db.Close()

	timer = tel.Start("write store")
	count, err := store.Write(db, cfg.Tables.Transactions, result.Transactions, dump.Schema, store.Replace)
	timer.End()
	if err != nil {
		return err
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("%d rows written to table %q in %s", count, cfg.Tables.Transactions, output))
	return nil
}
