package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/mverbeek/saldo/store"
	"github.com/mverbeek/saldo/telemetry"
	"github.com/mverbeek/saldo/trialbalance"
	"github.com/mverbeek/saldo/workbook"
)

type TransformCmd struct {
	File   string `arg:"" optional:"" type:"existingfile" help:"Trial-balance workbook (defaults to the configured path)."`
	Output string `short:"o" help:"Output store (defaults to the configured path)."`
	Watch  bool   `help:"Keep running and re-run the transform when the workbook changes."`
}

func (cmd *TransformCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := LoadConfig(globals.Config)
	if err != nil {
		return err
	}

	file := cmd.File
	if file == "" {
		file = cfg.Paths.TrialBalanceWorkbook
	}
	output := cmd.Output
	if output == "" {
		output = cfg.Paths.TrialBalanceStore
	}

	run := func() error {
		return runTransform(ctx, globals, file, output, cfg.Tables.TrialBalances)
	}

	if err := run(); err != nil {
		if !cmd.Watch {
			return err
		}
		// In watch mode a failed run is not fatal; the next save may fix it.
		printError(ctx.Stderr, err.Error())
	}

	if cmd.Watch {
		return watchAndRun(ctx, file, run)
	}
	return nil
}

func runTransform(ctx *kong.Context, globals *Globals, file, output, tableName string) error {
	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		rootTimer := collector.Start(fmt.Sprintf("transform %s", filepath.Base(file)))
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

	result, err := trialbalance.Transform(runCtx, src)
	if err != nil {
		return err
	}
	printInfof(ctx.Stdout, "Recognized %d period columns", len(result.Periods))
	printInfof(ctx.Stdout, "%d fact rows, of which %d synthesized profit rows", result.Facts.Len(), result.ProfitRows)
	printWarnings(ctx.Stderr, result.Warnings)

	db, err := store.Open(output)
	if err != nil {
		return err
	}
	defer db.Close()

	timer = tel.Start("write store")
	count, err := store.Write(db, tableName, result.Facts, trialbalance.Schema, store.Replace)
	timer.End()
	if err != nil {
		return err
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("%d rows written to table %q in %s", count, tableName, output))
	return nil
}

// watchAndRun re-runs the pipeline whenever the watched workbook
// changes. Events are debounced because editors and export tools emit
// bursts of writes for a single save.
func watchAndRun(ctx *kong.Context, file string, run func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(file)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(file), err)
	}
	target, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	printInfof(ctx.Stdout, "Watching %s for changes", file)

	var debounce *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != target {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(200*time.Millisecond, func() {
				if err := run(); err != nil {
					printError(ctx.Stderr, err.Error())
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, fmt.Sprintf("watch error: %v", err))
		}
	}
}
