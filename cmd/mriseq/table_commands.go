package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"mriseq/internal/config"
	"mriseq/internal/logging"
	"mriseq/internal/sequence"
	"mriseq/internal/snapshot"
)

func newTableCommand(ctx *commandContext) *cobra.Command {
	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "Inspect and snapshot the reference table",
	}

	tableCmd.AddCommand(newTableShowCommand(ctx))
	tableCmd.AddCommand(newTableImportCommand(ctx))
	tableCmd.AddCommand(newTableInfoCommand(ctx))
	return tableCmd
}

func newTableShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List the loaded reference table",
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := ctx.loadClassifier(cmd)
			if err != nil {
				return err
			}
			records := classifier.Table().Records()
			if jsonOutput {
				return writeJSON(cmd, records)
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "Reference table is empty")
				return nil
			}
			fmt.Fprintln(out, renderRecords(records))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func renderRecords(records []sequence.Record) string {
	headers := []string{"#", "Sequence", "Ponderation", "Plane", "3D", "Observation", "Injection", "Saturation", "b (DWI)"}
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			rec.Name,
			rec.Weighting,
			rec.Plane,
			rec.ThreeD,
			rec.Observation,
			rec.Injection,
			rec.Saturation,
			rec.DiffusionB,
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignRight})
}

func newTableImportCommand(ctx *commandContext) *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the reference CSV and replace the SQLite snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			classifier, err := ctx.loadCSVClassifier(cfg, logger)
			if err != nil {
				return err
			}

			store, err := snapshot.Open(cmd.Context(), cfg.Snapshot.Path, logger)
			if err != nil {
				return fmt.Errorf("open reference snapshot: %w", err)
			}
			defer store.Close()

			importCtx, cancel := context.WithTimeout(cmd.Context(), wait)
			defer cancel()
			if err := store.Replace(importCtx, classifier.Table(), cfg.ReferencePath()); err != nil {
				logging.ErrorWithContext(logger, "snapshot import failed", "snapshot_import_failed",
					logging.Error(err),
					logging.String("snapshot", store.Path()),
					logging.String(logging.FieldErrorHint, "retry once other mriseq processes finish"))
				if errors.Is(err, snapshot.ErrLocked) {
					return fmt.Errorf("snapshot %s is being written by another process: %w", store.Path(), err)
				}
				return fmt.Errorf("import reference snapshot: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d rows into %s\n", classifier.Len(), store.Path())
			if cfg.Reference.Source != config.SourceSnapshot {
				fmt.Fprintf(out, "Set reference.source = %q to classify from the snapshot\n", config.SourceSnapshot)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 10*time.Second, "How long to wait for the snapshot lock")
	return cmd
}

func newTableInfoCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show details of the last snapshot import",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			store, err := snapshot.Open(cmd.Context(), cfg.Snapshot.Path, logger)
			if err != nil {
				return fmt.Errorf("open reference snapshot: %w", err)
			}
			defer store.Close()

			info, err := store.Info(cmd.Context())
			if errors.Is(err, snapshot.ErrEmpty) {
				return fmt.Errorf("no snapshot imported yet at %s (run `mriseq table import`): %w", store.Path(), err)
			}
			if err != nil {
				return fmt.Errorf("read snapshot info: %w", err)
			}
			if jsonOutput {
				return writeJSON(cmd, info)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderField("Snapshot", store.Path()))
			fmt.Fprintln(out, renderField("Source", info.Source))
			fmt.Fprintln(out, renderField("Imported", info.ImportedAt.Local().Format(time.RFC1123)))
			fmt.Fprintln(out, renderField("Rows", strconv.Itoa(info.Rows)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
