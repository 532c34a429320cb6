package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mriseq/internal/logging"
	"mriseq/internal/sequence"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "classify [LABEL...]",
		Short: "Classify sequence labels (reads stdin lines when no label is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := args
			if len(labels) == 0 {
				read, err := readLabels(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read labels: %w", err)
				}
				labels = read
			}
			if len(labels) == 0 {
				return fmt.Errorf("no labels to classify")
			}

			classifier, err := ctx.loadClassifier(cmd)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}

			start := time.Now()
			results := make([]sequence.Classification, 0, len(labels))
			for _, label := range labels {
				results = append(results, classifier.Classify(label))
			}
			logger.Debug("labels classified",
				logging.String(logging.FieldEventType, "labels_classified"),
				logging.Int("labels", len(results)),
				logging.Duration("elapsed", time.Since(start)))

			if jsonOutput {
				return writeJSON(cmd, results)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderClassifications(results, shouldColorize(out)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// readLabels returns the non-blank lines of r.
func readLabels(r io.Reader) ([]string, error) {
	var labels []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		labels = append(labels, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return labels, nil
}

func renderClassifications(results []sequence.Classification, colorize bool) string {
	headers := []string{"Label", "Key", "Valid", "Diffusion", "Perfusion", "Standard Name"}
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		name := res.StandardName
		if !res.Found {
			name = renderVerdict("not found", statusWarn, colorize)
		}
		rows = append(rows, []string{
			res.Label,
			res.Key,
			validVerdict(res, colorize),
			yesNo(res.Diffusion),
			yesNo(res.Perfusion),
			name,
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignCenter, alignCenter, alignCenter, alignLeft})
}

func validVerdict(res sequence.Classification, colorize bool) string {
	switch {
	case !res.Found:
		return renderVerdict("-", statusWarn, colorize)
	case res.Valid:
		return renderVerdict("yes", statusOK, colorize)
	default:
		return renderVerdict("no", statusError, colorize)
	}
}
