package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mriseq/internal/logging"
	"mriseq/internal/sequence"
	"mriseq/internal/textutil"
)

const (
	suggestionLimit    = 3
	suggestionMinScore = 0.3
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "lookup LABEL",
		Short: "Show the reference row a label resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := ctx.loadClassifier(cmd)
			if err != nil {
				return err
			}
			label := args[0]
			out := cmd.OutOrStdout()

			rec, ok := classifier.Resolve(label)
			if !ok {
				key := sequence.NormalizeKey(label)
				suggestions := suggestKeys(classifier.Table(), key)
				if logger, err := ctx.ensureLogger(cmd); err == nil {
					logger.Debug("lookup missed",
						logging.String(logging.FieldEventType, "lookup_missed"),
						logging.String("key", key),
						logging.Any("suggestions", suggestions))
				}
				if jsonOutput {
					if err := writeJSON(cmd, map[string]any{
						"label":       label,
						"key":         key,
						"found":       false,
						"suggestions": suggestions,
					}); err != nil {
						return err
					}
				} else if len(suggestions) > 0 {
					fmt.Fprintf(out, "No reference row for %q. Closest keys:\n", key)
					for _, s := range suggestions {
						fmt.Fprintf(out, "%s%s\n", fieldIndent, s)
					}
				}
				return fmt.Errorf("lookup %q: %w", key, sequence.ErrNotFound)
			}

			if jsonOutput {
				return writeJSON(cmd, rec)
			}
			colorize := shouldColorize(out)
			lines := renderSectionHeader(rec.Name, colorize)
			lines = append(lines,
				renderField("Weighting", rec.Weighting),
				renderField("Plane", rec.Plane),
				renderField("3D", rec.ThreeD),
				renderField("Observation", rec.Observation),
				renderField("Injection", rec.Injection),
				renderField("Saturation", rec.Saturation),
				renderField("b (DWI)", rec.DiffusionB),
			)
			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newNameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "name LABEL",
		Short: "Print the standard name of a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := ctx.loadClassifier(cmd)
			if err != nil {
				return err
			}
			name, err := classifier.StandardName(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}

// suggestKeys ranks the table's distinct keys by similarity to key.
func suggestKeys(table *sequence.Table, key string) []string {
	seen := make(map[string]struct{})
	var candidates []string
	for _, rec := range table.Records() {
		if _, ok := seen[rec.Name]; ok {
			continue
		}
		seen[rec.Name] = struct{}{}
		candidates = append(candidates, rec.Name)
	}
	matches := textutil.Closest(key, candidates, suggestionLimit, suggestionMinScore)
	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.Text)
	}
	return suggestions
}
