package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/carolinebinley/ml-learning-alignment/internal/align"
	"github.com/carolinebinley/ml-learning-alignment/internal/runstore"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect and prune recorded alignment runs",
	}

	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))
	runsCmd.AddCommand(newRunsPruneCommand(ctx))

	return runsCmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				if runs == nil {
					runs = []*runstore.Run{}
				}
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					humanize.Time(run.CreatedAt),
					fmt.Sprintf("%d x %d", run.SourceUnits, run.TargetUnits),
					strconv.Itoa(len(run.Groups)),
					run.Elapsed.Round(time.Millisecond).String(),
					runLabel(run),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Created", "Units", "Groups", "Elapsed", "Inputs"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var format string
	var order string

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the groups of a recorded run",
		Long:  "Show the groups of a recorded run. The ID may be abbreviated to any unique prefix.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := parseOutputFormat(format)
			if err != nil {
				return err
			}
			sortOrder, err := parseGroupOrder(order)
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.Get(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				if errors.Is(err, runstore.ErrAmbiguousID) {
					return fmt.Errorf("run id %q matches more than one run; use more characters", args[0])
				}
				return err
			}
			if run == nil {
				return fmt.Errorf("run %s not found", args[0])
			}
			if sortOrder == orderPosition {
				align.SortByPosition(run.Groups)
			}

			if outFormat.resolve(cmd.OutOrStdout()) == formatJSON {
				return writeJSON(cmd, run)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s (%s)\n", run.ID, run.CreatedAt.Local().Format(time.RFC3339))
			fmt.Fprintf(out, "Inputs: %s\n", runLabel(run))
			fmt.Fprintf(out, "Seed weights: %s\n", formatWeights(run.SeedWeights))
			fmt.Fprintf(out, "Improvement weights: %s\n\n", formatWeights(run.ImprovementWeights))
			return renderGroups(cmd, outFormat, alignmentReport{
				RunID:       run.ID,
				SourceUnits: run.SourceUnits,
				TargetUnits: run.TargetUnits,
				Groups:      run.Groups,
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(formatAuto), "Output format: auto, table, plain, or json")
	cmd.Flags().StringVar(&order, "order", string(orderScore), "Group order: score (acceptance order) or position")
	return cmd
}

func newRunsPruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete recorded runs older than a cutoff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			age := olderThan
			if !cmd.Flags().Changed("older-than") {
				if cfg.Runs.RetentionDays == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Retention is disabled (runs.retention_days = 0); pass --older-than to prune")
					return nil
				}
				age = time.Duration(cfg.Runs.RetentionDays) * 24 * time.Hour
			}
			if age < 0 {
				return errors.New("--older-than must not be negative")
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			cutoff := time.Now().Add(-age)
			removed, err := store.Prune(cmd.Context(), cutoff)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s) created before %s\n", removed, cutoff.Local().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Prune runs older than this age (default: runs.retention_days)")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runLabel(run *runstore.Run) string {
	if run.SourceName == "" && run.TargetName == "" {
		return "-"
	}
	return run.SourceName + " -> " + run.TargetName
}

func formatWeights(weights map[string]float64) string {
	if len(weights) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(weights))
	for _, name := range slices.Sorted(maps.Keys(weights)) {
		parts = append(parts, name+"="+strconv.FormatFloat(weights[name], 'g', -1, 64))
	}
	return strings.Join(parts, " ")
}
