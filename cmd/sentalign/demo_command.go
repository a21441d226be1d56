package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carolinebinley/ml-learning-alignment/internal/align"
)

var (
	demoSource = []string{
		"this is my first sentence",
		"this is my 2nd sentence",
		"this is my third sentence",
		"this is my fourth sentence",
		"this one will be deleted",
		"this is my fifth sentence",
		"this is my sixth sentence",
		"this is my seventh sentence, and this is my eighth sentence",
	}
	demoTarget = []string{
		"This is my first sentence.",
		"This is my second sentence, and this is my third sentence.",
		"This is my fourth sentence.",
		"This is my sixth sentence.",
		"This is my fifth sentence.",
		"This is my seventh sentence.",
		"This is my eighth sentence.",
	}
)

func newDemoCommand(ctx *commandContext) *cobra.Command {
	var opts alignOptions

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Align a built-in pair of document revisions",
		Long: `Align two revisions of a short document that split, merge, delete,
and reorder sentences. The run is never recorded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(opts.format)
			if err != nil {
				return err
			}
			order, err := parseGroupOrder(opts.order)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			seed, improvement, err := resolveWeights(cfg, opts)
			if err != nil {
				return err
			}

			report, err := runAlignment(cmd.Context(), ctx, logger, alignRequest{
				sourceName:  "demo-source",
				targetName:  "demo-target",
				seq1:        demoSource,
				seq2:        demoTarget,
				seed:        seed,
				improvement: improvement,
				workers:     cfg.Pipeline.Workers,
			})
			if err != nil {
				return err
			}
			if order == orderPosition {
				align.SortByPosition(report.Groups)
			}
			if format.resolve(cmd.OutOrStdout()) != formatJSON {
				fmt.Fprintf(cmd.OutOrStdout(), "Aligning %d source units with %d target units\n\n", len(demoSource), len(demoTarget))
			}
			return renderGroups(cmd, format, report)
		},
	}

	cmd.Flags().StringArrayVar(&opts.seedWeights, "seed-weight", nil, "Seed strategy weight as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.improvementWeights, "improve-weight", nil, "Improvement strategy weight as name=value (repeatable)")
	cmd.Flags().BoolVar(&opts.seedsOnly, "seeds-only", false, "Skip gap expansion and return the seed alignments")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(formatAuto), "Output format: auto, table, plain, or json")
	cmd.Flags().StringVar(&opts.order, "order", string(orderPosition), "Group order: score (acceptance order) or position")
	return cmd
}
