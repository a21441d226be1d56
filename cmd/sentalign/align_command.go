package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/carolinebinley/ml-learning-alignment/internal/align"
	"github.com/carolinebinley/ml-learning-alignment/internal/config"
	"github.com/carolinebinley/ml-learning-alignment/internal/logging"
	"github.com/carolinebinley/ml-learning-alignment/internal/runstore"
	"github.com/carolinebinley/ml-learning-alignment/internal/scoring"
	"github.com/carolinebinley/ml-learning-alignment/internal/seqio"
)

type alignOptions struct {
	seedWeights        []string
	improvementWeights []string
	seedsOnly          bool
	format             string
	order              string
	noCache            bool
	noSave             bool
}

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var opts alignOptions

	cmd := &cobra.Command{
		Use:   "align <sequence1> <sequence2>",
		Short: "Align two sequence files",
		Long: `Align two sequences of text units.

Each file holds one unit per line, or a JSON array of strings when the name
ends in .json. Use "-" to read one of the sequences from standard input.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" && args[1] == "-" {
				return errors.New("only one sequence can be read from standard input")
			}
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
			seq1, err := readSequence(logger, args[0])
			if err != nil {
				return err
			}
			seq2, err := readSequence(logger, args[1])
			if err != nil {
				return err
			}

			req := alignRequest{
				sourceName:  args[0],
				targetName:  args[1],
				seq1:        seq1,
				seq2:        seq2,
				seed:        seed,
				improvement: improvement,
				workers:     cfg.Pipeline.Workers,
				useCache:    !opts.noCache,
				save:        !opts.noSave,
			}
			report, err := runAlignment(cmd.Context(), ctx, logger, req)
			if err != nil {
				return err
			}
			if order == orderPosition {
				align.SortByPosition(report.Groups)
			}
			return renderGroups(cmd, format, report)
		},
	}

	cmd.Flags().StringArrayVar(&opts.seedWeights, "seed-weight", nil, "Seed strategy weight as name=value (repeatable; replaces configured seed_weights)")
	cmd.Flags().StringArrayVar(&opts.improvementWeights, "improve-weight", nil, "Improvement strategy weight as name=value (repeatable; replaces configured improvement_weights)")
	cmd.Flags().BoolVar(&opts.seedsOnly, "seeds-only", false, "Skip gap expansion and return the seed alignments")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(formatAuto), "Output format: auto, table, plain, or json")
	cmd.Flags().StringVar(&opts.order, "order", string(orderScore), "Group order: score (acceptance order) or position")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "Do not reuse a stored run with identical inputs")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "Do not record this run in the run history")
	return cmd
}

type alignRequest struct {
	sourceName  string
	targetName  string
	seq1        []string
	seq2        []string
	seed        scoring.Weights
	improvement scoring.Weights
	workers     int
	useCache    bool
	save        bool
}

// runAlignment aligns the request, consulting and updating the run store when
// it is enabled. A store that cannot be opened is logged and skipped.
func runAlignment(parent context.Context, ctx *commandContext, logger *slog.Logger, req alignRequest) (alignmentReport, error) {
	runID := uuid.NewString()
	runCtx := logging.WithRunID(parent, runID)
	base := logger
	logger = logging.WithContext(runCtx, logger)

	var store *runstore.Store
	if req.useCache || req.save {
		opened, err := ctx.openStore()
		switch {
		case errors.Is(err, errRunsDisabled):
		case err != nil:
			logging.WarnWithContext(logger, "run history unavailable", "runstore_open_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check runs.dir permissions or pass --no-save --no-cache"),
				logging.String(logging.FieldImpact, "results are neither cached nor recorded"),
			)
		default:
			store = opened
			defer store.Close()
		}
	}

	hash := runstore.InputHash(req.seq1, req.seq2, req.seed, req.improvement)
	if store != nil && req.useCache {
		cached, err := store.Lookup(runCtx, hash)
		if err != nil {
			logging.WarnWithContext(logger, "run cache lookup failed", "runstore_lookup_failed", logging.Error(err))
		} else if cached != nil {
			logger.Info("reusing stored run",
				logging.String("cached_run_id", cached.ID),
				logging.Int("groups", len(cached.Groups)),
			)
			return alignmentReport{
				RunID:       cached.ID,
				Cached:      true,
				SourceUnits: cached.SourceUnits,
				TargetUnits: cached.TargetUnits,
				Groups:      cached.Groups,
			}, nil
		}
	}

	aligner := align.New(align.Options{
		SeedWeights:        req.seed,
		ImprovementWeights: req.improvement,
		Workers:            req.workers,
		Logger:             base,
	})
	started := time.Now()
	alignments, err := aligner.AlignSpans(runCtx, req.seq1, req.seq2)
	if err != nil {
		return alignmentReport{}, err
	}
	report := alignmentReport{
		SourceUnits: len(req.seq1),
		TargetUnits: len(req.seq2),
		Groups:      align.Describe(alignments, req.seq1, req.seq2),
	}

	if store != nil && req.save {
		run := &runstore.Run{
			ID:                 runID,
			InputHash:          hash,
			SourceName:         displayName(req.sourceName),
			TargetName:         displayName(req.targetName),
			SourceUnits:        report.SourceUnits,
			TargetUnits:        report.TargetUnits,
			SeedWeights:        req.seed.Map(),
			ImprovementWeights: req.improvement.Map(),
			Groups:             report.Groups,
			Elapsed:            time.Since(started),
		}
		if err := store.Save(runCtx, run); err != nil {
			logging.WarnWithContext(logger, "failed to record run", "runstore_save_failed", logging.Error(err))
		} else {
			report.RunID = run.ID
		}
	}
	return report, nil
}

func readSequence(logger *slog.Logger, path string) ([]string, error) {
	units, err := seqio.ReadFile(path)
	if errors.Is(err, seqio.ErrEmpty) {
		logger.Warn("sequence is empty; no alignments will be produced",
			logging.String("path", path),
			logging.String(logging.FieldEventType, "empty_sequence"),
		)
		return nil, nil
	}
	return units, err
}

// resolveWeights starts from the configured weight tables and applies any
// flag overrides. A flag table replaces the configured one wholesale.
func resolveWeights(cfg *config.Config, opts alignOptions) (seed, improvement scoring.Weights, err error) {
	seedMap := maps.Clone(cfg.SeedWeights)
	improvementMap := maps.Clone(cfg.ImprovementWeights)
	if len(opts.seedWeights) > 0 {
		if seedMap, err = parseWeightFlags("--seed-weight", opts.seedWeights); err != nil {
			return seed, improvement, err
		}
	}
	if len(opts.improvementWeights) > 0 {
		if improvementMap, err = parseWeightFlags("--improve-weight", opts.improvementWeights); err != nil {
			return seed, improvement, err
		}
	}
	if opts.seedsOnly {
		improvementMap = nil
	}

	if seed, err = scoring.ParseWeights(seedMap); err != nil {
		return seed, improvement, fmt.Errorf("seed weights: %w", err)
	}
	if improvement, err = scoring.ParseWeights(improvementMap); err != nil {
		return seed, improvement, fmt.Errorf("improvement weights: %w", err)
	}
	return seed, improvement, nil
}

func parseWeightFlags(flag string, values []string) (map[string]float64, error) {
	out := make(map[string]float64, len(values))
	for _, raw := range values {
		name, value, ok := strings.Cut(raw, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		if !ok || name == "" {
			return nil, fmt.Errorf("%s %q: expected name=value", flag, raw)
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", flag, raw, err)
		}
		if weight < 0 {
			return nil, fmt.Errorf("%s %q: weight must be non-negative", flag, raw)
		}
		out[name] = weight
	}
	return out, nil
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
