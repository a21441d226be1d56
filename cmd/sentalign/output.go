package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/carolinebinley/ml-learning-alignment/internal/align"
	"github.com/carolinebinley/ml-learning-alignment/internal/span"
)

type outputFormat string

const (
	formatAuto  outputFormat = "auto"
	formatTable outputFormat = "table"
	formatPlain outputFormat = "plain"
	formatJSON  outputFormat = "json"
)

func parseOutputFormat(value string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(value))); f {
	case "", formatAuto:
		return formatAuto, nil
	case formatTable, formatPlain, formatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use auto, table, plain, or json)", value)
	}
}

// resolve picks table output for terminals and plain output for pipes.
func (f outputFormat) resolve(w io.Writer) outputFormat {
	if f != formatAuto {
		return f
	}
	if file, ok := w.(*os.File); ok {
		fd := file.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			return formatTable
		}
	}
	return formatPlain
}

type groupOrder string

const (
	orderScore    groupOrder = "score"
	orderPosition groupOrder = "position"
)

func parseGroupOrder(value string) (groupOrder, error) {
	switch o := groupOrder(strings.ToLower(strings.TrimSpace(value))); o {
	case "", orderScore:
		return orderScore, nil
	case orderPosition:
		return orderPosition, nil
	default:
		return "", fmt.Errorf("unsupported order %q (use score or position)", value)
	}
}

type alignmentReport struct {
	RunID       string              `json:"run_id,omitempty"`
	Cached      bool                `json:"cached"`
	SourceUnits int                 `json:"source_units"`
	TargetUnits int                 `json:"target_units"`
	Groups      []align.ScoredGroup `json:"groups"`
}

func renderGroups(cmd *cobra.Command, format outputFormat, report alignmentReport) error {
	out := cmd.OutOrStdout()
	if report.Groups == nil {
		report.Groups = []align.ScoredGroup{}
	}
	switch format.resolve(out) {
	case formatJSON:
		return writeJSON(cmd, report)
	case formatTable:
		if len(report.Groups) == 0 {
			fmt.Fprintln(out, "No alignments")
			return nil
		}
		rows := make([][]string, 0, len(report.Groups))
		for i, g := range report.Groups {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				formatSpanPair(g.SourceSpan, g.TargetSpan),
				formatScore(g),
				strings.Join(g.Source, "\n"),
				strings.Join(g.Target, "\n"),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"#", "Spans", "Score", "Source", "Target"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft},
		))
		return nil
	default:
		for i, g := range report.Groups {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%d. %s score=%s\n", i+1, formatSpanPair(g.SourceSpan, g.TargetSpan), formatScore(g))
			for _, unit := range g.Source {
				fmt.Fprintf(out, "  < %s\n", unit)
			}
			for _, unit := range g.Target {
				fmt.Fprintf(out, "  > %s\n", unit)
			}
		}
		return nil
	}
}

func formatSpanPair(source, target span.Span) string {
	return source.String() + "->" + target.String()
}

func formatScore(g align.ScoredGroup) string {
	if !g.Scored {
		return "-"
	}
	return strconv.FormatFloat(g.Score, 'f', 3, 64)
}
