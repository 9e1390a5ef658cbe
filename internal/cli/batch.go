package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ecometer/ecometer/internal/engine"
	"github.com/ecometer/ecometer/internal/render"
	"github.com/ecometer/ecometer/internal/tui"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		input       string
		concurrency int
		asJSON      bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Score many products from a file",
		Long: "Batch scores a catalog export: newline-delimited JSON (one request per line) " +
			"or a single JSON array of requests. Items fail individually; one bad postcode " +
			"does not abort the rest.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reqs, err := readRequests(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}
			if len(reqs) == 0 {
				return fmt.Errorf("no requests in input")
			}

			if concurrency == 0 {
				concurrency = a.cfg.Batch.Concurrency
			}
			items, err := a.engine.ScoreBatch(cmd.Context(), reqs, concurrency)
			if err != nil {
				return err
			}

			bander := a.engine.Estimator().Bander()

			if interactive && isTerminal(os.Stdout) {
				return tui.Run(items, bander)
			}

			if asJSON {
				return writeItemsJSON(cmd.OutOrStdout(), items)
			}

			for _, it := range items {
				if it.Err != nil {
					cmd.PrintErrf("item %d: %v\n", it.Index, it.Err)
					continue
				}
				est := it.Estimate
				rank, _ := bander.Rank(est.Consensus.Grade)
				cmd.Printf("%s  %-40s %s  %s\n",
					render.GradeBadge(est.Consensus.Grade, rank),
					truncate(est.Title, 40),
					render.FormatCO2(est.Consensus.RuleCO2Kg),
					render.FormatPercent(est.Consensus.Confidence))
			}
			cmd.Println(render.BatchSummary(items, bander))
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", `requests file ("-" or empty reads stdin)`)
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "max in-flight scores (0 = number of CPUs)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit results as a JSON array")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "browse results in a TUI (requires a terminal)")

	return cmd
}

// readRequests parses NDJSON or a JSON array of requests.
func readRequests(stdin io.Reader, path string) ([]engine.Request, error) {
	var raw []byte
	var err error
	if path == "" || path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var reqs []engine.Request
		if err := json.Unmarshal(trimmed, &reqs); err != nil {
			return nil, fmt.Errorf("parse input array: %w", err)
		}
		return reqs, nil
	}

	var reqs []engine.Request
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var req engine.Request
		if err := json.Unmarshal([]byte(text), &req); err != nil {
			return nil, fmt.Errorf("parse input line %d: %w", line, err)
		}
		reqs = append(reqs, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return reqs, nil
}

// writeItemsJSON emits results with errors flattened to strings so the
// output is plain JSON.
func writeItemsJSON(w io.Writer, items []engine.BatchItem) error {
	type jsonItem struct {
		Index    int              `json:"index"`
		Estimate *engine.Estimate `json:"estimate,omitempty"`
		Error    string           `json:"error,omitempty"`
	}
	out := make([]jsonItem, 0, len(items))
	for _, it := range items {
		ji := jsonItem{Index: it.Index, Estimate: it.Estimate}
		if it.Err != nil {
			ji.Error = it.Err.Error()
		}
		out = append(out, ji)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
