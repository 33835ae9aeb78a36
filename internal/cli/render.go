package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/francois95140/unisql"
	"github.com/francois95140/unisql/engine/executor"
)

func renderResult(w io.Writer, result *executor.Result, format string) error {
	if format == "json" {
		return renderJSON(w, result)
	}
	if result.Records == nil {
		_, _ = fmt.Fprintln(w, result.Message)
		return nil
	}
	renderTable(w, result.Records)
	return nil
}

type batchLine struct {
	Line    int              `json:"line"`
	Backend string           `json:"backend"`
	Command string           `json:"command"`
	Result  *executor.Result `json:"result,omitempty"`
	Error   string           `json:"error,omitempty"`
}

func renderBatch(w io.Writer, results []unisql.BatchResult, format string) error {
	if format == "json" {
		lines := make([]batchLine, len(results))
		for i, r := range results {
			lines[i] = batchLine{Line: r.Line, Backend: r.Backend, Command: r.Command, Result: r.Result}
			if r.Err != nil {
				lines[i].Error = r.Err.Error()
			}
		}
		return renderJSON(w, lines)
	}

	for _, r := range results {
		_, _ = fmt.Fprintf(w, "[line %d] %s %s\n", r.Line, r.Backend, r.Command)
		if r.Err != nil {
			_, _ = fmt.Fprintf(w, "error: %v\n", r.Err)
			continue
		}
		if err := renderResult(w, r.Result, format); err != nil {
			return err
		}
	}
	return nil
}

// renderTable prints records with columns in sorted order
func renderTable(w io.Writer, records []map[string]any) {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	seen := map[string]bool{}
	for _, r := range records {
		for k := range r {
			seen[k] = true
		}
	}
	cols := slices.Sorted(maps.Keys(seen))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(cols))
	for i, col := range cols {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, r := range records {
		row := make(table.Row, len(cols))
		for i, col := range cols {
			row[i] = formatValue(r[col])
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%s)\n", executor.Count(int64(len(records)), "row"))
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
