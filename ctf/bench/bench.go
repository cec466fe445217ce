// Package bench measures a ctf.Pipeline's drain: how long it takes to
// exhaust, how many fully-refined runs it yields, and how many of those
// are structurally distinct once duplicate runs from different coarsest
// candidates are deduped away. It writes a
// human-readable table and nothing else to disk.
package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/nihei9/ctfparse/automaton"
	"github.com/nihei9/ctfparse/ctf"
)

// Row is one measured pipeline drain.
type Row struct {
	Label    string
	Elapsed  time.Duration
	Total    int
	Distinct int
}

// Drain runs pipeline to exhaustion and times it, recording how many
// runs it yielded and how many were structurally unique. A Pipeline is
// single-use (Next drains its internal queue), so callers comparing
// several configurations build one Pipeline per Drain call.
func Drain(label string, pipeline *ctf.Pipeline) Row {
	start := time.Now()
	seen := map[string]bool{}
	total := 0
	for {
		run, ok := pipeline.Next()
		if !ok {
			break
		}
		total++
		seen[automaton.StructKey(run)] = true
	}
	return Row{Label: label, Elapsed: time.Since(start), Total: total, Distinct: len(seen)}
}

// WriteTable renders rows as an aligned, human-readable table.
func WriteTable(w io.Writer, rows []Row) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "label\truns\tdistinct\telapsed")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", r.Label, r.Total, r.Distinct, r.Elapsed)
	}
	tw.Flush()
}
