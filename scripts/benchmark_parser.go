// Command benchmark_parser turns `go test -bench` output into a markdown
// report pairing arena benchmarks against their Go-heap counterparts.
//
// Benchmarks follow the naming scheme Benchmark<Subject>_<Operation>/<variant>.
// Rows whose operation and variant match across the Arena and Heap subjects
// are reported side by side; everything else lands in a standalone table.
//
// Usage:
//
//	go test -bench=. -benchmem ./... | go run scripts/benchmark_parser.go
//	go test -bench=. -benchmem -json ./... | go run scripts/benchmark_parser.go -output bench.md
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

type benchRow struct {
	Name      string
	Subject   string // Arena, Heap, Buffer, ...
	Operation string
	Variant   string // sub-benchmark path, "" when absent

	NsPerOp  float64
	BytesOp  int64
	AllocsOp int64
}

// pairing joins the arena and heap runs of one operation/variant. Rows with
// no counterpart carry only Solo.
type pairing struct {
	Operation string
	Variant   string

	Arena *benchRow
	Heap  *benchRow
	Solo  *benchRow
}

func (p pairing) speedup() float64 {
	if p.Arena == nil || p.Heap == nil || p.Arena.NsPerOp == 0 {
		return 0
	}
	return p.Heap.NsPerOp / p.Arena.NsPerOp
}

var (
	inputFile  = flag.String("input", "", "Input file with benchmark output (stdin if not specified)")
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	in := io.Reader(os.Stdin)
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	rows := readRows(in)
	pairs := pairRows(rows)
	progress("parsed %d benchmark rows into %d report rows\n", len(rows), len(pairs))

	report := renderReport(pairs)
	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(report), 0644); err != nil {
			return err
		}
		progress("report written to %s\n", *outputFile)
		return nil
	}
	_, err := io.WriteString(os.Stdout, report)
	return err
}

func progress(format string, args ...any) {
	if !*quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func readRows(in io.Reader) []benchRow {
	var rows []benchRow

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()

		// `go test -json` wraps each output line in a test event.
		if strings.HasPrefix(line, "{") {
			var ev struct{ Output string }
			if err := json.Unmarshal([]byte(line), &ev); err == nil && ev.Output != "" {
				line = ev.Output
			}
		}

		if row, ok := parseLine(line); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// parseLine reads one benchmark result line:
//
//	BenchmarkArena_Allocate/64B-8   10000   12.4 ns/op   0 B/op   0 allocs/op
func parseLine(line string) (benchRow, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 || !strings.HasPrefix(fields[0], "Benchmark") {
		return benchRow{}, false
	}

	row := benchRow{Name: fields[0]}
	row.Subject, row.Operation, row.Variant = splitName(fields[0])
	if row.Operation == "" {
		return benchRow{}, false
	}

	// fields[1] is the iteration count; after it come value/unit pairs.
	sawNs := false
	for i := 2; i+1 < len(fields); i += 2 {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			break
		}
		switch fields[i+1] {
		case "ns/op":
			row.NsPerOp = v
			sawNs = true
		case "B/op":
			row.BytesOp = int64(v)
		case "allocs/op":
			row.AllocsOp = int64(v)
		}
	}
	return row, sawNs
}

// splitName breaks BenchmarkArena_Allocate/64B-8 into subject "Arena",
// operation "Allocate", and variant "64B".
func splitName(name string) (subject, operation, variant string) {
	parts := strings.Split(strings.TrimPrefix(name, "Benchmark"), "/")

	// The trailing -N is the GOMAXPROCS suffix, not part of the name.
	last := parts[len(parts)-1]
	if i := strings.LastIndex(last, "-"); i > 0 {
		parts[len(parts)-1] = last[:i]
	}

	if i := strings.Index(parts[0], "_"); i > 0 {
		subject, operation = parts[0][:i], parts[0][i+1:]
	} else {
		operation = parts[0]
	}
	return subject, operation, strings.Join(parts[1:], "/")
}

func pairRows(rows []benchRow) []pairing {
	type key struct{ op, variant string }

	index := make(map[key]*pairing)
	var order []key
	var solos []pairing

	for i := range rows {
		row := &rows[i]
		switch row.Subject {
		case "Arena", "Heap":
			k := key{row.Operation, row.Variant}
			p, ok := index[k]
			if !ok {
				p = &pairing{Operation: row.Operation, Variant: row.Variant}
				index[k] = p
				order = append(order, k)
			}
			if row.Subject == "Arena" {
				p.Arena = row
			} else {
				p.Heap = row
			}
		default:
			solos = append(solos, pairing{Operation: row.Operation, Variant: row.Variant, Solo: row})
		}
	}

	var pairs []pairing
	for _, k := range order {
		p := index[k]
		if p.Arena != nil && p.Heap != nil {
			pairs = append(pairs, *p)
			continue
		}
		// Arena or heap ran alone; demote to a solo row.
		solo := p.Arena
		if solo == nil {
			solo = p.Heap
		}
		pairs = append(pairs, pairing{Operation: p.Operation, Variant: p.Variant, Solo: solo})
	}
	pairs = append(pairs, solos...)

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].Operation != pairs[j].Operation {
			return pairs[i].Operation < pairs[j].Operation
		}
		return pairs[i].Variant < pairs[j].Variant
	})
	return pairs
}

func renderReport(pairs []pairing) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Arena Benchmark Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	var compared, arenaWins int
	var speedups []float64
	for _, p := range pairs {
		if p.Solo != nil {
			continue
		}
		compared++
		s := p.speedup()
		speedups = append(speedups, s)
		if s > 1.0 {
			arenaWins++
		}
	}

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "- Report rows: %d (%d arena/heap pairs)\n", len(pairs), compared)
	if compared > 0 {
		fmt.Fprintf(&b, "- Arena faster in %d of %d pairs\n", arenaWins, compared)
		fmt.Fprintf(&b, "- Median speedup: %.2fx\n", median(speedups))
	}
	fmt.Fprintf(&b, "\n")

	if compared > 0 {
		fmt.Fprintf(&b, "## Arena vs Heap\n\n")
		fmt.Fprintf(&b, "| Operation | Variant | Arena ns/op | Heap ns/op | Speedup | Arena B/op | Heap B/op | Arena allocs | Heap allocs |\n")
		fmt.Fprintf(&b, "|-----------|---------|-------------|------------|---------|------------|-----------|--------------|-------------|\n")
		for _, p := range pairs {
			if p.Solo != nil {
				continue
			}
			speed := fmt.Sprintf("%.2fx", p.speedup())
			if p.speedup() > 1.0 {
				speed = "**" + speed + "**"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %d | %d |\n",
				p.Operation, p.Variant,
				nsString(p.Arena.NsPerOp), nsString(p.Heap.NsPerOp), speed,
				byteString(p.Arena.BytesOp), byteString(p.Heap.BytesOp),
				p.Arena.AllocsOp, p.Heap.AllocsOp)
		}
		fmt.Fprintf(&b, "\n")
	}

	if compared < len(pairs) {
		fmt.Fprintf(&b, "## Standalone Benchmarks\n\n")
		fmt.Fprintf(&b, "| Benchmark | ns/op | B/op | allocs/op |\n")
		fmt.Fprintf(&b, "|-----------|-------|------|-----------|\n")
		for _, p := range pairs {
			if p.Solo == nil {
				continue
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %d |\n",
				p.Solo.Name, nsString(p.Solo.NsPerOp), byteString(p.Solo.BytesOp), p.Solo.AllocsOp)
		}
		fmt.Fprintf(&b, "\n")
	}

	writeCategorySummary(&b, pairs)

	fmt.Fprintf(&b, "## Notes\n\n")
	fmt.Fprintf(&b, "- Speedup above 1.0x means the arena run was faster than the heap run.\n")
	fmt.Fprintf(&b, "- Standalone rows had no counterpart with the same operation and variant.\n")
	return b.String()
}

func writeCategorySummary(b *strings.Builder, pairs []pairing) {
	byCategory := make(map[string][]float64)
	for _, p := range pairs {
		if p.Solo != nil {
			continue
		}
		c := categoryOf(p.Operation)
		byCategory[c] = append(byCategory[c], p.speedup())
	}
	if len(byCategory) == 0 {
		return
	}

	names := make([]string, 0, len(byCategory))
	for c := range byCategory {
		names = append(names, c)
	}
	sort.Strings(names)

	fmt.Fprintf(b, "## Speedup by Category\n\n")
	for _, c := range names {
		fmt.Fprintf(b, "- **%s**: %.2fx median across %d pairs\n",
			c, median(byCategory[c]), len(byCategory[c]))
	}
	fmt.Fprintf(b, "\n")
}

func categoryOf(operation string) string {
	op := strings.ToLower(operation)
	switch {
	case strings.Contains(op, "grow") || strings.Contains(op, "resize"):
		return "Buffers"
	case strings.Contains(op, "granularity") || strings.Contains(op, "commit"):
		return "Commit"
	case strings.Contains(op, "reset"):
		return "Reset"
	case strings.Contains(op, "alloc"):
		return "Allocation"
	}
	return "Other"
}

func median(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	s := append([]float64(nil), v...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

func nsString(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	}
	return fmt.Sprintf("%.1f", v)
}

func byteString(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.2fMB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%dB", n)
}
