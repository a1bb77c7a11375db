package reconciliation

import (
	"regexp"
	"strings"
)

var (
	// clientBlockPattern opens a new client block: the distributor's
	// 5-digit client code followed by the client display name.
	clientBlockPattern = regexp.MustCompile(`^(\d{5})\s+(.+)$`)

	// brandLinePattern is a brand sub-line inside an open client block,
	// e.g. "AA SKOL LATA 350  1 234,56  -12,34  1 222,22".
	brandLinePattern = regexp.MustCompile(`^[A-Z]{2}\s+\S+`)

	// summaryTotalPattern is the document-level total line.
	summaryTotalPattern = regexp.MustCompile(`(?i)^\s*total`)
)

// salesAccumulator is the scanning state for one client block. The parser
// threads it through the line fold explicitly; flushing is the only way a
// block reaches the output.
type salesAccumulator struct {
	open bool
	line SalesLine
}

func (a *salesAccumulator) flushInto(lines []SalesLine) []SalesLine {
	if !a.open {
		return lines
	}
	// A block that nets to zero gross (fully reversed) is not a
	// reportable sale.
	if !a.line.Gross.IsZero() {
		lines = append(lines, a.line)
	}
	a.open = false
	return lines
}

// ParseSalesStatement scans the linearized text of a distributor gross-sales
// report and reconstructs one SalesLine per client block, plus the header.
// Lines that match neither a block start, a brand sub-line nor the summary
// total are section headers, page breaks or blanks and are skipped.
func ParseSalesStatement(text string) *SalesStatement {
	stmt := &SalesStatement{Header: parseSalesHeader(text)}

	var acc salesAccumulator
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \r")

		if m := clientBlockPattern.FindStringSubmatch(line); m != nil {
			stmt.Lines = acc.flushInto(stmt.Lines)
			acc = salesAccumulator{open: true, line: SalesLine{
				ClientCode: m[1],
				ClientName: strings.TrimSpace(m[2]),
			}}
			continue
		}

		if acc.open && brandLinePattern.MatchString(line) {
			values, ok := lastMoneyValues(line, 3)
			if !ok {
				// Wrapped or truncated sub-line; skip it.
				continue
			}
			acc.line.Gross = acc.line.Gross.Add(values[0])
			acc.line.Deduction = acc.line.Deduction.Add(values[1].Abs())
			acc.line.Net = acc.line.Net.Add(values[2])
		}
	}
	stmt.Lines = acc.flushInto(stmt.Lines)

	return stmt
}

// parseSalesHeader extracts the period, filer and declared totals. Each field
// is independent and fail-soft: a missing field stays at its zero value.
func parseSalesHeader(text string) StatementHeader {
	var h StatementHeader

	if dates := localeDates(text); len(dates) >= 2 {
		h.PeriodStart = &dates[0]
		h.PeriodEnd = &dates[1]
	}
	h.Filer = parseFiler(text)

	// The declared totals sit on a single summary line: a "total" label
	// followed by gross, deduction (printed negative) and net. The last
	// such line wins so per-brand subtotal lines earlier in the document
	// do not shadow the grand total.
	for _, line := range strings.Split(text, "\n") {
		if !summaryTotalPattern.MatchString(line) {
			continue
		}
		values, ok := lastMoneyValues(line, 3)
		if !ok {
			continue
		}
		h.DeclaredGross = values[0]
		h.DeclaredDeductions = values[1].Abs()
		h.DeclaredNet = values[2]
	}

	return h
}

var filerPattern = regexp.MustCompile(`(?im)^\s*(?:distribuidor|revenda|filial)\s*:?\s+(.+)$`)

// parseFiler extracts the filer identity, falling back to the first
// non-empty line of the document.
func parseFiler(text string) string {
	if m := filerPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}
