package reconciliation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// commissionDetailPattern is the fixed field sequence of one detail
	// line: payment date, 5-digit client code, liquidation-type label, two
	// short alphabetic tokens (document type and series), document number,
	// installment sequence, then exactly two locale-numbers terminating
	// the line (net liquidated value and commission).
	commissionDetailPattern = regexp.MustCompile(
		`^\s*(\d{2}/\d{2}/\d{4})\s+(\d{5})\s+(\S+)\s+([A-Za-z]{1,4})\s+([A-Za-z]{1,4})\s+(\d+)\s+(\d+)\s+(-?\d{1,3}(?: \d{3})*,\d{2})\s+(-?\d{1,3}(?: \d{3})*,\d{2})\s*$`)

	commissionPeriodPattern = regexp.MustCompile(
		`(\d{2}/\d{2}/\d{4})\s*(?:a|à|-|até)\s*(\d{2}/\d{2}/\d{4})`)

	commissionNetTotalPattern = regexp.MustCompile(
		`(?i)total\s+l[ií]quido\D*?(-?\d{1,3}(?: \d{3})*,\d{2})`)

	commissionTotalPattern = regexp.MustCompile(
		`(?i)total\s+comiss[ãa]o\D*?(-?\d{1,3}(?: \d{3})*,\d{2})`)
)

// ParseCommissionStatement scans the linearized text of a commission
// settlement report. Header fields come from independent single-pass pattern
// matches over the whole text; detail lines must match the fixed field
// sequence exactly. Partial or wrapped lines are not recovered.
func ParseCommissionStatement(text string) *CommissionStatement {
	stmt := &CommissionStatement{Header: parseCommissionHeader(text)}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \r")
		m := commissionDetailPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		number, err := strconv.Atoi(m[6])
		if err != nil {
			continue
		}
		seq, err := strconv.Atoi(m[7])
		if err != nil {
			continue
		}

		stmt.Lines = append(stmt.Lines, CommissionLine{
			PaymentDate:    ParseLocaleDate(m[1]),
			ClientCode:     m[2],
			DocumentType:   m[3],
			Series:         strings.ToUpper(m[5]),
			DocumentNumber: number,
			InstallmentSeq: seq,
			NetValue:       ParseLocaleNumber(m[8]),
			Commission:     ParseLocaleNumber(m[9]),
		})
	}

	// Settlement reports from some branches omit the printed totals.
	// Synthesize them from the detail lines so downstream totals never
	// compare against zero.
	if (stmt.Header.DeclaredNet.IsZero() || stmt.Header.DeclaredCommission.IsZero()) && len(stmt.Lines) > 0 {
		netSum := decimal.Zero
		commissionSum := decimal.Zero
		for _, l := range stmt.Lines {
			netSum = netSum.Add(l.NetValue)
			commissionSum = commissionSum.Add(l.Commission)
		}
		if stmt.Header.DeclaredNet.IsZero() {
			stmt.Header.DeclaredNet = netSum
		}
		if stmt.Header.DeclaredCommission.IsZero() {
			stmt.Header.DeclaredCommission = commissionSum
		}
	}

	return stmt
}

func parseCommissionHeader(text string) StatementHeader {
	var h StatementHeader

	if m := commissionPeriodPattern.FindStringSubmatch(text); m != nil {
		h.PeriodStart = ParseLocaleDate(m[1])
		h.PeriodEnd = ParseLocaleDate(m[2])
	}
	h.Filer = parseFiler(text)

	if m := commissionNetTotalPattern.FindStringSubmatch(text); m != nil {
		h.DeclaredNet = ParseLocaleNumber(m[1])
	}
	if m := commissionTotalPattern.FindStringSubmatch(text); m != nil {
		h.DeclaredCommission = ParseLocaleNumber(m[1])
	}

	return h
}
