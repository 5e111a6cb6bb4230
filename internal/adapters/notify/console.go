package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alejandrodnm/anvilcast/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Reporter.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un reporter que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un reporter para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// ReportPortfolio imprime el resumen de ROI y, en modo tabla, el detalle anual.
func (c *Console) ReportPortfolio(_ context.Context, runID string, rep domain.PortfolioReport) error {
	s := rep.Summary
	horizon := "horizon"
	if n := len(rep.Years); n > 0 {
		horizon = fmt.Sprint(rep.Years[n-1].Year)
	}

	fmt.Fprintf(c.out, "\n=== PORTFOLIO [%s] ===\n", shortID(runID))
	fmt.Fprintf(c.out, "  ROI = %.2fx\n", s.ROIMultiple)
	fmt.Fprintf(c.out, "  Total funding = %.1f M\n", s.TotalConvertibleSpend/1e6)
	fmt.Fprintf(c.out, "  Value of MetaAnvil's portfolio in %s = %.0f M\n", horizon, s.PortfolioValueM)
	fmt.Fprintf(c.out, "  VC ownership of MA = %.0f %%\n", s.VCOwnershipOfMA*100)
	fmt.Fprintf(c.out, "  %.2f%% shares from MetaAnvil's part in the convertible\n", s.ConvertibleSharePct)

	if !c.table {
		return nil
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Year", "Spinoffs", "Cumulative", "Value M", "Cum. value M", "Convertible $")
	for i, y := range rep.Years {
		cum := 0.0
		if i < len(rep.CumulativeValueM) {
			cum = rep.CumulativeValueM[i]
		}
		table.Append(
			fmt.Sprintf("%d", y.Year),
			fmt.Sprintf("%d", y.Spinoffs),
			fmt.Sprintf("%d", y.CumulativeSpinoff),
			fmt.Sprintf("%.2f", y.HoldingValueM),
			fmt.Sprintf("%.2f", cum),
			fmt.Sprintf("%.0f", y.ConvertibleSpend),
		)
	}
	table.Render()
	fmt.Fprintln(c.out, "  Value M = valor incremental del año | Cum. value M = portfolio acumulado")
	return nil
}

// ReportStaffing imprime el resumen de staffing y, en modo tabla, los trimestres.
func (c *Console) ReportStaffing(_ context.Context, runID string, rep domain.StaffingReport) error {
	s := rep.Summary
	fmt.Fprintf(c.out, "\n=== STAFFING [%s] ===\n", shortID(runID))
	fmt.Fprintf(c.out, "  Cohorts: %d (every %d months from %d)\n", s.Cohorts, domain.CohortIntervalMonths, rep.StartYear)
	fmt.Fprintf(c.out, "  Peak EIRs: %.0f | Peak VBs: %.0f | Peak admin: %.0f\n",
		s.PeakEIRs, s.PeakVentureBuilder, s.PeakAdmin)
	fmt.Fprintf(c.out, "  Spinoffs: %.1f\n", s.TotalSpinoffs)
	fmt.Fprintf(c.out, "  Peak monthly burn: $%.0f | Total cost: $%.1f M\n", s.PeakMonthlyCost, s.TotalCost/1e6)

	if !c.table {
		return nil
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Quarter", "EIRs", "VBs", "Admin", "Spinoffs", "Burn/month")
	for _, q := range rep.Quarters {
		table.Append(
			q.Label(),
			fmt.Sprintf("%.0f", q.EIRs),
			fmt.Sprintf("%.0f", q.VentureBuilders),
			fmt.Sprintf("%.0f", q.Admin),
			fmt.Sprintf("%.0f", q.Spinoffs),
			fmt.Sprintf("$%.0f", q.Cost),
		)
	}
	table.Render()
	fmt.Fprintln(c.out, "  Valores trimestrales = promedio mensual del trimestre")
	return nil
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
