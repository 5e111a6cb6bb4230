package ports

import (
	"context"

	"github.com/alejandrodnm/anvilcast/internal/domain"
)

// Reporter presenta los resultados de una corrida al usuario.
type Reporter interface {
	// ReportPortfolio muestra el resumen de ROI y la serie acumulada por año.
	ReportPortfolio(ctx context.Context, runID string, rep domain.PortfolioReport) error

	// ReportStaffing muestra el resumen de staffing y la tabla trimestral.
	ReportStaffing(ctx context.Context, runID string, rep domain.StaffingReport) error
}
