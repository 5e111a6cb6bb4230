package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/anvilcast/internal/domain"
	"github.com/alejandrodnm/anvilcast/internal/ports"
	"github.com/google/uuid"
)

// Mode selecciona qué motores corren.
type Mode string

const (
	ModeROI      Mode = "roi"
	ModeStaffing Mode = "staffing"
	ModeAll      Mode = "all"
)

// ParseMode valida el modo recibido por flag.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeROI, ModeStaffing, ModeAll:
		return m, nil
	}
	return "", &domain.ParamError{Field: "mode", Value: s, Reason: "must be roi, staffing or all"}
}

// Params son todos los inputs de una corrida, ya construidos por el caller.
type Params struct {
	Terms    domain.DealTerms
	Schedule domain.SpinoffSchedule
	Curve    *domain.HiringCurve
	Staffing domain.StaffingParams
}

// Config contiene la configuración del forecaster.
type Config struct {
	Mode Mode
	// Linked reemplaza el schedule de spinoffs por el que produce el modelo de cohortes.
	Linked bool
}

// DefaultConfig corre ambos motores de forma independiente.
func DefaultConfig() Config {
	return Config{Mode: ModeAll}
}

// Result es la salida de una corrida.
type Result struct {
	RunID     string
	Portfolio *domain.PortfolioReport
	Staffing  *domain.StaffingReport
}

// Forecaster orquesta los dos motores y entrega los reportes.
type Forecaster struct {
	cfg      Config
	reporter ports.Reporter
}

// New crea un Forecaster con el reporter inyectado.
func New(cfg Config, reporter ports.Reporter) *Forecaster {
	return &Forecaster{cfg: cfg, reporter: reporter}
}

// Run recalcula todo desde cero con los params dados.
// Cada llamada es independiente: no hay estado entre corridas.
func (f *Forecaster) Run(ctx context.Context, p Params) (Result, error) {
	start := time.Now()
	res := Result{RunID: uuid.New().String()}
	log := slog.With("run_id", res.RunID)

	log.Info("forecast starting", "mode", f.cfg.Mode, "linked", f.cfg.Linked)

	runStaffing := f.cfg.Mode == ModeStaffing || f.cfg.Mode == ModeAll
	runROI := f.cfg.Mode == ModeROI || f.cfg.Mode == ModeAll

	if runStaffing || (runROI && f.cfg.Linked) {
		if p.Curve == nil {
			return res, fmt.Errorf("forecast.Run: %w", &domain.ParamError{Field: "curve", Value: nil, Reason: "hiring curve required"})
		}
		rep, err := domain.BuildStaffingReport(p.Curve, p.Staffing)
		if err != nil {
			return res, fmt.Errorf("forecast.Run: staffing: %w", err)
		}
		res.Staffing = &rep
		log.Info("staffing simulated",
			"cohorts", rep.Summary.Cohorts,
			"peak_eirs", rep.Summary.PeakEIRs,
			"spinoffs", rep.Summary.TotalSpinoffs,
			"peak_monthly_cost", rep.Summary.PeakMonthlyCost,
		)

		if runStaffing {
			if err := f.reporter.ReportStaffing(ctx, res.RunID, rep); err != nil {
				log.Warn("reporter error", "err", err)
			}
		}
	}

	if runROI {
		schedule := p.Schedule
		if f.cfg.Linked {
			s, err := domain.SpinoffScheduleFromStaffing(res.Staffing.Series.Spinoffs, res.Staffing.StartYear)
			if err != nil {
				return res, fmt.Errorf("forecast.Run: linked schedule: %w", err)
			}
			schedule = s
			log.Debug("using staffing spinoffs", "years", s.Len(), "total", s.Total())
		}

		rep, err := domain.BuildPortfolioReport(p.Terms, schedule)
		if err != nil {
			return res, fmt.Errorf("forecast.Run: portfolio: %w", err)
		}
		res.Portfolio = &rep
		for _, y := range rep.Years {
			log.Debug("portfolio year",
				"year", y.Year,
				"cumulative_spinoffs", y.CumulativeSpinoff,
				"value_m", y.HoldingValueM,
			)
		}
		log.Info("portfolio simulated",
			"roi", rep.Summary.ROIMultiple,
			"funding", rep.Summary.TotalConvertibleSpend,
			"value_m", rep.Summary.PortfolioValueM,
			"vc_ownership", rep.Summary.VCOwnershipOfMA,
		)

		if err := f.reporter.ReportPortfolio(ctx, res.RunID, rep); err != nil {
			log.Warn("reporter error", "err", err)
		}
	}

	log.Info("forecast complete", "duration", time.Since(start).Round(time.Microsecond))
	return res, nil
}
