package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// StaffingSummary resume las series mensuales.
type StaffingSummary struct {
	Cohorts            int
	PeakEIRs           float64
	PeakVentureBuilder float64
	PeakAdmin          float64
	TotalSpinoffs      float64
	PeakMonthlyCost    float64
	TotalCost          float64
}

// StaffingReport es la salida completa del motor de cohortes.
type StaffingReport struct {
	StartYear int
	Params    StaffingParams
	Cohorts   []Cohort
	Series    StaffingSeries
	Quarters  []QuarterRow
	Summary   StaffingSummary
}

// BuildStaffingReport corre curva → cohortes → agregado → trimestres.
func BuildStaffingReport(curve *HiringCurve, p StaffingParams) (StaffingReport, error) {
	if err := p.Validate(); err != nil {
		return StaffingReport{}, fmt.Errorf("domain.BuildStaffingReport: %w", err)
	}

	cohorts, err := SimulateCohorts(curve)
	if err != nil {
		return StaffingReport{}, fmt.Errorf("domain.BuildStaffingReport: %w", err)
	}

	series := AggregateStaffing(cohorts, ExtendedMonths(curve.HorizonMonths()), p)
	return StaffingReport{
		StartYear: curve.StartYear(),
		Params:    p,
		Cohorts:   cohorts,
		Series:    series,
		Quarters:  QuarterlyTable(series, curve.StartYear()),
		Summary: StaffingSummary{
			Cohorts:            len(cohorts),
			PeakEIRs:           peak(series.EIRs),
			PeakVentureBuilder: peak(series.VentureBuilders),
			PeakAdmin:          peak(series.Admin),
			TotalSpinoffs:      floats.Sum(series.Spinoffs),
			PeakMonthlyCost:    peak(series.Cost),
			TotalCost:          floats.Sum(series.Cost),
		},
	}, nil
}

func peak(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Max(s)
}

// SpinoffScheduleFromStaffing agrupa la serie mensual de spinoffs por año calendario
// (mes 0 = enero de startYear) y redondea a spinoffs enteros.
func SpinoffScheduleFromStaffing(spinoffs []float64, startYear int) (SpinoffSchedule, error) {
	years := (len(spinoffs) + 11) / 12
	counts := make([]int, years)
	for y := range counts {
		end := min((y+1)*12, len(spinoffs))
		counts[y] = int(math.Round(floats.Sum(spinoffs[y*12 : end])))
	}
	return ScheduleFromCounts(startYear, counts)
}
