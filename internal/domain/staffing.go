package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// StaffingParams son los factores de proporcionalidad y costos mensuales.
type StaffingParams struct {
	VBPerEIR        float64 // venture builders por EIR
	AdminPerEIR     float64 // admins por EIR
	EIRSalary       float64 // costo mensual por EIR
	VBSalary        float64 // costo mensual por venture builder
	AdminSalary     float64 // costo mensual por admin
	LabCostPerEIR   float64 // laboratorio, mensual por EIR
	OtherCostPerEIR float64 // otros gastos, mensual por EIR
}

// DefaultStaffingParams devuelve los factores del escenario de referencia.
func DefaultStaffingParams() StaffingParams {
	return StaffingParams{
		VBPerEIR:        0.5,
		AdminPerEIR:     0.2,
		EIRSalary:       6000,
		VBSalary:        9000,
		AdminSalary:     5000,
		LabCostPerEIR:   1500,
		OtherCostPerEIR: 1000,
	}
}

func (p StaffingParams) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"vb_per_eir", p.VBPerEIR},
		{"admin_per_eir", p.AdminPerEIR},
		{"eir_salary", p.EIRSalary},
		{"vb_salary", p.VBSalary},
		{"admin_salary", p.AdminSalary},
		{"lab_cost_per_eir", p.LabCostPerEIR},
		{"other_cost_per_eir", p.OtherCostPerEIR},
	}
	for _, f := range fields {
		if f.v < 0 || math.IsNaN(f.v) {
			return invalid(f.name, f.v, "must not be negative")
		}
	}
	return nil
}

// StaffingSeries son las series mensuales sobre el horizonte extendido.
type StaffingSeries struct {
	EIRs            []float64
	VentureBuilders []float64
	Admin           []float64
	Spinoffs        []float64
	Cost            []float64 // burn mensual
}

// Len devuelve la cantidad de meses.
func (s StaffingSeries) Len() int { return len(s.EIRs) }

// AggregateStaffing suma las cohortes elemento a elemento y deriva headcount y costos.
// VBs y admins nunca bajan: ver ApplyMonotonicFloor.
func AggregateStaffing(cohorts []Cohort, months int, p StaffingParams) StaffingSeries {
	s := StaffingSeries{
		EIRs:     make([]float64, months),
		Spinoffs: make([]float64, months),
	}
	for _, c := range cohorts {
		n := min(months, len(c.EIRs), len(c.Spinoffs))
		floats.Add(s.EIRs[:n], c.EIRs[:n])
		floats.Add(s.Spinoffs[:n], c.Spinoffs[:n])
	}

	s.VentureBuilders = floats.ScaleTo(make([]float64, months), p.VBPerEIR, s.EIRs)
	s.Admin = floats.ScaleTo(make([]float64, months), p.AdminPerEIR, s.EIRs)
	ApplyMonotonicFloor(s.VentureBuilders, s.Admin)

	s.Cost = make([]float64, months)
	perEIR := p.EIRSalary + p.LabCostPerEIR + p.OtherCostPerEIR
	for i := range s.Cost {
		s.Cost[i] = s.EIRs[i]*perEIR + s.VentureBuilders[i]*p.VBSalary + s.Admin[i]*p.AdminSalary
	}
	return s
}

// ApplyMonotonicFloor modifica vb y admin in place: si vb[i] < vb[i-1], ambos
// toman el valor del mes anterior. No hay despidos en este modelo.
func ApplyMonotonicFloor(vb, admin []float64) {
	for i := 1; i < len(vb) && i < len(admin); i++ {
		if vb[i] < vb[i-1] {
			vb[i] = vb[i-1]
			admin[i] = admin[i-1]
		}
	}
}

// QuarterlyMean promedia ventanas de 3 meses (suma/3). Los meses sobrantes
// al final que no completan un trimestre se ignoran.
func QuarterlyMean(monthly []float64) []float64 {
	out := make([]float64, len(monthly)/3)
	for q := range out {
		out[q] = floats.Sum(monthly[q*3:q*3+3]) / 3
	}
	return out
}

// QuarterRow es una fila del resumen trimestral, redondeada a unidades enteras.
type QuarterRow struct {
	Year            int
	Quarter         int // 1..4
	EIRs            float64
	VentureBuilders float64
	Admin           float64
	Spinoffs        float64
	Cost            float64
}

func (q QuarterRow) Label() string { return fmt.Sprintf("%d Q%d", q.Year, q.Quarter) }

// QuarterlyTable arma las filas trimestrales. El trimestre i cubre los meses 3i..3i+2.
func QuarterlyTable(s StaffingSeries, startYear int) []QuarterRow {
	eirs := QuarterlyMean(s.EIRs)
	vbs := QuarterlyMean(s.VentureBuilders)
	admin := QuarterlyMean(s.Admin)
	spin := QuarterlyMean(s.Spinoffs)
	cost := QuarterlyMean(s.Cost)

	rows := make([]QuarterRow, len(eirs))
	for i := range rows {
		rows[i] = QuarterRow{
			Year:            startYear + i/4,
			Quarter:         i%4 + 1,
			EIRs:            math.Round(eirs[i]),
			VentureBuilders: math.Round(vbs[i]),
			Admin:           math.Round(admin[i]),
			Spinoffs:        math.Round(spin[i]),
			Cost:            math.Round(cost[i]),
		}
	}
	return rows
}
