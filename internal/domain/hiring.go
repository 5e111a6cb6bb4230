package domain

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// HiringPointCount es la cantidad fija de puntos de control de la curva.
const HiringPointCount = 3

// HiringCurve interpola la cantidad de EIRs por cohorte a lo largo del horizonte.
//
// Spline cúbico natural (segunda derivada cero en ambos extremos) por tres nodos en
// start, start+(H-1)/2 y start+H-1. Fuera de ese rango el valor queda fijo en el nodo
// más cercano: no hay extrapolación.
type HiringCurve struct {
	startYear    int
	horizonYears int
	knots        [HiringPointCount]float64
	counts       [HiringPointCount]float64
	spline       interp.NaturalCubic
}

// NewHiringCurve arma la curva. counts son los EIRs en inicio, mitad y fin del horizonte.
func NewHiringCurve(counts []float64, startYear, horizonYears int) (*HiringCurve, error) {
	if len(counts) != HiringPointCount {
		return nil, invalid("hiring_points", len(counts), fmt.Sprintf("need exactly %d control points", HiringPointCount))
	}
	if horizonYears < 2 {
		return nil, invalid("horizon_years", horizonYears, "need at least 2 years for distinct knots")
	}
	for _, c := range counts {
		if c < 0 {
			return nil, invalid("hiring_points", c, "must not be negative")
		}
	}

	start := float64(startYear)
	span := float64(horizonYears - 1)
	c := &HiringCurve{
		startYear:    startYear,
		horizonYears: horizonYears,
		knots:        [HiringPointCount]float64{start, start + span/2, start + span},
	}
	copy(c.counts[:], counts)

	if err := c.spline.Fit(c.knots[:], c.counts[:]); err != nil {
		return nil, fmt.Errorf("domain.NewHiringCurve: fit spline: %w", err)
	}
	return c, nil
}

// MonthToYear convierte un mes del horizonte a año fraccional: start + (month-1)/12.
func (c *HiringCurve) MonthToYear(month int) float64 {
	return float64(c.startYear) + float64(month-1)/12
}

// At devuelve los EIRs (fraccionales) en el año dado.
func (c *HiringCurve) At(year float64) float64 {
	year = max(c.knots[0], min(year, c.knots[HiringPointCount-1]))
	return c.spline.Predict(year)
}

// Evaluate devuelve los EIRs en el mes dado. No redondea.
func (c *HiringCurve) Evaluate(month int) float64 {
	return c.At(c.MonthToYear(month))
}

// Knots devuelve los nodos (año, EIRs) de la curva.
func (c *HiringCurve) Knots() (years, counts []float64) {
	return append([]float64(nil), c.knots[:]...), append([]float64(nil), c.counts[:]...)
}

func (c *HiringCurve) StartYear() int { return c.startYear }
func (c *HiringCurve) HorizonMonths() int { return c.horizonYears * 12 }
