package domain

import "fmt"

// Ciclo de vida fijo de una cohorte, en meses desde su inicio.
const (
	EngagementMonths = 2  // fase EIR: aporta eirCount
	IncubationMonths = 12 // incubación: aporta eirCount × IncubationFraction

	// CohortLifecycleMonths es el offset máximo que escribe una cohorte, más uno.
	// El spinoff cae en start+EngagementMonths+IncubationMonths.
	CohortLifecycleMonths = EngagementMonths + IncubationMonths + 1

	// CohortTailMonths extiende el horizonte para absorber la última cohorte.
	CohortTailMonths = 16

	// CohortIntervalMonths es la separación entre cohortes.
	CohortIntervalMonths = 6

	IncubationFraction = 0.7
	SpinoffFraction    = 0.5
)

// la cola debe cubrir el ciclo de vida completo; no compila si no.
var _ [CohortTailMonths - CohortLifecycleMonths]struct{}

// Cohort es una camada de EIRs. Sus series no cambian una vez creada.
type Cohort struct {
	StartMonth int
	EIRCount   float64
	EIRs       []float64 // EIRs aportados por mes
	Spinoffs   []float64 // spinoffs aportados por mes
}

// ExtendedMonths es el largo de todas las series: horizonte más la cola del ciclo de vida.
func ExtendedMonths(horizonMonths int) int {
	return horizonMonths + CohortTailMonths
}

// NewCohort proyecta una cohorte sobre horizonMonths+CohortTailMonths meses.
//
//	[start, start+2)    → eirCount
//	[start+2, start+14) → eirCount × 0.7
//	start+14            → eirCount × 0.7 × 0.5 spinoffs
//
// Lo que cae fuera del arreglo se descarta.
func NewCohort(eirCount float64, startMonth, horizonMonths int) (Cohort, error) {
	if startMonth < 0 {
		return Cohort{}, invalid("cohort.start_month", startMonth, "must not be negative")
	}
	if horizonMonths < 0 {
		return Cohort{}, invalid("horizon_months", horizonMonths, "must not be negative")
	}

	n := ExtendedMonths(horizonMonths)
	c := Cohort{
		StartMonth: startMonth,
		EIRCount:   eirCount,
		EIRs:       make([]float64, n),
		Spinoffs:   make([]float64, n),
	}

	fill(c.EIRs, startMonth, startMonth+EngagementMonths, eirCount)
	incubated := eirCount * IncubationFraction
	fill(c.EIRs, startMonth+EngagementMonths, startMonth+EngagementMonths+IncubationMonths, incubated)

	if spin := startMonth + EngagementMonths + IncubationMonths; spin < n {
		c.Spinoffs[spin] = incubated * SpinoffFraction
	}
	return c, nil
}

func fill(dst []float64, from, to int, v float64) {
	to = min(to, len(dst))
	for i := from; i < to; i++ {
		dst[i] = v
	}
}

// CohortStartMonths devuelve los meses de inicio: uno cada 6 meses, floor(horizon/6) cohortes.
func CohortStartMonths(horizonMonths int) []int {
	n := horizonMonths / CohortIntervalMonths
	starts := make([]int, n)
	for i := range starts {
		starts[i] = i * CohortIntervalMonths
	}
	return starts
}

// SimulateCohorts crea todas las cohortes del horizonte de la curva.
// El tamaño de cada una es curve.Evaluate(mes de inicio).
func SimulateCohorts(curve *HiringCurve) ([]Cohort, error) {
	horizon := curve.HorizonMonths()
	starts := CohortStartMonths(horizon)
	cohorts := make([]Cohort, 0, len(starts))
	for _, m := range starts {
		c, err := NewCohort(curve.Evaluate(m), m, horizon)
		if err != nil {
			return nil, fmt.Errorf("domain.SimulateCohorts: month %d: %w", m, err)
		}
		cohorts = append(cohorts, c)
	}
	return cohorts, nil
}
