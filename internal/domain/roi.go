package domain

import "gonum.org/v1/gonum/floats"

// PortfolioSummary es lo que se muestra al usuario.
type PortfolioSummary struct {
	TotalConvertibleSpend float64
	PortfolioValueM       float64
	VCOwnershipOfMA       float64
	ROIMultiple           float64
	ConvertibleSharePct   float64
}

// PortfolioReport junta el resumen con la serie anual para graficar.
type PortfolioReport struct {
	Terms            DealTerms
	Summary          PortfolioSummary
	Years            []YearlyPortfolioResult
	CumulativeValueM []float64 // suma acumulada de HoldingValueM, en millones
}

// BuildPortfolioReport corre SimulatePortfolio y empaqueta sus salidas.
// Si el ROI no está definido devuelve el error sin reporte.
func BuildPortfolioReport(terms DealTerms, schedule SpinoffSchedule) (PortfolioReport, error) {
	res, err := SimulatePortfolio(terms, schedule)
	if err != nil {
		return PortfolioReport{}, err
	}

	return PortfolioReport{
		Terms: terms,
		Summary: PortfolioSummary{
			TotalConvertibleSpend: res.TotalConvertibleSpend,
			PortfolioValueM:       res.PortfolioValueM,
			VCOwnershipOfMA:       res.VCOwnershipOfMA,
			ROIMultiple:           res.ROIMultiple,
			ConvertibleSharePct:   terms.ConvertibleSharePct(),
		},
		Years:            res.Years,
		CumulativeValueM: CumulativeValues(res.Years),
	}, nil
}

// CumulativeValues devuelve la suma acumulada de los valores anuales.
func CumulativeValues(years []YearlyPortfolioResult) []float64 {
	values := make([]float64, len(years))
	for i, y := range years {
		values[i] = y.HoldingValueM
	}
	if len(values) == 0 {
		return values
	}
	return floats.CumSum(make([]float64, len(values)), values)
}
