package domain

import "fmt"

// YearlyPortfolioResult es el resultado de un año de la simulación de portfolio.
type YearlyPortfolioResult struct {
	Year              int
	Spinoffs          int     // spinoffs creados ese año
	CumulativeSpinoff int     // spinoffs acumulados hasta ese año inclusive
	HoldingValueM     float64 // valor incremental del año, en millones
	ConvertibleSpend  float64 // gasto de MA en convertibles ese año
}

// PortfolioResult es la salida cruda de SimulatePortfolio.
type PortfolioResult struct {
	Years                 []YearlyPortfolioResult
	ConvertibleSharesFrac float64
	TotalConvertibleSpend float64
	PortfolioValueM       float64 // suma de los valores anuales, en millones
	VCOwnershipOfMA       float64
	ROIMultiple           float64
}

// SimulatePortfolio recorre el schedule en orden y acumula valor y gasto.
//
//	valor(año)   = acumulados × HoldingsValue(...) × preMoney / 100 / 1e6
//	gasto       += spinoffs(año) × investment × fracFromMA
//	portfolio    = Σ valor(año)
//	vcOwnership  = gasto / (maPreMoney + gasto)
//	roi          = portfolio × vcOwnership / gasto × 1e6
//
// El portfolio suma los valores de todos los años aunque cada uno ya incluya los
// spinoffs previos. Con gasto cero devuelve los resultados por año junto con ErrUndefinedROI.
func SimulatePortfolio(terms DealTerms, schedule SpinoffSchedule) (PortfolioResult, error) {
	if err := terms.Validate(); err != nil {
		return PortfolioResult{}, fmt.Errorf("domain.SimulatePortfolio: %w", err)
	}

	frac := terms.ConvertibleSharesFrac()
	holdings := HoldingsValue(terms.MASharePct, terms.StaffIncentivePct, frac, terms.FracConvertibleFromMA)

	res := PortfolioResult{
		Years:                 make([]YearlyPortfolioResult, 0, schedule.Len()),
		ConvertibleSharesFrac: frac,
	}

	cumulative := 0
	for _, e := range schedule.entries {
		cumulative += e.Count
		value := float64(cumulative) * holdings * terms.PreMoneyValuation / 100
		spend := float64(e.Count) * terms.ConvertibleInvestment * terms.FracConvertibleFromMA

		res.Years = append(res.Years, YearlyPortfolioResult{
			Year:              e.Year,
			Spinoffs:          e.Count,
			CumulativeSpinoff: cumulative,
			HoldingValueM:     value / 1e6,
			ConvertibleSpend:  spend,
		})
		res.PortfolioValueM += value / 1e6
		res.TotalConvertibleSpend += spend
	}

	if res.TotalConvertibleSpend == 0 {
		return res, fmt.Errorf("domain.SimulatePortfolio: %w", ErrUndefinedROI)
	}

	res.VCOwnershipOfMA = res.TotalConvertibleSpend / (terms.MAPreMoney + res.TotalConvertibleSpend)
	res.ROIMultiple = res.PortfolioValueM * res.VCOwnershipOfMA / res.TotalConvertibleSpend * 1e6
	return res, nil
}
