package domain

// DealTerms agrupa los términos de cada spinoff. Porcentajes en escala 0–100,
// fracciones en 0–1, importes en moneda (no millones).
type DealTerms struct {
	MASharePct            float64 // share de MetaAnvil al spinoff, excluyendo el convertible
	StaffIncentivePct     float64 // % del share de MA que se destina a incentivar staff
	ConvertibleInvestment float64 // nota convertible por spinoff
	FracConvertibleFromMA float64 // fracción de cada nota que pone MetaAnvil
	PreMoneyValuation     float64 // pre-money promedio del spinoff
	ConvertibleCap        float64 // cap de conversión
	MAPreMoney            float64 // valuación pre-money de MetaAnvil
}

// DefaultDealTerms devuelve el escenario de referencia (Astrobeam).
func DefaultDealTerms() DealTerms {
	return DealTerms{
		MASharePct:            24,
		StaffIncentivePct:     30,
		ConvertibleInvestment: 0.8e6,
		FracConvertibleFromMA: 0.3,
		PreMoneyValuation:     10e6,
		ConvertibleCap:        5e6,
		MAPreMoney:            10e6,
	}
}

// Validate rechaza términos con los que la simulación no tiene sentido.
func (d DealTerms) Validate() error {
	switch {
	case d.PreMoneyValuation <= 0:
		return invalid("pre_money_valuation", d.PreMoneyValuation, "must be positive")
	case d.ConvertibleCap <= 0:
		return invalid("convertible_cap", d.ConvertibleCap, "must be positive")
	case d.MAPreMoney < 0:
		return invalid("ma_pre_money", d.MAPreMoney, "must not be negative")
	case d.ConvertibleInvestment < 0:
		return invalid("convertible_investment", d.ConvertibleInvestment, "must not be negative")
	case d.MASharePct < 0 || d.MASharePct > 100:
		return invalid("ma_share_pct", d.MASharePct, "must be within [0,100]")
	case d.StaffIncentivePct < 0 || d.StaffIncentivePct > 100:
		return invalid("staff_incentive_pct", d.StaffIncentivePct, "must be within [0,100]")
	case d.FracConvertibleFromMA < 0 || d.FracConvertibleFromMA > 1:
		return invalid("frac_convertible_from_ma", d.FracConvertibleFromMA, "must be within [0,1]")
	}
	return nil
}

// ConvertibleSharesFrac es la fracción del spinoff que compra la nota al convertir.
// El inversor convierte a la valuación más baja entre cap y pre-money:
//
//	frac = investment / min(cap, preMoney)
func ConvertibleSharesFrac(investment, capValuation, preMoney float64) float64 {
	return investment / min(capValuation, preMoney)
}

// ConvertibleSharesFrac aplica la fórmula anterior a los términos del deal.
func (d DealTerms) ConvertibleSharesFrac() float64 {
	return ConvertibleSharesFrac(d.ConvertibleInvestment, d.ConvertibleCap, d.PreMoneyValuation)
}

// ConvertibleSharePct es el % del spinoff que proviene de la parte de MA en el convertible.
func (d DealTerms) ConvertibleSharePct() float64 {
	return d.ConvertibleSharesFrac() * d.FracConvertibleFromMA * 100
}
