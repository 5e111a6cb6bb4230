package domain

// HoldingsValue calcula el % del spinoff que termina en manos de MetaAnvil.
//
// Fórmula:
//
//	value = maShare × (1 - staffIncentive/100) + fracFromMA × 100 × convertibleFrac
//
// El primer término es el equity directo neto de incentivos al staff; el segundo
// convierte la parte de la nota puesta por MA en puntos de equity. Sin validación.
func HoldingsValue(maSharePostConversion, staffIncentivePct, convertibleSharesFrac, fracConvertibleFromMA float64) float64 {
	return maSharePostConversion*(1-staffIncentivePct/100) + fracConvertibleFromMA*100*convertibleSharesFrac
}
