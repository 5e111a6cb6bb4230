package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- HoldingsValue ---

func TestHoldingsValue_Reference(t *testing.T) {
	// 24 × 0.7 + 0.3 × 100 × 0.16 = 16.8 + 4.8
	assert.InDelta(t, 21.6, HoldingsValue(24, 30, 0.16, 0.3), 1e-9)
}

func TestHoldingsValue_LinearInShare(t *testing.T) {
	base := HoldingsValue(10, 30, 0.16, 0.3)
	step := HoldingsValue(11, 30, 0.16, 0.3) - base
	assert.InDelta(t, 0.7, step, 1e-9)
	assert.InDelta(t, base+5*step, HoldingsValue(15, 30, 0.16, 0.3), 1e-9)
}

func TestHoldingsValue_LinearInConvertibleFrac(t *testing.T) {
	base := HoldingsValue(24, 30, 0.10, 0.3)
	step := HoldingsValue(24, 30, 0.11, 0.3) - base
	// ∂/∂frac = fracFromMA × 100 = 30
	assert.InDelta(t, 0.3, step, 1e-9)
	assert.InDelta(t, base+3*step, HoldingsValue(24, 30, 0.13, 0.3), 1e-9)
}

// --- ConvertibleSharesFrac ---

func TestConvertibleSharesFrac_CapBelowPreMoney(t *testing.T) {
	assert.InDelta(t, 0.16, ConvertibleSharesFrac(0.8e6, 5e6, 10e6), 1e-12)
}

func TestConvertibleSharesFrac_PreMoneyBelowCap(t *testing.T) {
	assert.InDelta(t, 0.1, ConvertibleSharesFrac(0.8e6, 9e6, 8e6), 1e-12)
}

func TestConvertibleSharesFrac_Tie(t *testing.T) {
	assert.InDelta(t, 0.08, ConvertibleSharesFrac(0.8e6, 10e6, 10e6), 1e-12)
}

func TestConvertibleSharePct_Reference(t *testing.T) {
	// 0.16 × 0.3 × 100
	assert.InDelta(t, 4.8, DefaultDealTerms().ConvertibleSharePct(), 1e-9)
}

// --- DealTerms.Validate ---

func TestDealTerms_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*DealTerms)
		field  string
	}{
		{"zero pre-money", func(d *DealTerms) { d.PreMoneyValuation = 0 }, "pre_money_valuation"},
		{"negative cap", func(d *DealTerms) { d.ConvertibleCap = -1 }, "convertible_cap"},
		{"share above 100", func(d *DealTerms) { d.MASharePct = 120 }, "ma_share_pct"},
		{"fraction above 1", func(d *DealTerms) { d.FracConvertibleFromMA = 1.5 }, "frac_convertible_from_ma"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := DefaultDealTerms()
			tc.modify(&d)
			err := d.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParameter)

			var pe *ParamError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.field, pe.Field)
		})
	}
	assert.NoError(t, DefaultDealTerms().Validate())
}

// --- SpinoffSchedule ---

func TestNewSpinoffSchedule_RejectsNonIncreasingYears(t *testing.T) {
	_, err := NewSpinoffSchedule([]YearCount{{2023, 1}, {2025, 2}, {2025, 3}})
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewSpinoffSchedule([]YearCount{{2024, 1}, {2023, 2}})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestNewSpinoffSchedule_RejectsNegativeCount(t *testing.T) {
	_, err := NewSpinoffSchedule([]YearCount{{2023, -1}})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestSpinoffSchedule_EntriesIsCopy(t *testing.T) {
	s := DefaultSpinoffSchedule()
	e := s.Entries()
	e[0].Count = 99
	assert.Equal(t, 2, s.Entries()[0].Count)
	assert.Equal(t, 56, s.Total())
	assert.Equal(t, 8, s.Len())
}

// --- SimulatePortfolio ---

func TestSimulatePortfolio_Reference(t *testing.T) {
	res, err := SimulatePortfolio(DefaultDealTerms(), DefaultSpinoffSchedule())
	require.NoError(t, err)

	assert.InDelta(t, 0.16, res.ConvertibleSharesFrac, 1e-12)
	assert.InDelta(t, 13_440_000, res.TotalConvertibleSpend, 1e-6)
	assert.InDelta(t, 0.5734, res.VCOwnershipOfMA, 1e-4)
	// Σ acumulados = 156, cada spinoff vale 2.16M
	assert.InDelta(t, 336.96, res.PortfolioValueM, 1e-9)
	assert.InDelta(t, 14.3754, res.ROIMultiple, 1e-4)

	require.Len(t, res.Years, 8)
	assert.Equal(t, 2023, res.Years[0].Year)
	assert.Equal(t, 2, res.Years[0].CumulativeSpinoff)
	assert.InDelta(t, 4.32, res.Years[0].HoldingValueM, 1e-9)
	assert.Equal(t, 56, res.Years[7].CumulativeSpinoff)
	assert.InDelta(t, 18*240_000.0, res.Years[7].ConvertibleSpend, 1e-6)
}

func TestSimulatePortfolio_SumsAllYears(t *testing.T) {
	s, err := ScheduleFromCounts(2023, []int{1, 1})
	require.NoError(t, err)

	res, err := SimulatePortfolio(DefaultDealTerms(), s)
	require.NoError(t, err)
	// año 1: 1 × 2.16, año 2: 2 × 2.16 → se suman ambos, no sólo el último
	assert.InDelta(t, 3*2.16, res.PortfolioValueM, 1e-9)
}

func TestSimulatePortfolio_AllZeroCounts(t *testing.T) {
	s, err := ScheduleFromCounts(2023, []int{0, 0, 0})
	require.NoError(t, err)

	res, err := SimulatePortfolio(DefaultDealTerms(), s)
	assert.ErrorIs(t, err, ErrUndefinedROI)
	assert.Equal(t, 0.0, res.PortfolioValueM)
	assert.Equal(t, 0.0, res.ROIMultiple)
}

func TestSimulatePortfolio_EmptySchedule(t *testing.T) {
	_, err := SimulatePortfolio(DefaultDealTerms(), SpinoffSchedule{})
	assert.ErrorIs(t, err, ErrUndefinedROI)
}

func TestSimulatePortfolio_ZeroInvestment(t *testing.T) {
	terms := DefaultDealTerms()
	terms.ConvertibleInvestment = 0
	_, err := SimulatePortfolio(terms, DefaultSpinoffSchedule())
	assert.ErrorIs(t, err, ErrUndefinedROI)
}

func TestSimulatePortfolio_InvalidTerms(t *testing.T) {
	terms := DefaultDealTerms()
	terms.ConvertibleCap = 0
	_, err := SimulatePortfolio(terms, DefaultSpinoffSchedule())
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.NotErrorIs(t, err, ErrUndefinedROI)
}

// --- BuildPortfolioReport ---

func TestBuildPortfolioReport_CumulativeSeries(t *testing.T) {
	rep, err := BuildPortfolioReport(DefaultDealTerms(), DefaultSpinoffSchedule())
	require.NoError(t, err)

	want := []float64{4.32, 10.8, 23.76, 45.36, 79.92, 133.92, 216.0, 336.96}
	require.Len(t, rep.CumulativeValueM, len(want))
	for i := range want {
		assert.InDelta(t, want[i], rep.CumulativeValueM[i], 1e-9, "year %d", rep.Years[i].Year)
	}
	assert.InDelta(t, rep.Summary.PortfolioValueM, rep.CumulativeValueM[len(want)-1], 1e-9)
	assert.InDelta(t, 4.8, rep.Summary.ConvertibleSharePct, 1e-9)
}

func TestBuildPortfolioReport_UndefinedROI(t *testing.T) {
	s, _ := ScheduleFromCounts(2023, []int{0})
	_, err := BuildPortfolioReport(DefaultDealTerms(), s)
	assert.ErrorIs(t, err, ErrUndefinedROI)
}

func TestCumulativeValues_Empty(t *testing.T) {
	assert.Empty(t, CumulativeValues(nil))
}
