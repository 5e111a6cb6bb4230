package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alejandrodnm/anvilcast/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load("config.yaml")
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultDealTerms(), cfg.DealTerms())
	assert.Equal(t, domain.DefaultStaffingParams(), cfg.StaffingParams())

	s, err := cfg.SpinoffSchedule()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSpinoffSchedule().Entries(), s.Entries())
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().DealTerms(), cfg.DealTerms())
	assert.Equal(t, 10, cfg.Staffing.HorizonYears)
	assert.Equal(t, []float64{3, 7, 13}, cfg.Staffing.HiringPoints)
}

func TestLoad_ExplicitZeroShareKept(t *testing.T) {
	path := writeConfig(t, "portfolio:\n  ma_share_pct: 0\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.DealTerms().MASharePct)
	assert.Equal(t, 30.0, cfg.DealTerms().StaffIncentivePct)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "portfolio: [unclosed"))
	assert.Error(t, err)
}

func TestLoad_EnvOverridesLog(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"ma share above slider", "portfolio:\n  ma_share_pct: 36\n"},
		{"staff incentive below slider", "portfolio:\n  staff_incentive_pct: 10\n"},
		{"hiring point above slider", "staffing:\n  hiring_points: [3, 7, 41]\n"},
		{"hiring point zero", "staffing:\n  hiring_points: [0, 7, 13]\n"},
		{"negative spinoffs", "portfolio:\n  spinoffs: [{year: 2023, count: -1}]\n"},
		{"bad log format", "log:\n  format: xml\n"},
		{"bad log level", "log:\n  level: loud\n"},
		{"negative pre-money", "portfolio:\n  pre_money_valuation: -5\n"},
		{"zero cap", "portfolio:\n  convertible_cap: 0\n"},
		{"pre-money above slider", "portfolio:\n  pre_money_valuation: 25000000\n"},
		{"cap below slider", "portfolio:\n  convertible_cap: 4000000\n"},
		{"ma pre-money below slider", "portfolio:\n  ma_pre_money: 1000000\n"},
		{"convertible above slider", "portfolio:\n  convertible_investment: 2000000\n"},
		{"fraction from ma zero", "portfolio:\n  frac_convertible_from_ma: 0\n"},
		{"spinoffs above slider", "portfolio:\n  spinoffs: [{year: 2023, count: 19}]\n"},
		{"negative salary", "staffing:\n  vb_salary: -1\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			assert.ErrorIs(t, err, domain.ErrInvalidParameter)
		})
	}
}

func TestSpinoffSchedule_NonChronological(t *testing.T) {
	path := writeConfig(t, "portfolio:\n  spinoffs: [{year: 2025, count: 1}, {year: 2024, count: 1}]\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	_, err = cfg.SpinoffSchedule()
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestHiringCurve_WrongPointCount(t *testing.T) {
	path := writeConfig(t, "staffing:\n  hiring_points: [3, 13]\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	_, err = cfg.HiringCurve()
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestLoad_ZeroInvestmentReachesUndefinedROI(t *testing.T) {
	cfg, err := Load(writeConfig(t, "portfolio:\n  convertible_investment: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.DealTerms().ConvertibleInvestment)

	s, err := cfg.SpinoffSchedule()
	require.NoError(t, err)

	_, err = domain.SimulatePortfolio(cfg.DealTerms(), s)
	assert.ErrorIs(t, err, domain.ErrUndefinedROI)
}

func TestLoad_ZeroSpinoffsKept(t *testing.T) {
	cfg, err := Load(writeConfig(t, "portfolio:\n  spinoffs: [{year: 2023, count: 0}, {year: 2024, count: 0}]\n"))
	require.NoError(t, err)

	s, err := cfg.SpinoffSchedule()
	require.NoError(t, err)
	assert.Equal(t, 0, s.Total())

	_, err = domain.SimulatePortfolio(cfg.DealTerms(), s)
	assert.ErrorIs(t, err, domain.ErrUndefinedROI)
}

func TestLoad_ExplicitZeroSalaryKept(t *testing.T) {
	cfg, err := Load(writeConfig(t, "staffing:\n  lab_cost_per_eir: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.StaffingParams().LabCostPerEIR)
	assert.Equal(t, domain.DefaultStaffingParams().EIRSalary, cfg.StaffingParams().EIRSalary)
}

func TestLogConfig_Validate(t *testing.T) {
	assert.NoError(t, LogConfig{Level: "debug", Format: "json"}.Validate())
	assert.ErrorIs(t, LogConfig{Level: "info", Format: "xml"}.Validate(), domain.ErrInvalidParameter)
	assert.ErrorIs(t, LogConfig{Level: "verbose", Format: "text"}.Validate(), domain.ErrInvalidParameter)

	level, err := LogConfig{Level: "warn"}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}
