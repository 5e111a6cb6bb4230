package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alejandrodnm/anvilcast/internal/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Rangos de entrada aceptados por los dashboards. Importes en USD.
const (
	MinMASharePct        = 0
	MaxMASharePct        = 35
	MinStaffIncentivePct = 15
	MaxStaffIncentivePct = 40
	MinHiringPoint       = 1
	MaxHiringPoint       = 40

	MinMAPreMoney      = 5e6
	MaxMAPreMoney      = 25e6
	MaxConvertible     = 1e6 // cero se acepta: el ROI queda indefinido
	MinFracFromMA      = 0.1
	MaxFracFromMA      = 0.5
	MinPreMoney        = 5e6
	MaxPreMoney        = 20e6
	MinConvertibleCap  = 5e6
	MaxConvertibleCap  = 9e6
	MaxSpinoffsPerYear = 18
)

// Config es la configuración completa de un escenario.
type Config struct {
	Portfolio PortfolioConfig `yaml:"portfolio"`
	Staffing  StaffingConfig  `yaml:"staffing"`
	Log       LogConfig       `yaml:"log"`
}

// PortfolioConfig son los términos de deal y los spinoffs por año.
type PortfolioConfig struct {
	MASharePct            *float64       `yaml:"ma_share_pct"`
	StaffIncentivePct     *float64       `yaml:"staff_incentive_pct"`
	ConvertibleInvestment *float64       `yaml:"convertible_investment"`
	FracConvertibleFromMA *float64       `yaml:"frac_convertible_from_ma"`
	PreMoneyValuation     *float64       `yaml:"pre_money_valuation"`
	ConvertibleCap        *float64       `yaml:"convertible_cap"`
	MAPreMoney            *float64       `yaml:"ma_pre_money"`
	Spinoffs              []SpinoffEntry `yaml:"spinoffs"`
}

// SpinoffEntry es una fila año → spinoffs del YAML.
type SpinoffEntry struct {
	Year  int `yaml:"year"`
	Count int `yaml:"count"`
}

// StaffingConfig controla la curva de contratación y los costos.
type StaffingConfig struct {
	StartYear       int       `yaml:"start_year"`
	HorizonYears    int       `yaml:"horizon_years"`
	HiringPoints    []float64 `yaml:"hiring_points"` // EIRs en inicio, mitad y fin
	VBPerEIR        *float64  `yaml:"vb_per_eir"`
	AdminPerEIR     *float64  `yaml:"admin_per_eir"`
	EIRSalary       *float64  `yaml:"eir_salary"`
	VBSalary        *float64  `yaml:"vb_salary"`
	AdminSalary     *float64  `yaml:"admin_salary"`
	LabCostPerEIR   *float64  `yaml:"lab_cost_per_eir"`
	OtherCostPerEIR *float64  `yaml:"other_cost_per_eir"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Un path vacío devuelve el escenario de referencia.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// Default devuelve el escenario de referencia sin leer archivos.
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults completa sólo lo que el YAML no define con el escenario de referencia.
// Un cero explícito se respeta y lo juzga Validate.
func setDefaults(cfg *Config) {
	deal := domain.DefaultDealTerms()
	p := &cfg.Portfolio
	orDefault(&p.MASharePct, deal.MASharePct)
	orDefault(&p.StaffIncentivePct, deal.StaffIncentivePct)
	orDefault(&p.ConvertibleInvestment, deal.ConvertibleInvestment)
	orDefault(&p.FracConvertibleFromMA, deal.FracConvertibleFromMA)
	orDefault(&p.PreMoneyValuation, deal.PreMoneyValuation)
	orDefault(&p.ConvertibleCap, deal.ConvertibleCap)
	orDefault(&p.MAPreMoney, deal.MAPreMoney)
	if p.Spinoffs == nil {
		for _, e := range domain.DefaultSpinoffSchedule().Entries() {
			p.Spinoffs = append(p.Spinoffs, SpinoffEntry{Year: e.Year, Count: e.Count})
		}
	}

	staff := domain.DefaultStaffingParams()
	s := &cfg.Staffing
	if s.StartYear == 0 {
		s.StartYear = 2024
	}
	if s.HorizonYears <= 0 {
		s.HorizonYears = 10
	}
	if len(s.HiringPoints) == 0 {
		s.HiringPoints = []float64{3, 7, 13}
	}
	orDefault(&s.VBPerEIR, staff.VBPerEIR)
	orDefault(&s.AdminPerEIR, staff.AdminPerEIR)
	orDefault(&s.EIRSalary, staff.EIRSalary)
	orDefault(&s.VBSalary, staff.VBSalary)
	orDefault(&s.AdminSalary, staff.AdminSalary)
	orDefault(&s.LabCostPerEIR, staff.LabCostPerEIR)
	orDefault(&s.OtherCostPerEIR, staff.OtherCostPerEIR)

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// Validate rechaza términos inválidos y aplica los rangos de los sliders.
// Los errores envuelven domain.ErrInvalidParameter.
func (c *Config) Validate() error {
	terms := c.DealTerms()
	if err := terms.Validate(); err != nil {
		return err
	}
	if err := c.StaffingParams().Validate(); err != nil {
		return err
	}

	ranges := []struct {
		field  string
		v      float64
		lo, hi float64
	}{
		{"portfolio.ma_share_pct", terms.MASharePct, MinMASharePct, MaxMASharePct},
		{"portfolio.staff_incentive_pct", terms.StaffIncentivePct, MinStaffIncentivePct, MaxStaffIncentivePct},
		{"portfolio.ma_pre_money", terms.MAPreMoney, MinMAPreMoney, MaxMAPreMoney},
		{"portfolio.convertible_investment", terms.ConvertibleInvestment, 0, MaxConvertible},
		{"portfolio.frac_convertible_from_ma", terms.FracConvertibleFromMA, MinFracFromMA, MaxFracFromMA},
		{"portfolio.pre_money_valuation", terms.PreMoneyValuation, MinPreMoney, MaxPreMoney},
		{"portfolio.convertible_cap", terms.ConvertibleCap, MinConvertibleCap, MaxConvertibleCap},
	}
	for _, r := range ranges {
		if r.v < r.lo || r.v > r.hi {
			return outOfRange(r.field, r.v, r.lo, r.hi)
		}
	}

	for _, e := range c.Portfolio.Spinoffs {
		if e.Count < 0 || e.Count > MaxSpinoffsPerYear {
			return outOfRange("portfolio.spinoffs.count", float64(e.Count), 0, MaxSpinoffsPerYear)
		}
	}
	for _, v := range c.Staffing.HiringPoints {
		if v < MinHiringPoint || v > MaxHiringPoint {
			return outOfRange("staffing.hiring_points", v, MinHiringPoint, MaxHiringPoint)
		}
	}
	return c.Log.Validate()
}

// Validate acepta sólo los niveles y formatos que entiende el logger.
func (l LogConfig) Validate() error {
	if _, err := l.SlogLevel(); err != nil {
		return err
	}
	switch l.Format {
	case "text", "json":
		return nil
	}
	return &domain.ParamError{Field: "log.format", Value: l.Format, Reason: "must be text or json"}
}

// SlogLevel traduce log.level a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, &domain.ParamError{Field: "log.level", Value: l.Level, Reason: "must be debug, info, warn or error"}
	}
	return level, nil
}

// DealTerms arma los términos del dominio.
func (c *Config) DealTerms() domain.DealTerms {
	p := c.Portfolio
	return domain.DealTerms{
		MASharePct:            *p.MASharePct,
		StaffIncentivePct:     *p.StaffIncentivePct,
		ConvertibleInvestment: *p.ConvertibleInvestment,
		FracConvertibleFromMA: *p.FracConvertibleFromMA,
		PreMoneyValuation:     *p.PreMoneyValuation,
		ConvertibleCap:        *p.ConvertibleCap,
		MAPreMoney:            *p.MAPreMoney,
	}
}

// SpinoffSchedule construye el schedule validado (años estrictamente crecientes).
func (c *Config) SpinoffSchedule() (domain.SpinoffSchedule, error) {
	entries := make([]domain.YearCount, len(c.Portfolio.Spinoffs))
	for i, e := range c.Portfolio.Spinoffs {
		entries[i] = domain.YearCount{Year: e.Year, Count: e.Count}
	}
	return domain.NewSpinoffSchedule(entries)
}

// StaffingParams arma los factores de staffing del dominio.
func (c *Config) StaffingParams() domain.StaffingParams {
	s := c.Staffing
	return domain.StaffingParams{
		VBPerEIR:        *s.VBPerEIR,
		AdminPerEIR:     *s.AdminPerEIR,
		EIRSalary:       *s.EIRSalary,
		VBSalary:        *s.VBSalary,
		AdminSalary:     *s.AdminSalary,
		LabCostPerEIR:   *s.LabCostPerEIR,
		OtherCostPerEIR: *s.OtherCostPerEIR,
	}
}

// HiringCurve construye la curva de contratación.
func (c *Config) HiringCurve() (*domain.HiringCurve, error) {
	return domain.NewHiringCurve(c.Staffing.HiringPoints, c.Staffing.StartYear, c.Staffing.HorizonYears)
}

func outOfRange(field string, v, lo, hi float64) error {
	return &domain.ParamError{Field: field, Value: v, Reason: fmt.Sprintf("must be within [%g,%g]", lo, hi)}
}

func orDefault(dst **float64, v float64) {
	if *dst == nil {
		*dst = &v
	}
}
