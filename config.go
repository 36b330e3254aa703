package sentinel

import (
	"fmt"
	"os"

	"github.com/sebakremis/TradeSentinel/date"
	"gopkg.in/yaml.v3"
)

// Config carries the analytics defaults shared by the backtest simulator
// and the valuation engine: the risk-free rate and confidence level fed to
// the metrics library, the cadence of the input series, and the policy
// knobs for cost basis and date alignment.
type Config struct {
	RiskFreeRate float64
	Confidence   float64
	Period       date.Period
	Benchmark    string
	CostMethod   CostMethod
	Alignment    Alignment
}

// DefaultConfig returns the stock defaults: 10-year treasury as risk-free
// rate, 95% confidence, daily cadence, SPY benchmark, average cost,
// inner-join alignment.
func DefaultConfig() Config {
	return Config{
		RiskFreeRate: 0.0415,
		Confidence:   0.95,
		Period:       date.Daily,
		Benchmark:    "SPY",
		CostMethod:   AverageCost,
		Alignment:    AlignIntersect,
	}
}

// jconfig is the YAML shape of a config file; every field is optional and
// falls back to the default.
type jconfig struct {
	RiskFreeRate *float64 `yaml:"risk_free_rate"`
	Confidence   *float64 `yaml:"confidence_level"`
	Period       string   `yaml:"period"`
	Benchmark    *string  `yaml:"benchmark"`
	CostMethod   string   `yaml:"cost_method"`
	Alignment    string   `yaml:"alignment"`
}

// LoadConfig reads analytics defaults from a YAML file. A missing file is
// not an error: the defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("cannot read config %q: %w", path, err)
	}

	var jc jconfig
	if err := yaml.Unmarshal(data, &jc); err != nil {
		return cfg, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	if jc.RiskFreeRate != nil {
		cfg.RiskFreeRate = *jc.RiskFreeRate
	}
	if jc.Confidence != nil {
		if *jc.Confidence <= 0 || *jc.Confidence >= 1 {
			return cfg, fmt.Errorf("config %q: confidence_level must be in (0,1), got %v", path, *jc.Confidence)
		}
		cfg.Confidence = *jc.Confidence
	}
	if jc.Period != "" {
		if cfg.Period, err = date.ParsePeriod(jc.Period); err != nil {
			return cfg, fmt.Errorf("config %q: %w", path, err)
		}
	}
	if jc.Benchmark != nil {
		cfg.Benchmark = Normalize(*jc.Benchmark)
	}
	if jc.CostMethod != "" {
		if cfg.CostMethod, err = ParseCostMethod(jc.CostMethod); err != nil {
			return cfg, fmt.Errorf("config %q: %w", path, err)
		}
	}
	if jc.Alignment != "" {
		if cfg.Alignment, err = ParseAlignment(jc.Alignment); err != nil {
			return cfg, fmt.Errorf("config %q: %w", path, err)
		}
	}
	return cfg, nil
}
