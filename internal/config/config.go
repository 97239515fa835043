// Package config defines the scenario configuration for loancalc and
// includes functions for loading and validating it.
package config

import (
	"fmt"

	"github.com/finwise/loancalc/pkg/datetime"
	"github.com/finwise/loancalc/pkg/loans"
	"github.com/finwise/loancalc/pkg/stampduty"
	"github.com/finwise/loancalc/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds a full calculation scenario plus runtime settings.
type Configuration struct {
	Loan          LoanConfig
	ExtraPayments []float64
	Affordability *AffordabilityConfig
	StampDuty     StampDutyConfig
	StartMonth    string
	Logging       LoggingConfig `yaml:"logging,omitempty"`
	Output        OutputConfig  `yaml:"output,omitempty"`
}

// LoanConfig mirrors loans.Parameters in configuration form.
type LoanConfig struct {
	Principal         float64
	AnnualRatePercent float64
	TermYears         int
	RepaymentType     string
	DownPayment       float64
	TradeInValue      float64
	GracePeriodMonths int
	Fees              map[string]float64
}

// AffordabilityConfig holds the optional affordability question.
type AffordabilityConfig struct {
	MonthlyIncome     float64
	MonthlyDebts      float64
	DownPayment       float64
	AnnualRatePercent float64
	TermYears         int
	MaxDTI            float64
}

// StampDutyConfig holds the optional duty bracket table override.
type StampDutyConfig struct {
	Brackets []stampduty.Bracket
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Parameters converts the loan section into engine parameters.
func (conf *Configuration) Parameters() loans.Parameters {
	return loans.Parameters{
		Principal:         conf.Loan.Principal,
		AnnualRatePercent: conf.Loan.AnnualRatePercent,
		TermYears:         conf.Loan.TermYears,
		Type:              loans.RepaymentType(conf.Loan.RepaymentType),
		DownPayment:       conf.Loan.DownPayment,
		TradeInValue:      conf.Loan.TradeInValue,
		GracePeriodMonths: conf.Loan.GracePeriodMonths,
		Fees:              conf.Loan.Fees,
	}
}

// AffordabilityInput converts the affordability section into solver input.
// Returns false when the scenario asks no affordability question.
func (conf *Configuration) AffordabilityInput() (loans.AffordabilityInput, bool) {
	if conf.Affordability == nil {
		return loans.AffordabilityInput{}, false
	}
	a := conf.Affordability
	return loans.AffordabilityInput{
		MonthlyIncome:     a.MonthlyIncome,
		MonthlyDebts:      a.MonthlyDebts,
		DownPayment:       a.DownPayment,
		AnnualRatePercent: a.AnnualRatePercent,
		TermYears:         a.TermYears,
		MaxDTI:            a.MaxDTI,
	}, true
}

// Brackets returns the configured duty table, or the default one.
func (conf *Configuration) Brackets() []stampduty.Bracket {
	if len(conf.StampDuty.Brackets) == 0 {
		return stampduty.DefaultBrackets()
	}
	return conf.StampDuty.Brackets
}

// ValidateConfiguration checks the scenario for issues and returns warnings
// for anything that was clamped or looks suspicious. Warnings are advisory;
// the configuration remains usable.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	_, paramWarnings := validation.SanitizeParameters(conf.Parameters())
	warnings = append(warnings, paramWarnings...)

	for i, extra := range conf.ExtraPayments {
		if extra <= 0 {
			warnings = append(warnings, fmt.Sprintf("extra payment #%d (%.2f) is not positive and will be ignored", i+1, extra))
		}
	}

	if input, ok := conf.AffordabilityInput(); ok {
		_, affordWarnings := validation.SanitizeAffordabilityInput(input)
		warnings = append(warnings, affordWarnings...)
	}

	for _, bracket := range conf.StampDuty.Brackets {
		if bracket.Threshold < 0 || bracket.RatePercent < 0 {
			warnings = append(warnings, "stamp duty brackets contain negative values")
			break
		}
	}

	if conf.StartMonth != "" && !datetime.ValidMonth(conf.StartMonth) {
		warnings = append(warnings, fmt.Sprintf("start month %q is not in YYYY-MM form and will be ignored", conf.StartMonth))
	}

	return warnings
}
