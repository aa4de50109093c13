package scoring

import "github.com/shopspring/decimal"

const (
	ConfigNamePPR      = "PPR (Point Per Reception)"
	ConfigNameHalfPPR  = "Half-PPR"
	ConfigNameStandard = "Standard (No PPR)"
)

// DefaultConfigs returns the three canonical scoring schemes. They share all
// coefficients except the per-reception bonus.
func DefaultConfigs() []Config {
	return []Config{
		baseConfig(ConfigNamePPR, decimal.RequireFromString("1.0"), true),
		baseConfig(ConfigNameHalfPPR, decimal.RequireFromString("0.5"), false),
		baseConfig(ConfigNameStandard, decimal.RequireFromString("0.0"), false),
	}
}

func baseConfig(name string, recPoints decimal.Decimal, isDefault bool) Config {
	return Config{
		Name:            name,
		PassYdsPerPoint: decimal.RequireFromString("25.0"),
		PassTdPoints:    decimal.RequireFromString("4.0"),
		PassIntPoints:   decimal.RequireFromString("-2.0"),
		RushYdsPerPoint: decimal.RequireFromString("10.0"),
		RushTdPoints:    decimal.RequireFromString("6.0"),
		RecYdsPerPoint:  decimal.RequireFromString("10.0"),
		RecTdPoints:     decimal.RequireFromString("6.0"),
		RecPoints:       recPoints,
		FumblePoints:    decimal.RequireFromString("-2.0"),
		IsDefault:       isDefault,
	}
}
