package scoring

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Config is a named set of point-value coefficients. Divisor fields are
// yards-per-point, so larger means fewer points; penalty fields carry their
// sign (interceptions and fumbles are negative).
type Config struct {
	ID              string
	Name            string
	PassYdsPerPoint decimal.Decimal
	PassTdPoints    decimal.Decimal
	PassIntPoints   decimal.Decimal
	RushYdsPerPoint decimal.Decimal
	RushTdPoints    decimal.Decimal
	RecYdsPerPoint  decimal.Decimal
	RecTdPoints     decimal.Decimal
	RecPoints       decimal.Decimal
	FumblePoints    decimal.Decimal
	IsDefault       bool
	CreatedAt       time.Time
}

func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("scoring config name is required")
	}
	if !c.PassYdsPerPoint.IsPositive() {
		return fmt.Errorf("pass yards per point must be positive")
	}
	if !c.RushYdsPerPoint.IsPositive() {
		return fmt.Errorf("rush yards per point must be positive")
	}
	if !c.RecYdsPerPoint.IsPositive() {
		return fmt.Errorf("receiving yards per point must be positive")
	}
	return nil
}
