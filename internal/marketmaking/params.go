package marketmaking

import (
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	"github.com/KenyBoi/algotrendy-v2.6-sub016/pkg/errors"
)

var validate = validator.New()

// ASParameters are the inputs to the Avellaneda-Stoikov quoting model.
// Horizon is the normalized fraction of the trading session remaining.
type ASParameters struct {
	// Gamma is risk aversion, in (0, 10].
	Gamma float64 `yaml:"gamma" default:"0.1" validate:"gt=0,lte=10"`
	// Kappa is order book liquidity intensity, in (0, 100].
	Kappa float64 `yaml:"kappa" default:"1.5" validate:"gt=0,lte=100"`
	// Sigma is the volatility estimate, in (0, 5].
	Sigma float64 `yaml:"sigma" default:"0.02" validate:"gt=0,lte=5"`
	// Horizon is the remaining horizon T, in [0, 1].
	Horizon float64 `yaml:"horizon" default:"1" validate:"gte=0,lte=1"`
	// MaxInventory is the hard position bound, in base units.
	MaxInventory float64 `yaml:"max_inventory" default:"1" validate:"gt=0"`
	// TargetInventory is the inventory the quotes steer toward.
	TargetInventory float64 `yaml:"target_inventory"`
	// MinSpreadBps is the floor on the quoted spread, in basis points.
	MinSpreadBps float64 `yaml:"min_spread_bps" default:"5" validate:"gte=0"`
	// MaxSpreadBps is the cap on the quoted spread, in basis points.
	MaxSpreadBps float64 `yaml:"max_spread_bps" default:"200" validate:"gtfield=MinSpreadBps"`
}

// NewASParameters fills defaults into zero-valued fields and validates
// the result. The returned error lists every violated constraint, not
// just the first.
func NewASParameters(params ASParameters) (ASParameters, error) {
	if err := defaults.Set(&params); err != nil {
		return ASParameters{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "as parameter defaults", err)
	}

	if err := params.Validate(); err != nil {
		return ASParameters{}, err
	}

	return params, nil
}

// Validate checks every constraint and reports all violations in one
// error.
func (p ASParameters) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "as parameters", err)
	}

	violations := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		violations = append(violations, fmt.Sprintf("%s violates %s=%s (got %v)",
			fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
	}

	return errors.Newf(errors.ErrCodeInvalidParameter,
		"as parameters: %s", strings.Join(violations, "; "))
}

// ConservativeParameters quotes wide and sheds inventory quickly.
func ConservativeParameters() ASParameters {
	return ASParameters{
		Gamma:        0.5,
		Kappa:        1.5,
		Sigma:        0.02,
		Horizon:      1,
		MaxInventory: 1,
		MinSpreadBps: 10,
		MaxSpreadBps: 300,
	}
}

// AggressiveParameters quotes tight for flow capture.
func AggressiveParameters() ASParameters {
	return ASParameters{
		Gamma:        0.05,
		Kappa:        10,
		Sigma:        0.02,
		Horizon:      1,
		MaxInventory: 1,
		MinSpreadBps: 2,
		MaxSpreadBps: 100,
	}
}
