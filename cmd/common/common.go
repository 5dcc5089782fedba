package common

import "github.com/GiGurra/boa/pkg/boa"

// DefaultParamEnricher derives flag names and short flags from struct fields
// for every tunes command.
func DefaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}
