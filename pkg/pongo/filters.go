package pongo

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/shopspring/decimal"
)

func init() {
	_ = pongo2.RegisterFilter("na", naFilter)
	_ = pongo2.RegisterFilter("money", moneyFilter)
}

// naFilter substitutes the N/A literal for nil or blank values.
func naFilter(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	v := in.Interface()
	if v == nil {
		return pongo2.AsValue("N/A"), nil
	}

	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return pongo2.AsValue("N/A"), nil
	}

	return in, nil
}

// moneyFilter formats a numeric or string amount with two decimal places.
// Returns the input unchanged when it cannot be parsed as a number.
func moneyFilter(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	s := strings.TrimSpace(fmt.Sprintf("%v", in.Interface()))
	if s == "" {
		return pongo2.AsValue("0.00"), nil
	}

	dec, err := decimal.NewFromString(s)
	if err != nil {
		return in, nil
	}

	return pongo2.AsValue(dec.StringFixed(2)), nil
}
