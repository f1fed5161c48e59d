// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const coinDecimals = 8

//FormatAmount integer units -> decimal coin string, 1 coin = 1e8 units
func FormatAmount(amount int64) string {
	return decimal.NewFromInt(amount).Shift(-coinDecimals).String()
}

//ParseAmount decimal coin string -> integer units. More than 8 decimal
//places is rejected rather than rounded.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(ErrAmount, "parse %q: %v", s, err)
	}
	units := d.Shift(coinDecimals)
	if !units.Equal(units.Truncate(0)) {
		return 0, errors.Wrapf(ErrAmount, "%q has more than %d decimals", s, coinDecimals)
	}
	if units.Sign() < 0 || units.GreaterThanOrEqual(decimal.NewFromInt(MaxCoin)) {
		return 0, errors.Wrapf(ErrAmount, "%q out of range", s)
	}
	return units.IntPart(), nil
}
