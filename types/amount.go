package types

import (
	"math/big"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

// MaxAmount is the largest value a money field may hold (2^128 - 1).
var MaxAmount = sdkmath.NewUintFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))

// CheckAmount fails if v does not fit in 128 bits.
func CheckAmount(v sdkmath.Uint) error {
	if v.GT(MaxAmount) {
		return errorsmod.Wrapf(ErrOverflow, "%s exceeds 128 bits", v)
	}
	return nil
}

// SafeAdd returns a + b, failing instead of exceeding 128 bits.
func SafeAdd(a, b sdkmath.Uint) (sdkmath.Uint, error) {
	sum := a.Add(b)
	if err := CheckAmount(sum); err != nil {
		return sdkmath.ZeroUint(), errorsmod.Wrapf(ErrOverflow, "%s + %s", a, b)
	}
	return sum, nil
}

// SafeSub returns a - b, failing instead of going negative.
func SafeSub(a, b sdkmath.Uint) (sdkmath.Uint, error) {
	if b.GT(a) {
		return sdkmath.ZeroUint(), errorsmod.Wrapf(ErrUnderflow, "%s - %s", a, b)
	}
	return a.Sub(b), nil
}

// SaturatingSub returns a - b, or zero if b > a.
func SaturatingSub(a, b sdkmath.Uint) sdkmath.Uint {
	if b.GT(a) {
		return sdkmath.ZeroUint()
	}
	return a.Sub(b)
}

// SumDelegations adds up the delegated amounts.
func SumDelegations(delegations []Delegation) (sdkmath.Uint, error) {
	total := sdkmath.ZeroUint()
	for _, d := range delegations {
		var err error
		if total, err = SafeAdd(total, d.Amount); err != nil {
			return sdkmath.ZeroUint(), err
		}
	}
	return total, nil
}

// UintToInt converts an amount into the signed integer used by coins.
func UintToInt(v sdkmath.Uint) sdkmath.Int {
	return sdkmath.NewIntFromBigInt(v.BigInt())
}

// IntToUint converts a non-negative coin amount into an amount.
func IntToUint(v sdkmath.Int) (sdkmath.Uint, error) {
	if v.IsNegative() {
		return sdkmath.ZeroUint(), errorsmod.Wrapf(ErrUnderflow, "negative amount %s", v)
	}
	u := sdkmath.NewUintFromBigInt(v.BigInt())
	if err := CheckAmount(u); err != nil {
		return sdkmath.ZeroUint(), err
	}
	return u, nil
}

// ParseAmount parses a decimal string into a bounded amount.
func ParseAmount(s string) (sdkmath.Uint, error) {
	u, err := sdkmath.ParseUint(s)
	if err != nil {
		return sdkmath.ZeroUint(), errorsmod.Wrapf(ErrInvalidRequest, "invalid amount %q: %v", s, err)
	}
	if err := CheckAmount(u); err != nil {
		return sdkmath.ZeroUint(), err
	}
	return u, nil
}
