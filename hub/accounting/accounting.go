// Package accounting holds the stake-token exchange-rate arithmetic.
package accounting

import (
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/holiman/uint256"

	"github.com/babylonchain/lsthub/types"
)

// MulRatio returns floor(x * num / den) with a 512-bit intermediate product.
func MulRatio(x, num, den sdkmath.Uint) (sdkmath.Uint, error) {
	if den.IsZero() {
		return sdkmath.ZeroUint(), errorsmod.Wrapf(types.ErrDivisionByZero, "%s * %s / 0", x, num)
	}
	ux, overflowX := uint256.FromBig(x.BigInt())
	un, overflowN := uint256.FromBig(num.BigInt())
	ud, overflowD := uint256.FromBig(den.BigInt())
	if overflowX || overflowN || overflowD {
		return sdkmath.ZeroUint(), errorsmod.Wrapf(types.ErrOverflow, "%s * %s / %s", x, num, den)
	}
	z, overflow := new(uint256.Int).MulDivOverflow(ux, un, ud)
	if overflow {
		return sdkmath.ZeroUint(), errorsmod.Wrapf(types.ErrOverflow, "%s * %s / %s", x, num, den)
	}
	res := sdkmath.NewUintFromBigInt(z.ToBig())
	if err := types.CheckAmount(res); err != nil {
		return sdkmath.ZeroUint(), err
	}
	return res, nil
}

// MintAmount is the stake token minted for deposit given the delegations at
// the time of the deposit. An empty pool mints 1:1.
func MintAmount(supply, deposit sdkmath.Uint, delegations []types.Delegation) (sdkmath.Uint, error) {
	bonded, err := types.SumDelegations(delegations)
	if err != nil {
		return sdkmath.ZeroUint(), err
	}
	if bonded.IsZero() {
		return deposit, types.CheckAmount(deposit)
	}
	return MulRatio(supply, deposit, bonded)
}

// UnbondAmount is the base token released by burning shares.
func UnbondAmount(supply, shares sdkmath.Uint, delegations []types.Delegation) (sdkmath.Uint, error) {
	if shares.IsZero() {
		return sdkmath.ZeroUint(), nil
	}
	bonded, err := types.SumDelegations(delegations)
	if err != nil {
		return sdkmath.ZeroUint(), err
	}
	return MulRatio(bonded, shares, supply)
}

// ProtocolFee is floor(fee * amount).
func ProtocolFee(fee sdkmath.LegacyDec, amount sdkmath.Uint) (sdkmath.Uint, error) {
	if fee.IsNegative() {
		return sdkmath.ZeroUint(), errorsmod.Wrapf(types.ErrInvalidRequest, "negative fee %s", fee)
	}
	return types.IntToUint(fee.MulInt(types.UintToInt(amount)).TruncateInt())
}

// ExchangeRate is bonded base token per stake token, 1 when nothing is minted.
func ExchangeRate(bonded, supply sdkmath.Uint) sdkmath.LegacyDec {
	if supply.IsZero() {
		return sdkmath.LegacyOneDec()
	}
	return sdkmath.LegacyNewDecFromBigInt(bonded.BigInt()).QuoTruncate(sdkmath.LegacyNewDecFromBigInt(supply.BigInt()))
}
