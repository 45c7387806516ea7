package hub

import (
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/babylonchain/lsthub/types"
)

// parseReceivedFund expects exactly one non-zero coin of denom.
func parseReceivedFund(funds sdk.Coins, denom string) (sdkmath.Uint, error) {
	if len(funds) != 1 {
		return sdkmath.ZeroUint(), errorsmod.Wrapf(types.ErrInvalidFunds, "expecting only a single coin, received %d", len(funds))
	}
	if funds[0].Denom != denom {
		return sdkmath.ZeroUint(), errorsmod.Wrapf(types.ErrInvalidFunds, "expecting %s, received %s", denom, funds[0].Denom)
	}
	amount, err := types.IntToUint(funds[0].Amount)
	if err != nil {
		return sdkmath.ZeroUint(), err
	}
	if amount.IsZero() {
		return sdkmath.ZeroUint(), errorsmod.Wrapf(types.ErrCantBeZero, "received %s", denom)
	}
	return amount, nil
}

func coinOf(denom string, amount sdkmath.Uint) sdk.Coin {
	return sdk.NewCoin(denom, types.UintToInt(amount))
}
