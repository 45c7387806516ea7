package ledger

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/babylonchain/lsthub/types"
)

// The methods below serve the hub's read side of the ledger.

func (l *Ledger) Delegations(_ context.Context, delegator string, validators []string) ([]types.Delegation, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	res := make([]types.Delegation, 0, len(validators))
	for _, v := range validators {
		res = append(res, types.NewDelegation(v, l.delegation(delegator, v)))
	}
	return res, nil
}

func (l *Ledger) AllDelegations(_ context.Context, delegator string) ([]types.Delegation, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var res []types.Delegation
	l.state.delegations.AscendGreaterOrEqual(delegation{Delegator: delegator}, func(d delegation) bool {
		if d.Delegator != delegator {
			return false
		}
		res = append(res, types.NewDelegation(d.Validator, d.Amount))
		return true
	})
	return res, nil
}

func (l *Ledger) Delegation(_ context.Context, delegator, validator string) (types.Delegation, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return types.NewDelegation(validator, l.delegation(delegator, validator)), nil
}

func (l *Ledger) Balance(_ context.Context, addr, denom string) (sdkmath.Uint, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return types.IntToUint(l.state.balances[addr].AmountOf(denom))
}

func (l *Ledger) AllBalances(_ context.Context, addr string) (sdk.Coins, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.balances[addr], nil
}

func (l *Ledger) ValidatorExists(_ context.Context, validator string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.state.validators[validator]
	return ok, nil
}
