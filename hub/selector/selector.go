// Package selector chooses the validator that receives newly bonded funds.
package selector

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	"github.com/babylonchain/lsthub/types"
)

// DelegationQuerier reads the hub's current delegations.
type DelegationQuerier interface {
	Delegations(ctx context.Context, validators []string) ([]types.Delegation, error)
	AllDelegations(ctx context.Context) ([]types.Delegation, error)
}

// Selection is the chosen delegation together with the delegation snapshot it
// was chosen from. The snapshot is the one used for minting.
type Selection struct {
	Delegation types.Delegation
	Snapshot   []types.Delegation
}

// Select reads delegations once according to strategy and picks the least
// delegated candidate for amount.
func Select(
	ctx context.Context,
	q DelegationQuerier,
	strategy types.DelegationStrategy,
	validators []string,
	amount sdkmath.Uint,
) (Selection, error) {
	var (
		snapshot []types.Delegation
		err      error
	)

	switch strategy.Kind {
	case types.StrategyUniform, "":
		if len(validators) == 0 {
			return Selection{}, types.ErrNoValidators
		}
		snapshot, err = q.Delegations(ctx, validators)
		if err != nil {
			return Selection{}, err
		}
	case types.StrategyDefined:
		all, err := q.AllDelegations(ctx)
		if err != nil {
			return Selection{}, err
		}
		snapshot, err = DefinedCandidates(all, validators)
		if err != nil {
			return Selection{}, err
		}
	default:
		return Selection{}, errorsmod.Wrapf(types.ErrInvalidStrategy, "unknown kind %q", strategy.Kind)
	}

	target, err := MinDelegation(snapshot)
	if err != nil {
		return Selection{}, err
	}

	return Selection{
		Delegation: types.NewDelegation(target.Validator, amount),
		Snapshot:   snapshot,
	}, nil
}

// DefinedCandidates keeps the validators that already hold stake. Before any
// stake exists the first whitelisted validator is the only candidate.
func DefinedCandidates(all []types.Delegation, validators []string) ([]types.Delegation, error) {
	candidates := make([]types.Delegation, 0, len(all))
	for _, d := range all {
		if !d.Amount.IsZero() {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) > 0 {
		return candidates, nil
	}
	if len(validators) == 0 {
		return nil, types.ErrNoValidators
	}
	return []types.Delegation{types.NewDelegation(validators[0], sdkmath.ZeroUint())}, nil
}

// MinDelegation is a left-to-right linear scan; the first of equal amounts wins.
func MinDelegation(delegations []types.Delegation) (types.Delegation, error) {
	if len(delegations) == 0 {
		return types.Delegation{}, types.ErrNoValidators
	}
	least := delegations[0]
	for _, d := range delegations[1:] {
		if d.Amount.LT(least.Amount) {
			least = d
		}
	}
	return least, nil
}
