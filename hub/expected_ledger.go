package hub

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/babylonchain/lsthub/hub/selector"
	"github.com/babylonchain/lsthub/types"
)

//go:generate mockgen -source=expected_ledger.go -package=hub -destination=mock_ledger.go

// LedgerAdapter is the read side of the hosting ledger.
type LedgerAdapter interface {
	// Delegations returns one entry per validator, zero if nothing is delegated.
	Delegations(ctx context.Context, delegator string, validators []string) ([]types.Delegation, error)
	// AllDelegations returns every non-zero delegation of delegator.
	AllDelegations(ctx context.Context, delegator string) ([]types.Delegation, error)
	Delegation(ctx context.Context, delegator, validator string) (types.Delegation, error)
	Balance(ctx context.Context, addr, denom string) (sdkmath.Uint, error)
	AllBalances(ctx context.Context, addr string) (sdk.Coins, error)
	ValidatorExists(ctx context.Context, validator string) (bool, error)
}

// delegationQuerier binds the ledger to the hub's own delegations.
type delegationQuerier struct {
	ledger    LedgerAdapter
	delegator string
}

var _ selector.DelegationQuerier = (*delegationQuerier)(nil)

func (q *delegationQuerier) Delegations(ctx context.Context, validators []string) ([]types.Delegation, error) {
	return q.ledger.Delegations(ctx, q.delegator, validators)
}

func (q *delegationQuerier) AllDelegations(ctx context.Context) ([]types.Delegation, error) {
	return q.ledger.AllDelegations(ctx, q.delegator)
}
