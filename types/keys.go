package types

import (
	"fmt"

	"cosmossdk.io/collections"
)

const StoreKey = ModuleName

var (
	OwnerKey              = collections.NewPrefix(0)
	NewOwnerKey           = collections.NewPrefix(1)
	OperatorKey           = collections.NewPrefix(2)
	ParamsKey             = collections.NewPrefix(3)
	StakeTokenKey         = collections.NewPrefix(4)
	PendingBatchKey       = collections.NewPrefix(5)
	ValidatorsKey         = collections.NewPrefix(6)
	FeeConfigKey          = collections.NewPrefix(7)
	UnlockedCoinsKey      = collections.NewPrefix(8)
	StagesPresetKey       = collections.NewPrefix(9)
	DelegationStrategyKey = collections.NewPrefix(10)
	AllowDonationsKey     = collections.NewPrefix(11)

	BatchesKey              = collections.NewPrefix(12)
	BatchesByReconciledKey  = collections.NewPrefix(13)
	UnbondRequestsKey       = collections.NewPrefix(14)
	UnbondRequestsByUserKey = collections.NewPrefix(15)
)

// StakeDenom is the token-factory denom created by hub for subdenom.
func StakeDenom(hub, subdenom string) string {
	return fmt.Sprintf("factory/%s/%s", hub, subdenom)
}
