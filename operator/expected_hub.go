package operator

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/babylonchain/lsthub/host"
	"github.com/babylonchain/lsthub/types"
)

// HubClient is the subset of the host executor the operator drives.
type HubClient interface {
	Execute(sender string, funds sdk.Coins, msg types.Msg) (*host.Result, error)
	Query(q types.Query) (any, error)
	Now() uint64
}
