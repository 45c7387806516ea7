package types

import (
	sdkmath "cosmossdk.io/math"
)

// StakeToken is the derivative token minted against bonded base token.
type StakeToken struct {
	Denom       string       `json:"denom"`
	TotalSupply sdkmath.Uint `json:"total_supply"`
}

// PendingBatch collects unbond requests until it is submitted.
type PendingBatch struct {
	ID                 uint64       `json:"id"`
	SharesToBurn       sdkmath.Uint `json:"shares_to_burn"`
	EstUnbondStartTime uint64       `json:"est_unbond_start_time"`
}

func NewPendingBatch(id uint64, startTime uint64) PendingBatch {
	return PendingBatch{
		ID:                 id,
		SharesToBurn:       sdkmath.ZeroUint(),
		EstUnbondStartTime: startTime,
	}
}

// Batch is a submitted batch waiting to be reconciled and withdrawn.
type Batch struct {
	ID               uint64       `json:"id"`
	Reconciled       bool         `json:"reconciled"`
	TotalShares      sdkmath.Uint `json:"total_shares"`
	UnclaimedAmount  sdkmath.Uint `json:"unclaimed_amount"`
	EstUnbondEndTime uint64       `json:"est_unbond_end_time"`
}

// Matured reports whether the batch's unbonding period has elapsed at now.
func (b Batch) Matured(now uint64) bool {
	return now > b.EstUnbondEndTime
}

// UnbondRequest is a user's share of a batch.
type UnbondRequest struct {
	BatchID uint64       `json:"id"`
	User    string       `json:"user"`
	Shares  sdkmath.Uint `json:"shares"`
}
