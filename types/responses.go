package types

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	RequestStatePending   = "PENDING"
	RequestStateUnbonding = "UNBONDING"
	RequestStateCompleted = "COMPLETED"
)

type ConfigResponse struct {
	Owner              string             `json:"owner"`
	NewOwner           string             `json:"new_owner,omitempty"`
	Operator           string             `json:"operator"`
	BaseDenom          string             `json:"base_denom"`
	StakeToken         string             `json:"stake_token"`
	EpochPeriod        uint64             `json:"epoch_period"`
	UnbondPeriod       uint64             `json:"unbond_period"`
	SwapRouter         string             `json:"swap_router"`
	Validators         []string           `json:"validators"`
	FeeConfig          FeeConfig          `json:"fee_config"`
	StagesPreset       []Stage            `json:"stages_preset"`
	DelegationStrategy DelegationStrategy `json:"delegation_strategy"`
	AllowDonations     bool               `json:"allow_donations"`
}

type StateResponse struct {
	TotalStake    sdkmath.Uint      `json:"total_ustake"`
	TotalBonded   sdkmath.Uint      `json:"total_utoken"`
	ExchangeRate  sdkmath.LegacyDec `json:"exchange_rate"`
	UnlockedCoins sdk.Coins         `json:"unlocked_coins"`
	Unbonding     sdkmath.Uint      `json:"unbonding"`
	Available     sdkmath.Uint      `json:"available"`
	TVL           sdkmath.Uint      `json:"tvl_utoken"`
}

type UnbondRequestsByBatchItem struct {
	User   string       `json:"user"`
	Shares sdkmath.Uint `json:"shares"`
}

type UnbondRequestsByUserItem struct {
	ID     uint64       `json:"id"`
	Shares sdkmath.Uint `json:"shares"`
}

type UnbondRequestDetails struct {
	ID      uint64        `json:"id"`
	Shares  sdkmath.Uint  `json:"shares"`
	State   string        `json:"state"`
	Batch   *Batch        `json:"batch,omitempty"`
	Pending *PendingBatch `json:"pending,omitempty"`
}
