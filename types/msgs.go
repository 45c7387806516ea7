package types

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MessageInfo identifies the caller of an operation and the coins it attached.
type MessageInfo struct {
	Sender string
	Funds  sdk.Coins
}

// Msg is one call into the hub.
type Msg interface {
	Type() string
}

// Callback is a continuation only the hub itself may invoke.
type Callback interface {
	Msg
	callback()
}

type MsgInstantiate struct {
	Owner         string            `json:"owner"`
	Operator      string            `json:"operator"`
	BaseDenom     string            `json:"base_denom"`
	StakeSubdenom string            `json:"stake_subdenom"`
	EpochPeriod   uint64            `json:"epoch_period"`
	UnbondPeriod  uint64            `json:"unbond_period"`
	Validators    []string          `json:"validators"`
	FeeRecipient  string            `json:"fee_recipient"`
	RewardFee     sdkmath.LegacyDec `json:"reward_fee"`
	SwapRouter    string            `json:"swap_router"`
	StagesPreset  []Stage           `json:"stages_preset,omitempty"`
}

// MsgBond deposits base token and mints stake token to Receiver (sender if empty).
type MsgBond struct {
	Receiver string `json:"receiver,omitempty"`
}

// MsgDonate deposits base token without minting.
type MsgDonate struct{}

// MsgQueueUnbond adds the attached stake token to the pending batch.
type MsgQueueUnbond struct {
	Receiver string `json:"receiver,omitempty"`
}

type MsgSubmitBatch struct{}

type MsgReconcile struct{}

type MsgWithdrawUnbonded struct {
	Receiver string `json:"receiver,omitempty"`
}

// MsgHarvest withdraws rewards and reinvests them. A nil Stages uses the preset route.
type MsgHarvest struct {
	Withdrawals []Withdrawal `json:"withdrawals,omitempty"`
	Stages      []Stage      `json:"stages,omitempty"`
}

type MsgRebalance struct {
	MinRedelegation *sdkmath.Uint `json:"min_redelegation,omitempty"`
}

type MsgAddValidator struct {
	Validator string `json:"validator"`
}

type MsgRemoveValidator struct {
	Validator string `json:"validator"`
}

type MsgTransferOwnership struct {
	NewOwner string `json:"new_owner"`
}

type MsgDropOwnershipProposal struct{}

type MsgAcceptOwnership struct{}

// MsgUpdateConfig changes the fields that are set and leaves the others untouched.
type MsgUpdateConfig struct {
	FeeRecipient       *string             `json:"fee_recipient,omitempty"`
	RewardFee          *sdkmath.LegacyDec  `json:"reward_fee,omitempty"`
	Operator           *string             `json:"operator,omitempty"`
	StagesPreset       []Stage             `json:"stages_preset,omitempty"`
	DelegationStrategy *DelegationStrategy `json:"delegation_strategy,omitempty"`
	AllowDonations     *bool               `json:"allow_donations,omitempty"`
}

type MsgClaimFunds struct {
	Withdrawals []Withdrawal `json:"withdrawals"`
}

// MsgSwap carries the harvest caller so non-preset routes can be restricted to the operator.
type MsgSwap struct {
	Stages []Stage `json:"stages,omitempty"`
	Sender string  `json:"sender"`
}

// MsgCheckReceivedCoin compares current balances against the snapshots taken
// before the preceding effects ran.
type MsgCheckReceivedCoin struct {
	Snapshot      sdk.Coin `json:"snapshot"`
	SnapshotStake sdk.Coin `json:"snapshot_stake"`
}

type MsgReinvest struct{}

func (MsgInstantiate) Type() string           { return "instantiate" }
func (MsgBond) Type() string                  { return "bond" }
func (MsgDonate) Type() string                { return "donate" }
func (MsgQueueUnbond) Type() string           { return "queue_unbond" }
func (MsgSubmitBatch) Type() string           { return "submit_batch" }
func (MsgReconcile) Type() string             { return "reconcile" }
func (MsgWithdrawUnbonded) Type() string      { return "withdraw_unbonded" }
func (MsgHarvest) Type() string               { return "harvest" }
func (MsgRebalance) Type() string             { return "rebalance" }
func (MsgAddValidator) Type() string          { return "add_validator" }
func (MsgRemoveValidator) Type() string       { return "remove_validator" }
func (MsgTransferOwnership) Type() string     { return "transfer_ownership" }
func (MsgDropOwnershipProposal) Type() string { return "drop_ownership_proposal" }
func (MsgAcceptOwnership) Type() string       { return "accept_ownership" }
func (MsgUpdateConfig) Type() string          { return "update_config" }
func (MsgClaimFunds) Type() string            { return "claim_funds" }
func (MsgSwap) Type() string                  { return "swap" }
func (MsgCheckReceivedCoin) Type() string     { return "check_received_coin" }
func (MsgReinvest) Type() string              { return "reinvest" }

func (MsgClaimFunds) callback()        {}
func (MsgSwap) callback()              {}
func (MsgCheckReceivedCoin) callback() {}
func (MsgReinvest) callback()          {}
