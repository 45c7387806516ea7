package types

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Effect is a deferred action the host executes after the call returns.
type Effect interface {
	EffectType() string
}

type Delegate struct {
	Validator string
	Amount    sdkmath.Uint
}

type Undelegate struct {
	Validator string
	Amount    sdkmath.Uint
}

type Redelegate struct {
	Src    string
	Dst    string
	Amount sdkmath.Uint
}

type WithdrawReward struct {
	Validator string
}

type Transfer struct {
	To    string
	Coins sdk.Coins
}

type Mint struct {
	Denom     string
	Amount    sdkmath.Uint
	Recipient string
}

type Burn struct {
	Denom  string
	Amount sdkmath.Uint
}

type CreateDenom struct {
	Subdenom string
}

// VaultWithdraw redeems Amount of Denom from an external vault.
type VaultWithdraw struct {
	Kind   VaultKind
	Vault  string
	Denom  string
	Amount sdkmath.Uint
}

// Swap offers balances to the router, which swaps them along Stages.
type Swap struct {
	Router string
	Stages []Stage
	Offer  sdk.Coins
}

// SelfCall executes Msg against the hub with the hub as sender.
type SelfCall struct {
	Msg Msg
}

func (Delegate) EffectType() string       { return "delegate" }
func (Undelegate) EffectType() string     { return "undelegate" }
func (Redelegate) EffectType() string     { return "redelegate" }
func (WithdrawReward) EffectType() string { return "withdraw_reward" }
func (Transfer) EffectType() string       { return "transfer" }
func (Mint) EffectType() string           { return "mint" }
func (Burn) EffectType() string           { return "burn" }
func (CreateDenom) EffectType() string    { return "create_denom" }
func (VaultWithdraw) EffectType() string  { return "vault_withdraw" }
func (Swap) EffectType() string           { return "swap" }
func (SelfCall) EffectType() string       { return "self_call" }

func (d Delegation) DelegateEffect() Delegate {
	return Delegate{Validator: d.Validator, Amount: d.Amount}
}

func (u Undelegation) Effect() Undelegate {
	return Undelegate{Validator: u.Validator, Amount: u.Amount}
}

func (r Redelegation) Effect() Redelegate {
	return Redelegate{Src: r.Src, Dst: r.Dst, Amount: r.Amount}
}

// Response carries the ordered effects of one call.
type Response struct {
	Effects []Effect
}

func NewResponse(effects ...Effect) *Response {
	return &Response{Effects: effects}
}

func (r *Response) Add(effects ...Effect) *Response {
	r.Effects = append(r.Effects, effects...)
	return r
}
