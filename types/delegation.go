package types

import (
	sdkmath "cosmossdk.io/math"
)

// Delegation is a point-in-time read of the amount delegated to a validator.
type Delegation struct {
	Validator string       `json:"validator"`
	Amount    sdkmath.Uint `json:"amount"`
}

func NewDelegation(validator string, amount sdkmath.Uint) Delegation {
	return Delegation{Validator: validator, Amount: amount}
}

// Undelegation removes Amount from Validator.
type Undelegation struct {
	Validator string       `json:"validator"`
	Amount    sdkmath.Uint `json:"amount"`
}

// Redelegation moves Amount from Src to Dst.
type Redelegation struct {
	Src    string       `json:"src"`
	Dst    string       `json:"dst"`
	Amount sdkmath.Uint `json:"amount"`
}
