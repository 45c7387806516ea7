package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

// MaxRewardFee is the cap on the protocol's share of harvested rewards.
var MaxRewardFee = sdkmath.LegacyNewDecWithPrec(10, 2)

// Params are fixed at instantiation.
type Params struct {
	BaseDenom    string `json:"base_denom"`
	EpochPeriod  uint64 `json:"epoch_period"`
	UnbondPeriod uint64 `json:"unbond_period"`
	SwapRouter   string `json:"swap_router"`
}

// FeeConfig is where the protocol fee goes and how large it is.
type FeeConfig struct {
	FeeRecipient string            `json:"fee_recipient"`
	RewardFee    sdkmath.LegacyDec `json:"reward_fee"`
}

func (f FeeConfig) Validate() error {
	if f.RewardFee.IsNil() || f.RewardFee.IsNegative() {
		return errorsmod.Wrap(ErrInvalidRequest, "reward fee must be non-negative")
	}
	if f.RewardFee.GT(MaxRewardFee) {
		return errorsmod.Wrapf(ErrRewardFeeTooHigh, "%s > %s", f.RewardFee, MaxRewardFee)
	}
	return nil
}

type StrategyKind string

const (
	StrategyUniform StrategyKind = "uniform"
	StrategyDefined StrategyKind = "defined"
)

func (k StrategyKind) String() string {
	return string(k)
}

// ValidatorShare is the relative weight of a validator under the defined strategy.
type ValidatorShare struct {
	Validator string `json:"validator" yaml:"validator"`
	Weight    uint32 `json:"weight" yaml:"weight"`
}

// DelegationStrategy decides which validators new funds may go to. Under the
// defined strategy new funds go to the least delegated validator holding a
// share; weights are validated and kept but no selection reads them.
type DelegationStrategy struct {
	Kind   StrategyKind     `json:"kind"`
	Shares []ValidatorShare `json:"shares,omitempty"`
}

func UniformStrategy() DelegationStrategy {
	return DelegationStrategy{Kind: StrategyUniform}
}

func DefinedStrategy(shares ...ValidatorShare) DelegationStrategy {
	return DelegationStrategy{Kind: StrategyDefined, Shares: shares}
}

// Validate checks the strategy against the whitelisted validators.
func (s DelegationStrategy) Validate(validators []string) error {
	switch s.Kind {
	case StrategyUniform:
		if len(s.Shares) != 0 {
			return errorsmod.Wrap(ErrInvalidStrategy, "uniform strategy takes no shares")
		}
		return nil
	case StrategyDefined:
		whitelisted := make(map[string]struct{}, len(validators))
		for _, v := range validators {
			whitelisted[v] = struct{}{}
		}
		seen := make(map[string]struct{}, len(s.Shares))
		for _, share := range s.Shares {
			if _, ok := whitelisted[share.Validator]; !ok {
				return errorsmod.Wrapf(ErrValidatorNotWhitelisted, "%s", share.Validator)
			}
			if _, dup := seen[share.Validator]; dup {
				return errorsmod.Wrapf(ErrInvalidStrategy, "duplicated share for %s", share.Validator)
			}
			if share.Weight == 0 {
				return errorsmod.Wrapf(ErrInvalidStrategy, "zero weight for %s", share.Validator)
			}
			seen[share.Validator] = struct{}{}
		}
		return nil
	default:
		return errorsmod.Wrapf(ErrInvalidStrategy, "unknown kind %q", s.Kind)
	}
}

// SwapStep offers Denom to the pair contract Pair.
type SwapStep struct {
	Pair  string `json:"pair" yaml:"pair"`
	Denom string `json:"denom" yaml:"denom"`
}

// Stage is one hop of a multi-hop swap route.
type Stage []SwapStep

// ValidateStages rejects routes that offer any of the given denoms.
func ValidateStages(stages []Stage, forbidden ...string) error {
	for _, stage := range stages {
		for _, step := range stage {
			for _, denom := range forbidden {
				if step.Denom == denom {
					return errorsmod.Wrapf(ErrSwapFromNotAllowed, "%s", denom)
				}
			}
		}
	}
	return nil
}

type VaultKind string

const (
	VaultBow        VaultKind = "bow"
	VaultBlackWhale VaultKind = "black_whale"
)

func (k VaultKind) Validate() error {
	switch k {
	case VaultBow, VaultBlackWhale:
		return nil
	default:
		return fmt.Errorf("unknown vault kind %q", string(k))
	}
}

// Withdrawal asks a vault to return the position held in Denom.
type Withdrawal struct {
	Kind  VaultKind `json:"kind" yaml:"kind"`
	Vault string    `json:"vault" yaml:"vault"`
	Denom string    `json:"denom" yaml:"denom"`
}
