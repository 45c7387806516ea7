package config

import (
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/babylonchain/lsthub/types"
)

// HubConfig holds the identity of the hub and its instantiate parameters.
type HubConfig struct {
	Address        string   `mapstructure:"address" yaml:"address"`
	Owner          string   `mapstructure:"owner" yaml:"owner"`
	Operator       string   `mapstructure:"operator" yaml:"operator"`
	BaseDenom      string   `mapstructure:"base-denom" yaml:"base-denom"`
	StakeSubdenom  string   `mapstructure:"stake-subdenom" yaml:"stake-subdenom"`
	EpochPeriod    uint64   `mapstructure:"epoch-period" yaml:"epoch-period"`
	UnbondPeriod   uint64   `mapstructure:"unbond-period" yaml:"unbond-period"`
	Validators     []string `mapstructure:"validators" yaml:"validators"`
	FeeRecipient   string   `mapstructure:"fee-recipient" yaml:"fee-recipient"`
	RewardFee      string   `mapstructure:"reward-fee" yaml:"reward-fee"`
	SwapRouter     string   `mapstructure:"swap-router" yaml:"swap-router"`
	AllowDonations bool     `mapstructure:"allow-donations" yaml:"allow-donations"`
}

func (cfg *HubConfig) Validate() error {
	if cfg.Address == "" {
		return errors.New("address can't be empty")
	}
	if cfg.Owner == "" || cfg.Operator == "" || cfg.FeeRecipient == "" {
		return errors.New("owner, operator and fee-recipient must be set")
	}
	if err := sdk.ValidateDenom(cfg.BaseDenom); err != nil {
		return fmt.Errorf("invalid base-denom: %w", err)
	}
	if cfg.StakeSubdenom == "" {
		return errors.New("stake-subdenom can't be empty")
	}
	if cfg.EpochPeriod == 0 || cfg.UnbondPeriod == 0 {
		return errors.New("epoch-period and unbond-period must be positive")
	}
	if len(cfg.Validators) == 0 {
		return errors.New("at least one validator is required")
	}
	fee, err := sdkmath.LegacyNewDecFromStr(cfg.RewardFee)
	if err != nil {
		return fmt.Errorf("invalid reward-fee: %w", err)
	}
	feeConfig := types.FeeConfig{FeeRecipient: cfg.FeeRecipient, RewardFee: fee}
	return feeConfig.Validate()
}

// InstantiateMsg turns the configuration into the message creating the hub.
func (cfg *HubConfig) InstantiateMsg() (types.MsgInstantiate, error) {
	fee, err := sdkmath.LegacyNewDecFromStr(cfg.RewardFee)
	if err != nil {
		return types.MsgInstantiate{}, fmt.Errorf("invalid reward-fee: %w", err)
	}
	return types.MsgInstantiate{
		Owner:         cfg.Owner,
		Operator:      cfg.Operator,
		BaseDenom:     cfg.BaseDenom,
		StakeSubdenom: cfg.StakeSubdenom,
		EpochPeriod:   cfg.EpochPeriod,
		UnbondPeriod:  cfg.UnbondPeriod,
		Validators:    cfg.Validators,
		FeeRecipient:  cfg.FeeRecipient,
		RewardFee:     fee,
		SwapRouter:    cfg.SwapRouter,
	}, nil
}

func DefaultHubConfig() HubConfig {
	return HubConfig{
		Address:        "lsthub",
		Owner:          "owner",
		Operator:       "operator",
		BaseDenom:      "ukuji",
		StakeSubdenom:  "ampKUJI",
		EpochPeriod:    3 * 24 * 60 * 60,
		UnbondPeriod:   14 * 24 * 60 * 60,
		Validators:     []string{"validator-1", "validator-2", "validator-3"},
		FeeRecipient:   "fee-collector",
		RewardFee:      "0.05",
		SwapRouter:     "router",
		AllowDonations: true,
	}
}
