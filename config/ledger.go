package config

import (
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/hashicorp/go-multierror"

	"github.com/babylonchain/lsthub/types"
)

// GenesisAccount is funded when the ledger is created.
type GenesisAccount struct {
	Address string `mapstructure:"address" yaml:"address"`
	Coins   string `mapstructure:"coins" yaml:"coins"`
}

type VaultConfig struct {
	Address    string `mapstructure:"address" yaml:"address"`
	Kind       string `mapstructure:"kind" yaml:"kind"`
	ShareDenom string `mapstructure:"share-denom" yaml:"share-denom"`
	Underlying string `mapstructure:"underlying" yaml:"underlying"`
	Rate       string `mapstructure:"rate" yaml:"rate"`
}

type PairConfig struct {
	Address    string `mapstructure:"address" yaml:"address"`
	OfferDenom string `mapstructure:"offer-denom" yaml:"offer-denom"`
	AskDenom   string `mapstructure:"ask-denom" yaml:"ask-denom"`
	Price      string `mapstructure:"price" yaml:"price"`
}

// LedgerConfig describes the simulated ledger the hub runs on.
type LedgerConfig struct {
	BondDenom string `mapstructure:"bond-denom" yaml:"bond-denom"`
	// Seconds undelegated tokens stay locked. Usually equal to the hub's unbond-period.
	UnbondingTime   uint64           `mapstructure:"unbonding-time" yaml:"unbonding-time"`
	StartTime       uint64           `mapstructure:"start-time" yaml:"start-time"`
	Validators      []string         `mapstructure:"validators" yaml:"validators"`
	GenesisAccounts []GenesisAccount `mapstructure:"genesis-accounts" yaml:"genesis-accounts"`
	Vaults          []VaultConfig    `mapstructure:"vaults" yaml:"vaults"`
	Pairs           []PairConfig     `mapstructure:"pairs" yaml:"pairs"`
	Routers         []string         `mapstructure:"routers" yaml:"routers"`
}

func (cfg *LedgerConfig) Validate() error {
	if err := sdk.ValidateDenom(cfg.BondDenom); err != nil {
		return fmt.Errorf("invalid bond-denom: %w", err)
	}
	if len(cfg.Validators) == 0 {
		return errors.New("at least one validator is required")
	}

	var errs error
	for _, acc := range cfg.GenesisAccounts {
		if acc.Address == "" {
			errs = multierror.Append(errs, errors.New("genesis account without address"))
		}
		if _, err := sdk.ParseCoinsNormalized(acc.Coins); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("genesis account %s: %w", acc.Address, err))
		}
	}
	for _, v := range cfg.Vaults {
		if err := types.VaultKind(v.Kind).Validate(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("vault %s: %w", v.Address, err))
		}
		if _, err := sdkmath.LegacyNewDecFromStr(v.Rate); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("vault %s rate: %w", v.Address, err))
		}
	}
	for _, p := range cfg.Pairs {
		if _, err := sdkmath.LegacyNewDecFromStr(p.Price); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("pair %s price: %w", p.Address, err))
		}
	}
	return errs
}

func DefaultLedgerConfig() LedgerConfig {
	return LedgerConfig{
		BondDenom:     "ukuji",
		UnbondingTime: 14 * 24 * 60 * 60,
		StartTime:     1_700_000_000,
		Validators:    []string{"validator-1", "validator-2", "validator-3"},
		GenesisAccounts: []GenesisAccount{
			{Address: "alice", Coins: "1000000000ukuji"},
			{Address: "bob", Coins: "1000000000ukuji"},
		},
		Routers: []string{"router"},
	}
}
