package host

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/babylonchain/lsthub/config"
	"github.com/babylonchain/lsthub/ledger"
	"github.com/babylonchain/lsthub/metrics"
	"github.com/babylonchain/lsthub/types"
)

// NewLedger builds the ledger described by cfg.
func NewLedger(cfg config.LedgerConfig) (*ledger.Ledger, error) {
	l := ledger.New(ledger.Config{BondDenom: cfg.BondDenom, UnbondingTime: cfg.UnbondingTime})

	for _, v := range cfg.Validators {
		if err := l.AddValidator(v); err != nil {
			return nil, err
		}
	}
	for _, acc := range cfg.GenesisAccounts {
		coins, err := sdk.ParseCoinsNormalized(acc.Coins)
		if err != nil {
			return nil, errors.Wrapf(err, "genesis account %s", acc.Address)
		}
		if err := l.Fund(acc.Address, coins); err != nil {
			return nil, errors.Wrapf(err, "genesis account %s", acc.Address)
		}
	}
	for _, v := range cfg.Vaults {
		rate, err := sdkmath.LegacyNewDecFromStr(v.Rate)
		if err != nil {
			return nil, errors.Wrapf(err, "vault %s", v.Address)
		}
		err = l.AddVault(ledger.Vault{
			Address:    v.Address,
			Kind:       types.VaultKind(v.Kind),
			ShareDenom: v.ShareDenom,
			Underlying: v.Underlying,
			Rate:       rate,
		})
		if err != nil {
			return nil, err
		}
	}
	for _, p := range cfg.Pairs {
		price, err := sdkmath.LegacyNewDecFromStr(p.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "pair %s", p.Address)
		}
		err = l.AddPair(ledger.Pair{Address: p.Address, OfferDenom: p.OfferDenom, AskDenom: p.AskDenom, Price: price})
		if err != nil {
			return nil, err
		}
	}
	for _, r := range cfg.Routers {
		l.AddRouter(r)
	}
	return l, nil
}

// NewFromConfig builds the ledger and an instantiated hub on top of it.
func NewFromConfig(cfg *config.Config, parentLogger *zap.Logger, m *metrics.HubMetrics) (*Executor, error) {
	l, err := NewLedger(cfg.Ledger)
	if err != nil {
		return nil, err
	}
	e, err := New(cfg.Hub.Address, l, cfg.Ledger.StartTime, parentLogger, m)
	if err != nil {
		return nil, err
	}

	msg, err := cfg.Hub.InstantiateMsg()
	if err != nil {
		return nil, err
	}
	if _, err := e.Execute(cfg.Hub.Owner, nil, msg); err != nil {
		return nil, errors.Wrap(err, "failed to instantiate the hub")
	}
	if !cfg.Hub.AllowDonations {
		disallow := false
		if _, err := e.Execute(cfg.Hub.Owner, nil, types.MsgUpdateConfig{AllowDonations: &disallow}); err != nil {
			return nil, errors.Wrap(err, "failed to disable donations")
		}
	}

	e.logger.Infow("hub instantiated", "address", cfg.Hub.Address, "validators", cfg.Hub.Validators,
		"start_time", cfg.Ledger.StartTime)
	return e, nil
}

// Reward accrues rewards on validator for its delegators.
func (e *Executor) Reward(validator string, coins sdk.Coins) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.AccrueRewards(validator, coins)
}

// Slash cuts fraction of every stake on validator.
func (e *Executor) Slash(validator string, fraction sdkmath.LegacyDec) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Slash(validator, fraction)
}
