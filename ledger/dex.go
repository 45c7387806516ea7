package ledger

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"

	"github.com/babylonchain/lsthub/types"
)

// Vault redeems ShareDenom for Underlying at Rate underlying per share,
// paying out of the vault's own balance.
type Vault struct {
	Address    string            `yaml:"address"`
	Kind       types.VaultKind   `yaml:"kind"`
	ShareDenom string            `yaml:"share_denom"`
	Underlying string            `yaml:"underlying"`
	Rate       sdkmath.LegacyDec `yaml:"-"`
}

// Pair sells AskDenom for OfferDenom at Price ask per offer, out of the
// pair's own balance.
type Pair struct {
	Address    string            `yaml:"address"`
	OfferDenom string            `yaml:"offer_denom"`
	AskDenom   string            `yaml:"ask_denom"`
	Price      sdkmath.LegacyDec `yaml:"-"`
}

func (l *Ledger) AddVault(v Vault) error {
	if err := v.Kind.Validate(); err != nil {
		return err
	}
	if v.Rate.IsNil() || !v.Rate.IsPositive() {
		return errors.Wrapf(ErrInvalidAmount, "vault %s rate", v.Address)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.vaults[v.Address] = v
	return nil
}

func (l *Ledger) AddPair(p Pair) error {
	if p.Price.IsNil() || !p.Price.IsPositive() {
		return errors.Wrapf(ErrInvalidAmount, "pair %s price", p.Address)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.pairs[p.Address] = p
	return nil
}

func (l *Ledger) AddRouter(addr string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.routers[addr] = struct{}{}
}

func (l *Ledger) vaultWithdraw(holder string, w types.VaultWithdraw) error {
	v, ok := l.state.vaults[w.Vault]
	if !ok || v.Kind != w.Kind {
		return errors.Wrapf(ErrUnknownVault, "%s vault %s", w.Kind, w.Vault)
	}
	if v.ShareDenom != w.Denom {
		return errors.Wrapf(ErrUnknownVault, "vault %s does not issue %s", w.Vault, w.Denom)
	}
	shares := sdk.NewCoin(w.Denom, sdkmath.NewIntFromBigInt(w.Amount.BigInt()))
	if err := l.burn(holder, sdk.NewCoins(shares)); err != nil {
		return err
	}
	paid := sdk.NewCoins(sdk.NewCoin(v.Underlying, v.Rate.MulInt(shares.Amount).TruncateInt()))
	return l.send(v.Address, holder, paid)
}

// swap runs the offered coins through each stage in order. Each step sells
// everything held in its denom; whatever is held at the end goes back to
// sender.
func (l *Ledger) swap(sender string, s types.Swap) error {
	if _, ok := l.state.routers[s.Router]; !ok {
		return errors.Wrapf(ErrUnknownRouter, "%s", s.Router)
	}
	if err := l.debit(sender, s.Offer); err != nil {
		return err
	}

	held := s.Offer
	for i, stage := range s.Stages {
		for _, step := range stage {
			p, ok := l.state.pairs[step.Pair]
			if !ok || p.OfferDenom != step.Denom {
				return errors.Wrapf(ErrUnknownPair, "stage %d: %s selling %s", i, step.Pair, step.Denom)
			}
			amount := held.AmountOf(step.Denom)
			if !amount.IsPositive() {
				continue
			}
			offer := sdk.NewCoin(step.Denom, amount)
			ask := sdk.NewCoin(p.AskDenom, p.Price.MulInt(amount).TruncateInt())
			if err := l.debit(p.Address, sdk.NewCoins(ask)); err != nil {
				return errors.Wrapf(err, "stage %d: pair %s", i, p.Address)
			}
			l.credit(p.Address, sdk.NewCoins(offer))
			held = held.Sub(offer)
			if ask.IsPositive() {
				held = held.Add(ask)
			}
		}
	}

	l.credit(sender, held)
	return nil
}
