package ledger

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
)

// Fund creates coins out of thin air for addr.
func (l *Ledger) Fund(addr string, coins sdk.Coins) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mint(addr, coins)
}

func (l *Ledger) Send(from, to string, coins sdk.Coins) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.send(from, to, coins)
}

func (l *Ledger) GetBalance(addr, denom string) sdkmath.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.balances[addr].AmountOf(denom)
}

func (l *Ledger) GetAllBalances(addr string) sdk.Coins {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.balances[addr]
}

// Supply is the total amount of denom in existence.
func (l *Ledger) Supply(denom string) sdkmath.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.supply.AmountOf(denom)
}

func (l *Ledger) mint(addr string, coins sdk.Coins) error {
	if !coins.IsValid() {
		return errors.Wrapf(ErrInvalidAmount, "%s", coins)
	}
	l.credit(addr, coins)
	l.state.supply = l.state.supply.Add(coins...)
	return nil
}

func (l *Ledger) burn(addr string, coins sdk.Coins) error {
	if err := l.debit(addr, coins); err != nil {
		return err
	}
	l.state.supply = l.state.supply.Sub(coins...)
	return nil
}

func (l *Ledger) send(from, to string, coins sdk.Coins) error {
	if coins.IsZero() {
		return nil
	}
	if err := l.debit(from, coins); err != nil {
		return err
	}
	l.credit(to, coins)
	return nil
}

func (l *Ledger) credit(addr string, coins sdk.Coins) {
	if coins.IsZero() {
		return
	}
	l.state.balances[addr] = l.state.balances[addr].Add(coins...)
}

func (l *Ledger) debit(addr string, coins sdk.Coins) error {
	if !coins.IsValid() {
		return errors.Wrapf(ErrInvalidAmount, "%s", coins)
	}
	balance := l.state.balances[addr]
	remaining, negative := balance.SafeSub(coins...)
	if negative {
		return errors.Wrapf(ErrInsufficientFunds, "%s has %s, needs %s", addr, balance, coins)
	}
	if remaining.IsZero() {
		delete(l.state.balances, addr)
	} else {
		l.state.balances[addr] = remaining
	}
	return nil
}
