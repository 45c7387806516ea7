package ledger

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
)

func (l *Ledger) AddValidator(validator string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.state.validators[validator]; ok {
		return errors.Wrapf(ErrValidatorDuplicate, "%s", validator)
	}
	l.state.validators[validator] = struct{}{}
	return nil
}

func (l *Ledger) Delegate(delegator, validator string, amount sdkmath.Uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.delegate(delegator, validator, amount)
}

func (l *Ledger) Undelegate(delegator, validator string, amount sdkmath.Uint, now uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.undelegate(delegator, validator, amount, now)
}

func (l *Ledger) Redelegate(delegator, src, dst string, amount sdkmath.Uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.redelegate(delegator, src, dst, amount)
}

func (l *Ledger) WithdrawRewards(delegator, validator string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.withdrawRewards(delegator, validator)
}

// PendingRewards are the rewards delegator has accrued on validator.
func (l *Ledger) PendingRewards(delegator, validator string) sdk.Coins {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.rewards[rewardKey{Delegator: delegator, Validator: validator}]
}

// AccrueRewards splits coins over the delegators of validator pro rata to
// their stake. Dust that does not divide evenly is dropped.
func (l *Ledger) AccrueRewards(validator string, coins sdk.Coins) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.assertValidator(validator); err != nil {
		return err
	}
	if !coins.IsValid() {
		return errors.Wrapf(ErrInvalidAmount, "%s", coins)
	}

	var stakers []delegation
	total := sdkmath.ZeroInt()
	l.state.delegations.Ascend(func(d delegation) bool {
		if d.Validator == validator {
			stakers = append(stakers, d)
			total = total.Add(sdkmath.NewIntFromBigInt(d.Amount.BigInt()))
		}
		return true
	})
	if total.IsZero() {
		return errors.Wrapf(ErrNoDelegation, "validator %s has no stake", validator)
	}

	for _, d := range stakers {
		stake := sdkmath.NewIntFromBigInt(d.Amount.BigInt())
		share := sdk.NewCoins()
		for _, c := range coins {
			share = share.Add(sdk.NewCoin(c.Denom, c.Amount.Mul(stake).Quo(total)))
		}
		if share.IsZero() {
			continue
		}
		key := rewardKey{Delegator: d.Delegator, Validator: validator}
		l.state.rewards[key] = l.state.rewards[key].Add(share...)
		l.state.supply = l.state.supply.Add(share...)
	}
	return nil
}

// Slash burns fraction of every delegation to validator and of every
// unbonding entry still locked with it.
func (l *Ledger) Slash(validator string, fraction sdkmath.LegacyDec) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.assertValidator(validator); err != nil {
		return err
	}
	if fraction.IsNegative() || fraction.GT(sdkmath.LegacyOneDec()) {
		return errors.Wrapf(ErrInvalidAmount, "slash fraction %s", fraction)
	}

	slash := func(amount sdkmath.Uint) sdkmath.Uint {
		cut := fraction.MulInt(sdkmath.NewIntFromBigInt(amount.BigInt())).TruncateInt()
		return amount.Sub(sdkmath.NewUintFromBigInt(cut.BigInt()))
	}

	var delegations []delegation
	l.state.delegations.Ascend(func(d delegation) bool {
		if d.Validator == validator {
			delegations = append(delegations, d)
		}
		return true
	})
	burned := sdkmath.ZeroUint()
	for _, d := range delegations {
		remaining := slash(d.Amount)
		burned = burned.Add(d.Amount.Sub(remaining))
		l.setDelegation(d.Delegator, d.Validator, remaining)
	}

	var entries []unbondingEntry
	l.state.unbondings.Ascend(func(e unbondingEntry) bool {
		if e.Validator == validator {
			entries = append(entries, e)
		}
		return true
	})
	for _, e := range entries {
		remaining := slash(e.Amount)
		burned = burned.Add(e.Amount.Sub(remaining))
		e.Amount = remaining
		l.state.unbondings.ReplaceOrInsert(e)
	}

	if !burned.IsZero() {
		l.state.supply = l.state.supply.Sub(sdk.NewCoin(l.cfg.BondDenom, sdkmath.NewIntFromBigInt(burned.BigInt())))
	}
	return nil
}

// ProcessUnbondings releases every unbonding entry that completed by now.
func (l *Ledger) ProcessUnbondings(now uint64) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var matured []unbondingEntry
	l.state.unbondings.Ascend(func(e unbondingEntry) bool {
		if e.CompletionTime > now {
			return false
		}
		matured = append(matured, e)
		return true
	})
	for _, e := range matured {
		l.state.unbondings.Delete(e)
		if !e.Amount.IsZero() {
			l.credit(e.Delegator, sdk.NewCoins(l.bondCoin(e.Amount)))
		}
	}
	return len(matured)
}

// Unbonding is the total amount delegator has locked in the unbonding queue.
func (l *Ledger) Unbonding(delegator string) sdkmath.Uint {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := sdkmath.ZeroUint()
	l.state.unbondings.Ascend(func(e unbondingEntry) bool {
		if e.Delegator == delegator {
			total = total.Add(e.Amount)
		}
		return true
	})
	return total
}

func (l *Ledger) delegate(delegator, validator string, amount sdkmath.Uint) error {
	if err := l.assertValidator(validator); err != nil {
		return err
	}
	if amount.IsZero() {
		return errors.Wrap(ErrInvalidAmount, "can't delegate zero")
	}
	if err := l.withdrawRewards(delegator, validator); err != nil {
		return err
	}
	if err := l.debit(delegator, sdk.NewCoins(l.bondCoin(amount))); err != nil {
		return err
	}
	l.setDelegation(delegator, validator, l.delegation(delegator, validator).Add(amount))
	return nil
}

func (l *Ledger) undelegate(delegator, validator string, amount sdkmath.Uint, now uint64) error {
	if err := l.takeDelegation(delegator, validator, amount); err != nil {
		return err
	}
	l.state.unbondings.ReplaceOrInsert(unbondingEntry{
		CompletionTime: now + l.cfg.UnbondingTime,
		Seq:            l.seq.Inc(),
		Delegator:      delegator,
		Validator:      validator,
		Amount:         amount,
	})
	return nil
}

func (l *Ledger) redelegate(delegator, src, dst string, amount sdkmath.Uint) error {
	if err := l.assertValidator(dst); err != nil {
		return err
	}
	if err := l.takeDelegation(delegator, src, amount); err != nil {
		return err
	}
	if err := l.withdrawRewards(delegator, dst); err != nil {
		return err
	}
	l.setDelegation(delegator, dst, l.delegation(delegator, dst).Add(amount))
	return nil
}

// takeDelegation withdraws pending rewards and removes amount from the delegation.
func (l *Ledger) takeDelegation(delegator, validator string, amount sdkmath.Uint) error {
	if amount.IsZero() {
		return errors.Wrap(ErrInvalidAmount, "can't move zero")
	}
	current := l.delegation(delegator, validator)
	if current.LT(amount) {
		return errors.Wrapf(ErrNoDelegation, "%s has %s on %s, needs %s", delegator, current, validator, amount)
	}
	if err := l.withdrawRewards(delegator, validator); err != nil {
		return err
	}
	l.setDelegation(delegator, validator, current.Sub(amount))
	return nil
}

func (l *Ledger) withdrawRewards(delegator, validator string) error {
	key := rewardKey{Delegator: delegator, Validator: validator}
	rewards, ok := l.state.rewards[key]
	if !ok {
		return nil
	}
	delete(l.state.rewards, key)
	l.credit(delegator, rewards)
	return nil
}

func (l *Ledger) delegation(delegator, validator string) sdkmath.Uint {
	d, ok := l.state.delegations.Get(delegation{Delegator: delegator, Validator: validator})
	if !ok {
		return sdkmath.ZeroUint()
	}
	return d.Amount
}

// setDelegation drops the entry when amount is zero.
func (l *Ledger) setDelegation(delegator, validator string, amount sdkmath.Uint) {
	d := delegation{Delegator: delegator, Validator: validator, Amount: amount}
	if amount.IsZero() {
		l.state.delegations.Delete(d)
		return
	}
	l.state.delegations.ReplaceOrInsert(d)
}

func (l *Ledger) assertValidator(validator string) error {
	if _, ok := l.state.validators[validator]; !ok {
		return errors.Wrapf(ErrUnknownValidator, "%s", validator)
	}
	return nil
}

func (l *Ledger) bondCoin(amount sdkmath.Uint) sdk.Coin {
	return sdk.NewCoin(l.cfg.BondDenom, sdkmath.NewIntFromBigInt(amount.BigInt()))
}
