package ledger

import (
	"github.com/pkg/errors"

	"github.com/babylonchain/lsthub/types"
)

// Apply executes effect on behalf of sender at time now. Self calls are not
// ledger effects and are rejected.
func (l *Ledger) Apply(sender string, effect types.Effect, now uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch e := effect.(type) {
	case types.Delegate:
		return l.delegate(sender, e.Validator, e.Amount)
	case types.Undelegate:
		return l.undelegate(sender, e.Validator, e.Amount, now)
	case types.Redelegate:
		return l.redelegate(sender, e.Src, e.Dst, e.Amount)
	case types.WithdrawReward:
		if err := l.assertValidator(e.Validator); err != nil {
			return err
		}
		return l.withdrawRewards(sender, e.Validator)
	case types.Transfer:
		return l.send(sender, e.To, e.Coins)
	case types.Mint:
		return l.factoryMint(sender, e.Denom, e.Amount, e.Recipient)
	case types.Burn:
		return l.factoryBurn(sender, e.Denom, e.Amount)
	case types.CreateDenom:
		_, err := l.createDenom(sender, e.Subdenom)
		return err
	case types.VaultWithdraw:
		return l.vaultWithdraw(sender, e)
	case types.Swap:
		return l.swap(sender, e)
	default:
		return errors.Wrapf(ErrUnsupportedEffect, "%s", effect.EffectType())
	}
}
