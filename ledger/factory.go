package ledger

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
)

// FactoryDenom is the denom creator gets for subdenom.
func FactoryDenom(creator, subdenom string) string {
	return fmt.Sprintf("factory/%s/%s", creator, subdenom)
}

func (l *Ledger) CreateDenom(creator, subdenom string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.createDenom(creator, subdenom)
}

// MintTo mints amount of denom to recipient; only the denom admin may mint.
func (l *Ledger) MintTo(admin, denom string, amount sdkmath.Uint, recipient string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.factoryMint(admin, denom, amount, recipient)
}

// BurnFrom burns amount of denom held by the denom admin.
func (l *Ledger) BurnFrom(admin, denom string, amount sdkmath.Uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.factoryBurn(admin, denom, amount)
}

func (l *Ledger) createDenom(creator, subdenom string) (string, error) {
	denom := FactoryDenom(creator, subdenom)
	if err := sdk.ValidateDenom(denom); err != nil {
		return "", errors.Wrapf(ErrInvalidAmount, "invalid denom %s: %v", denom, err)
	}
	if _, ok := l.state.denomAdmins[denom]; ok {
		return "", errors.Wrapf(ErrDenomExists, "%s", denom)
	}
	l.state.denomAdmins[denom] = creator
	return denom, nil
}

func (l *Ledger) assertDenomAdmin(admin, denom string) error {
	if owner, ok := l.state.denomAdmins[denom]; !ok || owner != admin {
		return errors.Wrapf(ErrNotDenomAdmin, "%s on %s", admin, denom)
	}
	return nil
}

func (l *Ledger) factoryMint(admin, denom string, amount sdkmath.Uint, recipient string) error {
	if err := l.assertDenomAdmin(admin, denom); err != nil {
		return err
	}
	if amount.IsZero() {
		return errors.Wrap(ErrInvalidAmount, "can't mint zero")
	}
	return l.mint(recipient, sdk.NewCoins(sdk.NewCoin(denom, sdkmath.NewIntFromBigInt(amount.BigInt()))))
}

func (l *Ledger) factoryBurn(admin, denom string, amount sdkmath.Uint) error {
	if err := l.assertDenomAdmin(admin, denom); err != nil {
		return err
	}
	if amount.IsZero() {
		return errors.Wrap(ErrInvalidAmount, "can't burn zero")
	}
	return l.burn(admin, sdk.NewCoins(sdk.NewCoin(denom, sdkmath.NewIntFromBigInt(amount.BigInt()))))
}
