package hub

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	"github.com/babylonchain/lsthub/types"
)

func (h *Hub) assertOwner(ctx context.Context, sender string) error {
	owner, err := h.Owner.Get(ctx)
	if err != nil {
		return err
	}
	if sender != owner {
		return errorsmod.Wrapf(types.ErrUnauthorizedNotOwner, "%s", sender)
	}
	return nil
}

func (h *Hub) assertOperator(ctx context.Context, sender string) error {
	operator, err := h.Operator.Get(ctx)
	if err != nil {
		return err
	}
	if sender != operator {
		return errorsmod.Wrapf(types.ErrUnauthorizedNotOperator, "%s", sender)
	}
	return nil
}

func (h *Hub) assertSelf(sender string) error {
	if sender != h.self {
		return errorsmod.Wrapf(types.ErrCallbackNotSelf, "sender %s", sender)
	}
	return nil
}
