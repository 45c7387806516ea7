package hub

import (
	"context"
	"errors"
	"strings"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/babylonchain/lsthub/types"
)

func (h *Hub) TransferOwnership(ctx context.Context, info types.MessageInfo, msg types.MsgTransferOwnership) (*types.Response, error) {
	if err := h.assertOwner(ctx, info.Sender); err != nil {
		return nil, err
	}
	if strings.TrimSpace(msg.NewOwner) == "" {
		return nil, errorsmod.Wrap(types.ErrInvalidRequest, "new owner can't be empty")
	}
	if err := h.NewOwner.Set(ctx, msg.NewOwner); err != nil {
		return nil, err
	}

	emit(ctx, types.EventTypeOwnershipProposed, sdk.NewAttribute(types.AttributeKeyNewOwner, msg.NewOwner))

	return types.NewResponse(), nil
}

func (h *Hub) DropOwnershipProposal(ctx context.Context, info types.MessageInfo) (*types.Response, error) {
	if err := h.assertOwner(ctx, info.Sender); err != nil {
		return nil, err
	}
	if err := h.NewOwner.Remove(ctx); err != nil {
		return nil, err
	}

	emit(ctx, types.EventTypeOwnershipDropped)

	return types.NewResponse(), nil
}

// AcceptOwnership completes a transfer; only the proposed owner may call it.
func (h *Hub) AcceptOwnership(ctx context.Context, info types.MessageInfo) (*types.Response, error) {
	previous, err := h.Owner.Get(ctx)
	if err != nil {
		return nil, err
	}
	proposed, err := h.NewOwner.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return nil, types.ErrNoOwnerProposal
	} else if err != nil {
		return nil, err
	}
	if info.Sender != proposed {
		return nil, errorsmod.Wrapf(types.ErrUnauthorizedNotNewOwner, "%s", info.Sender)
	}

	if err := h.Owner.Set(ctx, proposed); err != nil {
		return nil, err
	}
	if err := h.NewOwner.Remove(ctx); err != nil {
		return nil, err
	}

	emit(ctx, types.EventTypeOwnershipTransferred,
		sdk.NewAttribute(types.AttributeKeyNewOwner, proposed),
		sdk.NewAttribute(types.AttributeKeyPreviousOwner, previous),
	)

	return types.NewResponse(), nil
}
