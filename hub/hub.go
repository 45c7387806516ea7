// Package hub is the liquid-staking hub: it owns the stake-token accounting,
// the unbonding batches and the validator set, and turns every operation into
// state changes plus an ordered list of effects for the host to execute.
package hub

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/collections"
	"cosmossdk.io/collections/indexes"
	"cosmossdk.io/core/store"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.uber.org/zap"

	"github.com/babylonchain/lsthub/metrics"
	"github.com/babylonchain/lsthub/types"
)

const (
	DefaultLimit = 10
	MaxLimit     = 30
)

type BatchIndexes struct {
	Reconciled *indexes.Multi[bool, uint64, types.Batch]
}

func (i BatchIndexes) IndexesList() []collections.Index[uint64, types.Batch] {
	return []collections.Index[uint64, types.Batch]{i.Reconciled}
}

func newBatchIndexes(sb *collections.SchemaBuilder) BatchIndexes {
	return BatchIndexes{
		Reconciled: indexes.NewMulti(
			sb, types.BatchesByReconciledKey, "batches_by_reconciled",
			collections.BoolKey, collections.Uint64Key,
			func(_ uint64, b types.Batch) (bool, error) {
				return b.Reconciled, nil
			},
		),
	}
}

type RequestKey = collections.Pair[uint64, string]

type UnbondRequestIndexes struct {
	User *indexes.Multi[string, RequestKey, types.UnbondRequest]
}

func (i UnbondRequestIndexes) IndexesList() []collections.Index[RequestKey, types.UnbondRequest] {
	return []collections.Index[RequestKey, types.UnbondRequest]{i.User}
}

func newUnbondRequestIndexes(sb *collections.SchemaBuilder) UnbondRequestIndexes {
	return UnbondRequestIndexes{
		User: indexes.NewMulti(
			sb, types.UnbondRequestsByUserKey, "unbond_requests_by_user",
			collections.StringKey, collections.PairKeyCodec(collections.Uint64Key, collections.StringKey),
			func(pk RequestKey, _ types.UnbondRequest) (string, error) {
				return pk.K2(), nil
			},
		),
	}
}

// Hub is the keeper of the liquid-staking state.
type Hub struct {
	self    string
	ledger  LedgerAdapter
	querier *delegationQuerier
	logger  *zap.SugaredLogger
	metrics *metrics.HubMetrics

	Schema             collections.Schema
	Owner              collections.Item[string]
	NewOwner           collections.Item[string]
	Operator           collections.Item[string]
	Params             collections.Item[types.Params]
	StakeToken         collections.Item[types.StakeToken]
	PendingBatch       collections.Item[types.PendingBatch]
	Validators         collections.Item[[]string]
	FeeConfig          collections.Item[types.FeeConfig]
	UnlockedCoins      collections.Item[sdk.Coins]
	StagesPreset       collections.Item[[]types.Stage]
	DelegationStrategy collections.Item[types.DelegationStrategy]
	AllowDonations     collections.Item[bool]
	Batches            *collections.IndexedMap[uint64, types.Batch, BatchIndexes]
	UnbondRequests     *collections.IndexedMap[RequestKey, types.UnbondRequest, UnbondRequestIndexes]
}

// New builds a hub whose own ledger identity is self.
func New(
	storeService store.KVStoreService,
	self string,
	ledger LedgerAdapter,
	parentLogger *zap.Logger,
	metrics *metrics.HubMetrics,
) (*Hub, error) {
	sb := collections.NewSchemaBuilder(storeService)

	h := &Hub{
		self:    self,
		ledger:  ledger,
		querier: &delegationQuerier{ledger: ledger, delegator: self},
		logger:  parentLogger.With(zap.String("module", "hub")).Sugar(),
		metrics: metrics,

		Owner:              collections.NewItem(sb, types.OwnerKey, "owner", collections.StringValue),
		NewOwner:           collections.NewItem(sb, types.NewOwnerKey, "new_owner", collections.StringValue),
		Operator:           collections.NewItem(sb, types.OperatorKey, "operator", collections.StringValue),
		Params:             collections.NewItem(sb, types.ParamsKey, "params", types.JSONValue[types.Params]()),
		StakeToken:         collections.NewItem(sb, types.StakeTokenKey, "stake_token", types.JSONValue[types.StakeToken]()),
		PendingBatch:       collections.NewItem(sb, types.PendingBatchKey, "pending_batch", types.JSONValue[types.PendingBatch]()),
		Validators:         collections.NewItem(sb, types.ValidatorsKey, "validators", types.JSONValue[[]string]()),
		FeeConfig:          collections.NewItem(sb, types.FeeConfigKey, "fee_config", types.JSONValue[types.FeeConfig]()),
		UnlockedCoins:      collections.NewItem(sb, types.UnlockedCoinsKey, "unlocked_coins", types.JSONValue[sdk.Coins]()),
		StagesPreset:       collections.NewItem(sb, types.StagesPresetKey, "stages_preset", types.JSONValue[[]types.Stage]()),
		DelegationStrategy: collections.NewItem(sb, types.DelegationStrategyKey, "delegation_strategy", types.JSONValue[types.DelegationStrategy]()),
		AllowDonations:     collections.NewItem(sb, types.AllowDonationsKey, "allow_donations", collections.BoolValue),
		Batches: collections.NewIndexedMap(
			sb, types.BatchesKey, "batches",
			collections.Uint64Key, types.JSONValue[types.Batch](),
			newBatchIndexes(sb),
		),
		UnbondRequests: collections.NewIndexedMap(
			sb, types.UnbondRequestsKey, "unbond_requests",
			collections.PairKeyCodec(collections.Uint64Key, collections.StringKey), types.JSONValue[types.UnbondRequest](),
			newUnbondRequestIndexes(sb),
		),
	}

	schema, err := sb.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build hub schema: %w", err)
	}
	h.Schema = schema

	return h, nil
}

// Address is the hub's own identity on the ledger.
func (h *Hub) Address() string {
	return h.self
}

func blockTime(ctx context.Context) uint64 {
	t := sdk.UnwrapSDKContext(ctx).BlockTime()
	if t.Before(time.Unix(0, 0)) {
		return 0
	}
	return uint64(t.Unix())
}

func emit(ctx context.Context, eventType string, attrs ...sdk.Attribute) {
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(eventType, append([]sdk.Attribute{sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName)}, attrs...)...),
	)
}
